package collector

import (
	"context"
	"fmt"
	"sort"

	"github.com/shirou/gopsutil/v4/process"
)

// ProcessesInfo returns a collector reporting the top-N processes by CPU
// usage. Processes that disappear or deny access mid-scan are skipped.
func ProcessesInfo(limit int) Func {
	return func(ctx context.Context) (Payload, error) {
		procs, err := process.ProcessesWithContext(ctx)
		if err != nil {
			return nil, fmt.Errorf("listing processes: %w", err)
		}

		type procInfo struct {
			entry      map[string]interface{}
			cpuPercent float64
		}

		infos := make([]procInfo, 0, len(procs))
		for _, p := range procs {
			name, err := p.NameWithContext(ctx)
			if err != nil {
				continue
			}
			cpuPercent, err := p.CPUPercentWithContext(ctx)
			if err != nil {
				continue
			}
			memPercent, err := p.MemoryPercentWithContext(ctx)
			if err != nil {
				continue
			}

			infos = append(infos, procInfo{
				cpuPercent: cpuPercent,
				entry: map[string]interface{}{
					"pid":            p.Pid,
					"name":           name,
					"cpu_percent":    round1(cpuPercent),
					"memory_percent": round1(float64(memPercent)),
				},
			})
		}

		sort.SliceStable(infos, func(i, j int) bool {
			return infos[i].cpuPercent > infos[j].cpuPercent
		})

		if len(infos) > limit {
			infos = infos[:limit]
		}

		top := make([]map[string]interface{}, len(infos))
		for i, info := range infos {
			top[i] = info.entry
		}

		return Payload{"top_processes": top}, nil
	}
}
