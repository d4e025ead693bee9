package collector

import (
	"context"
	"fmt"
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
)

// CPUInfo returns a collector sampling overall and per-core usage over
// the given window, plus core count and frequency where available.
func CPUInfo(sampleInterval time.Duration) Func {
	return func(ctx context.Context) (Payload, error) {
		total, err := cpu.PercentWithContext(ctx, sampleInterval, false)
		if err != nil {
			return nil, fmt.Errorf("sampling cpu usage: %w", err)
		}

		perCore, err := cpu.PercentWithContext(ctx, sampleInterval, true)
		if err != nil {
			return nil, fmt.Errorf("sampling per-core usage: %w", err)
		}

		cores, err := cpu.CountsWithContext(ctx, true)
		if err != nil {
			return nil, fmt.Errorf("counting cores: %w", err)
		}

		usage := 0.0
		if len(total) > 0 {
			usage = round1(total[0])
		}
		perCoreRounded := make([]float64, len(perCore))
		for i, v := range perCore {
			perCoreRounded[i] = round1(v)
		}

		payload := Payload{
			"usage_percent":  usage,
			"cores":          cores,
			"per_core_usage": perCoreRounded,
		}

		// Frequency reporting is best effort, some platforms omit it.
		if infos, err := cpu.InfoWithContext(ctx); err == nil && len(infos) > 0 && infos[0].Mhz > 0 {
			payload["frequency_mhz"] = infos[0].Mhz
		}

		return payload, nil
	}
}
