package collector

import (
	"context"
	"fmt"

	"github.com/shirou/gopsutil/v4/disk"
)

// DiskInfo reports usage per mounted partition. Partitions whose usage
// cannot be read (permissions, stale mounts) are skipped.
func DiskInfo(ctx context.Context) (Payload, error) {
	partitions, err := disk.PartitionsWithContext(ctx, false)
	if err != nil {
		return nil, fmt.Errorf("listing partitions: %w", err)
	}

	payload := Payload{}
	for _, partition := range partitions {
		usage, err := disk.UsageWithContext(ctx, partition.Mountpoint)
		if err != nil {
			continue
		}
		payload[partition.Device] = map[string]interface{}{
			"mountpoint": partition.Mountpoint,
			"filesystem": partition.Fstype,
			"total_gb":   bytesToGB(usage.Total),
			"used_gb":    bytesToGB(usage.Used),
			"free_gb":    bytesToGB(usage.Free),
			"percentage": round1(usage.UsedPercent),
		}
	}

	return payload, nil
}
