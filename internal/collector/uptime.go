package collector

import (
	"context"
	"fmt"
	"time"

	"github.com/shirou/gopsutil/v4/host"
)

// UptimeInfo reports boot time and elapsed uptime.
func UptimeInfo(ctx context.Context) (Payload, error) {
	bootTime, err := host.BootTimeWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading boot time: %w", err)
	}

	uptime, err := host.UptimeWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading uptime: %w", err)
	}

	return Payload{
		"boot_time":      time.Unix(int64(bootTime), 0).UTC().Format(time.RFC3339),
		"uptime_seconds": uptime,
		"uptime_hours":   round1(float64(uptime) / 3600),
		"uptime_days":    round1(float64(uptime) / 86400),
	}, nil
}
