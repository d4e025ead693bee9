package collector

import (
	"context"
	"fmt"
	"runtime"

	"github.com/shirou/gopsutil/v4/host"
)

// SystemInfo reports static platform details.
func SystemInfo(ctx context.Context) (Payload, error) {
	info, err := host.InfoWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading host info: %w", err)
	}

	return Payload{
		"platform":        fmt.Sprintf("%s-%s-%s", info.Platform, info.PlatformVersion, info.KernelVersion),
		"system":          info.OS,
		"architecture":    info.KernelArch,
		"hostname":        info.Hostname,
		"kernel_version":  info.KernelVersion,
		"platform_family": info.PlatformFamily,
		"go_version":      runtime.Version(),
	}, nil
}
