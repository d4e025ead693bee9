package collector

import (
	"context"
	"fmt"

	"github.com/shirou/gopsutil/v4/net"
)

// NetworkInfo reports aggregate I/O counters across all interfaces.
func NetworkInfo(ctx context.Context) (Payload, error) {
	counters, err := net.IOCountersWithContext(ctx, false)
	if err != nil {
		return nil, fmt.Errorf("reading network counters: %w", err)
	}
	if len(counters) == 0 {
		return nil, fmt.Errorf("no network counters available")
	}

	io := counters[0]
	return Payload{
		"bytes_sent":       io.BytesSent,
		"bytes_received":   io.BytesRecv,
		"packets_sent":     io.PacketsSent,
		"packets_received": io.PacketsRecv,
		"mb_sent":          bytesToMB(io.BytesSent),
		"mb_received":      bytesToMB(io.BytesRecv),
	}, nil
}
