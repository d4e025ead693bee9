package collector

import (
	"context"
	"fmt"

	"github.com/shirou/gopsutil/v4/mem"
)

// MemoryInfo reports virtual memory and swap usage in GB.
func MemoryInfo(ctx context.Context) (Payload, error) {
	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading virtual memory: %w", err)
	}

	swap, err := mem.SwapMemoryWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading swap: %w", err)
	}

	swapPercent := 0.0
	if swap.Total > 0 {
		swapPercent = round1(float64(swap.Used) / float64(swap.Total) * 100)
	}

	return Payload{
		"total_gb":        bytesToGB(vm.Total),
		"available_gb":    bytesToGB(vm.Available),
		"used_gb":         bytesToGB(vm.Used),
		"percentage":      round1(vm.UsedPercent),
		"swap_total_gb":   bytesToGB(swap.Total),
		"swap_used_gb":    bytesToGB(swap.Used),
		"swap_percentage": swapPercent,
	}, nil
}
