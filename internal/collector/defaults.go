package collector

import (
	"math"

	"sysmon-agent/internal/common/config"
	"sysmon-agent/internal/common/logger"
)

// Well-known collector names. The intent prompt, the parser fallback and
// the health check all reference these.
const (
	FuncBatteryInfo     = "get_battery_info"
	FuncCPUInfo         = "get_cpu_info"
	FuncMemoryInfo      = "get_memory_info"
	FuncDiskInfo        = "get_disk_info"
	FuncNetworkInfo     = "get_network_info"
	FuncProcessesInfo   = "get_processes_info"
	FuncSystemInfo      = "get_system_info"
	FuncUptimeInfo      = "get_uptime_info"
	FuncTemperatureInfo = "get_temperature_info"
)

// NewSystemRegistry builds the registry with the full collector set.
func NewSystemRegistry(cfg config.CollectorsConfig, log logger.Logger) *Registry {
	r := NewRegistry(log)

	r.MustRegister(FuncBatteryInfo, "Battery percentage, charging status, time remaining", BatteryInfo)
	r.MustRegister(FuncCPUInfo, "CPU usage, cores, frequency", CPUInfo(cfg.CPUSampleInterval()))
	r.MustRegister(FuncMemoryInfo, "RAM usage, available memory, swap", MemoryInfo)
	r.MustRegister(FuncDiskInfo, "Disk usage, free space, partitions", DiskInfo)
	r.MustRegister(FuncNetworkInfo, "Network statistics, data transferred", NetworkInfo)
	r.MustRegister(FuncProcessesInfo, "Running processes, CPU/memory usage", ProcessesInfo(cfg.ProcessLimit))
	r.MustRegister(FuncSystemInfo, "OS, platform, architecture details", SystemInfo)
	r.MustRegister(FuncUptimeInfo, "System uptime, boot time", UptimeInfo)
	r.MustRegister(FuncTemperatureInfo, "System temperatures (if available)", TemperatureInfo)

	return r
}

func bytesToGB(b uint64) float64 {
	return round2(float64(b) / (1 << 30))
}

func bytesToMB(b uint64) float64 {
	return round2(float64(b) / (1 << 20))
}

func round1(f float64) float64 {
	return math.Round(f*10) / 10
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
