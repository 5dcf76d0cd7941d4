package app

import (
	"os"
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/process"

	"github.com/fraywing/termdock/internal/config"
)

// UpdateStats refreshes the CPU and memory readings for the status bar.
// Rate limited to the stats interval so ticks stay cheap.
func (a *App) UpdateStats() {
	if time.Since(a.lastStatsAt) < config.StatsUpdateInterval {
		return
	}
	a.lastStatsAt = time.Now()

	if percents, err := cpu.Percent(0, false); err == nil && len(percents) > 0 {
		a.cpuPercent = percents[0]
	}

	if proc, err := process.NewProcess(int32(os.Getpid())); err == nil {
		if mem, err := proc.MemoryInfo(); err == nil {
			a.ramMB = float64(mem.RSS) / (1024 * 1024)
		}
	}
}
