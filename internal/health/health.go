package health

import (
	"context"
	"runtime"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/mem"
)

// Pinger is anything that can prove it is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthChecker struct {
	db    Pinger
	cache Pinger
	start time.Time
}

type HealthStatus struct {
	Status   string            `json:"status"`
	Database DependencyHealth  `json:"database"`
	Cache    *DependencyHealth `json:"cache,omitempty"`
}

type DependencyHealth struct {
	Status       string `json:"status"`
	ResponseTime int64  `json:"response_time_ms"`
	Error        string `json:"error,omitempty"`
}

type SystemStats struct {
	Uptime        string  `json:"uptime"`
	Goroutines    int     `json:"goroutines"`
	CPUPercent    float64 `json:"cpu_percent"`
	MemoryPercent float64 `json:"memory_percent"`
	MemoryUsedMB  uint64  `json:"memory_used_mb"`
	DiskPercent   float64 `json:"disk_percent"`
}

type DetailedStatus struct {
	HealthStatus
	System SystemStats `json:"system"`
}

// NewHealthChecker takes the database and an optional cache. The cache never
// makes the service unhealthy.
func NewHealthChecker(db, cache Pinger) *HealthChecker {
	return &HealthChecker{db: db, cache: cache, start: time.Now()}
}

func (h *HealthChecker) CheckBasic(ctx context.Context) HealthStatus {
	status := HealthStatus{Status: "healthy", Database: check(ctx, h.db)}
	if status.Database.Status != "healthy" {
		status.Status = "unhealthy"
	}
	if h.cache != nil {
		c := check(ctx, h.cache)
		status.Cache = &c
	}
	return status
}

// CheckDetailed adds host statistics. Collection errors leave fields at zero.
func (h *HealthChecker) CheckDetailed(ctx context.Context) DetailedStatus {
	stats := SystemStats{
		Uptime:     time.Since(h.start).Round(time.Second).String(),
		Goroutines: runtime.NumGoroutine(),
	}
	if pct, err := cpu.PercentWithContext(ctx, 200*time.Millisecond, false); err == nil && len(pct) > 0 {
		stats.CPUPercent = pct[0]
	}
	if vm, err := mem.VirtualMemoryWithContext(ctx); err == nil {
		stats.MemoryPercent = vm.UsedPercent
		stats.MemoryUsedMB = vm.Used / (1024 * 1024)
	}
	if du, err := disk.UsageWithContext(ctx, "/"); err == nil {
		stats.DiskPercent = du.UsedPercent
	}
	return DetailedStatus{HealthStatus: h.CheckBasic(ctx), System: stats}
}

func check(ctx context.Context, p Pinger) DependencyHealth {
	if p == nil {
		return DependencyHealth{Status: "unhealthy", Error: "not configured"}
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	start := time.Now()
	err := p.Ping(ctx)
	dh := DependencyHealth{Status: "healthy", ResponseTime: time.Since(start).Milliseconds()}
	if err != nil {
		dh.Status = "unhealthy"
		dh.Error = err.Error()
	}
	return dh
}
