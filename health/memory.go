package health

import (
	"context"
	"fmt"
	"runtime"
)

// MemoryCheckerConfig configures the process memory checker.
type MemoryCheckerConfig struct {
	// WarningThreshold is the heap usage ratio that reports degraded.
	// Between 0 and 1; default 0.8.
	WarningThreshold float64

	// CriticalThreshold is the heap usage ratio that reports unhealthy.
	// Between 0 and 1; default 0.95.
	CriticalThreshold float64

	// MaxAlloc is the heap budget in bytes the ratios are computed against.
	// Zero uses the memory obtained from the OS so far.
	MaxAlloc uint64
}

// MemoryChecker reports process heap pressure. Long-running watcher workers
// use it to surface prompt-cache or result-buffer leaks before the kernel
// does.
type MemoryChecker struct {
	config MemoryCheckerConfig
}

// NewMemoryChecker creates a memory checker, clamping nonsense thresholds to
// the defaults.
func NewMemoryChecker(config MemoryCheckerConfig) *MemoryChecker {
	if config.WarningThreshold <= 0 || config.WarningThreshold >= 1 {
		config.WarningThreshold = 0.8
	}
	if config.CriticalThreshold <= 0 || config.CriticalThreshold >= 1 {
		config.CriticalThreshold = 0.95
	}
	if config.CriticalThreshold < config.WarningThreshold {
		config.CriticalThreshold = config.WarningThreshold
	}
	return &MemoryChecker{config: config}
}

// Name returns the component name.
func (m *MemoryChecker) Name() string { return "memory" }

// Check reads the runtime memory stats and grades heap usage against the
// configured thresholds.
func (m *MemoryChecker) Check(ctx context.Context) Result {
	select {
	case <-ctx.Done():
		return Unhealthy("context cancelled", ctx.Err())
	default:
	}

	var stats runtime.MemStats
	runtime.ReadMemStats(&stats)

	maxAlloc := m.config.MaxAlloc
	if maxAlloc == 0 {
		maxAlloc = stats.Sys
	}
	if maxAlloc == 0 {
		return Healthy("memory stats unavailable")
	}

	ratio := float64(stats.HeapAlloc) / float64(maxAlloc)
	details := map[string]any{
		"heap_alloc_bytes": stats.HeapAlloc,
		"heap_sys_bytes":   stats.HeapSys,
		"max_alloc_bytes":  maxAlloc,
		"usage_percent":    ratio * 100,
		"num_gc":           stats.NumGC,
		"goroutines":       runtime.NumGoroutine(),
	}

	switch {
	case ratio >= m.config.CriticalThreshold:
		return Unhealthy(fmt.Sprintf("memory usage critical: %.1f%%", ratio*100), ErrCheckFailed).WithDetails(details)
	case ratio >= m.config.WarningThreshold:
		return Degraded(fmt.Sprintf("memory usage high: %.1f%%", ratio*100)).WithDetails(details)
	default:
		return Healthy(fmt.Sprintf("memory usage normal: %.1f%%", ratio*100)).WithDetails(details)
	}
}

var _ Checker = (*MemoryChecker)(nil)
