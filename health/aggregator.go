package health

import (
	"context"
	"sync"
	"time"
)

const defaultCheckTimeout = 10 * time.Second

// Aggregator fans a health check out over registered checkers and folds the
// results into an overall status.
type Aggregator struct {
	timeout time.Duration

	mu       sync.RWMutex
	checkers map[string]Checker
}

// AggregatorOption configures an Aggregator.
type AggregatorOption func(*Aggregator)

// WithCheckTimeout bounds a full CheckAll pass. The default is 10 seconds.
func WithCheckTimeout(timeout time.Duration) AggregatorOption {
	return func(a *Aggregator) {
		if timeout > 0 {
			a.timeout = timeout
		}
	}
}

// NewAggregator creates an empty aggregator.
func NewAggregator(opts ...AggregatorOption) *Aggregator {
	a := &Aggregator{
		timeout:  defaultCheckTimeout,
		checkers: make(map[string]Checker),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Register adds a checker under its own name, replacing any previous checker
// with that name.
func (a *Aggregator) Register(checker Checker) {
	a.mu.Lock()
	a.checkers[checker.Name()] = checker
	a.mu.Unlock()
}

// Check runs the single named check.
func (a *Aggregator) Check(ctx context.Context, name string) (Result, error) {
	a.mu.RLock()
	checker, ok := a.checkers[name]
	a.mu.RUnlock()
	if !ok {
		return Result{}, ErrCheckerNotFound
	}
	return a.runCheck(ctx, checker), nil
}

// CheckAll runs every registered check concurrently and returns the results
// keyed by checker name.
func (a *Aggregator) CheckAll(ctx context.Context) map[string]Result {
	a.mu.RLock()
	checkers := make([]Checker, 0, len(a.checkers))
	for _, c := range a.checkers {
		checkers = append(checkers, c)
	}
	a.mu.RUnlock()

	results := make(map[string]Result, len(checkers))
	if len(checkers) == 0 {
		return results
	}

	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	var wg sync.WaitGroup
	var resultsMu sync.Mutex
	for _, checker := range checkers {
		wg.Add(1)
		go func(c Checker) {
			defer wg.Done()
			r := a.runCheck(ctx, c)
			resultsMu.Lock()
			results[c.Name()] = r
			resultsMu.Unlock()
		}(checker)
	}
	wg.Wait()

	return results
}

// OverallStatus folds per-check results: any unhealthy check makes the whole
// set unhealthy, otherwise any degraded check makes it degraded.
func (a *Aggregator) OverallStatus(results map[string]Result) Status {
	overall := StatusHealthy
	for _, r := range results {
		switch r.Status {
		case StatusUnhealthy:
			return StatusUnhealthy
		case StatusDegraded:
			overall = StatusDegraded
		}
	}
	return overall
}

// runCheck guards one checker invocation with the context deadline. A
// checker that ignores its context is abandoned, not waited on.
func (a *Aggregator) runCheck(ctx context.Context, checker Checker) Result {
	start := time.Now()
	resultCh := make(chan Result, 1)

	go func() {
		r := checker.Check(ctx)
		r.Duration = time.Since(start)
		if r.Timestamp.IsZero() {
			r.Timestamp = start
		}
		resultCh <- r
	}()

	select {
	case r := <-resultCh:
		return r
	case <-ctx.Done():
		return Result{
			Status:    StatusUnhealthy,
			Message:   "check timed out",
			Error:     ErrCheckTimeout,
			Duration:  time.Since(start),
			Timestamp: start,
		}
	}
}
