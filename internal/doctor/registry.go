package doctor

import (
	"cmp"
	"context"
	"slices"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Registry manages health checkers.
type Registry struct {
	mu       sync.RWMutex
	checkers []HealthChecker
}

// NewRegistry creates a new Registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds checkers.
func (r *Registry) Register(checkers ...HealthChecker) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.checkers = append(r.checkers, checkers...)
}

// Len returns the number of registered checkers.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.checkers)
}

// RunAll executes all checkers concurrently. Results are ordered by category,
// then by registration order.
func (r *Registry) RunAll(ctx context.Context) []CheckResult {
	r.mu.RLock()
	checkers := slices.Clone(r.checkers)
	r.mu.RUnlock()

	results := make([]CheckResult, len(checkers))
	g, gctx := errgroup.WithContext(ctx)

	for i, checker := range checkers {
		g.Go(func() error {
			result := checker.Check(gctx)
			result.Category = checker.Category()

			if result.Name == "" {
				result.Name = checker.Name()
			}

			results[i] = result

			return nil
		})
	}

	_ = g.Wait()

	slices.SortStableFunc(results, func(a, b CheckResult) int {
		return cmp.Compare(categoryOrder[a.Category], categoryOrder[b.Category])
	})

	return results
}

// Summary counts results by outcome.
type Summary struct {
	Passed, Errors, Warnings, Skipped int
}

// Summarize counts results by outcome.
func Summarize(results []CheckResult) Summary {
	var s Summary

	for _, r := range results {
		switch {
		case r.Status == StatusPass:
			s.Passed++
		case r.Status == StatusSkipped:
			s.Skipped++
		case r.IsError():
			s.Errors++
		case r.IsWarning():
			s.Warnings++
		}
	}

	return s
}
