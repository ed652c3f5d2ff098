/*
Copyright 2025 The llm-d Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package optimizer

import (
	"context"
	"errors"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/llm-d/llm-d-unit-allocator/internal/engines/common"
	"github.com/llm-d/llm-d-unit-allocator/internal/engines/limiter"
	"github.com/llm-d/llm-d-unit-allocator/internal/logging"
	"github.com/llm-d/llm-d-unit-allocator/internal/metrics"
	"github.com/llm-d/llm-d-unit-allocator/pkg/core"
	"github.com/llm-d/llm-d-unit-allocator/pkg/solver"
)

// Optimizer admits, solves and observes allocation problems.
type Optimizer struct {
	limiter limiter.Limiter
	metrics *metrics.Metrics
	cache   *common.ResultCache
}

// Option configures an Optimizer.
type Option func(*Optimizer)

// WithResultCache answers repeated problems from c.
func WithResultCache(c *common.ResultCache) Option {
	return func(o *Optimizer) {
		o.cache = c
	}
}

// NewOptimizer creates an optimizer. A nil limiter admits everything and nil
// metrics are not recorded.
func NewOptimizer(lim limiter.Limiter, m *metrics.Metrics, opts ...Option) *Optimizer {
	if lim == nil {
		lim = limiter.NewNoneLimiter()
	}
	o := &Optimizer{limiter: lim, metrics: m}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Optimize solves a single problem. name labels logs and metrics only.
func (o *Optimizer) Optimize(ctx context.Context, name string, p *core.Problem) (*solver.Result, error) {
	logger := logging.FromContext(ctx, "problem", name)
	start := time.Now()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if cached, ok := o.cache.Get(p); ok {
		sol := cached.Solution
		o.metrics.ObserveCacheHit()
		o.metrics.ObserveSolve(name, metrics.ResultSuccess, time.Since(start), sol.ExtraUnits, sol.OptimalValue)
		logger.V(logging.DEBUG).Info("Problem answered from cache", "optimalValue", sol.OptimalValue)
		return cached, nil
	}

	if err := o.limiter.Admit(ctx, p); err != nil {
		o.metrics.ObserveSolve(name, ResultOf(err), time.Since(start), 0, 0)
		return nil, err
	}

	result, err := solver.Solve(p)
	elapsed := time.Since(start)
	if err != nil {
		logger.V(logging.DEBUG).Info("Problem rejected", "error", err.Error())
		o.metrics.ObserveSolve(name, ResultOf(err), elapsed, 0, 0)
		return nil, err
	}

	o.cache.Set(p, result)
	sol := result.Solution
	o.metrics.ObserveSolve(name, metrics.ResultSuccess, elapsed, sol.ExtraUnits, sol.OptimalValue)
	logger.V(logging.DEBUG).Info("Problem solved",
		"categories", result.Problem.CategoryCount,
		"extraUnits", sol.ExtraUnits,
		"optimalValue", sol.OptimalValue,
		"allocation", sol.ExtraUnitsByCategory(),
		"duration", elapsed)
	return result, nil
}

// NamedProblem is a catalog entry to solve.
type NamedProblem struct {
	Name    string
	Problem *core.Problem
}

// Outcome is the result of one catalog entry. Exactly one of Result and Err
// is set.
type Outcome struct {
	Name   string
	Result *solver.Result
	Err    error
}

// OptimizeAll solves every entry concurrently and returns outcomes in input
// order. It only fails when ctx is cancelled.
func (o *Optimizer) OptimizeAll(ctx context.Context, problems []NamedProblem) ([]Outcome, error) {
	outcomes := make([]Outcome, len(problems))
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, np := range problems {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			res, err := o.Optimize(gCtx, np.Name, np.Problem)
			outcomes[i] = Outcome{Name: np.Name, Result: res, Err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return outcomes, nil
}

// ResultOf maps an optimize error onto a metrics result label.
func ResultOf(err error) string {
	var aerr *solver.AllocationError
	switch {
	case err == nil:
		return metrics.ResultSuccess
	case errors.Is(err, limiter.ErrProblemTooLarge):
		return metrics.ResultTooLarge
	case errors.As(err, &aerr):
		return metrics.ResultRejected
	default:
		return metrics.ResultError
	}
}
