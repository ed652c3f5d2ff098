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

package limiter

import (
	"context"
	"fmt"

	"github.com/llm-d/llm-d-unit-allocator/internal/logging"
	"github.com/llm-d/llm-d-unit-allocator/pkg/core"
)

// WorkLimiterConfig holds configuration for the WorkLimiter
type WorkLimiterConfig struct {
	LimiterConfig
}

// WorkLimiter rejects problems whose table work exceeds MaxCells
type WorkLimiter struct {
	config *WorkLimiterConfig
}

// NewWorkLimiter creates a new WorkLimiter instance.
func NewWorkLimiter(config *WorkLimiterConfig) (*WorkLimiter, error) {
	if config == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if config.MaxCells < 0 {
		return nil, fmt.Errorf("maxCells must be >= 0, got %d", config.MaxCells)
	}
	if config.MaxCells == 0 {
		config.MaxCells = DefaultMaxCells
	}
	return &WorkLimiter{
		config: config,
	}, nil
}

// MaxCells returns the effective bound.
func (l *WorkLimiter) MaxCells() int64 {
	return l.config.MaxCells
}

// Admit rejects the problem when Work(p) exceeds the bound.
// Problems the solver will reject anyway are admitted.
func (l *WorkLimiter) Admit(ctx context.Context, p *core.Problem) error {
	logger := logging.FromContext(ctx)

	work := Work(p)
	if work > float64(l.config.MaxCells) {
		logger.Info("Refusing oversized problem",
			"categories", p.CategoryCount,
			"extraUnits", p.ExtraUnits(),
			"work", work,
			"maxCells", l.config.MaxCells)
		return fmt.Errorf("%w: %.0f cells exceeds limit of %d", ErrProblemTooLarge, work, l.config.MaxCells)
	}

	logger.V(logging.TRACE).Info("Problem admitted", "work", work, "maxCells", l.config.MaxCells)
	return nil
}

// NoneLimiter admits every problem
type NoneLimiter struct{}

// NewNoneLimiter creates a limiter without a bound.
func NewNoneLimiter() *NoneLimiter {
	return &NoneLimiter{}
}

// Admit always returns nil.
func (l *NoneLimiter) Admit(_ context.Context, _ *core.Problem) error {
	return nil
}
