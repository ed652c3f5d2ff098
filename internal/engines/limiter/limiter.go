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
	"errors"
	"fmt"
	"strings"

	"github.com/llm-d/llm-d-unit-allocator/pkg/core"
)

// ErrProblemTooLarge is returned when a problem exceeds the configured work bound.
var ErrProblemTooLarge = errors.New("problem too large")

// Limiter decides whether a problem may be handed to the solver
type Limiter interface {
	// Admit returns nil when the problem may be solved, or an error wrapping
	// ErrProblemTooLarge otherwise
	Admit(ctx context.Context, p *core.Problem) error
}

// LimiterStrategy is an enumeration of the different strategies that can be used by the Limiter
type LimiterStrategy int

// enumeration of LimiterStrategy
const (
	WorkStrategy LimiterStrategy = iota
	NoneStrategy
)

// DefaultMaxCells bounds the table cells evaluated for a single problem.
const DefaultMaxCells int64 = 50_000_000

// LimiterConfig holds the settings shared by all strategies
type LimiterConfig struct {
	// MaxCells is the largest accepted value of Work(p).
	MaxCells int64
}

func (s LimiterStrategy) String() string {
	switch s {
	case WorkStrategy:
		return "work"
	case NoneStrategy:
		return "none"
	default:
		return fmt.Sprintf("LimiterStrategy(%d)", int(s))
	}
}

// ParseStrategy maps a configuration value onto a LimiterStrategy
func ParseStrategy(name string) (LimiterStrategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "work":
		return WorkStrategy, nil
	case "none":
		return NoneStrategy, nil
	default:
		return 0, fmt.Errorf("unsupported limiter strategy: %q", name)
	}
}

// NewLimiter is a factory that creates a new Limiter based on the provided strategy
func NewLimiter(strategy LimiterStrategy, config *LimiterConfig) (Limiter, error) {
	switch strategy {
	case WorkStrategy:
		return NewWorkLimiter(&WorkLimiterConfig{LimiterConfig: derefConfig(config)})
	case NoneStrategy:
		return NewNoneLimiter(), nil
	default:
		return nil, fmt.Errorf("unsupported limiter strategy: %v", strategy)
	}
}

func derefConfig(config *LimiterConfig) LimiterConfig {
	if config == nil {
		return LimiterConfig{}
	}
	return *config
}
