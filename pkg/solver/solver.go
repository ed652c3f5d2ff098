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

package solver

import (
	"github.com/llm-d/llm-d-unit-allocator/pkg/core"
)

// Result carries everything a single run produced, for collaborators that
// display the tables alongside the solution.
type Result struct {
	// Problem is the validated, sanitized problem the tables were built from.
	Problem  *core.Problem
	Tables   *core.Tables
	Solution *core.Solution
}

// Solve validates the problem, builds the tables and reconstructs the
// optimal allocation. On failure no partial result is returned.
//
// The tables hold (n+1)*(rem+1) cells and nothing here bounds rem. Callers
// solving untrusted input must bound the problem first, for example with a
// limiter from internal/engines/limiter.
func Solve(p *core.Problem) (*Result, error) {
	validated, err := Validate(p)
	if err != nil {
		return nil, err
	}
	tables, err := BuildTables(validated)
	if err != nil {
		return nil, err
	}
	return &Result{
		Problem:  validated,
		Tables:   tables,
		Solution: Reconstruct(validated, tables),
	}, nil
}

// SolveAllocation returns the optimal allocation of a problem. As with Solve,
// the caller owns the size bound.
func SolveAllocation(p *core.Problem) (*core.Solution, error) {
	result, err := Solve(p)
	if err != nil {
		return nil, err
	}
	return result.Solution, nil
}
