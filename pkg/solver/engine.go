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

// BuildTables fills the value and decision tables by backward induction over
// categories. It assumes a validated problem; the only check it repeats is a
// negative extra-units budget, reported as InfeasibleTotal.
func BuildTables(p *core.Problem) (*core.Tables, error) {
	rem := p.ExtraUnits()
	if rem < 0 {
		return nil, newError(InfeasibleTotal, "extra units budget is negative (%d)", rem)
	}

	n := p.CategoryCount
	extraCap := p.ExtraCap()
	t := core.NewTables(n, rem)

	// No categories left: only an exhausted budget is feasible.
	t.V[n][0] = 0

	for i := n - 1; i >= 0; i-- {
		next := t.V[i+1]
		for r := 0; r <= rem; r++ {
			limit := r
			if extraCap >= 0 && extraCap < limit {
				limit = extraCap
			}
			bestX := 0
			bestValue := core.Infeasible
			for x := 0; x <= limit; x++ {
				// strict comparison keeps the smallest x on ties
				if v := p.Utility(i, x) + next[r-x]; v > bestValue {
					bestValue = v
					bestX = x
				}
			}
			t.V[i][r] = bestValue
			t.D[i][r] = bestX
		}
	}
	return t, nil
}
