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

// Reconstruct walks the decision table forward from (0, rem) and records the
// allocation of every category. The boundary row of the value table forces
// the walk to end with no extra units left.
func Reconstruct(p *core.Problem, t *core.Tables) *core.Solution {
	n := t.Categories()
	solution := &core.Solution{
		OptimalValue: t.OptimalValue(),
		ExtraUnits:   t.Rem,
		Allocation:   make([]core.CategoryAllocation, 0, n),
	}

	r := t.Rem
	for i := 0; i < n; i++ {
		x := t.D[i][r]
		solution.Allocation = append(solution.Allocation, core.CategoryAllocation{
			CategoryIndex: i,
			CategoryName:  p.CategoryName(i),
			ExtraUnits:    x,
			TotalUnits:    p.MinPerCategory + x,
			Utility:       p.Utility(i, x),
		})
		r -= x
	}
	return solution
}
