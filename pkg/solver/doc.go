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

// Package solver implements the optimal integer allocation of units across
// categories.
//
// The solver determines how many units every category receives so that each
// category gets at least its minimum, all units are consumed, and the sum of
// the categories' utility curves is maximal.
//
// Key Components:
//
//   - Validate: structural and numeric checks, curve sanitation
//   - BuildTables: backward-induction dynamic programming over
//     (category, remaining extra units), producing the value table V and the
//     decision table D
//   - Reconstruct: forward walk over D from the initial state
//   - SolveAllocation / Solve: the three steps chained together
//
// Recurrence:
//
//	V[n][0] = 0, V[n][r>0] = -Inf
//	V[i][r] = max_{x in [0, r]} val(i, x) + V[i+1][r-x]
//
// Ties are broken in favor of the smallest x, so the earlier category
// receives fewer extra units when several choices are equally good.
//
// Example usage:
//
//	solution, err := solver.SolveAllocation(problem)
//	if err != nil {
//	    var aerr *solver.AllocationError
//	    if errors.As(err, &aerr) {
//	        log.Info("rejected", "kind", aerr.Kind, "reason", aerr.Message)
//	    }
//	    return err
//	}
//	for _, a := range solution.Allocation {
//	    log.Info("allocation", "category", a.CategoryName, "units", a.TotalUnits)
//	}
//
// The solver is designed to be:
//   - Exact: O(categories * rem^2) time, O(categories * rem) space
//   - Deterministic: same inputs produce the same allocation
//   - Stateless: every call builds fresh tables, safe for concurrent use
package solver
