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

package core

import "math"

// Infeasible marks a value table entry that cannot be reached.
var Infeasible = math.Inf(-1)

// ValueTable holds V[i][r]: the best total utility achievable by categories
// i..n-1 when exactly r extra units remain. Row n is the boundary row.
type ValueTable [][]float64

// DecisionTable holds D[i][r]: the extra units given to category i in the
// state that achieves V[i][r].
type DecisionTable [][]int

// Tables bundles the artifacts of one engine run.
type Tables struct {
	// Rem is the extra-units budget the tables were built for.
	Rem int
	// V has CategoryCount+1 rows of Rem+1 columns.
	V ValueTable
	// D has CategoryCount rows of Rem+1 columns.
	D DecisionTable
}

// NewTables allocates tables for n categories and rem extra units with every
// value marked infeasible and every decision 0.
func NewTables(n, rem int) *Tables {
	v := make(ValueTable, n+1)
	for i := range v {
		row := make([]float64, rem+1)
		for r := range row {
			row[r] = Infeasible
		}
		v[i] = row
	}
	d := make(DecisionTable, n)
	for i := range d {
		d[i] = make([]int, rem+1)
	}
	return &Tables{Rem: rem, V: v, D: d}
}

// Categories returns the number of category rows in the decision table.
func (t *Tables) Categories() int {
	return len(t.D)
}

// OptimalValue returns V[0][Rem].
func (t *Tables) OptimalValue() float64 {
	if len(t.V) == 0 || t.Rem < 0 || t.Rem >= len(t.V[0]) {
		return Infeasible
	}
	return t.V[0][t.Rem]
}

// IsFeasible reports whether V[i][r] is reachable.
func (t *Tables) IsFeasible(i, r int) bool {
	return !math.IsInf(t.V[i][r], -1)
}
