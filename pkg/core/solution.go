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

// CategoryAllocation is the allocation decided for one category.
type CategoryAllocation struct {
	CategoryIndex int
	CategoryName  string
	// ExtraUnits are the units received beyond the minimum.
	ExtraUnits int
	// TotalUnits is MinPerCategory + ExtraUnits.
	TotalUnits int
	// Utility is the curve value at ExtraUnits.
	Utility float64
}

// Solution is the optimal allocation of a problem.
type Solution struct {
	// OptimalValue is V[0][rem].
	OptimalValue float64
	// ExtraUnits is the budget rem that was distributed.
	ExtraUnits int
	// Allocation holds one record per category, in category order.
	Allocation []CategoryAllocation
}

// TotalUnits sums the units handed out across all categories.
func (s *Solution) TotalUnits() int {
	total := 0
	for _, a := range s.Allocation {
		total += a.TotalUnits
	}
	return total
}

// AllocatedExtraUnits sums the extra units handed out across all categories.
func (s *Solution) AllocatedExtraUnits() int {
	total := 0
	for _, a := range s.Allocation {
		total += a.ExtraUnits
	}
	return total
}

// TotalUtility sums the utility of every category record.
func (s *Solution) TotalUtility() float64 {
	total := 0.0
	for _, a := range s.Allocation {
		total += a.Utility
	}
	return total
}

// ExtraUnitsByCategory returns the extra units of each category in order.
func (s *Solution) ExtraUnitsByCategory() []int {
	out := make([]int, len(s.Allocation))
	for i, a := range s.Allocation {
		out[i] = a.ExtraUnits
	}
	return out
}
