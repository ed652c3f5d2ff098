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

package v1alpha1

import (
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/utils/ptr"

	"github.com/llm-d/llm-d-unit-allocator/pkg/core"
)

// ToProblem converts the wire spec into a core problem.
// No validation happens here; the solver rejects malformed problems.
func (s *AllocationProblemSpec) ToProblem() *core.Problem {
	p := &core.Problem{
		TotalUnits:     s.TotalUnits,
		CategoryCount:  s.CategoryCount,
		MinPerCategory: ptr.Deref(s.MinPerCategory, 0),
	}
	if s.MaxPerCategory != nil {
		p.MaxPerCategory = ptr.To(*s.MaxPerCategory)
	}
	if len(s.CategoryNames) > 0 {
		p.CategoryNames = append([]string(nil), s.CategoryNames...)
	}
	if s.UtilityCurves != nil {
		p.Curves = make([]core.Curve, len(s.UtilityCurves))
		for i, c := range s.UtilityCurves {
			curve := make(core.Curve, len(c))
			for x, v := range c {
				curve[x] = float64(v)
			}
			p.Curves[i] = curve
		}
	}
	return p
}

// SpecFromProblem converts a core problem into its wire spec.
func SpecFromProblem(p *core.Problem) AllocationProblemSpec {
	s := AllocationProblemSpec{
		TotalUnits:     p.TotalUnits,
		CategoryCount:  p.CategoryCount,
		MinPerCategory: ptr.To(p.MinPerCategory),
	}
	if p.MaxPerCategory != nil {
		s.MaxPerCategory = ptr.To(*p.MaxPerCategory)
	}
	if len(p.CategoryNames) > 0 {
		s.CategoryNames = append([]string(nil), p.CategoryNames...)
	}
	s.UtilityCurves = make([]UtilityCurve, len(p.Curves))
	for i, c := range p.Curves {
		curve := make(UtilityCurve, len(c))
		for x, v := range c {
			curve[x] = UtilityValue(v)
		}
		s.UtilityCurves[i] = curve
	}
	return s
}

// NewAllocationProblem wraps a core problem in a named document.
func NewAllocationProblem(name string, p *core.Problem) *AllocationProblem {
	return &AllocationProblem{
		TypeMeta: metav1.TypeMeta{
			APIVersion: GroupVersion.String(),
			Kind:       KindAllocationProblem,
		},
		ObjectMeta: metav1.ObjectMeta{Name: name},
		Spec:       SpecFromProblem(p),
	}
}

// NewAllocationResult builds the result document for a solution. Tables are
// included when non-nil.
func NewAllocationResult(name string, sol *core.Solution, tables *core.Tables) *AllocationResult {
	status := AllocationResultStatus{
		OptimalValue: sol.OptimalValue,
		ExtraUnits:   sol.ExtraUnits,
		Allocations:  make([]CategoryAllocationStatus, len(sol.Allocation)),
	}
	for i, a := range sol.Allocation {
		status.Allocations[i] = CategoryAllocationStatus{
			CategoryIndex: a.CategoryIndex,
			CategoryName:  a.CategoryName,
			ExtraUnits:    a.ExtraUnits,
			TotalUnits:    a.TotalUnits,
			Utility:       a.Utility,
		}
	}
	if tables != nil {
		status.Tables = tablesToStatus(tables)
	}
	return &AllocationResult{
		TypeMeta: metav1.TypeMeta{
			APIVersion: GroupVersion.String(),
			Kind:       KindAllocationResult,
		},
		ObjectMeta: metav1.ObjectMeta{Name: name},
		Status:     status,
	}
}

// tablesToStatus maps -Inf entries to nil; JSON has no infinity.
func tablesToStatus(t *core.Tables) *DecisionTables {
	out := &DecisionTables{
		Values:    make([][]*float64, len(t.V)),
		Decisions: make([][]int, len(t.D)),
	}
	for i, row := range t.V {
		out.Values[i] = make([]*float64, len(row))
		for r := range row {
			if t.IsFeasible(i, r) {
				out.Values[i][r] = ptr.To(row[r])
			}
		}
	}
	for i, row := range t.D {
		out.Decisions[i] = append([]int(nil), row...)
	}
	return out
}
