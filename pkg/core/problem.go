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

import (
	"fmt"
	"math"
)

// Curve is the utility of a single category indexed by extra units beyond the
// category minimum: index 0 is the minimum allocation, index 1 is minimum+1, ...
type Curve []float64

// Value returns the utility for x extra units.
// Indices past the end of the curve repeat the last defined value; an empty
// curve is worth 0 everywhere.
func (c Curve) Value(x int) float64 {
	if len(c) == 0 || x < 0 {
		return 0
	}
	if x >= len(c) {
		return c[len(c)-1]
	}
	return c[x]
}

// Sanitized returns a copy of the curve in which every negative, NaN or
// infinite entry is replaced by 0.
func (c Curve) Sanitized() Curve {
	if c == nil {
		return nil
	}
	out := make(Curve, len(c))
	for i, v := range c {
		out[i] = SanitizeUtility(v)
	}
	return out
}

// SanitizeUtility coerces a single utility value: negative, NaN and infinite
// values become 0.
func SanitizeUtility(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

// Problem is an allocation problem: distribute TotalUnits units across
// CategoryCount categories, each receiving at least MinPerCategory units and,
// when MaxPerCategory is set, at most *MaxPerCategory units.
type Problem struct {
	// TotalUnits is the number of units that must be fully consumed.
	TotalUnits int
	// CategoryCount is the number of categories competing for units.
	CategoryCount int
	// MinPerCategory is the minimum guaranteed to every category.
	MinPerCategory int
	// MaxPerCategory optionally caps what any single category may receive.
	MaxPerCategory *int
	// CategoryNames are display-only labels; they never influence the solution.
	CategoryNames []string
	// Curves holds one utility curve per category, in category order.
	Curves []Curve
}

// ExtraUnits returns the budget of units left after every category received
// its minimum. It is negative for an infeasible problem, and -1 when the
// minimums alone do not fit in an int.
func (p *Problem) ExtraUnits() int {
	required, ok := p.MinimumUnits()
	if !ok {
		return -1
	}
	return p.TotalUnits - required
}

// MinimumUnits returns CategoryCount*MinPerCategory. ok is false when the
// product overflows an int or either factor is negative.
func (p *Problem) MinimumUnits() (required int, ok bool) {
	return mulNonNegative(p.CategoryCount, p.MinPerCategory)
}

// MaximumUnits returns CategoryCount*MaxPerCategory, saturated at math.MaxInt.
// ok is false when the problem has no maximum or either factor is negative.
func (p *Problem) MaximumUnits() (capacity int, ok bool) {
	if p.MaxPerCategory == nil {
		return 0, false
	}
	capacity, ok = mulNonNegative(p.CategoryCount, *p.MaxPerCategory)
	if !ok && p.CategoryCount >= 0 && *p.MaxPerCategory >= 0 {
		return math.MaxInt, true
	}
	return capacity, ok
}

func mulNonNegative(a, b int) (int, bool) {
	if a < 0 || b < 0 {
		return 0, false
	}
	if b != 0 && a > math.MaxInt/b {
		return 0, false
	}
	return a * b, true
}

// ExtraCap returns the maximum number of extra units a single category may
// take, or -1 when the problem has no per-category maximum.
func (p *Problem) ExtraCap() int {
	if p.MaxPerCategory == nil {
		return -1
	}
	return *p.MaxPerCategory - p.MinPerCategory
}

// Utility returns the utility of category i when it receives x extra units.
func (p *Problem) Utility(i, x int) float64 {
	if i < 0 || i >= len(p.Curves) {
		return 0
	}
	return p.Curves[i].Value(x)
}

// CategoryName returns the display name of category i, falling back to
// "Category <i+1>" when no name was supplied.
func (p *Problem) CategoryName(i int) string {
	if i >= 0 && i < len(p.CategoryNames) && p.CategoryNames[i] != "" {
		return p.CategoryNames[i]
	}
	return fmt.Sprintf("Category %d", i+1)
}

// DeepCopy returns an independent copy of the problem.
func (p *Problem) DeepCopy() *Problem {
	if p == nil {
		return nil
	}
	out := &Problem{
		TotalUnits:     p.TotalUnits,
		CategoryCount:  p.CategoryCount,
		MinPerCategory: p.MinPerCategory,
	}
	if p.MaxPerCategory != nil {
		maxPer := *p.MaxPerCategory
		out.MaxPerCategory = &maxPer
	}
	if p.CategoryNames != nil {
		out.CategoryNames = append([]string(nil), p.CategoryNames...)
	}
	if p.Curves != nil {
		out.Curves = make([]Curve, len(p.Curves))
		for i, c := range p.Curves {
			if c != nil {
				out.Curves[i] = append(Curve(nil), c...)
			}
		}
	}
	return out
}

// DefaultProblem returns the reference scenario: ten seminars across four
// departments, at least one seminar each.
func DefaultProblem() *Problem {
	return &Problem{
		TotalUnits:     10,
		CategoryCount:  4,
		MinPerCategory: 1,
		CategoryNames:  []string{"Mathematics", "Science", "Systems", "Programming"},
		Curves: []Curve{
			{25, 50, 60, 80, 100, 100, 100},
			{20, 70, 90, 100, 100, 100, 100},
			{40, 60, 80, 100, 100, 100, 100},
			{10, 20, 30, 40, 50, 60, 70},
		},
	}
}
