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

// Validate checks a problem before any table is built and returns a sanitized
// copy of it. The input is never mutated.
//
// Checks run in order and the first failure wins:
//  1. at least one category, one curve per category (and one name per
//     category when names are given), else DimensionMismatch
//  2. non-negative total and minimum, maximum not below minimum, else
//     InvalidQuantity
//  3. total covers every minimum and fits under every maximum, else
//     InfeasibleTotal
//
// Curve entries that are negative, NaN or infinite are coerced to 0 instead of
// being rejected.
func Validate(p *core.Problem) (*core.Problem, error) {
	if p == nil {
		return nil, newError(DimensionMismatch, "problem is nil")
	}
	if err := validateDimensions(p); err != nil {
		return nil, err
	}
	if err := validateQuantities(p); err != nil {
		return nil, err
	}
	if err := validateFeasibility(p); err != nil {
		return nil, err
	}

	out := p.DeepCopy()
	for i, c := range out.Curves {
		out.Curves[i] = c.Sanitized()
	}
	return out, nil
}

func validateDimensions(p *core.Problem) error {
	if p.CategoryCount < 1 {
		return newError(DimensionMismatch, "categoryCount must be >= 1, got %d", p.CategoryCount)
	}
	if len(p.Curves) != p.CategoryCount {
		return newError(DimensionMismatch, "expected %d utility curves, got %d", p.CategoryCount, len(p.Curves))
	}
	if len(p.CategoryNames) != 0 && len(p.CategoryNames) != p.CategoryCount {
		return newError(DimensionMismatch, "expected %d category names, got %d", p.CategoryCount, len(p.CategoryNames))
	}
	return nil
}

func validateQuantities(p *core.Problem) error {
	if p.MinPerCategory < 0 {
		return newError(InvalidQuantity, "minPerCategory must be >= 0, got %d", p.MinPerCategory)
	}
	if p.TotalUnits < 0 {
		return newError(InvalidQuantity, "totalUnits must be >= 0, got %d", p.TotalUnits)
	}
	if p.MaxPerCategory != nil && *p.MaxPerCategory < p.MinPerCategory {
		return newError(InvalidQuantity, "maxPerCategory (%d) must be >= minPerCategory (%d)",
			*p.MaxPerCategory, p.MinPerCategory)
	}
	return nil
}

func validateFeasibility(p *core.Problem) error {
	if required, ok := p.MinimumUnits(); !ok || p.TotalUnits < required {
		return newError(InfeasibleTotal, "totalUnits %d does not cover %d categories x %d minimum",
			p.TotalUnits, p.CategoryCount, p.MinPerCategory)
	}
	if capacity, ok := p.MaximumUnits(); ok && p.TotalUnits > capacity {
		return newError(InfeasibleTotal, "totalUnits must be at most %d (%d categories x %d maximum), got %d",
			capacity, p.CategoryCount, *p.MaxPerCategory, p.TotalUnits)
	}
	return nil
}
