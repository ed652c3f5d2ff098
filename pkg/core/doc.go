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

// Package core provides the fundamental data structures of the unit allocator.
//
// This package contains the domain values that flow through the optimization
// pipeline:
//
//   - Problem: the units to distribute, the categories competing for them,
//     the per-category minimum (and optional maximum) and one utility Curve
//     per category
//   - Curve: utility as a function of extra units beyond the minimum, clamped
//     to its last defined value
//   - Tables: the value table V and decision table D built by the solver
//   - Solution: the concrete per-category allocation and its optimal value
//
// These types form the foundation for the algorithms in the solver package
// and are used by the API, CLI and report layers.
//
// Example usage:
//
//	p := &core.Problem{
//	    TotalUnits:     10,
//	    CategoryCount:  2,
//	    MinPerCategory: 1,
//	    Curves: []core.Curve{
//	        {10, 20, 30},
//	        {5, 40},
//	    },
//	}
//	rem := p.ExtraUnits() // 8
//
// The core package is designed to be:
//   - Immutable once handed to the solver (callers own their slices)
//   - Independent of any transport or presentation concern
//   - Safe to share between goroutines as long as nobody mutates it
package core
