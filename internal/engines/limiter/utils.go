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

package limiter

import "github.com/llm-d/llm-d-unit-allocator/pkg/core"

// Work estimates the number of inner-loop evaluations needed to build the
// tables of p: n * (rem+1) * (k+1), where k is rem or the per-category extra
// cap if smaller. It is computed in float64 so huge inputs cannot overflow.
// A nil or infeasible problem costs nothing.
func Work(p *core.Problem) float64 {
	if p == nil || p.CategoryCount <= 0 {
		return 0
	}
	rem := p.ExtraUnits()
	if rem < 0 {
		return 0
	}
	k := rem
	if c := p.ExtraCap(); c >= 0 && c < k {
		k = c
	}
	return float64(p.CategoryCount) * (float64(rem) + 1) * (float64(k) + 1)
}
