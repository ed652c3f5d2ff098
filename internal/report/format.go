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

package report

import (
	"math"
	"strconv"
	"strings"
)

// FormatNumber rounds v to at most maxDecimals decimals and drops trailing
// zeros. Infinities render as ∞ and −∞, NaN as 0.
func FormatNumber(v float64, maxDecimals int) string {
	switch {
	case math.IsNaN(v):
		return "0"
	case math.IsInf(v, 1):
		return "∞"
	case math.IsInf(v, -1):
		return "−∞"
	}
	if maxDecimals < 0 {
		maxDecimals = 0
	}
	scale := math.Pow(10, float64(maxDecimals))
	rounded := math.Round(v*scale) / scale
	if rounded == 0 {
		// avoids "-0"
		return "0"
	}
	s := strconv.FormatFloat(rounded, 'f', maxDecimals, 64)
	if strings.Contains(s, ".") {
		s = strings.TrimRight(s, "0")
		s = strings.TrimSuffix(s, ".")
	}
	return s
}
