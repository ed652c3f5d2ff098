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

import "fmt"

// ErrorKind classifies why a problem was rejected.
type ErrorKind string

const (
	// DimensionMismatch indicates the category count and the number of curves
	// (or names) disagree, or there are no categories at all.
	DimensionMismatch ErrorKind = "DimensionMismatch"
	// InvalidQuantity indicates a negative total or minimum, or a maximum
	// below the minimum.
	InvalidQuantity ErrorKind = "InvalidQuantity"
	// InfeasibleTotal indicates the total cannot satisfy every category's
	// minimum (or cannot be absorbed under every category's maximum).
	InfeasibleTotal ErrorKind = "InfeasibleTotal"
)

// AllocationError is returned for every rejected problem.
type AllocationError struct {
	Kind    ErrorKind
	Message string
}

func (e *AllocationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Is matches any AllocationError of the same kind, so that
// errors.Is(err, ErrInfeasibleTotal) works on detailed errors.
func (e *AllocationError) Is(target error) bool {
	t, ok := target.(*AllocationError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// Sentinel errors, one per kind, for use with errors.Is.
var (
	ErrDimensionMismatch = &AllocationError{Kind: DimensionMismatch, Message: "dimension mismatch"}
	ErrInvalidQuantity   = &AllocationError{Kind: InvalidQuantity, Message: "invalid quantity"}
	ErrInfeasibleTotal   = &AllocationError{Kind: InfeasibleTotal, Message: "infeasible total"}
)

func newError(kind ErrorKind, format string, args ...any) *AllocationError {
	return &AllocationError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}
