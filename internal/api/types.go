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

package api

import (
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/llm-d/llm-d-unit-allocator/api/v1alpha1"
	"github.com/llm-d/llm-d-unit-allocator/pkg/core"
)

// SolveRequest is the body of POST /api/v1/solve. It accepts either an
// AllocationProblem document or the bare spec fields at the top level.
type SolveRequest struct {
	APIVersion string            `json:"apiVersion,omitempty" binding:"omitempty,eq=allocation.llm-d.ai/v1alpha1"`
	Kind       string            `json:"kind,omitempty" binding:"omitempty,eq=AllocationProblem"`
	Metadata   metav1.ObjectMeta `json:"metadata,omitempty"`

	Spec *v1alpha1.AllocationProblemSpec `json:"spec,omitempty"`

	v1alpha1.AllocationProblemSpec
}

// Name returns metadata.name.
func (r *SolveRequest) Name() string {
	return r.Metadata.Name
}

// Problem returns the core problem of the request, preferring spec over the
// top-level fields.
func (r *SolveRequest) Problem() *core.Problem {
	if r.Spec != nil {
		return r.Spec.ToProblem()
	}
	return r.AllocationProblemSpec.ToProblem()
}

// BatchRequest is the body of POST /api/v1/solve/batch.
type BatchRequest struct {
	Items []SolveRequest `json:"items" binding:"required,min=1,max=256,dive"`
}

// BatchItem is the outcome of one batch entry.
type BatchItem struct {
	Name   string                           `json:"name"`
	Result *v1alpha1.AllocationResultStatus `json:"result,omitempty"`
	Error  *ErrorResponse                   `json:"error,omitempty"`
}

// BatchResponse lists outcomes in request order.
type BatchResponse struct {
	Items []BatchItem `json:"items"`
}

// ErrorResponse is returned for every failed request.
type ErrorResponse struct {
	// Code is an AllocationError kind, or one of the Code constants.
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error codes that are not allocation error kinds.
const (
	CodeBadRequest      = "BadRequest"
	CodeProblemTooLarge = "ProblemTooLarge"
	CodeUnavailable     = "Unavailable"
	CodeInternal        = "Internal"
)
