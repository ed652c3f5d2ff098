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
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// UtilityValue is a single utility curve entry.
// Decoding is lenient: numbers and numeric strings are accepted, anything
// else (null, booleans, free text) decodes as 0.
type UtilityValue float64

// UnmarshalJSON implements json.Unmarshaler.
func (u *UtilityValue) UnmarshalJSON(b []byte) error {
	*u = 0
	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		return nil
	}
	switch b[0] {
	case '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return nil
		}
		if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			*u = UtilityValue(f)
		}
	case 'n', 't', 'f', '[', '{':
	default:
		if f, err := strconv.ParseFloat(string(b), 64); err == nil {
			*u = UtilityValue(f)
		}
	}
	return nil
}

// UtilityCurve is the utility of one category indexed by extra units.
type UtilityCurve []UtilityValue

// AllocationProblemSpec describes the units to distribute and the utility
// of each category.
type AllocationProblemSpec struct {
	// TotalUnits is the number of units that must be fully distributed.
	// +kubebuilder:validation:Minimum=0
	TotalUnits int `json:"totalUnits"`

	// CategoryCount is the number of categories.
	// +kubebuilder:validation:Minimum=1
	CategoryCount int `json:"categoryCount"`

	// MinPerCategory is the minimum each category receives. Defaults to 0.
	// +kubebuilder:validation:Minimum=0
	// +optional
	MinPerCategory *int `json:"minPerCategory,omitempty"`

	// MaxPerCategory caps what each category may receive.
	// An exact allocation is expressed with MaxPerCategory == MinPerCategory.
	// +optional
	MaxPerCategory *int `json:"maxPerCategory,omitempty"`

	// CategoryNames are display labels, one per category.
	// +optional
	CategoryNames []string `json:"categoryNames,omitempty"`

	// UtilityCurves holds one curve per category. Entry x is the utility of
	// the category receiving MinPerCategory+x units; past the end the last
	// value repeats.
	UtilityCurves []UtilityCurve `json:"utilityCurves"`
}

// CategoryAllocationStatus is the outcome for one category.
type CategoryAllocationStatus struct {
	// CategoryIndex is the position of the category in the problem.
	CategoryIndex int `json:"categoryIndex"`
	// CategoryName is the display name of the category.
	CategoryName string `json:"categoryName"`
	// ExtraUnits is the number of units above the category minimum.
	ExtraUnits int `json:"extraUnits"`
	// TotalUnits is the minimum plus the extra units.
	TotalUnits int `json:"totalUnits"`
	// Utility is the curve value at ExtraUnits.
	Utility float64 `json:"utility"`
}

// DecisionTables exposes the dynamic programming tables. Unreachable states
// carry a nil value.
type DecisionTables struct {
	Values    [][]*float64 `json:"values"`
	Decisions [][]int      `json:"decisions"`
}

// AllocationResultStatus is the optimal allocation of a problem.
type AllocationResultStatus struct {
	// OptimalValue is the maximum total utility.
	OptimalValue float64 `json:"optimalValue"`
	// ExtraUnits is the number of units distributed above the minimums.
	ExtraUnits int `json:"extraUnits"`
	// Allocations lists the outcome per category, in category order.
	Allocations []CategoryAllocationStatus `json:"allocations"`
	// Tables is only populated on request.
	// +optional
	Tables *DecisionTables `json:"tables,omitempty"`
}

// +kubebuilder:object:root=true
// +kubebuilder:resource:shortName=ap
// +kubebuilder:printcolumn:name="Units",type=integer,JSONPath=".spec.totalUnits"
// +kubebuilder:printcolumn:name="Categories",type=integer,JSONPath=".spec.categoryCount"

// AllocationProblem is the Schema for allocation problems.
type AllocationProblem struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Spec AllocationProblemSpec `json:"spec"`
}

// AllocationProblemList contains a list of AllocationProblem.
// +kubebuilder:object:root=true
type AllocationProblemList struct {
	metav1.TypeMeta `json:",inline"`
	metav1.ListMeta `json:"metadata,omitempty"`

	Items []AllocationProblem `json:"items"`
}

// +kubebuilder:object:root=true

// AllocationResult carries the solution of an AllocationProblem.
type AllocationResult struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Status AllocationResultStatus `json:"status"`
}

func init() {
	SchemeBuilder.Register(&AllocationProblem{}, &AllocationProblemList{}, &AllocationResult{})
}

const (
	// KindAllocationProblem is the kind of AllocationProblem documents.
	KindAllocationProblem = "AllocationProblem"
	// KindAllocationResult is the kind of AllocationResult documents.
	KindAllocationResult = "AllocationResult"
)
