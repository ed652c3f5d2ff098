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

package config

import (
	"fmt"
	"sort"

	"sigs.k8s.io/yaml"

	"github.com/llm-d/llm-d-unit-allocator/api/v1alpha1"
	"github.com/llm-d/llm-d-unit-allocator/internal/logging"
)

// GlobalDefaultsKey is the catalog entry whose fields fill in every other entry.
const GlobalDefaultsKey = "default"

// ProblemEntry is one catalog entry. Unset fields inherit from the
// GlobalDefaultsKey entry.
type ProblemEntry struct {
	// TotalUnits is the number of units to distribute.
	TotalUnits *int `json:"totalUnits,omitempty"`

	// CategoryCount is the number of categories.
	CategoryCount *int `json:"categoryCount,omitempty"`

	// MinPerCategory and MaxPerCategory bound each category.
	MinPerCategory *int `json:"minPerCategory,omitempty"`
	MaxPerCategory *int `json:"maxPerCategory,omitempty"`

	CategoryNames []string                `json:"categoryNames,omitempty"`
	UtilityCurves []v1alpha1.UtilityCurve `json:"utilityCurves,omitempty"`
}

// ProblemCatalog maps entry names to entries.
type ProblemCatalog map[string]ProblemEntry

// Validate checks for invalid configuration values. Cross-field checks are
// left to the solver, since an entry may be completed by the defaults.
func (e *ProblemEntry) Validate() error {
	if e.TotalUnits != nil && *e.TotalUnits < 0 {
		return fmt.Errorf("totalUnits must be >= 0, got %d", *e.TotalUnits)
	}
	if e.CategoryCount != nil && *e.CategoryCount < 1 {
		return fmt.Errorf("categoryCount must be >= 1, got %d", *e.CategoryCount)
	}
	if e.MinPerCategory != nil && *e.MinPerCategory < 0 {
		return fmt.Errorf("minPerCategory must be >= 0, got %d", *e.MinPerCategory)
	}
	if e.MinPerCategory != nil && e.MaxPerCategory != nil && *e.MaxPerCategory < *e.MinPerCategory {
		return fmt.Errorf("maxPerCategory (%d) should be >= minPerCategory (%d)",
			*e.MaxPerCategory, *e.MinPerCategory)
	}
	return nil
}

// ToSpec converts the entry into a wire spec. Unset counts become 0.
func (e *ProblemEntry) ToSpec() v1alpha1.AllocationProblemSpec {
	spec := v1alpha1.AllocationProblemSpec{
		MinPerCategory: e.MinPerCategory,
		MaxPerCategory: e.MaxPerCategory,
		CategoryNames:  e.CategoryNames,
		UtilityCurves:  e.UtilityCurves,
	}
	if e.TotalUnits != nil {
		spec.TotalUnits = *e.TotalUnits
	}
	if e.CategoryCount != nil {
		spec.CategoryCount = *e.CategoryCount
	}
	return *spec.DeepCopy()
}

// EntryFromSpec converts a wire spec into a fully specified entry.
func EntryFromSpec(spec *v1alpha1.AllocationProblemSpec) ProblemEntry {
	s := spec.DeepCopy()
	return ProblemEntry{
		TotalUnits:     &s.TotalUnits,
		CategoryCount:  &s.CategoryCount,
		MinPerCategory: s.MinPerCategory,
		MaxPerCategory: s.MaxPerCategory,
		CategoryNames:  s.CategoryNames,
		UtilityCurves:  s.UtilityCurves,
	}
}

// ParseProblemCatalog parses problem entries from a ConfigMap's data.
// The ConfigMap format:
//   - "default": fields shared by all entries
//   - "<name>": one problem, as YAML or JSON
//
// Entries that fail to parse or validate are logged and skipped.
func ParseProblemCatalog(data map[string]string) ProblemCatalog {
	out := make(ProblemCatalog)
	if data == nil {
		return out
	}
	logger := logging.Log()

	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		var entry ProblemEntry
		if err := yaml.Unmarshal([]byte(data[key]), &entry); err != nil {
			logger.Info("Failed to parse problem catalog entry, skipping",
				"key", key,
				"error", err)
			continue
		}

		if err := entry.Validate(); err != nil {
			logger.Info("Invalid problem catalog entry, skipping",
				"key", key,
				"error", err)
			continue
		}

		out[key] = entry
	}

	logger.V(logging.DEBUG).Info("Parsed problem catalog",
		"problemCount", len(out.Names()))

	return out
}

// Names returns the entry names in sorted order, without the defaults entry.
func (c ProblemCatalog) Names() []string {
	names := make([]string, 0, len(c))
	for k := range c {
		if k == GlobalDefaultsKey {
			continue
		}
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Get returns the effective entry for name, merged over the defaults.
func (c ProblemCatalog) Get(name string) (ProblemEntry, bool) {
	defaults, hasDefaults := c[GlobalDefaultsKey]
	entry, ok := c[name]
	if !ok {
		return ProblemEntry{}, false
	}
	if name == GlobalDefaultsKey || !hasDefaults {
		return entry, true
	}

	// Merge: entry values override defaults
	result := defaults

	if entry.TotalUnits != nil {
		result.TotalUnits = entry.TotalUnits
	}
	if entry.CategoryCount != nil {
		result.CategoryCount = entry.CategoryCount
	}
	if entry.MinPerCategory != nil {
		result.MinPerCategory = entry.MinPerCategory
	}
	if entry.MaxPerCategory != nil {
		result.MaxPerCategory = entry.MaxPerCategory
	}
	if entry.CategoryNames != nil {
		result.CategoryNames = entry.CategoryNames
	}
	if entry.UtilityCurves != nil {
		result.UtilityCurves = entry.UtilityCurves
	}

	return result, true
}

// GetSpec returns the effective wire spec for name.
func (c ProblemCatalog) GetSpec(name string) (v1alpha1.AllocationProblemSpec, bool) {
	entry, ok := c.Get(name)
	if !ok {
		return v1alpha1.AllocationProblemSpec{}, false
	}
	return entry.ToSpec(), true
}
