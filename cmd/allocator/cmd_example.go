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

package main

import (
	"github.com/spf13/cobra"

	"github.com/llm-d/llm-d-unit-allocator/api/v1alpha1"
	"github.com/llm-d/llm-d-unit-allocator/pkg/core"
)

// exampleName names the problem printed by the example command.
const exampleName = "seminars"

func newExampleCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "example",
		Short: "Print the four-seminar example problem",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			doc := v1alpha1.NewAllocationProblem(exampleName, core.DefaultProblem())
			format := a.cfg.Output.Format
			if format == FormatTable {
				format = FormatYAML
			}
			return output(cmd.OutOrStdout(), format, doc)
		},
	}
}
