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
	"fmt"
	"io"
	"slices"

	"github.com/spf13/cobra"

	"github.com/llm-d/llm-d-unit-allocator/api/v1alpha1"
	"github.com/llm-d/llm-d-unit-allocator/internal/api"
	"github.com/llm-d/llm-d-unit-allocator/internal/config"
	"github.com/llm-d/llm-d-unit-allocator/internal/optimizer"
	"github.com/llm-d/llm-d-unit-allocator/internal/report"
)

func newSolveCmd(a *app) *cobra.Command {
	var (
		file string
		only string
	)
	cmd := &cobra.Command{
		Use:   "solve -f FILE",
		Short: "Solve the problems in a YAML or JSON file",
		Long: `Solve reads an AllocationProblem, an AllocationProblemList, a ConfigMap
holding a problem catalog, a bare spec or a catalog mapping, and prints the
optimal allocation of every problem it contains.

Exit codes: 0 when every problem was solved, 1 when some catalog entries were
rejected, 2 on failure.`,
		Example: `  allocator example > seminars.yaml
  allocator solve -f seminars.yaml --tables
  allocator solve -f catalog.yaml --name gpus --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.solve(cmd, file, only)
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "problem file, - for stdin")
	cmd.Flags().StringVar(&only, "name", "", "solve only this catalog entry")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func (a *app) solve(cmd *cobra.Command, file, only string) error {
	catalog, err := readCatalog(cmd.InOrStdin(), file)
	if err != nil {
		return err
	}

	names := catalog.Names()
	if only != "" {
		if !slices.Contains(names, only) {
			return fmt.Errorf("problem %q not found in %s", only, file)
		}
		names = []string{only}
	}

	problems, err := catalogProblems(catalog, names, file)
	if err != nil {
		return err
	}

	opt, err := a.newOptimizer(nil)
	if err != nil {
		return err
	}
	outcomes, err := opt.OptimizeAll(cmd.Context(), problems)
	if err != nil {
		return err
	}

	if len(outcomes) == 1 && outcomes[0].Err != nil {
		return fmt.Errorf("%s: %w", outcomes[0].Name, outcomes[0].Err)
	}

	w := cmd.OutOrStdout()
	showTables := a.cfg.Output.ShowTables
	switch format := a.cfg.Output.Format; {
	case format == FormatTable:
		printOutcomes(w, report.NewRenderer(isTerminal(w)), problems, outcomes, showTables)
	case len(outcomes) == 1:
		res := outcomes[0].Result
		tables := res.Tables
		if !showTables {
			tables = nil
		}
		if err := output(w, format, v1alpha1.NewAllocationResult(outcomes[0].Name, res.Solution, tables)); err != nil {
			return err
		}
	default:
		if err := output(w, format, api.NewBatchResponse(outcomes, showTables)); err != nil {
			return err
		}
	}

	for _, o := range outcomes {
		if o.Err != nil {
			return errSomeFailed
		}
	}
	return nil
}

// catalogProblems resolves names against the catalog in order.
func catalogProblems(catalog config.ProblemCatalog, names []string, file string) ([]optimizer.NamedProblem, error) {
	problems := make([]optimizer.NamedProblem, 0, len(names))
	for _, name := range names {
		spec, ok := catalog.GetSpec(name)
		if !ok {
			return nil, fmt.Errorf("problem %q not found in %s", name, file)
		}
		problems = append(problems, optimizer.NamedProblem{Name: name, Problem: spec.ToProblem()})
	}
	return problems, nil
}

func readCatalog(stdin io.Reader, file string) (config.ProblemCatalog, error) {
	if file != "-" {
		return config.LoadProblemFile(file)
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return nil, fmt.Errorf("reading stdin: %w", err)
	}
	return config.ParseProblemDocument(data, config.DefaultProblemName)
}

func printOutcomes(w io.Writer, r *report.Renderer, problems []optimizer.NamedProblem, outcomes []optimizer.Outcome, showTables bool) {
	for i, o := range outcomes {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintln(w, r.Summary(o.Name, problems[i].Problem))
		if o.Err != nil {
			fmt.Fprintf(w, "rejected: %v\n", o.Err)
			continue
		}
		res := o.Result
		fmt.Fprintln(w, "Utility by total units")
		fmt.Fprintln(w, r.UtilityMatrix(res.Problem))
		if showTables {
			fmt.Fprintln(w, "Optimal value (decision) by remaining units")
			fmt.Fprintln(w, r.ValueTable(res.Problem, res.Tables))
		}
		fmt.Fprintln(w, "Allocation")
		fmt.Fprintln(w, r.Solution(res.Problem, res.Solution))
	}
}
