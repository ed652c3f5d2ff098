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

// Command allocator solves unit allocation problems from files or over HTTP.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/llm-d/llm-d-unit-allocator/internal/engines/common"
	"github.com/llm-d/llm-d-unit-allocator/internal/engines/limiter"
	"github.com/llm-d/llm-d-unit-allocator/internal/logging"
	"github.com/llm-d/llm-d-unit-allocator/internal/metrics"
	"github.com/llm-d/llm-d-unit-allocator/internal/optimizer"
	"github.com/llm-d/llm-d-unit-allocator/pkg/config"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes the command line and returns the process exit code.
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	root := newRootCmd()
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.ExecuteContext(ctx); err != nil {
		if errors.Is(err, errSomeFailed) {
			return CLIExitFindings
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return CLIExitError
	}
	return CLIExitSuccess
}

// app is the state shared by subcommands once flags are parsed.
type app struct {
	cfg *config.Config
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "allocator",
		Short:         "Distribute units across categories to maximize total utility",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(cmd.Flags())
			if err != nil {
				return err
			}
			logger, err := logging.NewLogger(logging.Options{Level: cfg.LogLevel, Development: cfg.LogDevelopment})
			if err != nil {
				return err
			}
			logging.SetLogger(logger)
			cmd.SetContext(logging.IntoContext(cmd.Context(), logger))
			a.cfg = cfg
			return nil
		},
	}
	config.AddFlags(root.PersistentFlags())

	root.AddCommand(
		newSolveCmd(a),
		newServeCmd(a),
		newExampleCmd(a),
	)
	return root
}

// newOptimizer builds the optimizer from the limiter configuration.
func (a *app) newOptimizer(m *metrics.Metrics) (*optimizer.Optimizer, error) {
	strategy, err := limiter.ParseStrategy(a.cfg.Limiter.Strategy)
	if err != nil {
		return nil, err
	}
	lim, err := limiter.NewLimiter(strategy, &limiter.LimiterConfig{MaxCells: a.cfg.Limiter.MaxCells})
	if err != nil {
		return nil, err
	}
	cache := common.NewResultCache(a.cfg.Cache.Size, a.cfg.Cache.TTL)
	return optimizer.NewOptimizer(lim, m, optimizer.WithResultCache(cache)), nil
}
