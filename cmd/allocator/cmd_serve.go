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
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/llm-d/llm-d-unit-allocator/internal/api"
	"github.com/llm-d/llm-d-unit-allocator/internal/logging"
	"github.com/llm-d/llm-d-unit-allocator/internal/metrics"
)

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the allocation API over HTTP",
		Long: `Serve exposes POST /api/v1/solve, POST /api/v1/solve/batch, GET /healthz
and GET /metrics until interrupted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if !a.cfg.LogDevelopment {
				gin.SetMode(gin.ReleaseMode)
			}

			m := metrics.New()
			opt, err := a.newOptimizer(m)
			if err != nil {
				return err
			}
			srv := api.NewServer(opt, api.Options{
				AllowedOrigins: a.cfg.Server.AllowedOrigins,
				Metrics:        m,
				Logger:         logging.FromContext(ctx),
			})
			return srv.Run(ctx, a.cfg.Server.Address)
		},
	}
}
