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

// Package optimizer runs allocation problems on behalf of the CLI and the
// HTTP server.
//
// The optimizer wraps the pure solver with the concerns a service needs:
//
//	Limiter → Solver → Metrics
//	(admit)   (solve)  (observe)
//
// Example usage:
//
//	lim, _ := limiter.NewLimiter(limiter.WorkStrategy, &limiter.LimiterConfig{MaxCells: 1e7})
//	opt := optimizer.NewOptimizer(lim, metrics.New())
//
//	result, err := opt.Optimize(ctx, "seminars", problem)
//	if err != nil {
//	    log.Error(err, "optimization failed")
//	    return err
//	}
//	log.Info("optimization complete", "optimalValue", result.Solution.OptimalValue)
//
// Optimization Flow:
//
//  1. Admit
//     - Estimate the table work of the problem
//     - Refuse problems above the configured bound (limiter.ErrProblemTooLarge)
//
//  2. Solve
//     - Validate and sanitize the problem
//     - Build the value and decision tables
//     - Reconstruct the optimal allocation
//
//  3. Observe
//     - Count the outcome by result
//     - Record duration, extra units and optimal value
//
// OptimizeAll solves the entries of a catalog concurrently. Each entry
// carries its own result or error; one failing entry does not stop the
// others.
package optimizer
