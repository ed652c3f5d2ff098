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

package optimizer

import (
	"context"
	"errors"
	"fmt"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/llm-d/llm-d-unit-allocator/internal/engines/common"
	"github.com/llm-d/llm-d-unit-allocator/internal/engines/limiter"
	"github.com/llm-d/llm-d-unit-allocator/internal/metrics"
	"github.com/llm-d/llm-d-unit-allocator/pkg/core"
	"github.com/llm-d/llm-d-unit-allocator/pkg/solver"
)

var _ = Describe("Optimizer", func() {
	var (
		ctx context.Context
		m   *metrics.Metrics
		opt *Optimizer
	)

	BeforeEach(func() {
		ctx = context.Background()
		m = metrics.NewWithRegistry(prometheus.NewRegistry())
		lim, err := limiter.NewLimiter(limiter.WorkStrategy, &limiter.LimiterConfig{MaxCells: 1000})
		Expect(err).NotTo(HaveOccurred())
		opt = NewOptimizer(lim, m)
	})

	Context("Optimize", func() {
		It("solves the reference scenario and records metrics", func() {
			result, err := opt.Optimize(ctx, "seminars", core.DefaultProblem())
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Solution.OptimalValue).To(Equal(250.0))
			Expect(result.Solution.ExtraUnitsByCategory()).To(Equal([]int{1, 2, 3, 0}))

			Expect(testutil.ToFloat64(m.SolveTotal.WithLabelValues(metrics.ResultSuccess))).To(Equal(1.0))
			Expect(testutil.ToFloat64(m.OptimalValue.WithLabelValues("seminars"))).To(Equal(250.0))
		})

		It("reports rejected problems", func() {
			p := core.DefaultProblem()
			p.TotalUnits = 3
			_, err := opt.Optimize(ctx, "short", p)
			Expect(errors.Is(err, solver.ErrInfeasibleTotal)).To(BeTrue())
			Expect(testutil.ToFloat64(m.SolveTotal.WithLabelValues(metrics.ResultRejected))).To(Equal(1.0))
		})

		It("refuses problems above the work bound before solving", func() {
			p := core.DefaultProblem()
			p.TotalUnits = 40
			_, err := opt.Optimize(ctx, "huge", p)
			Expect(errors.Is(err, limiter.ErrProblemTooLarge)).To(BeTrue())
			Expect(testutil.ToFloat64(m.SolveTotal.WithLabelValues(metrics.ResultTooLarge))).To(Equal(1.0))
		})

		It("stops on a cancelled context", func() {
			cctx, cancel := context.WithCancel(ctx)
			cancel()
			_, err := opt.Optimize(cctx, "seminars", core.DefaultProblem())
			Expect(err).To(MatchError(context.Canceled))
		})

		It("works without a limiter or metrics", func() {
			result, err := NewOptimizer(nil, nil).Optimize(ctx, "", core.DefaultProblem())
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Solution.TotalUnits()).To(Equal(10))
		})
	})

	Context("with a result cache", func() {
		var cache *common.ResultCache

		BeforeEach(func() {
			cache = common.NewResultCache(16, time.Minute)
			lim, err := limiter.NewLimiter(limiter.WorkStrategy, &limiter.LimiterConfig{MaxCells: 1000})
			Expect(err).NotTo(HaveOccurred())
			opt = NewOptimizer(lim, m, WithResultCache(cache))
		})

		It("answers a repeated problem from the cache", func() {
			first, err := opt.Optimize(ctx, "seminars", core.DefaultProblem())
			Expect(err).NotTo(HaveOccurred())
			second, err := opt.Optimize(ctx, "seminars", core.DefaultProblem())
			Expect(err).NotTo(HaveOccurred())

			Expect(second).To(BeIdenticalTo(first))
			Expect(cache.Len()).To(Equal(1))
			Expect(testutil.ToFloat64(m.CacheHits)).To(Equal(1.0))
			Expect(testutil.ToFloat64(m.SolveTotal.WithLabelValues(metrics.ResultSuccess))).To(Equal(2.0))
		})

		It("does not cache rejected problems", func() {
			p := core.DefaultProblem()
			p.TotalUnits = 3
			_, err := opt.Optimize(ctx, "short", p)
			Expect(err).To(HaveOccurred())
			Expect(cache.Len()).To(Equal(0))
		})
	})

	Context("OptimizeAll", func() {
		It("returns one outcome per entry in input order", func() {
			problems := make([]NamedProblem, 0, 12)
			for i := range 12 {
				p := core.DefaultProblem()
				p.TotalUnits = 4 + i
				problems = append(problems, NamedProblem{Name: fmt.Sprintf("p%02d", i), Problem: p})
			}
			problems = append(problems, NamedProblem{Name: "broken", Problem: &core.Problem{TotalUnits: 1}})

			outcomes, err := opt.OptimizeAll(ctx, problems)
			Expect(err).NotTo(HaveOccurred())
			Expect(outcomes).To(HaveLen(len(problems)))

			for i, o := range outcomes[:12] {
				Expect(o.Name).To(Equal(fmt.Sprintf("p%02d", i)))
				Expect(o.Err).NotTo(HaveOccurred())
				Expect(o.Result.Solution.TotalUnits()).To(Equal(4 + i))

				single, err := solver.SolveAllocation(problems[i].Problem)
				Expect(err).NotTo(HaveOccurred())
				Expect(o.Result.Solution).To(Equal(single))
			}
			last := outcomes[12]
			Expect(last.Result).To(BeNil())
			Expect(errors.Is(last.Err, solver.ErrDimensionMismatch)).To(BeTrue())
		})

		It("fails when the context is cancelled", func() {
			cctx, cancel := context.WithCancel(ctx)
			cancel()
			_, err := opt.OptimizeAll(cctx, []NamedProblem{{Name: "a", Problem: core.DefaultProblem()}})
			Expect(err).To(MatchError(context.Canceled))
		})
	})

	DescribeTable("ResultOf",
		func(err error, want string) {
			Expect(ResultOf(err)).To(Equal(want))
		},
		Entry("success", nil, metrics.ResultSuccess),
		Entry("too large", fmt.Errorf("wrapped: %w", limiter.ErrProblemTooLarge), metrics.ResultTooLarge),
		Entry("allocation error", solver.ErrInvalidQuantity, metrics.ResultRejected),
		Entry("other", errors.New("boom"), metrics.ResultError),
	)
})
