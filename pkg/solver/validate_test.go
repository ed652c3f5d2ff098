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

import (
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"k8s.io/utils/ptr"

	"github.com/llm-d/llm-d-unit-allocator/pkg/core"
)

func flatCurves(n int) []core.Curve {
	curves := make([]core.Curve, n)
	for i := range curves {
		curves[i] = core.Curve{1, 2, 3}
	}
	return curves
}

var _ = Describe("Validate", func() {
	DescribeTable("rejects malformed problems",
		func(p *core.Problem, kind ErrorKind) {
			got, err := Validate(p)
			Expect(got).To(BeNil())
			Expect(err).To(HaveOccurred())

			var aerr *AllocationError
			Expect(errors.As(err, &aerr)).To(BeTrue())
			Expect(aerr.Kind).To(Equal(kind))
			Expect(aerr.Message).NotTo(BeEmpty())
		},
		Entry("nil problem", (*core.Problem)(nil), DimensionMismatch),
		Entry("no categories",
			&core.Problem{TotalUnits: 3, CategoryCount: 0}, DimensionMismatch),
		Entry("three categories with two curves",
			&core.Problem{TotalUnits: 6, CategoryCount: 3, Curves: flatCurves(2)}, DimensionMismatch),
		Entry("names do not match categories",
			&core.Problem{TotalUnits: 6, CategoryCount: 2, Curves: flatCurves(2), CategoryNames: []string{"a"}}, DimensionMismatch),
		Entry("negative minimum",
			&core.Problem{TotalUnits: 6, CategoryCount: 2, MinPerCategory: -1, Curves: flatCurves(2)}, InvalidQuantity),
		Entry("negative total",
			&core.Problem{TotalUnits: -1, CategoryCount: 2, Curves: flatCurves(2)}, InvalidQuantity),
		Entry("maximum below minimum",
			&core.Problem{TotalUnits: 6, CategoryCount: 2, MinPerCategory: 3, MaxPerCategory: ptr.To(2), Curves: flatCurves(2)}, InvalidQuantity),
		Entry("total below every minimum",
			&core.Problem{TotalUnits: 2, CategoryCount: 4, MinPerCategory: 1, Curves: flatCurves(4)}, InfeasibleTotal),
		Entry("total above every maximum",
			&core.Problem{TotalUnits: 9, CategoryCount: 2, MaxPerCategory: ptr.To(4), Curves: flatCurves(2)}, InfeasibleTotal),
		Entry("minimums whose sum overflows an int",
			&core.Problem{TotalUnits: 0, CategoryCount: 3, MinPerCategory: 1 << 62, Curves: flatCurves(3)}, InfeasibleTotal),
		Entry("minimums near the int limit with the largest total",
			&core.Problem{TotalUnits: math.MaxInt, CategoryCount: 2, MinPerCategory: math.MaxInt/2 + 1, Curves: flatCurves(2)}, InfeasibleTotal),
	)

	It("does not build tables for minimums that overflow", func() {
		p := &core.Problem{TotalUnits: 0, CategoryCount: 3, MinPerCategory: 1 << 62, Curves: flatCurves(3)}
		Expect(func() {
			_, err := SolveAllocation(p)
			Expect(errors.Is(err, ErrInfeasibleTotal)).To(BeTrue())
		}).NotTo(Panic())
	})

	It("treats a huge maximum as no maximum", func() {
		p := &core.Problem{TotalUnits: 4, CategoryCount: 3, MaxPerCategory: ptr.To(1 << 62), Curves: flatCurves(3)}
		got, err := Validate(p)
		Expect(err).NotTo(HaveOccurred())
		Expect(got.ExtraUnits()).To(Equal(4))

		sol, err := SolveAllocation(p)
		Expect(err).NotTo(HaveOccurred())
		Expect(sol.AllocatedExtraUnits()).To(Equal(4))

		p.MaxPerCategory = ptr.To(math.MaxInt)
		_, err = Validate(p)
		Expect(err).NotTo(HaveOccurred())
	})

	It("accepts a total filling every maximum exactly", func() {
		_, err := Validate(&core.Problem{TotalUnits: 8, CategoryCount: 2, MaxPerCategory: ptr.To(4), Curves: flatCurves(2)})
		Expect(err).NotTo(HaveOccurred())
	})

	It("checks dimensions before quantities", func() {
		_, err := Validate(&core.Problem{TotalUnits: -5, CategoryCount: 3, MinPerCategory: -1, Curves: flatCurves(2)})
		Expect(errors.Is(err, ErrDimensionMismatch)).To(BeTrue())
	})

	It("checks quantities before feasibility", func() {
		_, err := Validate(&core.Problem{TotalUnits: -5, CategoryCount: 3, MinPerCategory: 1, Curves: flatCurves(3)})
		Expect(errors.Is(err, ErrInvalidQuantity)).To(BeTrue())
		Expect(errors.Is(err, ErrInfeasibleTotal)).To(BeFalse())
	})

	It("coerces invalid utilities to zero without touching the input", func() {
		p := &core.Problem{
			TotalUnits:    2,
			CategoryCount: 2,
			Curves: []core.Curve{
				{-3, math.NaN()},
				{math.Inf(1), 4},
			},
		}
		got, err := Validate(p)
		Expect(err).NotTo(HaveOccurred())
		Expect(got.Curves[0]).To(Equal(core.Curve{0, 0}))
		Expect(got.Curves[1]).To(Equal(core.Curve{0, 4}))
		Expect(p.Curves[0][0]).To(Equal(-3.0))
		Expect(math.IsInf(p.Curves[1][0], 1)).To(BeTrue())
	})

	It("accepts a total exactly covering the minimums", func() {
		got, err := Validate(&core.Problem{TotalUnits: 4, CategoryCount: 4, MinPerCategory: 1, Curves: flatCurves(4)})
		Expect(err).NotTo(HaveOccurred())
		Expect(got.ExtraUnits()).To(Equal(0))
	})

	It("accepts empty curves", func() {
		_, err := Validate(&core.Problem{TotalUnits: 1, CategoryCount: 1, Curves: []core.Curve{{}}})
		Expect(err).NotTo(HaveOccurred())
	})
})

var _ = Describe("AllocationError", func() {
	It("matches sentinels by kind", func() {
		err := error(newError(InfeasibleTotal, "need %d", 4))
		Expect(errors.Is(err, ErrInfeasibleTotal)).To(BeTrue())
		Expect(errors.Is(err, ErrInvalidQuantity)).To(BeFalse())
		Expect(err.Error()).To(Equal("InfeasibleTotal: need 4"))
	})
})
