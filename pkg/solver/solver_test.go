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
	"math/rand"
	"sync"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"k8s.io/utils/ptr"

	"github.com/llm-d/llm-d-unit-allocator/pkg/core"
)

// bruteForce enumerates every allocation of rem extra units and returns the
// best value together with the lexicographically smallest optimal allocation.
func bruteForce(p *core.Problem) (float64, []int) {
	n := p.CategoryCount
	rem := p.ExtraUnits()
	extraCap := p.ExtraCap()

	best := math.Inf(-1)
	var bestAlloc []int
	current := make([]int, n)

	var walk func(i, left int, acc float64)
	walk = func(i, left int, acc float64) {
		if i == n {
			if left == 0 && acc > best {
				best = acc
				bestAlloc = append([]int(nil), current...)
			}
			return
		}
		for x := 0; x <= left; x++ {
			if extraCap >= 0 && x > extraCap {
				break
			}
			current[i] = x
			walk(i+1, left-x, acc+p.Curves[i].Value(x))
		}
	}
	walk(0, rem, 0)
	return best, bestAlloc
}

func randomProblem(rng *rand.Rand, monotone bool) *core.Problem {
	n := 1 + rng.Intn(4)
	minPer := rng.Intn(3)
	rem := rng.Intn(7)
	curves := make([]core.Curve, n)
	for i := range curves {
		length := rng.Intn(6)
		c := make(core.Curve, length)
		level := 0.0
		for j := range c {
			if monotone {
				level += float64(rng.Intn(20))
				c[j] = level
			} else {
				c[j] = float64(rng.Intn(50))
			}
		}
		curves[i] = c
	}
	return &core.Problem{
		TotalUnits:     n*minPer + rem,
		CategoryCount:  n,
		MinPerCategory: minPer,
		Curves:         curves,
	}
}

var _ = Describe("SolveAllocation", func() {
	Context("with the four-category reference scenario", func() {
		var problem *core.Problem

		BeforeEach(func() {
			problem = &core.Problem{
				TotalUnits:     10,
				CategoryCount:  4,
				MinPerCategory: 1,
				Curves: []core.Curve{
					{25, 50, 60, 80, 100, 100, 100},
					{20, 70, 90, 100, 100, 100, 100},
					{40, 60, 80, 100, 100, 100, 100},
					{10, 20, 30, 40, 50, 60, 70},
				},
			}
		})

		It("finds the optimal allocation", func() {
			solution, err := SolveAllocation(problem)
			Expect(err).NotTo(HaveOccurred())

			Expect(solution.ExtraUnits).To(Equal(6))
			Expect(solution.OptimalValue).To(Equal(250.0))
			Expect(solution.Allocation).To(Equal([]core.CategoryAllocation{
				{CategoryIndex: 0, CategoryName: "Category 1", ExtraUnits: 1, TotalUnits: 2, Utility: 50},
				{CategoryIndex: 1, CategoryName: "Category 2", ExtraUnits: 2, TotalUnits: 3, Utility: 90},
				{CategoryIndex: 2, CategoryName: "Category 3", ExtraUnits: 3, TotalUnits: 4, Utility: 100},
				{CategoryIndex: 3, CategoryName: "Category 4", ExtraUnits: 0, TotalUnits: 1, Utility: 10},
			}))
			Expect(solution.TotalUnits()).To(Equal(10))
			Expect(solution.TotalUtility()).To(Equal(250.0))
		})

		It("passes category names through", func() {
			problem.CategoryNames = []string{"Mathematics", "Science", "Systems", "Programming"}
			solution, err := SolveAllocation(problem)
			Expect(err).NotTo(HaveOccurred())
			Expect(solution.Allocation[1].CategoryName).To(Equal("Science"))
		})

		It("matches the default problem", func() {
			solution, err := SolveAllocation(core.DefaultProblem())
			Expect(err).NotTo(HaveOccurred())
			Expect(solution.OptimalValue).To(Equal(250.0))
			Expect(solution.ExtraUnitsByCategory()).To(Equal([]int{1, 2, 3, 0}))
		})

		It("exposes the tables it was built from", func() {
			result, err := Solve(problem)
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Tables.Rem).To(Equal(6))
			Expect(result.Tables.V).To(HaveLen(5))
			Expect(result.Tables.D).To(HaveLen(4))
			Expect(result.Tables.V[4][0]).To(Equal(0.0))
			for r := 1; r <= 6; r++ {
				Expect(math.IsInf(result.Tables.V[4][r], -1)).To(BeTrue())
			}
			Expect(result.Tables.OptimalValue()).To(Equal(result.Solution.OptimalValue))
		})
	})

	It("rejects the documented invalid inputs", func() {
		_, err := SolveAllocation(&core.Problem{TotalUnits: 6, CategoryCount: 3, Curves: flatCurves(2)})
		Expect(errors.Is(err, ErrDimensionMismatch)).To(BeTrue())

		solution, err := SolveAllocation(&core.Problem{TotalUnits: 2, CategoryCount: 4, MinPerCategory: 1, Curves: flatCurves(4)})
		Expect(errors.Is(err, ErrInfeasibleTotal)).To(BeTrue())
		Expect(solution).To(BeNil())
	})

	It("reduces to the curve value for a single category", func() {
		p := &core.Problem{TotalUnits: 7, CategoryCount: 1, MinPerCategory: 2, Curves: []core.Curve{{3, 8}}}
		solution, err := SolveAllocation(p)
		Expect(err).NotTo(HaveOccurred())
		Expect(solution.Allocation).To(HaveLen(1))
		Expect(solution.Allocation[0].ExtraUnits).To(Equal(5))
		Expect(solution.Allocation[0].TotalUnits).To(Equal(7))
		Expect(solution.OptimalValue).To(Equal(8.0))
	})

	It("breaks ties toward fewer extra units for earlier categories", func() {
		p := &core.Problem{TotalUnits: 3, CategoryCount: 2, Curves: []core.Curve{{0}, {0}}}
		solution, err := SolveAllocation(p)
		Expect(err).NotTo(HaveOccurred())
		Expect(solution.ExtraUnitsByCategory()).To(Equal([]int{0, 3}))
	})

	It("treats empty curves as zero utility", func() {
		p := &core.Problem{TotalUnits: 2, CategoryCount: 2, Curves: []core.Curve{{}, {1, 5}}}
		solution, err := SolveAllocation(p)
		Expect(err).NotTo(HaveOccurred())
		Expect(solution.OptimalValue).To(Equal(5.0))
		Expect(solution.ExtraUnitsByCategory()).To(Equal([]int{0, 2}))
	})

	It("solves with no extra units", func() {
		p := &core.Problem{TotalUnits: 3, CategoryCount: 3, MinPerCategory: 1, Curves: []core.Curve{{1}, {2}, {3}}}
		solution, err := SolveAllocation(p)
		Expect(err).NotTo(HaveOccurred())
		Expect(solution.ExtraUnits).To(Equal(0))
		Expect(solution.OptimalValue).To(Equal(6.0))
		Expect(solution.ExtraUnitsByCategory()).To(Equal([]int{0, 0, 0}))
	})

	It("sums sanitized utilities", func() {
		p := &core.Problem{TotalUnits: 0, CategoryCount: 2, Curves: []core.Curve{{-3}, {-4}}}
		solution, err := SolveAllocation(p)
		Expect(err).NotTo(HaveOccurred())
		Expect(solution.OptimalValue).To(Equal(0.0))
		Expect(p.Curves[0][0]).To(Equal(-3.0))
	})

	It("respects a per-category maximum", func() {
		linear := core.Curve{0, 1, 2, 3, 4, 5}
		p := &core.Problem{
			TotalUnits:     5,
			CategoryCount:  3,
			MaxPerCategory: ptr.To(2),
			Curves:         []core.Curve{linear, linear, linear},
		}
		solution, err := SolveAllocation(p)
		Expect(err).NotTo(HaveOccurred())
		Expect(solution.OptimalValue).To(Equal(5.0))
		Expect(solution.ExtraUnitsByCategory()).To(Equal([]int{1, 2, 2}))
		for _, a := range solution.Allocation {
			Expect(a.TotalUnits).To(BeNumerically("<=", 2))
		}
	})

	It("forces exact allocations when minimum equals maximum", func() {
		p := &core.Problem{
			TotalUnits:     6,
			CategoryCount:  3,
			MinPerCategory: 2,
			MaxPerCategory: ptr.To(2),
			Curves:         []core.Curve{{1, 9}, {2, 9}, {3, 9}},
		}
		solution, err := SolveAllocation(p)
		Expect(err).NotTo(HaveOccurred())
		Expect(solution.OptimalValue).To(Equal(6.0))
		Expect(solution.ExtraUnitsByCategory()).To(Equal([]int{0, 0, 0}))
	})

	Context("property checks", func() {
		var rng *rand.Rand

		BeforeEach(func() {
			rng = rand.New(rand.NewSource(20251018))
		})

		It("conserves units and stays within bounds", func() {
			for k := 0; k < 200; k++ {
				p := randomProblem(rng, false)
				solution, err := SolveAllocation(p)
				Expect(err).NotTo(HaveOccurred())

				rem := p.ExtraUnits()
				Expect(solution.AllocatedExtraUnits()).To(Equal(rem))
				Expect(solution.TotalUnits()).To(Equal(p.TotalUnits))
				Expect(solution.TotalUtility()).To(Equal(solution.OptimalValue))
				for _, a := range solution.Allocation {
					Expect(a.TotalUnits).To(BeNumerically(">=", p.MinPerCategory))
					Expect(a.TotalUnits).To(BeNumerically("<=", p.MinPerCategory+rem))
				}
			}
		})

		It("agrees with exhaustive search, including the tie-break", func() {
			for k := 0; k < 200; k++ {
				p := randomProblem(rng, false)
				if rng.Intn(2) == 0 {
					n := p.CategoryCount
					p.MaxPerCategory = ptr.To(p.MinPerCategory + (p.ExtraUnits()+n-1)/n + rng.Intn(3))
				}
				want, wantAlloc := bruteForce(p)
				solution, err := SolveAllocation(p)
				Expect(err).NotTo(HaveOccurred())
				Expect(solution.OptimalValue).To(Equal(want))
				Expect(solution.ExtraUnitsByCategory()).To(Equal(wantAlloc))
			}
		})

		It("never decreases the optimum when the budget grows", func() {
			for k := 0; k < 100; k++ {
				p := randomProblem(rng, true)
				before, err := SolveAllocation(p)
				Expect(err).NotTo(HaveOccurred())

				grown := p.DeepCopy()
				grown.TotalUnits++
				after, err := SolveAllocation(grown)
				Expect(err).NotTo(HaveOccurred())
				Expect(after.OptimalValue).To(BeNumerically(">=", before.OptimalValue))
			}
		})

		It("returns identical allocations on repeated and concurrent runs", func() {
			p := randomProblem(rng, false)
			first, err := SolveAllocation(p)
			Expect(err).NotTo(HaveOccurred())

			var wg sync.WaitGroup
			results := make([]*core.Solution, 16)
			for i := range results {
				wg.Add(1)
				go func(i int) {
					defer wg.Done()
					defer GinkgoRecover()
					s, err := SolveAllocation(p)
					Expect(err).NotTo(HaveOccurred())
					results[i] = s
				}(i)
			}
			wg.Wait()
			for _, s := range results {
				Expect(s).To(Equal(first))
			}
		})
	})
})

var _ = Describe("BuildTables", func() {
	It("fails defensively on a negative budget", func() {
		_, err := BuildTables(&core.Problem{TotalUnits: 1, CategoryCount: 2, MinPerCategory: 1, Curves: flatCurves(2)})
		Expect(errors.Is(err, ErrInfeasibleTotal)).To(BeTrue())
	})

	It("records the smallest maximizing choice", func() {
		p := &core.Problem{TotalUnits: 2, CategoryCount: 2, Curves: []core.Curve{{0, 5, 5}, {0, 0, 5}}}
		tables, err := BuildTables(p)
		Expect(err).NotTo(HaveOccurred())
		// V[0][2]: x=0 -> 0+5, x=1 -> 5+0, x=2 -> 5+0; first maximum wins
		Expect(tables.V[0][2]).To(Equal(5.0))
		Expect(tables.D[0][2]).To(Equal(0))
		Expect(tables.D[1]).To(Equal([]int{0, 1, 2}))
	})
})
