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

package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/llm-d/llm-d-unit-allocator/api/v1alpha1"
	"github.com/llm-d/llm-d-unit-allocator/internal/api"
	"github.com/llm-d/llm-d-unit-allocator/pkg/core"
)

// post sends body as JSON and decodes the response into out.
func post(path string, body, out any) int {
	GinkgoHelper()
	data, err := json.Marshal(body)
	Expect(err).NotTo(HaveOccurred())

	resp, err := httpClient.Post(baseURL+path, "application/json", bytes.NewReader(data))
	Expect(err).NotTo(HaveOccurred())
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	Expect(err).NotTo(HaveOccurred())
	Expect(json.Unmarshal(raw, out)).To(Succeed(), string(raw))
	return resp.StatusCode
}

func scenario(name string, totalUnits int) *v1alpha1.AllocationProblem {
	p := core.DefaultProblem()
	p.TotalUnits = totalUnits
	return v1alpha1.NewAllocationProblem(name, p)
}

var _ = Describe("Allocation API", Ordered, func() {
	Context("the four-seminar scenario", func() {
		var result v1alpha1.AllocationResult

		BeforeAll(func() {
			By("solving the scenario with tables")
			code := post("/api/v1/solve?tables=true", scenario("seminars", 10), &result)
			Expect(code).To(Equal(http.StatusOK))
		})

		It("returns the optimal value and allocation", func() {
			Expect(result.Name).To(Equal("seminars"))
			Expect(result.Status.OptimalValue).To(Equal(250.0))
			Expect(result.Status.ExtraUnits).To(Equal(6))

			want := []v1alpha1.CategoryAllocationStatus{
				{CategoryIndex: 0, CategoryName: "Mathematics", ExtraUnits: 1, TotalUnits: 2, Utility: 50},
				{CategoryIndex: 1, CategoryName: "Science", ExtraUnits: 2, TotalUnits: 3, Utility: 90},
				{CategoryIndex: 2, CategoryName: "Systems", ExtraUnits: 3, TotalUnits: 4, Utility: 100},
				{CategoryIndex: 3, CategoryName: "Programming", ExtraUnits: 0, TotalUnits: 1, Utility: 10},
			}
			Expect(result.Status.Allocations).To(Equal(want))
		})

		It("returns tables consistent with the allocation", func() {
			tables := result.Status.Tables
			Expect(tables).NotTo(BeNil())
			Expect(tables.Values).To(HaveLen(5))
			Expect(tables.Decisions).To(HaveLen(4))
			Expect(tables.Values[0][6]).NotTo(BeNil())
			Expect(*tables.Values[0][6]).To(Equal(250.0))
			Expect(tables.Decisions[0][6]).To(Equal(1))
			Expect(*tables.Values[4][0]).To(Equal(0.0))
			Expect(tables.Values[4][1]).To(BeNil(), "unreachable states are null")
		})

		It("is deterministic", func() {
			var again v1alpha1.AllocationResult
			Expect(post("/api/v1/solve?tables=true", scenario("seminars", 10), &again)).To(Equal(http.StatusOK))
			Expect(again.Status).To(Equal(result.Status))
		})
	})

	Context("validation", func() {
		DescribeTable("rejects malformed problems",
			func(body string, wantCode int, wantKind string) {
				var resp api.ErrorResponse
				req, err := http.NewRequest(http.MethodPost, baseURL+"/api/v1/solve", bytes.NewBufferString(body))
				Expect(err).NotTo(HaveOccurred())
				req.Header.Set("Content-Type", "application/json")
				res, err := httpClient.Do(req)
				Expect(err).NotTo(HaveOccurred())
				defer func() { _ = res.Body.Close() }()
				Expect(json.NewDecoder(res.Body).Decode(&resp)).To(Succeed())

				Expect(res.StatusCode).To(Equal(wantCode))
				Expect(resp.Code).To(Equal(wantKind))
			},
			Entry("more categories than curves",
				`{"totalUnits": 5, "categoryCount": 3, "utilityCurves": [[1], [2]]}`,
				http.StatusUnprocessableEntity, "DimensionMismatch"),
			Entry("a total below the minimums",
				`{"totalUnits": 2, "categoryCount": 4, "minPerCategory": 1, "utilityCurves": [[1], [1], [1], [1]]}`,
				http.StatusUnprocessableEntity, "InfeasibleTotal"),
			Entry("a negative total",
				`{"totalUnits": -1, "categoryCount": 1, "utilityCurves": [[1]]}`,
				http.StatusUnprocessableEntity, "InvalidQuantity"),
			Entry("a body that is not JSON",
				`totalUnits: 5`,
				http.StatusBadRequest, api.CodeBadRequest),
		)
	})

	Context("budget sweeps", func() {
		It("conserves units and never loses value as the budget grows", func() {
			var req api.BatchRequest
			for total := 4; total <= 16; total++ {
				spec := scenario("", total).Spec
				req.Items = append(req.Items, api.SolveRequest{Spec: &spec})
			}

			var resp api.BatchResponse
			Expect(post("/api/v1/solve/batch", req, &resp)).To(Equal(http.StatusOK))
			Expect(resp.Items).To(HaveLen(len(req.Items)))

			previous := -1.0
			for i, item := range resp.Items {
				total := 4 + i
				rem := total - 4
				Expect(item.Name).To(Equal(fmt.Sprintf("item-%d", i)))
				Expect(item.Error).To(BeNil())

				status := item.Result
				extras, units := 0, 0
				for _, a := range status.Allocations {
					Expect(a.TotalUnits).To(BeNumerically(">=", 1))
					Expect(a.TotalUnits).To(BeNumerically("<=", 1+rem))
					extras += a.ExtraUnits
					units += a.TotalUnits
				}
				Expect(extras).To(Equal(rem))
				Expect(units).To(Equal(total))
				Expect(status.OptimalValue).To(BeNumerically(">=", previous))
				previous = status.OptimalValue
			}
		})

		It("gives a single category the whole remainder", func() {
			p := &core.Problem{TotalUnits: 9, CategoryCount: 1, MinPerCategory: 2, Curves: []core.Curve{{0, 4, 9}}}
			var result v1alpha1.AllocationResult
			Expect(post("/api/v1/solve", v1alpha1.NewAllocationProblem("solo", p), &result)).To(Equal(http.StatusOK))
			Expect(result.Status.Allocations).To(HaveLen(1))
			Expect(result.Status.Allocations[0].ExtraUnits).To(Equal(7))
			Expect(result.Status.OptimalValue).To(Equal(9.0))
		})
	})

	Context("observability", func() {
		It("exposes solve metrics", func() {
			resp, err := httpClient.Get(baseURL + "/metrics")
			Expect(err).NotTo(HaveOccurred())
			defer func() { _ = resp.Body.Close() }()
			body, err := io.ReadAll(resp.Body)
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(http.StatusOK))
			Expect(string(body)).To(ContainSubstring(`allocator_solve_total{result="success"}`))
			Expect(string(body)).To(ContainSubstring(`allocator_optimal_value{problem="seminars"} 250`))
		})

		It("echoes request IDs", func() {
			req, err := http.NewRequest(http.MethodGet, baseURL+"/healthz", nil)
			Expect(err).NotTo(HaveOccurred())
			req.Header.Set(api.HeaderRequestID, "e2e-request")
			resp, err := httpClient.Do(req)
			Expect(err).NotTo(HaveOccurred())
			defer func() { _ = resp.Body.Close() }()
			Expect(resp.Header.Get(api.HeaderRequestID)).To(Equal("e2e-request"))
		})
	})
})
