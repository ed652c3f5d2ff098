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

package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/llm-d/llm-d-unit-allocator/api/v1alpha1"
	"github.com/llm-d/llm-d-unit-allocator/internal/engines/limiter"
	"github.com/llm-d/llm-d-unit-allocator/internal/logging"
	"github.com/llm-d/llm-d-unit-allocator/internal/optimizer"
	"github.com/llm-d/llm-d-unit-allocator/pkg/core"
	"github.com/llm-d/llm-d-unit-allocator/pkg/solver"
)

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// handleSolve solves one problem. ?tables=true adds the value and decision
// tables to the result.
func (s *Server) handleSolve(c *gin.Context) {
	withTables, ok := tablesParam(c)
	if !ok {
		return
	}

	var req SolveRequest
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes)
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Code: CodeBadRequest, Message: err.Error()})
		return
	}

	ctx := c.Request.Context()
	result, err := s.optimizer.Optimize(ctx, req.Name(), req.Problem())
	if err != nil {
		status, body := NewErrorResponse(err)
		logging.FromContext(ctx).V(logging.DEBUG).Info("Solve failed", "status", status, "code", body.Code)
		c.JSON(status, body)
		return
	}

	c.JSON(http.StatusOK, v1alpha1.NewAllocationResult(req.Name(), result.Solution, tablesIf(withTables, result.Tables)))
}

// handleSolveBatch solves every item concurrently. Per-item failures are
// reported inline; the response is 200 unless the request itself is bad.
func (s *Server) handleSolveBatch(c *gin.Context) {
	withTables, ok := tablesParam(c)
	if !ok {
		return
	}

	var req BatchRequest
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes)
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Code: CodeBadRequest, Message: err.Error()})
		return
	}

	problems := make([]optimizer.NamedProblem, len(req.Items))
	for i := range req.Items {
		name := req.Items[i].Name()
		if name == "" {
			name = fmt.Sprintf("item-%d", i)
		}
		problems[i] = optimizer.NamedProblem{Name: name, Problem: req.Items[i].Problem()}
	}

	outcomes, err := s.optimizer.OptimizeAll(c.Request.Context(), problems)
	if err != nil {
		status, body := NewErrorResponse(err)
		c.JSON(status, body)
		return
	}
	c.JSON(http.StatusOK, NewBatchResponse(outcomes, withTables))
}

// NewBatchResponse converts optimizer outcomes into a response.
func NewBatchResponse(outcomes []optimizer.Outcome, withTables bool) BatchResponse {
	resp := BatchResponse{Items: make([]BatchItem, len(outcomes))}
	for i, o := range outcomes {
		item := BatchItem{Name: o.Name}
		if o.Err != nil {
			_, body := NewErrorResponse(o.Err)
			item.Error = &body
		} else {
			res := v1alpha1.NewAllocationResult(o.Name, o.Result.Solution, tablesIf(withTables, o.Result.Tables))
			item.Result = &res.Status
		}
		resp.Items[i] = item
	}
	return resp
}

func tablesParam(c *gin.Context) (bool, bool) {
	raw := c.DefaultQuery("tables", "false")
	v, err := strconv.ParseBool(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    CodeBadRequest,
			Message: fmt.Sprintf("invalid tables parameter %q", raw),
		})
		return false, false
	}
	return v, true
}

func tablesIf(include bool, t *core.Tables) *core.Tables {
	if !include {
		return nil
	}
	return t
}

// NewErrorResponse maps an optimize error onto a status code and body.
func NewErrorResponse(err error) (int, ErrorResponse) {
	var aerr *solver.AllocationError
	switch {
	case errors.As(err, &aerr):
		return http.StatusUnprocessableEntity, ErrorResponse{Code: string(aerr.Kind), Message: aerr.Message}
	case errors.Is(err, limiter.ErrProblemTooLarge):
		return http.StatusRequestEntityTooLarge, ErrorResponse{Code: CodeProblemTooLarge, Message: err.Error()}
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable, ErrorResponse{Code: CodeUnavailable, Message: err.Error()}
	default:
		return http.StatusInternalServerError, ErrorResponse{Code: CodeInternal, Message: err.Error()}
	}
}
