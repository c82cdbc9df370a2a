// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package api

import (
	"context"
	"log/slog"
	"mime"
	"net/http"
	"time"

	"github.com/NVIDIA/craftcost/pkg/batch"
	"github.com/NVIDIA/craftcost/pkg/costing"
	"github.com/NVIDIA/craftcost/pkg/defaults"
	"github.com/NVIDIA/craftcost/pkg/errors"
	"github.com/NVIDIA/craftcost/pkg/serializer"
	"github.com/NVIDIA/craftcost/pkg/server"
)

// maxBodyBytes caps POST /v1/costs request bodies.
const maxBodyBytes = 4 << 20

// Handler serves the cost endpoints.
type Handler struct {
	svc      *costing.Service
	timeout  time.Duration
	maxNames int
}

// HandlerOption configures a Handler.
type HandlerOption func(*Handler)

// WithTimeout bounds the work of a single request.
func WithTimeout(d time.Duration) HandlerOption {
	return func(h *Handler) {
		if d > 0 {
			h.timeout = d
		}
	}
}

// WithMaxNames caps the number of top-level names in a batch.
func WithMaxNames(n int) HandlerOption {
	return func(h *Handler) {
		if n > 0 {
			h.maxNames = n
		}
	}
}

// NewHandler returns a Handler backed by svc.
func NewHandler(svc *costing.Service, opts ...HandlerOption) *Handler {
	h := &Handler{
		svc:      svc,
		timeout:  defaults.CostHandlerTimeout,
		maxNames: defaults.MaxBatchNames,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Routes returns the route table for server.WithHandler.
func (h *Handler) Routes() map[string]http.HandlerFunc {
	return map[string]http.HandlerFunc{
		"/v1/cost":             h.HandleCost,
		"/v1/costs":            h.HandleCosts,
		"/v1/explain":          h.HandleExplain,
		"/v1/profit":           h.HandleProfit,
		"/v1/cache/invalidate": h.HandleInvalidate,
	}
}

// HandleCost evaluates one name: GET /v1/cost?name=<name>&kind=effective|strict.
func (h *Handler) HandleCost(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	q := r.URL.Query()
	if !q.Has("name") {
		server.WriteError(w, r, http.StatusBadRequest, errors.ErrCodeInvalidRequest,
			"Query parameter name is required", false, nil)
		return
	}
	kind, err := batch.ParseKind(q.Get("kind"))
	if err != nil {
		server.WriteErrorFromErr(w, r, err, "Invalid cost kind", nil)
		return
	}

	res, err := h.svc.Evaluate(ctx, kind, q.Get("name"))
	if err != nil {
		server.WriteErrorFromErr(w, r, err, "Failed to evaluate cost", nil)
		return
	}
	serializer.RespondJSON(w, http.StatusOK, res)
}

// CostsRequest is the body of POST /v1/costs. Names is a single name, a
// list of names or a list of single-cell rows.
type CostsRequest struct {
	Kind  string `json:"kind" yaml:"kind"`
	Names any    `json:"names" yaml:"names"`
}

// CostsResponse mirrors the shape of CostsRequest.Names.
type CostsResponse struct {
	Kind    batch.Kind `json:"kind" yaml:"kind"`
	Results any        `json:"results" yaml:"results"`
}

// HandleCosts evaluates a batch: POST /v1/costs. JSON and YAML bodies are
// accepted.
func (h *Handler) HandleCosts(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	req, err := decodeCostsRequest(w, r)
	if err != nil {
		server.WriteError(w, r, http.StatusBadRequest, errors.ErrCodeInvalidRequest,
			"Invalid request body", false, map[string]any{"error": err.Error()})
		return
	}
	if req.Names == nil {
		server.WriteError(w, r, http.StatusBadRequest, errors.ErrCodeInvalidRequest,
			"Field names is required", false, nil)
		return
	}
	if list, ok := req.Names.([]any); ok && len(list) > h.maxNames {
		server.WriteError(w, r, http.StatusBadRequest, errors.ErrCodeInvalidRequest,
			"Too many names in batch", false, map[string]any{"count": len(list), "max": h.maxNames})
		return
	}

	kind, err := batch.ParseKind(req.Kind)
	if err != nil {
		server.WriteErrorFromErr(w, r, err, "Invalid cost kind", nil)
		return
	}

	results, err := h.svc.Evaluate(ctx, kind, req.Names)
	if err != nil {
		server.WriteErrorFromErr(w, r, err, "Failed to evaluate costs", nil)
		return
	}
	serializer.RespondJSON(w, http.StatusOK, CostsResponse{Kind: kind, Results: results})
}

func decodeCostsRequest(w http.ResponseWriter, r *http.Request) (*CostsRequest, error) {
	format := serializer.FormatJSON
	if ct := r.Header.Get("Content-Type"); ct != "" {
		mt, _, err := mime.ParseMediaType(ct)
		if err == nil && (mt == "application/x-yaml" || mt == "application/yaml" || mt == "text/yaml") {
			format = serializer.FormatYAML
		}
	}

	reader, err := serializer.NewReader(format, http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	var req CostsRequest
	if err := reader.Deserialize(&req); err != nil {
		return nil, err
	}
	return &req, nil
}

// HandleExplain reports the derivation of one result:
// GET /v1/explain?name=<name>&kind=effective|strict.
func (h *Handler) HandleExplain(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	q := r.URL.Query()
	kind, err := batch.ParseKind(q.Get("kind"))
	if err != nil {
		server.WriteErrorFromErr(w, r, err, "Invalid cost kind", nil)
		return
	}

	b, err := h.svc.Explain(ctx, kind, q.Get("name"))
	if err != nil {
		server.WriteErrorFromErr(w, r, err, "Failed to explain cost", nil)
		return
	}
	serializer.RespondJSON(w, http.StatusOK, b)
}

// HandleProfit compares sell price and craft cost: GET /v1/profit?name=<name>.
// The name parameter may repeat.
func (h *Handler) HandleProfit(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	names := r.URL.Query()["name"]
	if len(names) == 0 {
		server.WriteError(w, r, http.StatusBadRequest, errors.ErrCodeInvalidRequest,
			"Query parameter name is required", false, nil)
		return
	}
	if len(names) > h.maxNames {
		server.WriteError(w, r, http.StatusBadRequest, errors.ErrCodeInvalidRequest,
			"Too many names", false, map[string]any{"count": len(names), "max": h.maxNames})
		return
	}

	sheet, err := h.svc.Profit(ctx, names)
	if err != nil {
		server.WriteErrorFromErr(w, r, err, "Failed to compute profit", nil)
		return
	}
	serializer.RespondJSON(w, http.StatusOK, sheet)
}

// HandleInvalidate drops the cached snapshot: POST /v1/cache/invalidate.
func (h *Handler) HandleInvalidate(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	if err := h.svc.Invalidate(ctx); err != nil {
		server.WriteErrorFromErr(w, r, errors.Wrap(errors.ErrCodeUnavailable, "failed to invalidate snapshot cache", err),
			"Failed to invalidate cache", nil)
		return
	}
	slog.Info("snapshot cache invalidated", "requestID", server.RequestID(r.Context()))
	w.WriteHeader(http.StatusNoContent)
}

func allowMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method == method {
		return true
	}
	w.Header().Set("Allow", method)
	server.WriteError(w, r, http.StatusMethodNotAllowed, errors.ErrCodeMethodNotAllowed,
		"Method not allowed", false, map[string]any{
			"method":  r.Method,
			"allowed": []string{method},
		})
	return false
}
