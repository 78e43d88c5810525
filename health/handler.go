// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package health

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/schema"
	"github.com/xmidt-org/sallust"
	"go.uber.org/zap"
)

// reportRequest is the query accepted by Handler, e.g. ?tag=mail&tag=db
type reportRequest struct {
	Tags []string `schema:"tag"`
}

// Handler serves a freshly evaluated Report for a Registry.  The response code is
// http.StatusServiceUnavailable when the report is Unhealthy, http.StatusOK otherwise.
type Handler struct {
	registry *Registry
	decoder  *schema.Decoder
}

func NewHandler(registry *Registry) *Handler {
	decoder := schema.NewDecoder()
	decoder.IgnoreUnknownKeys(true)

	return &Handler{
		registry: registry,
		decoder:  decoder,
	}
}

func (h *Handler) ServeHTTP(response http.ResponseWriter, request *http.Request) {
	var rr reportRequest
	if err := h.decoder.Decode(&rr, request.URL.Query()); err != nil {
		sallust.Get(request.Context()).Error("invalid health report request", zap.Error(err))
		writeJSON(response, http.StatusBadRequest, map[string]string{"message": err.Error()})
		return
	}

	report := h.registry.Check(request.Context(), WithTags(rr.Tags...))
	writeJSON(response, report.Status.HTTPStatus(), report)
}

// LivenessHandler answers every request with http.StatusOK.  It only shows that the
// process is able to serve HTTP.
func LivenessHandler() http.Handler {
	return http.HandlerFunc(func(response http.ResponseWriter, _ *http.Request) {
		writeJSON(response, http.StatusOK, map[string]Status{"status": Healthy})
	})
}

func writeJSON(response http.ResponseWriter, statusCode int, v interface{}) {
	response.Header().Set("Content-Type", "application/json")
	response.WriteHeader(statusCode)
	json.NewEncoder(response).Encode(v)
}
