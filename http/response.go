package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"rental-analyzer/service"
)

type errorResponse struct {
	Error   string   `json:"error"`
	Details []string `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string, details ...string) {
	writeJSON(w, status, errorResponse{Error: msg, Details: details})
}

// statusFor maps service and validation errors to HTTP status codes.
func statusFor(err error) int {
	var verr *ValidationError
	switch {
	case errors.As(err, &verr),
		errors.Is(err, ErrInvalidBody),
		errors.Is(err, service.ErrInvalidFinancingRequest):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrQuota):
		return http.StatusTooManyRequests
	case errors.Is(err, service.ErrNetwork):
		return http.StatusBadGateway
	case errors.Is(err, service.ErrAdvisorUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	}
	return http.StatusInternalServerError
}

func writeServiceError(w http.ResponseWriter, err error) {
	status := statusFor(err)

	var verr *ValidationError
	if errors.As(err, &verr) {
		writeError(w, status, "validation failed", verr.Details...)
		return
	}
	if status == http.StatusInternalServerError {
		writeError(w, status, "internal error")
		return
	}
	writeError(w, status, err.Error())
}
