package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"studium-server/internal/domain"
	apperrors "studium-server/pkg/errors"
)

func writeJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

// writeError writes an error response (helper function)
func writeError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}

type errorBody struct {
	Code           string                   `json:"code"`
	Message        string                   `json:"message"`
	Details        string                   `json:"details,omitempty"`
	ProviderErrors []domain.ProviderAttempt `json:"provider_errors,omitempty"`
}

// writeServiceError maps service-layer errors onto the structured error
// body. Provider exhaustion carries the per-provider attempt list so the
// client can tell an auth problem from a timeout.
func writeServiceError(w http.ResponseWriter, err error) {
	var exhausted *domain.AllProvidersExhaustedError
	if errors.As(err, &exhausted) {
		writeJSON(w, http.StatusBadGateway, errorBody{
			Code:           string(apperrors.ErrorTypeProviders),
			Message:        "all AI providers failed",
			ProviderErrors: exhausted.Attempts,
		})
		return
	}

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		writeJSON(w, appErr.StatusCode, errorBody{
			Code:    string(appErr.Type),
			Message: appErr.Message,
			Details: appErr.Details,
		})
		return
	}

	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrAlreadyProcessing):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrNotProcessed):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrUnsupportedFormat):
		writeError(w, http.StatusUnsupportedMediaType, err.Error())
	case errors.Is(err, domain.ErrNoProviders):
		writeError(w, http.StatusServiceUnavailable, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}
