package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"careervision/internal/apperrors"
	"careervision/internal/service"
	"careervision/internal/session"
)

// ErrorResponse is the body of every non-2xx reply
type ErrorResponse struct {
	Error   string         `json:"error"`
	Code    apperrors.Code `json:"code,omitempty"`
	Field   string         `json:"field,omitempty"`
	Session *SessionView   `json:"session,omitempty"`
}

// Helper functions
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Error: message})
}

// writeAppError maps domain errors to HTTP statuses. view is attached when the
// session moved as part of the failure.
func writeAppError(w http.ResponseWriter, err error, view *SessionView) {
	resp := ErrorResponse{Error: apperrors.PublicMessage(err), Code: apperrors.CodeOf(err)}

	var verr *apperrors.ValidationError
	var aerr *apperrors.AnalysisError
	var serr *apperrors.StorageError
	status := http.StatusInternalServerError
	switch {
	case errors.As(err, &verr):
		status = http.StatusBadRequest
		resp.Field = verr.Field
	case errors.As(err, &aerr):
		status = http.StatusBadGateway
		resp.Session = view
	case errors.As(err, &serr):
		status = http.StatusServiceUnavailable
		resp.Session = view
	case errors.Is(err, service.ErrSessionNotFound):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrSessionBusy), errors.Is(err, session.ErrInvalidTransition):
		status = http.StatusConflict
	case errors.Is(err, service.ErrInvalidCredentials):
		status = http.StatusUnauthorized
	}
	if status == http.StatusInternalServerError {
		resp.Error = "internal server error"
	}
	writeJSON(w, status, resp)
}
