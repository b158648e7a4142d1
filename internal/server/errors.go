package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/charmbracelet/log"

	"github.com/Flyrell/physiotrack/internal/adherence"
	"github.com/Flyrell/physiotrack/internal/clinic"
	"github.com/Flyrell/physiotrack/internal/notify"
	"github.com/Flyrell/physiotrack/internal/store"
)

var (
	errUnauthenticated = errors.New("missing user identity")
	errBadJSON         = errors.New("malformed JSON body")
)

type errorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	var verr *clinic.ValidationError
	switch {
	case errors.As(err, &verr):
		return http.StatusUnprocessableEntity
	case errors.Is(err, errUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, errBadJSON), errors.Is(err, adherence.ErrInvalidArgument), errors.Is(err, clinic.ErrWrongRole):
		return http.StatusBadRequest
	case errors.Is(err, clinic.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, store.ErrNotFound), errors.Is(err, notify.ErrNoSubscription):
		return http.StatusNotFound
	case errors.Is(err, store.ErrFeedbackExists), errors.Is(err, store.ErrEmailExists), errors.Is(err, store.ErrNoActiveProtocol):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	resp := errorResponse{Error: err.Error()}

	var verr *clinic.ValidationError
	if errors.As(err, &verr) {
		resp = errorResponse{Error: "invalid input", Fields: verr.Fields}
	}
	if status == http.StatusInternalServerError {
		log.FromContext(r.Context()).Error("request failed", "err", err)
		if !errors.Is(err, notify.ErrNotConfigured) {
			resp.Error = http.StatusText(status)
		}
	}

	writeJSON(w, r, status, resp)
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.FromContext(r.Context()).Error("failed to encode response", "err", err)
	}
}
