package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"

	"github.com/Flyrell/physiotrack/internal/adherence"
	"github.com/Flyrell/physiotrack/internal/clinic"
	"github.com/Flyrell/physiotrack/internal/report"
	ptmiddleware "github.com/Flyrell/physiotrack/internal/server/middleware"
)

// maxBodyBytes caps JSON request bodies.
const maxBodyBytes = 1 << 20

type Handler struct {
	clinic *clinic.Service
}

func NewHandler(c *clinic.Service) *Handler {
	return &Handler{clinic: c}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("%w: %v", errBadJSON, err)
	}
	return nil
}

func currentUser(r *http.Request) (string, error) {
	id, ok := ptmiddleware.UserID(r.Context())
	if !ok {
		return "", errUnauthenticated
	}
	return id, nil
}

func (h *Handler) RegisterProfile(w http.ResponseWriter, r *http.Request) {
	var in clinic.NewProfile
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, r, err)
		return
	}
	// The identity provider's user ID wins over anything in the body.
	if id, ok := ptmiddleware.UserID(r.Context()); ok {
		in.ID = id
	}

	p, err := h.clinic.RegisterProfile(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, p)
}

func (h *Handler) CurrentProfile(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUser(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	p, err := h.clinic.Profile(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, p)
}

func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUser(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var in clinic.ProfileUpdate
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, r, err)
		return
	}

	p, err := h.clinic.UpdateProfile(r.Context(), userID, in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, p)
}

func (h *Handler) Calendar(w http.ResponseWriter, r *http.Request) {
	if _, err := currentUser(r); err != nil {
		writeError(w, r, err)
		return
	}
	athleteID := chi.URLParam(r, "id")

	year := h.clinic.Today().Year
	if raw := r.URL.Query().Get("year"); raw != "" {
		y, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, r, fmt.Errorf("%w: year %q is not a number", adherence.ErrInvalidArgument, raw))
			return
		}
		year = y
	}

	cal, err := h.clinic.Calendar(r.Context(), athleteID, year)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, calendarResponse{
		Calendar: cal,
		Summary:  cal.Counts(),
		Weekdays: adherence.WeekdayInitials,
	})
}

type calendarResponse struct {
	adherence.Calendar
	Summary  adherence.Summary `json:"summary"`
	Weekdays [7]string         `json:"weekdays"`
}

func (h *Handler) RecentFeedback(w http.ResponseWriter, r *http.Request) {
	if _, err := currentUser(r); err != nil {
		writeError(w, r, err)
		return
	}
	athleteID := chi.URLParam(r, "id")

	limit := clinic.RecentLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeError(w, r, fmt.Errorf("%w: limit must be a positive number", errBadJSON))
			return
		}
		limit = n
	}

	list, err := h.clinic.RecentFeedback(r.Context(), athleteID, limit)
	if err != nil {
		writeError(w, r, err)
		return
	}
	summary, err := h.clinic.FeedbackSummary(r.Context(), athleteID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, map[string]any{
		"feedback": list,
		"summary":  summary,
	})
}

func (h *Handler) Report(w http.ResponseWriter, r *http.Request) {
	if _, err := currentUser(r); err != nil {
		writeError(w, r, err)
		return
	}
	athleteID := chi.URLParam(r, "id")

	data, err := h.clinic.Report(r.Context(), athleteID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	pdf, err := report.RenderPDF(data)
	if err != nil {
		writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", report.FileName(data.PatientName)))
	w.Header().Set("Content-Length", strconv.Itoa(len(pdf)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(pdf); err != nil {
		log.FromContext(r.Context()).Error("failed to write report", "err", err)
	}
}

func (h *Handler) SubmitFeedback(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUser(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var in clinic.NewFeedback
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, r, err)
		return
	}

	fb, err := h.clinic.SubmitFeedback(r.Context(), userID, in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, fb)
}

func (h *Handler) CreateProtocol(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUser(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var in clinic.NewProtocol
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, r, err)
		return
	}

	p, err := h.clinic.CreateProtocol(r.Context(), userID, in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, p)
}

func (h *Handler) FinishProtocol(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUser(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.clinic.FinishProtocol(r.Context(), userID, chi.URLParam(r, "id")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) SaveSubscription(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUser(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var in clinic.NewSubscription
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.clinic.SaveSubscription(r.Context(), userID, in); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]bool{"success": true})
}

func (h *Handler) TestNotification(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUser(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.clinic.TestNotification(r.Context(), userID); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]any{
		"success": true,
		"message": "Notificação enviada com sucesso!",
	})
}
