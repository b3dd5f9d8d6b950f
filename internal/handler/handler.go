package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/treasurywatch/debt-tracker/internal/config"
	"github.com/treasurywatch/debt-tracker/internal/integrations/treasury"
	"github.com/treasurywatch/debt-tracker/internal/models"
	"github.com/treasurywatch/debt-tracker/internal/service"
)

// Handler exposes the prepared series, metrics and display table to the
// presentation layer. It maps fetch failures to machine-readable error kinds;
// rendering those as user-visible messages is the presentation layer's job.
type Handler struct {
	svc *service.Service
	now func() time.Time
}

func NewHandler(svc *service.Service) *Handler {
	return &Handler{svc: svc, now: time.Now}
}

// errorResponse is the JSON body for any failed request
type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// GetSeries handles GET /api/debt/series?window=...&order=asc|desc
func (h *Handler) GetSeries(w http.ResponseWriter, r *http.Request) {
	series, ok := h.fetchSeries(w, r)
	if !ok {
		return
	}
	if r.URL.Query().Get("order") == "asc" {
		series = series.Ascending()
	}
	respondJSON(w, http.StatusOK, series)
}

// GetMetrics handles GET /api/debt/metrics?window=...
func (h *Handler) GetMetrics(w http.ResponseWriter, r *http.Request) {
	series, ok := h.fetchSeries(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, h.svc.Metrics(series))
}

// GetDisplayTable handles GET /api/debt/table?window=...
func (h *Handler) GetDisplayTable(w http.ResponseWriter, r *http.Request) {
	series, ok := h.fetchSeries(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, h.svc.DisplayTable(series))
}

// InvalidateCache handles POST /api/cache/invalidate
func (h *Handler) InvalidateCache(w http.ResponseWriter, r *http.Request) {
	h.svc.Invalidate()
	w.WriteHeader(http.StatusNoContent)
}

// Health handles GET /health
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// fetchSeries resolves the window parameter and retrieves the series, writing
// the error response itself when anything goes wrong. The epoch is the
// server's current UTC day, so the cache rolls over at midnight.
func (h *Handler) fetchSeries(w http.ResponseWriter, r *http.Request) (models.DebtSeries, bool) {
	windowDays, ok := config.WindowDays(r.URL.Query().Get("window"))
	if !ok {
		respondJSON(w, http.StatusBadRequest, errorResponse{
			Error:   "bad_request",
			Message: "window must be one of short, medium, full",
		})
		return nil, false
	}

	epoch := h.now().UTC().Format("2006-01-02")
	series, err := h.svc.Series(r.Context(), windowDays, epoch)
	if err != nil {
		kind := treasury.KindOf(err)
		status := http.StatusBadGateway
		label := kind.String()
		if kind == treasury.KindUnknown {
			status = http.StatusInternalServerError
			label = "internal"
		}
		respondJSON(w, status, errorResponse{Error: label, Message: err.Error()})
		return nil, false
	}
	if len(series) == 0 {
		respondJSON(w, http.StatusServiceUnavailable, errorResponse{
			Error:   "no_data",
			Message: "no debt records available yet",
		})
		return nil, false
	}
	return series, true
}

func respondJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
