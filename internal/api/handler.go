package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"runtime"
	"time"

	"github.com/retail-insights/transactions-api/internal/domain"
)

// Handler holds dependencies for API handlers.
type Handler struct {
	repo    domain.Repository
	version string
}

// NewHandler creates a new API handler.
func NewHandler(repo domain.Repository, version string) *Handler {
	return &Handler{
		repo:    repo,
		version: version,
	}
}

// ListTransactions handles GET /api/v1/transactions/.
func (h *Handler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	q, err := parseListQuery(r)
	if err != nil {
		h.writeError(w, r, err, "Nenhuma transação encontrada com os filtros especificados")
		return
	}

	transactions, err := h.repo.ListTransactions(r.Context(), q)
	if err != nil {
		h.writeError(w, r, err, "Nenhuma transação encontrada com os filtros especificados")
		return
	}

	writeJSON(w, http.StatusOK, transactions)
}

// Summary handles GET /api/v1/transactions/summary.
func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	dr, err := parseDateRange(r)
	if err != nil {
		h.writeError(w, r, err, "Nenhuma transação encontrada no período especificado")
		return
	}

	summary, err := h.repo.Summary(r.Context(), dr)
	if err != nil {
		h.writeError(w, r, err, "Nenhuma transação encontrada no período especificado")
		return
	}

	writeJSON(w, http.StatusOK, summary)
}

// SummaryByCategory handles GET /api/v1/transactions/by-category.
func (h *Handler) SummaryByCategory(w http.ResponseWriter, r *http.Request) {
	dr, err := parseDateRange(r)
	if err != nil {
		h.writeError(w, r, err, "")
		return
	}

	summaries, err := h.repo.SummaryByCategory(r.Context(), dr)
	if err != nil {
		h.writeError(w, r, err, "")
		return
	}

	writeJSON(w, http.StatusOK, summaries)
}

// SummaryByCountry handles GET /api/v1/transactions/by-country.
func (h *Handler) SummaryByCountry(w http.ResponseWriter, r *http.Request) {
	dr, err := parseDateRange(r)
	if err != nil {
		h.writeError(w, r, err, "")
		return
	}

	summaries, err := h.repo.SummaryByCountry(r.Context(), dr)
	if err != nil {
		h.writeError(w, r, err, "")
		return
	}

	writeJSON(w, http.StatusOK, summaries)
}

// HealthV1 handles GET /api/v1/health: liveness only, no dependencies.
func (h *Handler) HealthV1(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// Health handles GET /health: probes the database and reports 503 with
// the error detail when it is unreachable.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.repo.Ping(r.Context()); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]any{
			"detail": map[string]string{
				"status": "unhealthy",
				"error":  err.Error(),
			},
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"status":     "healthy",
		"version":    h.version,
		"database":   "connected",
		"go_version": runtime.Version(),
	})
}

// Root handles GET /: service metadata.
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Transactions API is running",
		"version": h.version,
		"health":  "/health",
		"api":     "/api/v1",
	})
}

// writeError maps repository and validation outcomes to status codes.
// Internal error text is passed through to the body unredacted, keeping
// the debugging posture of the original deployment.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error, notFoundDetail string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"detail": notFoundDetail})
	case errors.Is(err, domain.ErrInvalidRange),
		errors.Is(err, domain.ErrOutOfWindow),
		errors.Is(err, domain.ErrInvalidParam):
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": err.Error()})
	default:
		slog.Error("query failed",
			"path", r.URL.Path,
			"error", err,
		)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"detail": err.Error()})
	}
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
