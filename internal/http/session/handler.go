package session

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"bartab/internal/ledger"
	"bartab/internal/session"
)

type Handler struct {
	sessions *session.Service
	ledger   *ledger.Service
}

func NewHandler(sessions *session.Service, ledgerSvc *ledger.Service) *Handler {
	return &Handler{sessions: sessions, ledger: ledgerSvc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/active", h.active)
}

// AdminRoutes mounts session rotation, which settles the running period.
func (h *Handler) AdminRoutes(r chi.Router) {
	r.Post("/reset", h.reset)
}

type sessionResponse struct {
	ID        int64      `json:"id"`
	StartedAt time.Time  `json:"started_at"`
	EndedAt   *time.Time `json:"ended_at"`
}

func toSessionResponse(s *session.Session) sessionResponse {
	return sessionResponse{ID: s.ID, StartedAt: s.StartedAt, EndedAt: s.EndedAt}
}

type personTotalResponse struct {
	PersonID   int64  `json:"person_id"`
	PersonName string `json:"person_name"`
	Total      string `json:"total"`
	CountItems int64  `json:"count_items"`
}

type summaryResponse struct {
	Session   sessionResponse       `json:"session"`
	PerPerson []personTotalResponse `json:"per_person"`
	Total     string                `json:"total"`
}

func (h *Handler) active(w http.ResponseWriter, r *http.Request) {
	summary, err := h.ledger.ActiveSummary(r.Context())
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	resp := summaryResponse{
		Session:   toSessionResponse(summary.Session),
		PerPerson: make([]personTotalResponse, len(summary.PerPerson)),
		Total:     summary.Total.StringFixed(3),
	}
	for i, pt := range summary.PerPerson {
		resp.PerPerson[i] = personTotalResponse{
			PersonID:   pt.PersonID,
			PersonName: pt.Name,
			Total:      pt.Total.StringFixed(3),
			CountItems: pt.Count,
		}
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type resetResponse struct {
	Previous sessionResponse `json:"previous"`
	Active   sessionResponse `json:"active"`
}

func (h *Handler) reset(w http.ResponseWriter, r *http.Request) {
	closed, fresh, err := h.sessions.CloseAndRotate(r.Context())
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resetResponse{
		Previous: toSessionResponse(closed),
		Active:   toSessionResponse(fresh),
	}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
