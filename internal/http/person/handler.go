package person

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"bartab/internal/ledger"
	"bartab/internal/payqr"
	"bartab/internal/person"
)

// QRConfig carries the payment details embedded in pay-by-square codes.
type QRConfig struct {
	Account        string
	Currency       string
	VariableSymbol string
	Message        string
}

type Handler struct {
	svc    *person.Service
	ledger *ledger.Service
	qr     QRConfig
}

func NewHandler(svc *person.Service, ledgerSvc *ledger.Service, qr QRConfig) *Handler {
	return &Handler{svc: svc, ledger: ledgerSvc, qr: qr}
}

// Routes mounts person management. People are freely managed without the
// admin gate so guests can be added at the tap.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/{id}", h.get)
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.deactivate)
	r.Post("/{id}/reset-debt", h.resetDebt)
	r.Get("/{id}/pay-by-square", h.payBySquare)
}

type personResponse struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	IsGuest      bool      `json:"is_guest"`
	Active       bool      `json:"active"`
	TotalBeers   int64     `json:"total_beers"`
	TotalCoffees int64     `json:"total_coffees"`
	CreatedAt    time.Time `json:"created_at"`
}

func toResponse(p *person.Person) personResponse {
	return personResponse{
		ID:           p.ID,
		Name:         p.Name,
		IsGuest:      p.IsGuest,
		Active:       p.Active,
		TotalBeers:   p.TotalBeers,
		TotalCoffees: p.TotalCoffees,
		CreatedAt:    p.CreatedAt,
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	people, err := h.svc.List(r.Context())
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	out := make([]personResponse, len(people))
	for i, p := range people {
		out[i] = toResponse(p)
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(out); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type createPersonRequest struct {
	Name    string `json:"name"`
	IsGuest bool   `json:"is_guest"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createPersonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	p, err := h.svc.Create(r.Context(), req.Name, req.IsGuest)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toResponse(p)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	p, ok := h.lookup(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(p)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type updatePersonRequest struct {
	Name         *string `json:"name,omitempty"`
	IsGuest      *bool   `json:"is_guest,omitempty"`
	Active       *bool   `json:"active,omitempty"`
	TotalBeers   *int64  `json:"total_beers,omitempty"`
	TotalCoffees *int64  `json:"total_coffees,omitempty"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	p, ok := h.lookup(w, r)
	if !ok {
		return
	}

	var req updatePersonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.Name != nil {
		p.Name = *req.Name
	}

	if req.IsGuest != nil {
		p.IsGuest = *req.IsGuest
	}

	if req.Active != nil {
		p.Active = *req.Active
	}

	// Explicit counter values are the administrative correction path; nothing
	// else ever decrements the lifetime counters.
	if req.TotalBeers != nil {
		p.TotalBeers = *req.TotalBeers
	}

	if req.TotalCoffees != nil {
		p.TotalCoffees = *req.TotalCoffees
	}

	if err := h.svc.Update(r.Context(), p); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(p)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) deactivate(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.svc.Deactivate(r.Context(), id); err != nil {
		if errors.Is(err, person.ErrNotFound) {
			http.Error(w, "person not found", http.StatusNotFound)
			return
		}

		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) resetDebt(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.ledger.ResetDebt(r.Context(), id); err != nil {
		if errors.Is(err, person.ErrNotFound) {
			http.Error(w, "person not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(map[string]bool{"ok": true}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// payBySquare renders a payment QR for the person's outstanding debt in the
// active session.
func (h *Handler) payBySquare(w http.ResponseWriter, r *http.Request) {
	p, ok := h.lookup(w, r)
	if !ok {
		return
	}

	debt, err := h.ledger.PersonDebt(r.Context(), p.ID)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	png, err := payqr.PNG(payqr.Payload{
		Account:        h.qr.Account,
		Amount:         debt,
		Currency:       h.qr.Currency,
		VariableSymbol: h.qr.VariableSymbol,
		Message:        h.qr.Message + " " + p.Name,
	})
	if err != nil {
		slog.Error("failed to render payment qr", "person", p.ID, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "image/png")

	if _, err := w.Write(png); err != nil {
		slog.Error("failed to write qr response", "error", err)
	}
}

func (h *Handler) lookup(w http.ResponseWriter, r *http.Request) (*person.Person, bool) {
	id, err := parseID(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return nil, false
	}

	p, err := h.svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, person.ErrNotFound) {
			http.Error(w, "person not found", http.StatusNotFound)
			return nil, false
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return nil, false
	}

	return p, true
}

func parseID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}
