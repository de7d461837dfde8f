package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"bartab/internal/catalog"
	"bartab/internal/pricing"
)

type Handler struct {
	svc *catalog.Service
}

func NewHandler(svc *catalog.Service) *Handler {
	return &Handler{svc: svc}
}

// CategoryRoutes mounts category reads; writes live in CategoryAdminRoutes.
func (h *Handler) CategoryRoutes(r chi.Router) {
	r.Get("/", h.listCategories)
}

func (h *Handler) CategoryAdminRoutes(r chi.Router) {
	r.Post("/", h.createCategory)
	r.Patch("/{id}", h.updateCategory)
	r.Delete("/{id}", h.deleteCategory)
}

func (h *Handler) ItemRoutes(r chi.Router) {
	r.Get("/", h.listItems)
	r.Get("/{id}", h.getItem)
}

func (h *Handler) ItemAdminRoutes(r chi.Router) {
	r.Post("/", h.createItem)
	r.Patch("/{id}", h.updateItem)
	r.Delete("/{id}", h.deleteItem)
}

func (h *Handler) PresetRoutes(r chi.Router) {
	r.Get("/", h.listPresets)
}

func (h *Handler) PresetAdminRoutes(r chi.Router) {
	r.Post("/", h.createPreset)
	r.Patch("/{id}", h.updatePreset)
	r.Delete("/{id}", h.deletePreset)
}

// ---------------- Categories ----------------

func (h *Handler) listCategories(w http.ResponseWriter, r *http.Request) {
	cats, err := h.svc.Categories(r.Context())
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	out := make([]categoryResponse, len(cats))
	for i, c := range cats {
		out[i] = toCategoryResponse(c)
	}

	writeJSON(w, http.StatusOK, out)
}

type categoryRequest struct {
	Name string `json:"name"`
}

func (h *Handler) createCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	c, err := h.svc.CreateCategory(r.Context(), req.Name)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusCreated, toCategoryResponse(c))
}

func (h *Handler) updateCategory(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req categoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	c := &catalog.Category{ID: id, Name: req.Name}
	if err := h.svc.UpdateCategory(r.Context(), c); err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toCategoryResponse(c))
}

func (h *Handler) deleteCategory(w http.ResponseWriter, r *http.Request) {
	h.deleteByID(w, r, h.svc.DeleteCategory)
}

// ---------------- Items ----------------

func (h *Handler) listItems(w http.ResponseWriter, r *http.Request) {
	filter := catalog.ItemFilter{
		Category: r.URL.Query().Get("category"),
	}

	if s := r.URL.Query().Get("active"); s != "" {
		active := s == "true"
		filter.Active = &active
	}

	items, err := h.svc.Items(r.Context(), filter)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	out := make([]itemResponse, len(items))
	for i, it := range items {
		out[i] = toItemResponse(it)
	}

	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) getItem(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	it, err := h.svc.Item(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toItemResponse(it))
}

type createItemRequest struct {
	Name        string              `json:"name"`
	CategoryID  int64               `json:"category_id"`
	Price       decimal.Decimal     `json:"price"`
	PricingMode catalog.PricingMode `json:"pricing_mode"`
	Note        string              `json:"note"`
	Active      *bool               `json:"active,omitempty"`
}

func (h *Handler) createItem(w http.ResponseWriter, r *http.Request) {
	var req createItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	it, err := h.svc.CreateItem(r.Context(), &catalog.Item{
		Name:        req.Name,
		CategoryID:  req.CategoryID,
		Price:       pricing.Round(req.Price),
		PricingMode: req.PricingMode,
		Note:        req.Note,
		Active:      active,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toItemResponse(it))
}

type updateItemRequest struct {
	Name        *string              `json:"name,omitempty"`
	CategoryID  *int64               `json:"category_id,omitempty"`
	Price       *decimal.Decimal     `json:"price,omitempty"`
	PricingMode *catalog.PricingMode `json:"pricing_mode,omitempty"`
	Note        *string              `json:"note,omitempty"`
	Active      *bool                `json:"active,omitempty"`
}

func (h *Handler) updateItem(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req updateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	it, err := h.svc.Item(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}

	if req.Name != nil {
		it.Name = *req.Name
	}

	if req.CategoryID != nil {
		it.CategoryID = *req.CategoryID
	}

	if req.Price != nil {
		it.Price = pricing.Round(*req.Price)
	}

	if req.PricingMode != nil {
		it.PricingMode = *req.PricingMode
	}

	if req.Note != nil {
		it.Note = *req.Note
	}

	if req.Active != nil {
		it.Active = *req.Active
	}

	updated, err := h.svc.UpdateItem(r.Context(), it)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toItemResponse(updated))
}

func (h *Handler) deleteItem(w http.ResponseWriter, r *http.Request) {
	h.deleteByID(w, r, h.svc.DeleteItem)
}

// ---------------- Coffee presets ----------------

func (h *Handler) listPresets(w http.ResponseWriter, r *http.Request) {
	presets, err := h.svc.CoffeePresets(r.Context())
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	out := make([]presetResponse, len(presets))
	for i, p := range presets {
		out[i] = toPresetResponse(p)
	}

	writeJSON(w, http.StatusOK, out)
}

type presetRequest struct {
	Label string          `json:"label"`
	GMin  decimal.Decimal `json:"g_min"`
	GMax  decimal.Decimal `json:"g_max"`
	Extra decimal.Decimal `json:"extra"`
}

func (h *Handler) createPreset(w http.ResponseWriter, r *http.Request) {
	var req presetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	p, err := h.svc.CreateCoffeePreset(r.Context(), &catalog.CoffeePreset{
		Label: req.Label,
		GMin:  req.GMin,
		GMax:  req.GMax,
		Extra: pricing.Round(req.Extra),
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusCreated, toPresetResponse(p))
}

func (h *Handler) updatePreset(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	p, err := h.svc.CoffeePreset(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}

	var req presetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	p.Label = req.Label
	p.GMin = req.GMin
	p.GMax = req.GMax
	p.Extra = pricing.Round(req.Extra)

	if err := h.svc.UpdateCoffeePreset(r.Context(), p); err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toPresetResponse(p))
}

func (h *Handler) deletePreset(w http.ResponseWriter, r *http.Request) {
	h.deleteByID(w, r, h.svc.DeleteCoffeePreset)
}

// ---------------- helpers ----------------

func (h *Handler) deleteByID(w http.ResponseWriter, r *http.Request, del func(ctx context.Context, id int64) error) {
	id, err := parseID(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := del(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, catalog.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	default:
		http.Error(w, err.Error(), http.StatusBadRequest)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func parseID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}
