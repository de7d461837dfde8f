package catalog

import (
	"time"

	"bartab/internal/catalog"
)

type categoryResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func toCategoryResponse(c *catalog.Category) categoryResponse {
	return categoryResponse{ID: c.ID, Name: c.Name}
}

type itemResponse struct {
	ID          int64            `json:"id"`
	Name        string           `json:"name"`
	Category    categoryResponse `json:"category"`
	Price       string           `json:"price"`
	PricingMode string           `json:"pricing_mode"`
	Note        string           `json:"note,omitempty"`
	Active      bool             `json:"active"`
	CreatedAt   time.Time        `json:"created_at"`
}

func toItemResponse(it *catalog.Item) itemResponse {
	resp := itemResponse{
		ID:          it.ID,
		Name:        it.Name,
		Price:       it.Price.StringFixed(3),
		PricingMode: string(it.PricingMode),
		Note:        it.Note,
		Active:      it.Active,
		CreatedAt:   it.CreatedAt,
	}

	if it.Category != nil {
		resp.Category = toCategoryResponse(it.Category)
	}

	return resp
}

type presetResponse struct {
	ID        int64     `json:"id"`
	Label     string    `json:"label,omitempty"`
	GMin      string    `json:"g_min"`
	GMax      string    `json:"g_max"`
	Extra     string    `json:"extra"`
	CreatedAt time.Time `json:"created_at"`
}

func toPresetResponse(p *catalog.CoffeePreset) presetResponse {
	return presetResponse{
		ID:        p.ID,
		Label:     p.Label,
		GMin:      p.GMin.StringFixed(3),
		GMax:      p.GMax.StringFixed(3),
		Extra:     p.Extra.StringFixed(3),
		CreatedAt: p.CreatedAt,
	}
}
