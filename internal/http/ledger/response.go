package ledger

import (
	"time"

	"bartab/internal/ledger"
)

type personRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type itemRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type transactionResponse struct {
	ID        int64     `json:"id"`
	SessionID int64     `json:"session_id"`
	Person    personRef `json:"person"`
	Item      itemRef   `json:"item"`
	Quantity  string    `json:"quantity"`
	Price     string    `json:"price"`
	CreatedAt time.Time `json:"created_at"`
}

type undoResponse struct {
	Undone transactionResponse `json:"undone"`
}

type listResponse struct {
	Count   int64                 `json:"count"`
	Results []transactionResponse `json:"results"`
}

func toResponse(t *ledger.Transaction) transactionResponse {
	return transactionResponse{
		ID:        t.ID,
		SessionID: t.SessionID,
		Person:    personRef{ID: t.PersonID, Name: t.PersonName},
		Item:      itemRef{ID: t.ItemID, Name: t.ItemName},
		Quantity:  t.Quantity.StringFixed(3),
		Price:     t.Price.StringFixed(3),
		CreatedAt: t.CreatedAt,
	}
}

func toResponseList(txs []*ledger.Transaction) []transactionResponse {
	out := make([]transactionResponse, len(txs))
	for i, t := range txs {
		out[i] = toResponse(t)
	}

	return out
}
