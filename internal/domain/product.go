package domain

import "time"

type Product struct {
	ID             string            `json:"id"`
	Key            string            `json:"key"`
	SKU            string            `json:"sku"`
	Name           map[string]string `json:"name"`
	Description    map[string]string `json:"description,omitempty"`
	BasePriceCents int64             `json:"basePriceCents"`
	Currency       string            `json:"currency"`
	Available      bool              `json:"available"`
	CreatedAt      time.Time         `json:"createdAt"`
}
