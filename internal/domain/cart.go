package domain

import "time"

// PriceLine is one row of a price breakdown: what a single customization
// entry contributed to the unit price.
type PriceLine struct {
	OptionID    string   `json:"optionId"`
	OptionName  string   `json:"optionName,omitempty"`
	ChoiceIDs   []string `json:"choiceIds,omitempty"`
	AmountCents int64    `json:"amountCents"`
}

// CartItem is a configured product owned by a session or customer,
// mutable until transferred to an order.
type CartItem struct {
	ID              string          `json:"id"`
	SessionID       string          `json:"-"`
	CustomerID      *string         `json:"customerId,omitempty"`
	ProductID       string          `json:"productId"`
	Quantity        int             `json:"quantity"`
	Customizations  []Customization `json:"customizations"`
	UnitPriceCents  int64           `json:"unitPriceCents"`
	TotalPriceCents int64           `json:"totalPriceCents"`
	PriceBreakdown  []PriceLine     `json:"priceBreakdown,omitempty"`
	Currency        string          `json:"currency"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}
