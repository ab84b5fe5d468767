package domain

import "time"

// OrderItem mirrors a cart item's pricing fields with the customization set
// frozen at transfer time. Once created it is never modified: later cart
// edits must not change order history.
type OrderItem struct {
	ID              string                `json:"id"`
	OrderID         string                `json:"orderId"`
	ProductID       string                `json:"productId"`
	Quantity        int                   `json:"quantity"`
	Customizations  []FrozenCustomization `json:"customizations"`
	UnitPriceCents  int64                 `json:"unitPriceCents"`
	TotalPriceCents int64                 `json:"totalPriceCents"`
	Currency        string                `json:"currency"`
}

type CustomerInfo struct {
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone,omitempty"`
}

type DeliveryInfo struct {
	Address  Address `json:"address"`
	Urgency  string  `json:"urgency"`
	TimeSlot string  `json:"timeSlot,omitempty"`
}

type Address struct {
	StreetName string `json:"streetName"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}

type Order struct {
	ID                string       `json:"id"`
	Number            string       `json:"number"`
	CustomerInfo      CustomerInfo `json:"customerInfo"`
	DeliveryInfo      DeliveryInfo `json:"deliveryInfo"`
	PaymentMethod     string       `json:"paymentMethod"`
	Items             []OrderItem  `json:"items"`
	ItemsTotalCents   int64        `json:"itemsTotalCents"`
	DeliveryCostCents int64        `json:"deliveryCostCents"`
	TotalCents        int64        `json:"totalCents"`
	Currency          string       `json:"currency"`
	EstimatedDelivery time.Time    `json:"estimatedDelivery"`
	CreatedAt         time.Time    `json:"createdAt"`
}
