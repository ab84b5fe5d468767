// Package delivery is the black-box delivery cost collaborator. The order
// path only depends on the Calculator interface; the flat-rate table below
// keeps the service runnable without the real zone calculator.
package delivery

import (
	"context"
	"strings"
	"time"

	"wreathworks/internal/domain"
)

// Cost is the collaborator's answer for one delivery.
type Cost struct {
	BaseCostCents     int64     `json:"baseCostCents"`
	TimeSlotCostCents int64     `json:"timeSlotCostCents"`
	TotalCostCents    int64     `json:"totalCostCents"`
	EstimatedDelivery time.Time `json:"estimatedDeliveryDate"`
}

type Calculator interface {
	CalculateDeliveryCost(ctx context.Context, address domain.Address, urgency, timeSlot string) (Cost, error)
}

// FlatRates is a table-driven Calculator: a base fee per urgency tier plus a
// surcharge for a named time slot.
type FlatRates struct {
	Standard int64
	Express  int64
	SameDay  int64
	Slot     int64
	Now      func() time.Time
}

func NewFlatRates() *FlatRates {
	return &FlatRates{Standard: 9900, Express: 19900, SameDay: 29900, Slot: 5000, Now: time.Now}
}

func (f *FlatRates) CalculateDeliveryCost(_ context.Context, _ domain.Address, urgency, timeSlot string) (Cost, error) {
	now := f.Now()
	cost := Cost{BaseCostCents: f.Standard, EstimatedDelivery: now.AddDate(0, 0, 3)}
	switch strings.ToLower(strings.TrimSpace(urgency)) {
	case "express":
		cost.BaseCostCents = f.Express
		cost.EstimatedDelivery = now.AddDate(0, 0, 1)
	case "same_day", "sameday":
		cost.BaseCostCents = f.SameDay
		cost.EstimatedDelivery = now
	}
	if strings.TrimSpace(timeSlot) != "" {
		cost.TimeSlotCostCents = f.Slot
	}
	cost.TotalCostCents = cost.BaseCostCents + cost.TimeSlotCostCents
	return cost, nil
}
