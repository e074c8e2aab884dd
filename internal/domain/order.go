// Package domain defines the negotiation data model shared by all components.
package domain

import (
	"fmt"
	"strings"
)

// Priority classifies how urgently an order must be fulfilled.
type Priority string

const (
	PriorityStandard Priority = "standard"
	PriorityRush     Priority = "rush"
	PriorityCritical Priority = "critical"
)

// Order is a request to fulfill. Immutable once submitted to a negotiation.
type Order struct {
	ID                    string   `json:"id"`
	Customer              string   `json:"customer"`
	Product               string   `json:"product"`
	Quantity              int      `json:"quantity"`
	RequestedPrice        float64  `json:"requestedPrice"`
	RequestedDeliveryDays int      `json:"requestedDeliveryDays"`
	Priority              Priority `json:"priority"`
}

// Validate checks that the order is well-formed. It must pass before any
// evaluator runs; a failing order never reaches the negotiation pipeline.
func (o Order) Validate() error {
	var errs []string
	if o.ID == "" {
		errs = append(errs, "id is required")
	}
	if o.Customer == "" {
		errs = append(errs, "customer is required")
	}
	if o.Product == "" {
		errs = append(errs, "product is required")
	}
	if o.Quantity <= 0 {
		errs = append(errs, "quantity must be positive")
	}
	if o.RequestedPrice <= 0 {
		errs = append(errs, "requestedPrice must be positive")
	}
	if o.RequestedDeliveryDays <= 0 {
		errs = append(errs, "requestedDeliveryDays must be positive")
	}
	switch o.Priority {
	case PriorityStandard, PriorityRush, PriorityCritical:
	default:
		errs = append(errs, fmt.Sprintf("unknown priority %q", o.Priority))
	}
	if len(errs) > 0 {
		return fmt.Errorf("order: invalid: %s", strings.Join(errs, "; "))
	}
	return nil
}

// Rushed reports whether the order carries an expedited priority class.
func (o Order) Rushed() bool {
	return o.Priority == PriorityRush || o.Priority == PriorityCritical
}
