package orders

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrOrderNotFound is returned when an order does not exist for the caller
	ErrOrderNotFound = errors.New("order not found")
	// ErrEmptyOrder is returned when an order carries no line items
	ErrEmptyOrder = errors.New("order has no items")
	// ErrInvalidItem is returned when a line item fails validation
	ErrInvalidItem = errors.New("invalid line item")
)

// QtyStep is the quantity granularity; the store sells in half-unit steps.
const QtyStep = 0.5

// LineItem is one typed order line. Items are validated before they reach
// the store; nothing schema-less is persisted.
type LineItem struct {
	ProductID int64   `json:"product_id"`
	Name      string  `json:"name"`
	Qty       float64 `json:"qty"`
	Unit      string  `json:"unit"`
	UnitPrice float64 `json:"unit_price"`
}

// Subtotal returns the line total.
func (li LineItem) Subtotal() float64 {
	return li.Qty * li.UnitPrice
}

// Validate checks the line item invariants enforced at the store boundary.
func (li LineItem) Validate() error {
	if li.ProductID <= 0 {
		return fmt.Errorf("%w %q: product id is required", ErrInvalidItem, li.Name)
	}
	if li.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidItem)
	}
	if li.Unit == "" {
		return fmt.Errorf("%w %q: unit is required", ErrInvalidItem, li.Name)
	}
	if li.Qty < QtyStep {
		return fmt.Errorf("%w %q: quantity must be at least %v", ErrInvalidItem, li.Name, QtyStep)
	}
	if steps := li.Qty / QtyStep; math.Abs(steps-math.Round(steps)) > 1e-9 {
		return fmt.Errorf("%w %q: quantity must be a multiple of %v", ErrInvalidItem, li.Name, QtyStep)
	}
	if li.UnitPrice < 0 {
		return fmt.Errorf("%w %q: unit price must not be negative", ErrInvalidItem, li.Name)
	}
	return nil
}

// Order is a persisted customer order.
type Order struct {
	ID        uuid.UUID  `json:"id"`
	UserID    uuid.UUID  `json:"user_id"`
	Items     []LineItem `json:"items"`
	Total     float64    `json:"total"`
	CreatedAt time.Time  `json:"created_at"`
}

// ComputeTotal sums the line subtotals. The stored total is always computed
// server-side; any client-supplied total is ignored.
func ComputeTotal(items []LineItem) float64 {
	var total float64
	for _, li := range items {
		total += li.Subtotal()
	}
	return total
}

// ValidateItems checks every line item and the order-level invariants.
func ValidateItems(items []LineItem) error {
	if len(items) == 0 {
		return ErrEmptyOrder
	}
	for _, li := range items {
		if err := li.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// CreateRequest is the request payload for POST /orders
type CreateRequest struct {
	Items []LineItem `json:"items" binding:"required"`
}

// CreateResponse is the response after placing an order. It carries the
// checkout message and WhatsApp link the client opens to complete the order.
type CreateResponse struct {
	Order       *Order `json:"order"`
	Message     string `json:"message"`
	WhatsAppURL string `json:"whatsapp_url"`
}
