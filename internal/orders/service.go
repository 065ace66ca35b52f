// Package orders turns a cart into a persisted order with typed line items
// and composes the WhatsApp checkout message the client hands to the shop.
package orders

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
)

// Service handles order placement and retrieval
type Service struct {
	repo      Repository
	shopPhone string
	shopName  string
}

// NewService creates an order service. shopPhone is the WhatsApp number in
// international format without the plus sign.
func NewService(repo Repository, shopPhone, shopName string) *Service {
	return &Service{repo: repo, shopPhone: shopPhone, shopName: shopName}
}

// Place validates the line items, recomputes the total server-side,
// persists the order under the given user, and returns it with the
// checkout message and WhatsApp link.
func (s *Service) Place(ctx context.Context, userID uuid.UUID, items []LineItem) (*CreateResponse, error) {
	if err := ValidateItems(items); err != nil {
		return nil, err
	}

	order := &Order{
		ID:     uuid.New(),
		UserID: userID,
		Items:  items,
		Total:  ComputeTotal(items),
	}

	if err := s.repo.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to persist order: %w", err)
	}

	message := BuildMessage(order.Items, order.Total)

	slog.Info("order placed", "order_id", order.ID, "user_id", userID, "total", order.Total)

	return &CreateResponse{
		Order:       order,
		Message:     message,
		WhatsAppURL: BuildURL(s.shopPhone, message),
	}, nil
}

// History returns the user's orders, newest first.
func (s *Service) History(ctx context.Context, userID uuid.UUID) ([]Order, error) {
	return s.repo.ListByUser(ctx, userID)
}

// Get returns one of the user's orders.
func (s *Service) Get(ctx context.Context, id, userID uuid.UUID) (*Order, error) {
	return s.repo.GetForUser(ctx, id, userID)
}

// Invoice renders a printable invoice for one of the user's orders.
func (s *Service) Invoice(ctx context.Context, id, userID uuid.UUID) (string, error) {
	order, err := s.repo.GetForUser(ctx, id, userID)
	if err != nil {
		return "", err
	}
	return RenderInvoice(order, s.shopName), nil
}
