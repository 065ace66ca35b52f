package orders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"storefront/internal/database"
)

// Repository defines order persistence operations.
type Repository interface {
	Create(ctx context.Context, order *Order) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]Order, error)
	GetForUser(ctx context.Context, id, userID uuid.UUID) (*Order, error)
}

type pgRepository struct {
	db database.Service
}

// NewRepository creates a PostgreSQL-backed order repository.
func NewRepository(db database.Service) Repository {
	return &pgRepository{db: db}
}

// Create persists an order and its line items in one transaction.
func (r *pgRepository) Create(ctx context.Context, order *Order) error {
	order.CreatedAt = time.Now()

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx,
		`INSERT INTO orders (id, user_id, total, created_at) VALUES ($1, $2, $3, $4)`,
		order.ID, order.UserID, order.Total, order.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}

	for _, li := range order.Items {
		_, err = tx.Exec(ctx,
			`INSERT INTO order_items (order_id, product_id, name, qty, unit, unit_price)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			order.ID, li.ProductID, li.Name, li.Qty, li.Unit, li.UnitPrice,
		)
		if err != nil {
			return fmt.Errorf("failed to insert order item %q: %w", li.Name, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit order: %w", err)
	}

	return nil
}

// ListByUser returns the user's orders, newest first, with items loaded.
func (r *pgRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]Order, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, total, created_at FROM orders WHERE user_id = $1 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	orders := []Order{}
	for rows.Next() {
		var o Order
		if err := rows.Scan(&o.ID, &o.UserID, &o.Total, &o.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read orders: %w", err)
	}

	for i := range orders {
		items, err := r.loadItems(ctx, orders[i].ID)
		if err != nil {
			return nil, err
		}
		orders[i].Items = items
	}

	return orders, nil
}

// GetForUser returns a single order owned by the given user. Another user's
// order is indistinguishable from a missing one.
func (r *pgRepository) GetForUser(ctx context.Context, id, userID uuid.UUID) (*Order, error) {
	var o Order
	err := r.db.QueryRow(ctx,
		`SELECT id, user_id, total, created_at FROM orders WHERE id = $1 AND user_id = $2`,
		id, userID,
	).Scan(&o.ID, &o.UserID, &o.Total, &o.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	items, err := r.loadItems(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	o.Items = items

	return &o, nil
}

func (r *pgRepository) loadItems(ctx context.Context, orderID uuid.UUID) ([]LineItem, error) {
	rows, err := r.db.Query(ctx,
		`SELECT product_id, name, qty, unit, unit_price FROM order_items WHERE order_id = $1 ORDER BY id`,
		orderID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load order items: %w", err)
	}
	defer rows.Close()

	items := []LineItem{}
	for rows.Next() {
		var li LineItem
		if err := rows.Scan(&li.ProductID, &li.Name, &li.Qty, &li.Unit, &li.UnitPrice); err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		items = append(items, li)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read order items: %w", err)
	}

	return items, nil
}
