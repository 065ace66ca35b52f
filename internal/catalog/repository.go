package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"

	"storefront/internal/database"
)

// ErrProductNotFound is returned when a product does not exist
var ErrProductNotFound = errors.New("product not found")

// Repository defines catalog persistence operations.
type Repository interface {
	GetAll(ctx context.Context) ([]Product, error)
	Search(ctx context.Context, term string) ([]Product, error)
	GetByID(ctx context.Context, id int64) (*Product, error)
	Seed(ctx context.Context, products []Product) error
}

type pgRepository struct {
	db database.Service
}

// NewRepository creates a PostgreSQL-backed catalog repository.
func NewRepository(db database.Service) Repository {
	return &pgRepository{db: db}
}

const productColumns = `id, name, price, unit, image, category, created_at, updated_at`

// GetAll retrieves the full catalog ordered by product ID.
func (r *pgRepository) GetAll(ctx context.Context) ([]Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY id`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	return scanProducts(rows)
}

// Search retrieves products whose name contains the term, case-insensitive.
func (r *pgRepository) Search(ctx context.Context, term string) ([]Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE name ILIKE '%' || $1 || '%' ORDER BY id`

	rows, err := r.db.Query(ctx, query, term)
	if err != nil {
		return nil, fmt.Errorf("failed to search products: %w", err)
	}
	defer rows.Close()

	return scanProducts(rows)
}

// GetByID retrieves a single product.
func (r *pgRepository) GetByID(ctx context.Context, id int64) (*Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`

	var p Product
	err := r.db.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.Name, &p.Price, &p.Unit, &p.Image, &p.Category, &p.CreatedAt, &p.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	return &p, nil
}

// Seed inserts the given products when the catalog is empty.
func (r *pgRepository) Seed(ctx context.Context, products []Product) error {
	var count int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM products`).Scan(&count); err != nil {
		return fmt.Errorf("failed to count products: %w", err)
	}
	if count > 0 {
		return nil
	}

	query := `
		INSERT INTO products (name, price, unit, image, category, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
	`
	for _, p := range products {
		if _, err := r.db.Exec(ctx, query, p.Name, p.Price, p.Unit, p.Image, p.Category); err != nil {
			return fmt.Errorf("failed to seed product %q: %w", p.Name, err)
		}
	}

	slog.Info("seeded catalog", "products", len(products))
	return nil
}

func scanProducts(rows pgx.Rows) ([]Product, error) {
	products := []Product{}
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.Unit, &p.Image, &p.Category, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read products: %w", err)
	}
	return products, nil
}

// DefaultProducts is the stock catalog the store opens with.
func DefaultProducts() []Product {
	return []Product{
		{Name: "Basmati Rice", Price: 80, Unit: "kg", Image: "/products/rice.jpg", Category: "staples"},
		{Name: "Toor Dal", Price: 120, Unit: "kg", Image: "/products/toor-dal.jpg", Category: "staples"},
		{Name: "Sugar", Price: 45, Unit: "kg", Image: "/products/sugar.jpg", Category: "staples"},
	}
}
