package catalog

import "time"

// Product is a catalog item.
type Product struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Price     float64   `json:"price"`
	Unit      string    `json:"unit"`
	Image     string    `json:"image"`
	Category  string    `json:"category"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ListResponse is the response payload for GET /products
type ListResponse struct {
	Products []Product `json:"products"`
	Count    int       `json:"count"`
}
