// internal/models/catalog.go
package models

import "time"

// Product mirrors a row of the marketplace products table.
type Product struct {
	ID          string    `json:"id"`
	SellerID    string    `json:"seller_id"`
	CategoryID  string    `json:"category_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Stock       int       `json:"stock"`
	Images      []string  `json:"images"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Draft converts a stored product into a scoring draft.
func (p Product) Draft() ListingDraft {
	return ListingDraft{
		ProductID:   p.ID,
		Title:       p.Title,
		Description: p.Description,
		Price:       NewFlexNumber(p.Price),
		Stock:       NewFlexNumber(float64(p.Stock)),
		CategoryID:  p.CategoryID,
		Images:      p.Images,
	}
}

// Category mirrors a row of the categories table.
type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Type        string `json:"type"`
	Description string `json:"description,omitempty"`
}

const CategoryTypeProduct = "product"
