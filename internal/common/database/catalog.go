package database

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/lib/pq"

	apperrors "listing-assistant/internal/common/errors"
	"listing-assistant/internal/models"
)

const (
	queryProductByID = `SELECT id, seller_id, COALESCE(category_id::text, ''), title,
       COALESCE(description, ''), price, stock, COALESCE(images, '{}'), status,
       created_at, updated_at
  FROM products
 WHERE id = $1`

	queryCategoryNames = `SELECT name FROM categories WHERE type = $1 ORDER BY name`
)

// CatalogStore reads listing data from the marketplace database. It is
// read-only; the engine never writes listings.
type CatalogStore struct {
	db *sql.DB
}

func NewCatalogStore(db *sql.DB) *CatalogStore {
	return &CatalogStore{db: db}
}

// GetProduct loads one product row. A missing row is LISTING_NOT_FOUND.
func (s *CatalogStore) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	var p models.Product
	var images []string
	err := s.db.QueryRowContext(ctx, queryProductByID, id).Scan(
		&p.ID, &p.SellerID, &p.CategoryID, &p.Title,
		&p.Description, &p.Price, &p.Stock, pq.Array(&images), &p.Status,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewListingNotFoundError(id)
	}
	if err != nil {
		return nil, apperrors.NewCatalogQueryFailedError("product_by_id", err)
	}
	p.Images = images
	return &p, nil
}

// CategoryNames lists category names of the given type, alphabetically.
func (s *CatalogStore) CategoryNames(ctx context.Context, categoryType string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, queryCategoryNames, categoryType)
	if err != nil {
		return nil, apperrors.NewCatalogQueryFailedError("category_names", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, apperrors.NewCatalogQueryFailedError("category_names", err)
		}
		if name = strings.TrimSpace(name); name != "" {
			names = append(names, name)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewCatalogQueryFailedError("category_names", err)
	}
	return names, nil
}
