package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "listing-assistant/internal/common/errors"
	"listing-assistant/internal/models"
)

func newMockStore(t *testing.T) (*CatalogStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewCatalogStore(db), mock
}

var productColumns = []string{
	"id", "seller_id", "category_id", "title", "description", "price", "stock",
	"images", "status", "created_at", "updated_at",
}

func TestGetProduct(t *testing.T) {
	store, mock := newMockStore(t)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectQuery("SELECT (.+) FROM products WHERE id = \\$1").
		WithArgs("p-1").
		WillReturnRows(sqlmock.NewRows(productColumns).AddRow(
			"p-1", "s-1", "c-9", "Oak desk lamp", "Warm light", 39.5, 4,
			"{a.jpg,b.jpg}", "draft", now, now,
		))

	p, err := store.GetProduct(context.Background(), "p-1")
	require.NoError(t, err)
	assert.Equal(t, "Oak desk lamp", p.Title)
	assert.Equal(t, []string{"a.jpg", "b.jpg"}, p.Images)
	assert.Equal(t, 39.5, p.Price)
	assert.Equal(t, 4, p.Stock)

	draft := p.Draft()
	assert.Equal(t, "c-9", draft.CategoryID)
	assert.True(t, draft.Price.Valid)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetProduct_NotFound(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectQuery("SELECT (.+) FROM products").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows(productColumns))

	_, err := store.GetProduct(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeListingNotFound, apperrors.CodeOf(err))
}

func TestGetProduct_QueryFailure(t *testing.T) {
	store, mock := newMockStore(t)
	dbErr := errors.New("connection reset")
	mock.ExpectQuery("SELECT (.+) FROM products").WillReturnError(dbErr)

	_, err := store.GetProduct(context.Background(), "p-2")
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeCatalogQueryFailed, apperrors.CodeOf(err))
	assert.True(t, errors.Is(err, dbErr))
}

func TestCategoryNames(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectQuery("SELECT name FROM categories WHERE type = \\$1 ORDER BY name").
		WithArgs(models.CategoryTypeProduct).
		WillReturnRows(sqlmock.NewRows([]string{"name"}).
			AddRow("Books").AddRow("  ").AddRow("Electronics"))

	names, err := store.CategoryNames(context.Background(), models.CategoryTypeProduct)
	require.NoError(t, err)
	assert.Equal(t, []string{"Books", "Electronics"}, names)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCategoryNames_RowError(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectQuery("SELECT name FROM categories").
		WillReturnRows(sqlmock.NewRows([]string{"name"}).
			AddRow("Books").RowError(0, errors.New("bad row")))

	_, err := store.CategoryNames(context.Background(), models.CategoryTypeProduct)
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeCatalogQueryFailed, apperrors.CodeOf(err))
}
