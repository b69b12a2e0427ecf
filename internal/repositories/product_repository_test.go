package repository_test

import (
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	repository "github.com/tortasmolina/storefront/internal/repositories"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupProductRepoTest(t *testing.T) (repository.ProductRepository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err, "Failed to create sqlmock")

	t.Cleanup(func() {
		db.Close()
	})

	repo := repository.NewProductRepo(db)
	require.NotNil(t, repo, "NewProductRepo should return a non-nil repository")

	return repo, mock
}

var productColumns = []string{"id", "nombre", "descripcion", "precio", "stock", "imagen_url", "categoria_id", "categoria_nombre", "created_at"}

func TestListProducts(t *testing.T) {
	repo, mock := setupProductRepoTest(t)
	ctx := t.Context()

	now := time.Now()
	categoryID := int64(2)

	expectedSQL := regexp.QuoteMeta(`ORDER BY p.created_at DESC`)

	t.Run("Success - Multiple Products", func(t *testing.T) {
		rows := sqlmock.NewRows(productColumns).
			AddRow(int64(1), "Torta de chocolate", "Chocolate belga", 120.50, int64(5), "/img/choc.jpg", categoryID, "Tortas", now).
			AddRow(int64(2), "Torta de fresa", "Fresas frescas", 85.00, int64(3), "/img/fresa.jpg", nil, nil, now.Add(-time.Hour))
		mock.ExpectQuery(expectedSQL).WillReturnRows(rows)

		// Act
		products, err := repo.ListProducts(ctx)

		// Assert
		assert.NoError(t, err, "ListProducts should succeed")
		require.Len(t, products, 2, "Two products should be returned")
		assert.Equal(t, "Torta de chocolate", products[0].Name)
		require.NotNil(t, products[0].CategoryID, "Category should be present for the first product")
		assert.Equal(t, categoryID, *products[0].CategoryID)
		assert.Equal(t, "Tortas", *products[0].CategoryName)
		assert.Nil(t, products[1].CategoryID, "Uncategorized product should carry a nil category")
	})

	t.Run("Success - Empty Catalog", func(t *testing.T) {
		mock.ExpectQuery(expectedSQL).WillReturnRows(sqlmock.NewRows(productColumns))

		// Act
		products, err := repo.ListProducts(ctx)

		// Assert
		assert.NoError(t, err, "ListProducts should succeed on an empty catalog")
		assert.Empty(t, products, "Returned slice should be empty")
	})

	t.Run("Failure - Query Error", func(t *testing.T) {
		dbErr := errors.New("query failed")
		mock.ExpectQuery(expectedSQL).WillReturnError(dbErr)

		// Act
		products, err := repo.ListProducts(ctx)

		// Assert
		require.Error(t, err, "ListProducts should fail on query error")
		assert.ErrorIs(t, err, dbErr)
		assert.Nil(t, products, "Products slice should be nil")
	})

	t.Run("Failure - Scan Error", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "nombre"}).AddRow(int64(1), "only_two_columns")
		mock.ExpectQuery(expectedSQL).WillReturnRows(rows)

		// Act
		products, err := repo.ListProducts(ctx)

		// Assert
		require.Error(t, err, "ListProducts should fail on scan error")
		assert.Nil(t, products, "Products slice should be nil")
	})
}

func TestGetProductByID(t *testing.T) {
	repo, mock := setupProductRepoTest(t)
	ctx := t.Context()

	now := time.Now()
	productID := int64(1)
	categoryID := int64(2)

	expectedSQL := regexp.QuoteMeta(`WHERE p.id = $1`)

	t.Run("Success - Get Product By ID", func(t *testing.T) {
		rows := sqlmock.NewRows(productColumns).
			AddRow(productID, "Torta de chocolate", "Chocolate belga", 120.50, int64(5), "/img/choc.jpg", categoryID, "Tortas", now)
		mock.ExpectQuery(expectedSQL).WithArgs(productID).WillReturnRows(rows)

		// Act
		product, err := repo.GetProductByID(ctx, productID)

		// Assert
		assert.NoError(t, err, "GetProductByID should succeed")
		require.NotNil(t, product, "Product should not be nil on success")
		assert.Equal(t, productID, product.ID)
		assert.InDelta(t, 120.50, product.Price, 0.001)
		assert.Equal(t, int64(5), product.Stock)
	})

	t.Run("Failure - Product Not Found", func(t *testing.T) {
		mock.ExpectQuery(expectedSQL).WithArgs(productID).WillReturnError(sql.ErrNoRows)

		// Act
		product, err := repo.GetProductByID(ctx, productID)

		// Assert
		require.Error(t, err, "GetProductByID should fail when the product does not exist")
		assert.ErrorIs(t, err, sql.ErrNoRows, "Error should be sql.ErrNoRows")
		assert.Nil(t, product, "Returned product should be nil")
	})
}

func TestSearchProducts(t *testing.T) {
	repo, mock := setupProductRepoTest(t)
	ctx := t.Context()

	now := time.Now()

	expectedSQL := regexp.QuoteMeta(`WHERE p.nombre ILIKE $1 OR p.descripcion ILIKE $1`)

	t.Run("Success - Substring Match", func(t *testing.T) {
		rows := sqlmock.NewRows(productColumns).
			AddRow(int64(1), "Torta de chocolate", "Chocolate belga", 120.50, int64(5), "/img/choc.jpg", nil, nil, now)
		mock.ExpectQuery(expectedSQL).WithArgs("%choco%").WillReturnRows(rows)

		// Act
		products, err := repo.SearchProducts(ctx, "choco")

		// Assert
		assert.NoError(t, err, "SearchProducts should succeed")
		require.Len(t, products, 1, "One match should be returned")
		assert.Equal(t, "Torta de chocolate", products[0].Name)
	})

	t.Run("Success - No Matches", func(t *testing.T) {
		mock.ExpectQuery(expectedSQL).WithArgs("%zzz%").WillReturnRows(sqlmock.NewRows(productColumns))

		// Act
		products, err := repo.SearchProducts(ctx, "zzz")

		// Assert
		assert.NoError(t, err, "SearchProducts should succeed with no matches")
		assert.Empty(t, products, "Returned slice should be empty")
	})

	t.Run("Failure - Query Error", func(t *testing.T) {
		dbErr := errors.New("query failed")
		mock.ExpectQuery(expectedSQL).WithArgs("%choco%").WillReturnError(dbErr)

		// Act
		products, err := repo.SearchProducts(ctx, "choco")

		// Assert
		require.Error(t, err, "SearchProducts should fail on query error")
		assert.ErrorIs(t, err, dbErr)
		assert.Nil(t, products, "Products slice should be nil")
	})
}

func TestListCategories(t *testing.T) {
	repo, mock := setupProductRepoTest(t)
	ctx := t.Context()

	expectedSQL := regexp.QuoteMeta(`SELECT id, nombre FROM categorias ORDER BY nombre`)

	t.Run("Success - Categories Sorted By Name", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "nombre"}).
			AddRow(int64(3), "Galletas").
			AddRow(int64(1), "Tortas")
		mock.ExpectQuery(expectedSQL).WillReturnRows(rows)

		// Act
		categories, err := repo.ListCategories(ctx)

		// Assert
		assert.NoError(t, err, "ListCategories should succeed")
		require.Len(t, categories, 2, "Two categories should be returned")
		assert.Equal(t, "Galletas", categories[0].Name)
		assert.Equal(t, "Tortas", categories[1].Name)
	})

	t.Run("Failure - Query Error", func(t *testing.T) {
		dbErr := errors.New("query failed")
		mock.ExpectQuery(expectedSQL).WillReturnError(dbErr)

		// Act
		categories, err := repo.ListCategories(ctx)

		// Assert
		require.Error(t, err, "ListCategories should fail on query error")
		assert.ErrorIs(t, err, dbErr)
		assert.Nil(t, categories, "Categories slice should be nil")
	})
}
