package repository

import (
	"context"
	"database/sql"

	"github.com/tortasmolina/storefront/internal/models"
	"github.com/tortasmolina/storefront/internal/utils"
)

type ProductRepository interface {
	ListProducts(ctx context.Context) ([]*models.Product, error)
	GetProductByID(ctx context.Context, id int64) (*models.Product, error)
	SearchProducts(ctx context.Context, query string) ([]*models.Product, error)
	ListCategories(ctx context.Context) ([]*models.Category, error)
}

type productRepository struct {
	DB *sql.DB
}

func NewProductRepo(db *sql.DB) ProductRepository {
	return &productRepository{DB: db}
}

const productColumns = `
	p.id, p.nombre, p.descripcion, p.precio, p.stock, p.imagen_url,
	p.categoria_id, c.nombre AS categoria_nombre, p.created_at`

func scanProduct(rows *sql.Rows) (*models.Product, error) {
	product := &models.Product{}

	err := rows.Scan(&product.ID, &product.Name, &product.Description, &product.Price,
		&product.Stock, &product.ImageURL, &product.CategoryID, &product.CategoryName, &product.CreatedAt)
	if err != nil {
		return nil, err
	}

	return product, nil
}

func (r *productRepository) ListProducts(ctx context.Context) ([]*models.Product, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT` + productColumns + `
		FROM productos p
		LEFT JOIN categorias c ON p.categoria_id = c.id
		ORDER BY p.created_at DESC`

	rows, err := r.DB.QueryContext(dbCtx, query)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	var products []*models.Product

	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}

		products = append(products, product)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return products, nil
}

func (r *productRepository) GetProductByID(ctx context.Context, id int64) (*models.Product, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	product := &models.Product{}

	query := `
		SELECT` + productColumns + `
		FROM productos p
		LEFT JOIN categorias c ON p.categoria_id = c.id
		WHERE p.id = $1`

	err := r.DB.QueryRowContext(dbCtx, query, id).
		Scan(&product.ID, &product.Name, &product.Description, &product.Price,
			&product.Stock, &product.ImageURL, &product.CategoryID, &product.CategoryName, &product.CreatedAt)
	if err != nil {
		return nil, err
	}

	return product, nil
}

// SearchProducts matches an unanchored, case-insensitive substring against
// name and description.
func (r *productRepository) SearchProducts(ctx context.Context, search string) ([]*models.Product, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT` + productColumns + `
		FROM productos p
		LEFT JOIN categorias c ON p.categoria_id = c.id
		WHERE p.nombre ILIKE $1 OR p.descripcion ILIKE $1
		ORDER BY p.nombre`

	rows, err := r.DB.QueryContext(dbCtx, query, "%"+search+"%")
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	var products []*models.Product

	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}

		products = append(products, product)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return products, nil
}

func (r *productRepository) ListCategories(ctx context.Context) ([]*models.Category, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `SELECT id, nombre FROM categorias ORDER BY nombre`

	rows, err := r.DB.QueryContext(dbCtx, query)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	var categories []*models.Category

	for rows.Next() {
		category := &models.Category{}

		if err := rows.Scan(&category.ID, &category.Name); err != nil {
			return nil, err
		}

		categories = append(categories, category)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return categories, nil
}
