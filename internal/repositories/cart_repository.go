package repository

import (
	"context"
	"database/sql"

	"github.com/tortasmolina/storefront/internal/models"
	"github.com/tortasmolina/storefront/internal/utils"
)

type CartRepository interface {
	AddItem(ctx context.Context, userID, productID, quantity int64) error
	GetCartItems(ctx context.Context, userID int64) ([]models.CartItem, error)
	UpdateQuantity(ctx context.Context, userID, productID, quantity int64) error
	RemoveItem(ctx context.Context, userID, productID int64) error
	Clear(ctx context.Context, userID int64) error
}

type cartRepository struct {
	DB *sql.DB
}

func NewCartRepo(db *sql.DB) CartRepository {
	return &cartRepository{DB: db}
}

// AddItem inserts a new line or adds the quantity onto an existing one.
// carrito has UNIQUE(usuario_id, producto_id), so the upsert is the merge.
func (r *cartRepository) AddItem(ctx context.Context, userID, productID, quantity int64) error {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO carrito (usuario_id, producto_id, cantidad)
		VALUES ($1, $2, $3)
		ON CONFLICT (usuario_id, producto_id)
		DO UPDATE SET cantidad = carrito.cantidad + EXCLUDED.cantidad`

	_, err := r.DB.ExecContext(dbCtx, query, userID, productID, quantity)

	return err
}

func (r *cartRepository) GetCartItems(ctx context.Context, userID int64) ([]models.CartItem, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT c.producto_id, p.nombre, p.descripcion, p.precio, p.imagen_url, p.stock, c.cantidad
		FROM carrito c
		JOIN productos p ON c.producto_id = p.id
		WHERE c.usuario_id = $1`

	rows, err := r.DB.QueryContext(dbCtx, query, userID)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	var items []models.CartItem

	for rows.Next() {
		var item models.CartItem

		err := rows.Scan(&item.ProductID, &item.Name, &item.Description, &item.Price,
			&item.ImageURL, &item.Stock, &item.Quantity)
		if err != nil {
			return nil, err
		}

		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

// UpdateQuantity sets the line quantity absolutely. sql.ErrNoRows when the
// user has no line for the product.
func (r *cartRepository) UpdateQuantity(ctx context.Context, userID, productID, quantity int64) error {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		UPDATE carrito SET cantidad = $1
		WHERE usuario_id = $2 AND producto_id = $3`

	result, err := r.DB.ExecContext(dbCtx, query, quantity, userID, productID)
	if err != nil {
		return err
	}

	updatedRows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if updatedRows == 0 {
		return sql.ErrNoRows
	}

	return nil
}

func (r *cartRepository) RemoveItem(ctx context.Context, userID, productID int64) error {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `DELETE FROM carrito WHERE usuario_id = $1 AND producto_id = $2`

	result, err := r.DB.ExecContext(dbCtx, query, userID, productID)
	if err != nil {
		return err
	}

	deletedRows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if deletedRows == 0 {
		return sql.ErrNoRows
	}

	return nil
}

// Clear is idempotent: deleting an already-empty cart succeeds.
func (r *cartRepository) Clear(ctx context.Context, userID int64) error {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `DELETE FROM carrito WHERE usuario_id = $1`

	_, err := r.DB.ExecContext(dbCtx, query, userID)

	return err
}
