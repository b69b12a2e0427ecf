package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/tortasmolina/storefront/internal/models"
	"github.com/tortasmolina/storefront/internal/utils"
)

// ErrEmptyCart is returned by CreateSale when the user has no cart lines.
var ErrEmptyCart = errors.New("cart is empty")

// InsufficientStockError names the offending product and what is left, so
// the caller can build the user-facing message.
type InsufficientStockError struct {
	ProductName string
	Available   int64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s: %d available", e.ProductName, e.Available)
}

type OrderRepository interface {
	CreateSale(ctx context.Context, userID int64, paymentMethod, notes string) (orderID int64, total float64, itemCount int, err error)
	ListOrdersByUser(ctx context.Context, userID int64) ([]models.OrderSummary, error)
	GetOrderByID(ctx context.Context, userID, orderID int64) (*models.Order, error)
	GetOrderItems(ctx context.Context, orderID int64) ([]models.OrderItem, error)
}

type orderRepository struct {
	DB *sql.DB
}

func NewOrderRepo(db *sql.DB) OrderRepository {
	return &orderRepository{DB: db}
}

type saleLine struct {
	productID int64
	quantity  int64
	name      string
	price     float64
	stock     int64
}

// CreateSale converts the user's cart into a venta plus venta_items,
// decrements stock and empties the cart, all inside one transaction on one
// connection. Any failure rolls the whole attempt back.
//
// Stock is re-read inside the transaction with the product rows locked, and
// the decrement is conditional on stock remaining sufficient, so concurrent
// checkouts against the same product cannot oversell.
func (r *orderRepository) CreateSale(ctx context.Context, userID int64, paymentMethod, notes string) (int64, float64, int, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	tx, err := r.DB.BeginTx(dbCtx, nil)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("failed to begin checkout transaction: %w", err)
	}

	// No-op after a successful Commit; guarantees rollback on every early
	// return.
	defer tx.Rollback()

	lines, err := loadCartForUpdate(dbCtx, tx, userID)
	if err != nil {
		return 0, 0, 0, err
	}

	if len(lines) == 0 {
		return 0, 0, 0, ErrEmptyCart
	}

	var total float64

	for _, line := range lines {
		if line.stock < line.quantity {
			return 0, 0, 0, &InsufficientStockError{ProductName: line.name, Available: line.stock}
		}

		total += line.price * float64(line.quantity)
	}

	var orderID int64

	err = tx.QueryRowContext(dbCtx, `
		INSERT INTO ventas (usuario_id, total, metodo_pago, notas)
		VALUES ($1, $2, $3, $4)
		RETURNING id`,
		userID, total, paymentMethod, notes).Scan(&orderID)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("failed to insert order: %w", err)
	}

	for _, line := range lines {
		subtotal := line.price * float64(line.quantity)

		_, err := tx.ExecContext(dbCtx, `
			INSERT INTO venta_items (venta_id, producto_id, cantidad, precio_unitario, subtotal)
			VALUES ($1, $2, $3, $4, $5)`,
			orderID, line.productID, line.quantity, line.price, subtotal)
		if err != nil {
			return 0, 0, 0, fmt.Errorf("failed to insert order item: %w", err)
		}

		result, err := tx.ExecContext(dbCtx, `
			UPDATE productos SET stock = stock - $1
			WHERE id = $2 AND stock >= $1`,
			line.quantity, line.productID)
		if err != nil {
			return 0, 0, 0, fmt.Errorf("failed to decrement stock: %w", err)
		}

		updatedRows, err := result.RowsAffected()
		if err != nil {
			return 0, 0, 0, err
		}

		if updatedRows == 0 {
			return 0, 0, 0, &InsufficientStockError{ProductName: line.name, Available: line.stock}
		}
	}

	if _, err := tx.ExecContext(dbCtx, `DELETE FROM carrito WHERE usuario_id = $1`, userID); err != nil {
		return 0, 0, 0, fmt.Errorf("failed to clear cart: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, 0, 0, fmt.Errorf("failed to commit checkout: %w", err)
	}

	return orderID, total, len(lines), nil
}

func loadCartForUpdate(ctx context.Context, tx *sql.Tx, userID int64) ([]saleLine, error) {

	rows, err := tx.QueryContext(ctx, `
		SELECT c.producto_id, c.cantidad, p.nombre, p.precio, p.stock
		FROM carrito c
		JOIN productos p ON c.producto_id = p.id
		WHERE c.usuario_id = $1
		FOR UPDATE OF p`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	defer rows.Close()

	var lines []saleLine

	for rows.Next() {
		var line saleLine

		err := rows.Scan(&line.productID, &line.quantity, &line.name, &line.price, &line.stock)
		if err != nil {
			return nil, fmt.Errorf("failed to scan cart line: %w", err)
		}

		lines = append(lines, line)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return lines, nil
}

func (r *orderRepository) ListOrdersByUser(ctx context.Context, userID int64) ([]models.OrderSummary, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT v.id, v.usuario_id, v.total, v.metodo_pago, v.notas, v.fecha_pedido,
			COUNT(vi.id) AS total_items,
			COALESCE(SUM(vi.cantidad), 0) AS total_productos
		FROM ventas v
		LEFT JOIN venta_items vi ON v.id = vi.venta_id
		WHERE v.usuario_id = $1
		GROUP BY v.id
		ORDER BY v.fecha_pedido DESC`

	rows, err := r.DB.QueryContext(dbCtx, query, userID)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	var orders []models.OrderSummary

	for rows.Next() {
		var order models.OrderSummary

		err := rows.Scan(&order.ID, &order.UserID, &order.Total, &order.PaymentMethod,
			&order.Notes, &order.CreatedAt, &order.TotalItems, &order.TotalProducts)
		if err != nil {
			return nil, err
		}

		orders = append(orders, order)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}

// GetOrderByID scopes the lookup to the owning user; an order belonging to
// someone else is indistinguishable from a missing one.
func (r *orderRepository) GetOrderByID(ctx context.Context, userID, orderID int64) (*models.Order, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	order := &models.Order{}

	query := `
		SELECT id, usuario_id, total, metodo_pago, notas, fecha_pedido
		FROM ventas
		WHERE id = $1 AND usuario_id = $2`

	err := r.DB.QueryRowContext(dbCtx, query, orderID, userID).
		Scan(&order.ID, &order.UserID, &order.Total, &order.PaymentMethod, &order.Notes, &order.CreatedAt)
	if err != nil {
		return nil, err
	}

	return order, nil
}

func (r *orderRepository) GetOrderItems(ctx context.Context, orderID int64) ([]models.OrderItem, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT vi.id, vi.venta_id, vi.producto_id, vi.cantidad, vi.precio_unitario, vi.subtotal,
			p.nombre, p.imagen_url
		FROM venta_items vi
		JOIN productos p ON vi.producto_id = p.id
		WHERE vi.venta_id = $1`

	rows, err := r.DB.QueryContext(dbCtx, query, orderID)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	var items []models.OrderItem

	for rows.Next() {
		var item models.OrderItem

		err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Quantity,
			&item.UnitPrice, &item.Subtotal, &item.Name, &item.ImageURL)
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
