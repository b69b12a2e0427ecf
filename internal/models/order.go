package models

import "time"

// Order is an immutable venta row. Total and the per-line unit prices are
// frozen at purchase time.
type Order struct {
	ID            int64     `json:"id"`
	UserID        int64     `json:"usuario_id"`
	Total         float64   `json:"total"`
	PaymentMethod string    `json:"metodo_pago"`
	Notes         string    `json:"notas"`
	CreatedAt     time.Time `json:"fecha_pedido"`
}

// OrderSummary is an order with its aggregated line counts, for history
// listings.
type OrderSummary struct {
	Order
	TotalItems    int64 `json:"total_items"`
	TotalProducts int64 `json:"total_productos"`
}

type OrderItem struct {
	ID        int64   `json:"id"`
	OrderID   int64   `json:"venta_id"`
	ProductID int64   `json:"producto_id"`
	Quantity  int64   `json:"cantidad"`
	UnitPrice float64 `json:"precio_unitario"`
	Subtotal  float64 `json:"subtotal"`
	Name      string  `json:"nombre,omitempty"`
	ImageURL  string  `json:"imagen_url,omitempty"`
}

type OrderDetail struct {
	Order *Order      `json:"venta"`
	Items []OrderItem `json:"items"`
}

type CheckoutRequest struct {
	PaymentMethod string `json:"metodo_pago" validate:"required"`
	Notes         string `json:"notas"`
}

type CheckoutResponse struct {
	OrderID   int64   `json:"ventaId"`
	Total     float64 `json:"total"`
	ItemCount int     `json:"items"`
}
