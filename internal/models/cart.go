package models

// CartLine is one (user, product, quantity) row in carrito.
type CartLine struct {
	ID        int64 `json:"id"`
	UserID    int64 `json:"usuario_id"`
	ProductID int64 `json:"producto_id"`
	Quantity  int64 `json:"cantidad"`
}

// CartItem is a cart line joined with its product snapshot, as rendered to
// the client.
type CartItem struct {
	ProductID   int64   `json:"producto_id"`
	Name        string  `json:"nombre"`
	Description string  `json:"descripcion"`
	Price       float64 `json:"precio"`
	ImageURL    string  `json:"imagen_url"`
	Stock       int64   `json:"stock"`
	Quantity    int64   `json:"cantidad"`
}

type Cart struct {
	Items []CartItem `json:"items"`
	Total float64    `json:"total"`
}

type AddItemRequest struct {
	ProductID int64 `json:"productoId" validate:"required"`
	Quantity  int64 `json:"cantidad" validate:"omitempty,min=1"`
}

type UpdateQuantityRequest struct {
	Quantity int64 `json:"cantidad" validate:"required,min=1"`
}
