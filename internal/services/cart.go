package service

import (
	"context"
	"database/sql"
	"math"

	"github.com/tortasmolina/storefront/internal/errors"
	"github.com/tortasmolina/storefront/internal/models"
	repository "github.com/tortasmolina/storefront/internal/repositories"
)

type CartService interface {
	AddItem(ctx context.Context, userID int64, req *models.AddItemRequest) error
	GetCart(ctx context.Context, userID int64) (*models.Cart, error)
	UpdateQuantity(ctx context.Context, userID, productID int64, req *models.UpdateQuantityRequest) error
	RemoveItem(ctx context.Context, userID, productID int64) error
	Clear(ctx context.Context, userID int64) error
}

type cartService struct {
	repo        repository.CartRepository
	productRepo repository.ProductRepository
}

func NewCartService(repo repository.CartRepository, productRepo repository.ProductRepository) CartService {
	return &cartService{repo: repo, productRepo: productRepo}
}

// AddItem merges the requested quantity onto any existing line. The stock
// ceiling applies to the requested increment only, not the merged total;
// checkout re-validates the cumulative quantity against live stock anyway.
func (s *cartService) AddItem(ctx context.Context, userID int64, req *models.AddItemRequest) error {

	quantity := req.Quantity
	if quantity == 0 {
		quantity = 1
	}

	product, err := s.productRepo.GetProductByID(ctx, req.ProductID)
	if err != nil {
		if err == sql.ErrNoRows {
			return errors.NotFoundError("Product not found").WithError(err)
		}

		return errors.DatabaseError("Failed to fetch product").WithError(err)
	}

	if product.Stock < quantity {
		return errors.BadRequestError("Insufficient stock")
	}

	if err := s.repo.AddItem(ctx, userID, req.ProductID, quantity); err != nil {
		return errors.DatabaseError("Failed to add item to cart").WithError(err)
	}

	return nil
}

func (s *cartService) GetCart(ctx context.Context, userID int64) (*models.Cart, error) {

	items, err := s.repo.GetCartItems(ctx, userID)
	if err != nil {
		return nil, errors.DatabaseError("Failed to fetch cart").WithError(err)
	}

	var total float64

	for _, item := range items {
		total += item.Price * float64(item.Quantity)
	}

	return &models.Cart{Items: items, Total: roundTotal(total)}, nil
}

// UpdateQuantity is an absolute set, not an increment.
func (s *cartService) UpdateQuantity(ctx context.Context, userID, productID int64, req *models.UpdateQuantityRequest) error {

	product, err := s.productRepo.GetProductByID(ctx, productID)
	if err != nil {
		if err == sql.ErrNoRows {
			return errors.NotFoundError("Product not found").WithError(err)
		}

		return errors.DatabaseError("Failed to fetch product").WithError(err)
	}

	if product.Stock < req.Quantity {
		return errors.BadRequestError("Insufficient stock")
	}

	err = s.repo.UpdateQuantity(ctx, userID, productID, req.Quantity)
	if err != nil {
		if err == sql.ErrNoRows {
			return errors.NotFoundError("Product not found in cart").WithError(err)
		}

		return errors.DatabaseError("Failed to update cart").WithError(err)
	}

	return nil
}

func (s *cartService) RemoveItem(ctx context.Context, userID, productID int64) error {

	err := s.repo.RemoveItem(ctx, userID, productID)
	if err != nil {
		if err == sql.ErrNoRows {
			return errors.NotFoundError("Product not found in cart").WithError(err)
		}

		return errors.DatabaseError("Failed to remove item from cart").WithError(err)
	}

	return nil
}

func (s *cartService) Clear(ctx context.Context, userID int64) error {

	if err := s.repo.Clear(ctx, userID); err != nil {
		return errors.DatabaseError("Failed to clear cart").WithError(err)
	}

	return nil
}

// roundTotal rounds to 2 decimals, matching how totals are displayed and
// recorded.
func roundTotal(v float64) float64 {
	return math.Round(v*100) / 100
}
