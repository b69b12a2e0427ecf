package mocks

import (
	"context"

	"github.com/tortasmolina/storefront/internal/models"

	"github.com/stretchr/testify/mock"
)

type CartService struct {
	mock.Mock
}

func (m *CartService) AddItem(ctx context.Context, userID int64, req *models.AddItemRequest) error {
	args := m.Called(ctx, userID, req)
	return args.Error(0)
}

func (m *CartService) GetCart(ctx context.Context, userID int64) (*models.Cart, error) {
	args := m.Called(ctx, userID)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.Cart), args.Error(1)
}

func (m *CartService) UpdateQuantity(ctx context.Context, userID, productID int64, req *models.UpdateQuantityRequest) error {
	args := m.Called(ctx, userID, productID, req)
	return args.Error(0)
}

func (m *CartService) RemoveItem(ctx context.Context, userID, productID int64) error {
	args := m.Called(ctx, userID, productID)
	return args.Error(0)
}

func (m *CartService) Clear(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}
