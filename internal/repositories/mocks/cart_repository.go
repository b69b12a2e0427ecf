package mocks

import (
	"context"

	"github.com/tortasmolina/storefront/internal/models"

	"github.com/stretchr/testify/mock"
)

type CartRepository struct {
	mock.Mock
}

func (m *CartRepository) AddItem(ctx context.Context, userID, productID, quantity int64) error {
	args := m.Called(ctx, userID, productID, quantity)
	return args.Error(0)
}

func (m *CartRepository) GetCartItems(ctx context.Context, userID int64) ([]models.CartItem, error) {
	args := m.Called(ctx, userID)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]models.CartItem), args.Error(1)
}

func (m *CartRepository) UpdateQuantity(ctx context.Context, userID, productID, quantity int64) error {
	args := m.Called(ctx, userID, productID, quantity)
	return args.Error(0)
}

func (m *CartRepository) RemoveItem(ctx context.Context, userID, productID int64) error {
	args := m.Called(ctx, userID, productID)
	return args.Error(0)
}

func (m *CartRepository) Clear(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}
