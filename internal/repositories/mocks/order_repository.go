package mocks

import (
	"context"

	"github.com/tortasmolina/storefront/internal/models"

	"github.com/stretchr/testify/mock"
)

type OrderRepository struct {
	mock.Mock
}

func (m *OrderRepository) CreateSale(ctx context.Context, userID int64, paymentMethod, notes string) (int64, float64, int, error) {
	args := m.Called(ctx, userID, paymentMethod, notes)
	return args.Get(0).(int64), args.Get(1).(float64), args.Int(2), args.Error(3)
}

func (m *OrderRepository) ListOrdersByUser(ctx context.Context, userID int64) ([]models.OrderSummary, error) {
	args := m.Called(ctx, userID)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]models.OrderSummary), args.Error(1)
}

func (m *OrderRepository) GetOrderByID(ctx context.Context, userID, orderID int64) (*models.Order, error) {
	args := m.Called(ctx, userID, orderID)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *OrderRepository) GetOrderItems(ctx context.Context, orderID int64) ([]models.OrderItem, error) {
	args := m.Called(ctx, orderID)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]models.OrderItem), args.Error(1)
}
