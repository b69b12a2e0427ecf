package mocks

import (
	"context"

	"github.com/tortasmolina/storefront/internal/models"

	"github.com/stretchr/testify/mock"
)

type OrderService struct {
	mock.Mock
}

func (m *OrderService) Checkout(ctx context.Context, userID int64, req *models.CheckoutRequest) (*models.CheckoutResponse, error) {
	args := m.Called(ctx, userID, req)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.CheckoutResponse), args.Error(1)
}

func (m *OrderService) ListOrders(ctx context.Context, userID int64) ([]models.OrderSummary, error) {
	args := m.Called(ctx, userID)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]models.OrderSummary), args.Error(1)
}

func (m *OrderService) GetOrderDetail(ctx context.Context, userID, orderID int64) (*models.OrderDetail, error) {
	args := m.Called(ctx, userID, orderID)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.OrderDetail), args.Error(1)
}
