package mocks

import (
	"context"

	"github.com/tortasmolina/storefront/pkg/sendgrid"

	"github.com/stretchr/testify/mock"
)

type EmailService struct {
	mock.Mock
}

func (m *EmailService) SendOrderConfirmation(ctx context.Context, req *sendgrid.OrderConfirmation) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}
