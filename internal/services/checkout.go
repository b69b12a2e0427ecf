package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/tortasmolina/storefront/internal/api/middleware"
	apperrors "github.com/tortasmolina/storefront/internal/errors"
	"github.com/tortasmolina/storefront/internal/models"
	repository "github.com/tortasmolina/storefront/internal/repositories"
	"github.com/tortasmolina/storefront/pkg/sendgrid"

	"github.com/microcosm-cc/bluemonday"
)

const defaultPaymentMethod = "efectivo"

type OrderService interface {
	Checkout(ctx context.Context, userID int64, req *models.CheckoutRequest) (*models.CheckoutResponse, error)
	ListOrders(ctx context.Context, userID int64) ([]models.OrderSummary, error)
	GetOrderDetail(ctx context.Context, userID, orderID int64) (*models.OrderDetail, error)
}

type orderService struct {
	orderRepo repository.OrderRepository
	userRepo  repository.UserRepository
	mailer    sendgrid.EmailService
	sanitizer *bluemonday.Policy
}

func NewOrderService(orderRepo repository.OrderRepository, userRepo repository.UserRepository, mailer sendgrid.EmailService) OrderService {
	return &orderService{
		orderRepo: orderRepo,
		userRepo:  userRepo,
		mailer:    mailer,
		sanitizer: bluemonday.StrictPolicy(),
	}
}

// Checkout converts the user's cart into an order. The repository runs the
// whole conversion in one transaction, so a failure leaves cart and stock
// untouched.
func (s *orderService) Checkout(ctx context.Context, userID int64, req *models.CheckoutRequest) (*models.CheckoutResponse, error) {

	paymentMethod := req.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = defaultPaymentMethod
	}

	notes := s.sanitizer.Sanitize(req.Notes)

	orderID, total, itemCount, err := s.orderRepo.CreateSale(ctx, userID, paymentMethod, notes)
	if err != nil {
		var stockErr *repository.InsufficientStockError

		switch {
		case errors.Is(err, repository.ErrEmptyCart):
			return nil, apperrors.BadRequestError("Cart is empty")
		case errors.As(err, &stockErr):
			return nil, apperrors.BadRequestError(
				fmt.Sprintf("Insufficient stock for %s. Available: %d", stockErr.ProductName, stockErr.Available))
		default:
			return nil, apperrors.DatabaseError("Failed to process purchase").WithError(err)
		}
	}

	resp := &models.CheckoutResponse{
		OrderID:   orderID,
		Total:     roundTotal(total),
		ItemCount: itemCount,
	}

	s.sendConfirmation(ctx, userID, resp)

	return resp, nil
}

// sendConfirmation emails the buyer after the transaction has committed.
// Fire and forget: a mail failure never affects the checkout response.
func (s *orderService) sendConfirmation(ctx context.Context, userID int64, resp *models.CheckoutResponse) {

	logger := middleware.LoggerFromContext(ctx)

	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		logger.Warn("Skipping order confirmation email, user lookup failed", slog.Any("error", err))
		return
	}

	mailCtx := context.WithoutCancel(ctx)

	go func() {
		err := s.mailer.SendOrderConfirmation(mailCtx, &sendgrid.OrderConfirmation{
			To:        user.Email,
			Name:      user.Name,
			OrderID:   resp.OrderID,
			Total:     resp.Total,
			ItemCount: resp.ItemCount,
		})
		if err != nil {
			logger.Error("Failed to send order confirmation email",
				slog.Int64("orderId", resp.OrderID), slog.Any("error", err))
		}
	}()
}

func (s *orderService) ListOrders(ctx context.Context, userID int64) ([]models.OrderSummary, error) {

	orders, err := s.orderRepo.ListOrdersByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.DatabaseError("Failed to fetch orders").WithError(err)
	}

	return orders, nil
}

func (s *orderService) GetOrderDetail(ctx context.Context, userID, orderID int64) (*models.OrderDetail, error) {

	order, err := s.orderRepo.GetOrderByID(ctx, userID, orderID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperrors.NotFoundError("Order not found").WithError(err)
		}

		return nil, apperrors.DatabaseError("Failed to fetch order").WithError(err)
	}

	items, err := s.orderRepo.GetOrderItems(ctx, orderID)
	if err != nil {
		return nil, apperrors.DatabaseError("Failed to fetch order items").WithError(err)
	}

	return &models.OrderDetail{Order: order, Items: items}, nil
}
