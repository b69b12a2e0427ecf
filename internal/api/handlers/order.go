package handlers

import (
	"log/slog"
	"net/http"

	"github.com/tortasmolina/storefront/internal/api/middleware"
	"github.com/tortasmolina/storefront/internal/errors"
	"github.com/tortasmolina/storefront/internal/models"
	service "github.com/tortasmolina/storefront/internal/services"
	"github.com/tortasmolina/storefront/internal/utils"
	"github.com/tortasmolina/storefront/internal/utils/response"

	"github.com/go-playground/validator/v10"
)

type OrderHandler struct {
	orderService service.OrderService
	validator    *validator.Validate
}

func NewOrderHandler(orderService service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService, validator: validator.New()}
}

func (h *OrderHandler) Checkout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		var req models.CheckoutRequest

		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		resp, err := h.orderService.Checkout(r.Context(), claims.UserID, &req)
		if err != nil {
			response.Error(w, err)
			return
		}

		logger := middleware.LoggerFromContext(r.Context())
		logger.Info("Checkout completed",
			slog.Int64("orderId", resp.OrderID),
			slog.Float64("total", resp.Total),
			slog.Int("items", resp.ItemCount))

		response.Success(w, http.StatusOK, resp)
	}
}

func (h *OrderHandler) ListOrders() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		orders, err := h.orderService.ListOrders(r.Context(), claims.UserID)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, orders)
	}
}

func (h *OrderHandler) GetOrderDetail() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		orderID, err := parseID(r.PathValue("id"))
		if err != nil {
			response.Error(w, errors.BadRequestError("Invalid order id"))
			return
		}

		detail, err := h.orderService.GetOrderDetail(r.Context(), claims.UserID, orderID)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, detail)
	}
}
