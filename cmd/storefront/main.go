package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tortasmolina/storefront/internal/api/handlers"
	"github.com/tortasmolina/storefront/internal/api/middleware"
	"github.com/tortasmolina/storefront/internal/config"
	"github.com/tortasmolina/storefront/internal/health"
	"github.com/tortasmolina/storefront/internal/metrics"
	repository "github.com/tortasmolina/storefront/internal/repositories"
	redisrepo "github.com/tortasmolina/storefront/internal/repositories/redis"
	service "github.com/tortasmolina/storefront/internal/services"
	"github.com/tortasmolina/storefront/internal/telemetry"
	"github.com/tortasmolina/storefront/pkg/sendgrid"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

func main() {

	// Logger setup
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Load config
	cfg := config.MustLoad()

	// Tracing setup
	shutdownTracing, err := telemetry.Setup(context.Background(), cfg)
	if err != nil {
		slog.Error("Error setting up tracing", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Database setup
	repos, err := repository.New(cfg)
	if err != nil {
		slog.Error("Error accessing the database", slog.String("error", err.Error()))
		os.Exit(1)
	}

	defer func() {
		if err := repos.Close(); err != nil {
			slog.Error("Error closing database connection", slog.String("error", err.Error()))
		}
	}()

	// Redis setup
	redisClient, err := redisrepo.NewClient(cfg)
	if err != nil {
		slog.Error("Error accessing the redis instance", slog.String("error", err.Error()))
		os.Exit(1)
	}

	rateLimitRepo := redisrepo.NewRateLimitRepo(redisClient, cfg)

	jwtKey := []byte(cfg.Security.JWTKey)
	mailer := sendgrid.NewEmailService(cfg.SendGrid.APIKey, cfg.SendGrid.FromEmail, cfg.SendGrid.FromName)

	userService := service.NewUserService(repos.User, rateLimitRepo, jwtKey, cfg.Security.TokenTTL)
	userHandler := handlers.NewUserHandler(userService)
	catalogService := service.NewCatalogService(repos.Product)
	productHandler := handlers.NewProductHandler(catalogService)
	cartService := service.NewCartService(repos.Cart, repos.Product)
	cartHandler := handlers.NewCartHandler(cartService)
	orderService := service.NewOrderService(repos.Order, repos.User, mailer)
	orderHandler := handlers.NewOrderHandler(orderService)
	authMiddleware := middleware.NewAuthMiddleware(jwtKey)

	healthHandler, err := health.NewHealthHandler(cfg)
	if err != nil {
		slog.Error("Error creating health handler", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("storage initialized", slog.String("env", cfg.Env), slog.String("version", "1.0.0"))

	// Setup router
	routerMux := http.NewServeMux()
	routerMux.HandleFunc("POST /api/auth/register", userHandler.Register())
	routerMux.HandleFunc("POST /api/auth/login", userHandler.Login())
	routerMux.HandleFunc("GET /api/auth/profile", authMiddleware.Authenticate(userHandler.Profile()))
	routerMux.HandleFunc("PUT /api/auth/profile", authMiddleware.Authenticate(userHandler.UpdateProfile()))
	routerMux.HandleFunc("GET /api/products", productHandler.ListProducts())
	routerMux.HandleFunc("GET /api/products/search", productHandler.SearchProducts())
	routerMux.HandleFunc("GET /api/products/{id}", productHandler.GetProduct())
	routerMux.HandleFunc("GET /api/categories", productHandler.ListCategories())
	routerMux.HandleFunc("POST /api/cart/add", authMiddleware.Authenticate(cartHandler.AddItem()))
	routerMux.HandleFunc("GET /api/cart", authMiddleware.Authenticate(cartHandler.GetCart()))
	routerMux.HandleFunc("PUT /api/cart/{productId}", authMiddleware.Authenticate(cartHandler.UpdateQuantity()))
	routerMux.HandleFunc("DELETE /api/cart/{productId}", authMiddleware.Authenticate(cartHandler.RemoveItem()))
	routerMux.HandleFunc("DELETE /api/cart", authMiddleware.Authenticate(cartHandler.Clear()))
	routerMux.HandleFunc("POST /api/orders/checkout", authMiddleware.Authenticate(orderHandler.Checkout()))
	routerMux.HandleFunc("GET /api/orders", authMiddleware.Authenticate(orderHandler.ListOrders()))
	routerMux.HandleFunc("GET /api/orders/{id}", authMiddleware.Authenticate(orderHandler.GetOrderDetail()))
	routerMux.Handle("GET /health", healthHandler.Handler())
	routerMux.Handle("GET /metrics", metrics.Handler())

	// Middleware chaining
	var handler http.Handler = routerMux
	handler = middleware.Logging(handler)
	handler = metrics.Middleware(handler)
	handler = otelhttp.NewHandler(handler, "storefront")

	// Setup http server
	server := http.Server{
		Addr:    cfg.Addr,
		Handler: handler,
	}

	slog.Info("Server is starting...", slog.String("address", cfg.Addr))

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			slog.Error("Failed to start server", slog.String("error", err.Error()))
		}
	}()

	<-done

	slog.Warn("Shutdown signal received. Preparing to stop the server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server shutdown encountered an issue", slog.String("error", err.Error()))
	} else {
		slog.Info("Server shut down gracefully. All connections closed.")
	}

	if err := shutdownTracing(shutdownCtx); err != nil {
		slog.Error("Error shutting down tracing", slog.String("error", err.Error()))
	}
}
