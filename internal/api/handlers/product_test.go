package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/tortasmolina/storefront/internal/api/handlers"
	appErrors "github.com/tortasmolina/storefront/internal/errors"
	"github.com/tortasmolina/storefront/internal/models"
	"github.com/tortasmolina/storefront/internal/services/mocks"
	"github.com/tortasmolina/storefront/internal/utils/response"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func setupProductTest() (*mocks.CatalogService, *handlers.ProductHandler) {
	mockCatalogService := new(mocks.CatalogService)
	productHandler := handlers.NewProductHandler(mockCatalogService)

	return mockCatalogService, productHandler
}

func TestListProductsHandler(t *testing.T) {
	t.Run("Success - List Products", func(t *testing.T) {
		// Arrange
		mockCatalogService, productHandler := setupProductTest()
		req := createUnauthenticatedRequest("GET", "/api/products", nil)
		recorder := httptest.NewRecorder()

		products := []*models.Product{
			{ID: 1, Name: "Torta de chocolate", Price: 120.50, Stock: 5},
			{ID: 2, Name: "Torta de fresa", Price: 85.00, Stock: 3},
		}

		mockCatalogService.On("ListProducts", mock.Anything).Return(products, nil).Once()

		// Act
		handler := productHandler.ListProducts()
		handler(recorder, req)

		// Assert
		assert.Equal(t, http.StatusOK, recorder.Code)

		var resp *response.APIResponse
		err := json.Unmarshal(recorder.Body.Bytes(), &resp)
		assert.NoError(t, err)
		assert.True(t, resp.Success)
		assert.NotNil(t, resp.Data)

		mockCatalogService.AssertExpectations(t)
	})

	t.Run("Failure - Service Error", func(t *testing.T) {
		// Arrange
		mockCatalogService, productHandler := setupProductTest()
		req := createUnauthenticatedRequest("GET", "/api/products", nil)
		recorder := httptest.NewRecorder()

		mockError := appErrors.DatabaseError("Failed to fetch products")
		mockCatalogService.On("ListProducts", mock.Anything).Return(nil, mockError).Once()

		// Act
		handler := productHandler.ListProducts()
		handler(recorder, req)

		// Assert
		assert.Equal(t, http.StatusInternalServerError, recorder.Code)

		mockCatalogService.AssertExpectations(t)
	})
}

func TestGetProductHandler(t *testing.T) {
	t.Run("Success - Get Product", func(t *testing.T) {
		// Arrange
		mockCatalogService, productHandler := setupProductTest()
		req := createUnauthenticatedRequest("GET", "/api/products/1", nil)
		req.SetPathValue("id", "1")
		recorder := httptest.NewRecorder()

		product := &models.Product{ID: 1, Name: "Torta de chocolate", Price: 120.50, Stock: 5}
		mockCatalogService.On("GetProduct", mock.Anything, int64(1)).Return(product, nil).Once()

		// Act
		handler := productHandler.GetProduct()
		handler(recorder, req)

		// Assert
		assert.Equal(t, http.StatusOK, recorder.Code)

		var resp *response.APIResponse
		err := json.Unmarshal(recorder.Body.Bytes(), &resp)
		assert.NoError(t, err)
		assert.True(t, resp.Success)

		mockCatalogService.AssertExpectations(t)
	})

	t.Run("Failure - Invalid ID", func(t *testing.T) {
		// Arrange
		mockCatalogService, productHandler := setupProductTest()
		req := createUnauthenticatedRequest("GET", "/api/products/abc", nil)
		req.SetPathValue("id", "abc")
		recorder := httptest.NewRecorder()

		// Act
		handler := productHandler.GetProduct()
		handler(recorder, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, recorder.Code)

		mockCatalogService.AssertNotCalled(t, "GetProduct", mock.Anything, mock.Anything)
	})

	t.Run("Failure - Product Not Found", func(t *testing.T) {
		// Arrange
		mockCatalogService, productHandler := setupProductTest()
		req := createUnauthenticatedRequest("GET", "/api/products/99", nil)
		req.SetPathValue("id", "99")
		recorder := httptest.NewRecorder()

		mockError := appErrors.NotFoundError("Product not found")
		mockCatalogService.On("GetProduct", mock.Anything, int64(99)).Return(nil, mockError).Once()

		// Act
		handler := productHandler.GetProduct()
		handler(recorder, req)

		// Assert
		assert.Equal(t, http.StatusNotFound, recorder.Code)

		var resp *response.APIResponse
		err := json.Unmarshal(recorder.Body.Bytes(), &resp)
		assert.NoError(t, err)
		assert.False(t, resp.Success)
		assert.Equal(t, appErrors.ErrCodeNotFound, resp.Error.Code)

		mockCatalogService.AssertExpectations(t)
	})
}

func TestSearchProductsHandler(t *testing.T) {
	t.Run("Success - Search With Query", func(t *testing.T) {
		// Arrange
		mockCatalogService, productHandler := setupProductTest()
		req := createUnauthenticatedRequest("GET", "/api/products/search?query=choco", nil)
		recorder := httptest.NewRecorder()

		products := []*models.Product{
			{ID: 1, Name: "Torta de chocolate", Price: 120.50, Stock: 5},
		}

		mockCatalogService.On("SearchProducts", mock.Anything, "choco").Return(products, nil).Once()

		// Act
		handler := productHandler.SearchProducts()
		handler(recorder, req)

		// Assert
		assert.Equal(t, http.StatusOK, recorder.Code)

		mockCatalogService.AssertExpectations(t)
	})

	t.Run("Success - Empty Query Returns All", func(t *testing.T) {
		// Arrange
		mockCatalogService, productHandler := setupProductTest()
		req := createUnauthenticatedRequest("GET", "/api/products/search", nil)
		recorder := httptest.NewRecorder()

		mockCatalogService.On("SearchProducts", mock.Anything, "").Return([]*models.Product{}, nil).Once()

		// Act
		handler := productHandler.SearchProducts()
		handler(recorder, req)

		// Assert
		assert.Equal(t, http.StatusOK, recorder.Code)

		mockCatalogService.AssertExpectations(t)
	})
}

func TestListCategoriesHandler(t *testing.T) {
	t.Run("Success - List Categories", func(t *testing.T) {
		// Arrange
		mockCatalogService, productHandler := setupProductTest()
		req := createUnauthenticatedRequest("GET", "/api/categories", nil)
		recorder := httptest.NewRecorder()

		categories := []*models.Category{
			{ID: 3, Name: "Galletas"},
			{ID: 1, Name: "Tortas"},
		}

		mockCatalogService.On("ListCategories", mock.Anything).Return(categories, nil).Once()

		// Act
		handler := productHandler.ListCategories()
		handler(recorder, req)

		// Assert
		assert.Equal(t, http.StatusOK, recorder.Code)

		var resp *response.APIResponse
		err := json.Unmarshal(recorder.Body.Bytes(), &resp)
		assert.NoError(t, err)
		assert.True(t, resp.Success)

		mockCatalogService.AssertExpectations(t)
	})
}
