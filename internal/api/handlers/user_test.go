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
	"github.com/stretchr/testify/require"
)

func setupUserTest() (*mocks.UserService, *handlers.UserHandler) {
	mockUserService := new(mocks.UserService)
	userHandler := handlers.NewUserHandler(mockUserService)

	return mockUserService, userHandler
}

func TestRegisterHandler(t *testing.T) {
	t.Run("Success - User Registered", func(t *testing.T) {
		// Arrange
		mockUserService, userHandler := setupUserTest()
		body, _ := json.Marshal(map[string]any{
			"nombre":    "Maria Lopez",
			"email":     "maria@example.com",
			"password":  "secreto123",
			"telefono":  "5512345678",
			"direccion": "Av. Siempre Viva 742",
		})
		req := createUnauthenticatedRequest("POST", "/api/auth/register", body)
		recorder := httptest.NewRecorder()

		authResp := &models.AuthResponse{
			Token:     "signed.jwt.token",
			ExpiresIn: 2592000,
			User:      &models.User{ID: 7, Name: "Maria Lopez", Email: "maria@example.com"},
		}

		mockUserService.On("Register", mock.Anything, mock.AnythingOfType("*models.RegisterRequest")).
			Return(authResp, nil).Once()

		// Act
		handler := userHandler.Register()
		handler(recorder, req)

		// Assert
		assert.Equal(t, http.StatusCreated, recorder.Code)

		var resp *response.APIResponse
		err := json.Unmarshal(recorder.Body.Bytes(), &resp)
		assert.NoError(t, err)
		assert.True(t, resp.Success)
		assert.NotNil(t, resp.Data)

		mockUserService.AssertExpectations(t)
	})

	t.Run("Failure - Invalid Email", func(t *testing.T) {
		// Arrange
		mockUserService, userHandler := setupUserTest()
		body, _ := json.Marshal(map[string]any{
			"nombre":    "Maria Lopez",
			"email":     "not-an-email",
			"password":  "secreto123",
			"telefono":  "5512345678",
			"direccion": "Av. Siempre Viva 742",
		})
		req := createUnauthenticatedRequest("POST", "/api/auth/register", body)
		recorder := httptest.NewRecorder()

		// Act
		handler := userHandler.Register()
		handler(recorder, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, recorder.Code)

		var resp *response.APIResponse
		err := json.Unmarshal(recorder.Body.Bytes(), &resp)
		assert.NoError(t, err)
		assert.False(t, resp.Success)
		assert.Equal(t, appErrors.ErrCodeValidation, resp.Error.Code)

		mockUserService.AssertNotCalled(t, "Register", mock.Anything, mock.Anything)
	})

	t.Run("Failure - Phone Must Be 10 Digits", func(t *testing.T) {
		// Arrange
		mockUserService, userHandler := setupUserTest()
		body, _ := json.Marshal(map[string]any{
			"nombre":    "Maria Lopez",
			"email":     "maria@example.com",
			"password":  "secreto123",
			"telefono":  "12345",
			"direccion": "Av. Siempre Viva 742",
		})
		req := createUnauthenticatedRequest("POST", "/api/auth/register", body)
		recorder := httptest.NewRecorder()

		// Act
		handler := userHandler.Register()
		handler(recorder, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, recorder.Code)

		var resp *response.APIResponse
		err := json.Unmarshal(recorder.Body.Bytes(), &resp)
		assert.NoError(t, err)
		require.NotNil(t, resp.Error)
		assert.Equal(t, appErrors.ErrCodeValidation, resp.Error.Code)

		mockUserService.AssertNotCalled(t, "Register", mock.Anything, mock.Anything)
	})

	t.Run("Failure - Duplicate Email", func(t *testing.T) {
		// Arrange
		mockUserService, userHandler := setupUserTest()
		body, _ := json.Marshal(map[string]any{
			"nombre":    "Maria Lopez",
			"email":     "maria@example.com",
			"password":  "secreto123",
			"telefono":  "5512345678",
			"direccion": "Av. Siempre Viva 742",
		})
		req := createUnauthenticatedRequest("POST", "/api/auth/register", body)
		recorder := httptest.NewRecorder()

		mockError := appErrors.DuplicateEntryError("Email already registered")
		mockUserService.On("Register", mock.Anything, mock.AnythingOfType("*models.RegisterRequest")).
			Return(nil, mockError).Once()

		// Act
		handler := userHandler.Register()
		handler(recorder, req)

		// Assert
		assert.Equal(t, http.StatusConflict, recorder.Code)

		var resp *response.APIResponse
		err := json.Unmarshal(recorder.Body.Bytes(), &resp)
		assert.NoError(t, err)
		assert.False(t, resp.Success)
		assert.Equal(t, appErrors.ErrCodeDuplicateEntry, resp.Error.Code)

		mockUserService.AssertExpectations(t)
	})

	t.Run("Failure - Empty Body", func(t *testing.T) {
		// Arrange
		mockUserService, userHandler := setupUserTest()
		req := createUnauthenticatedRequest("POST", "/api/auth/register", nil)
		recorder := httptest.NewRecorder()

		// Act
		handler := userHandler.Register()
		handler(recorder, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, recorder.Code)

		mockUserService.AssertNotCalled(t, "Register", mock.Anything, mock.Anything)
	})
}

func TestLoginHandler(t *testing.T) {
	t.Run("Success - User Logged In", func(t *testing.T) {
		// Arrange
		mockUserService, userHandler := setupUserTest()
		body, _ := json.Marshal(map[string]any{
			"email":    "maria@example.com",
			"password": "secreto123",
		})
		req := createUnauthenticatedRequest("POST", "/api/auth/login", body)
		recorder := httptest.NewRecorder()

		authResp := &models.AuthResponse{
			Token:     "signed.jwt.token",
			ExpiresIn: 2592000,
			User:      &models.User{ID: 7, Email: "maria@example.com"},
		}

		mockUserService.On("Login", mock.Anything, mock.AnythingOfType("*models.LoginRequest")).
			Return(authResp, nil).Once()

		// Act
		handler := userHandler.Login()
		handler(recorder, req)

		// Assert
		assert.Equal(t, http.StatusOK, recorder.Code)

		var resp *response.APIResponse
		err := json.Unmarshal(recorder.Body.Bytes(), &resp)
		assert.NoError(t, err)
		assert.True(t, resp.Success)

		mockUserService.AssertExpectations(t)
	})

	t.Run("Failure - Invalid Credentials", func(t *testing.T) {
		// Arrange
		mockUserService, userHandler := setupUserTest()
		body, _ := json.Marshal(map[string]any{
			"email":    "maria@example.com",
			"password": "incorrecta",
		})
		req := createUnauthenticatedRequest("POST", "/api/auth/login", body)
		recorder := httptest.NewRecorder()

		mockError := appErrors.UnauthorizedError("Invalid email or password")
		mockUserService.On("Login", mock.Anything, mock.AnythingOfType("*models.LoginRequest")).
			Return(nil, mockError).Once()

		// Act
		handler := userHandler.Login()
		handler(recorder, req)

		// Assert
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)

		var resp *response.APIResponse
		err := json.Unmarshal(recorder.Body.Bytes(), &resp)
		assert.NoError(t, err)
		assert.False(t, resp.Success)
		assert.Equal(t, "Invalid email or password", resp.Error.Message)

		mockUserService.AssertExpectations(t)
	})

	t.Run("Failure - Rate Limited", func(t *testing.T) {
		// Arrange
		mockUserService, userHandler := setupUserTest()
		body, _ := json.Marshal(map[string]any{
			"email":    "maria@example.com",
			"password": "secreto123",
		})
		req := createUnauthenticatedRequest("POST", "/api/auth/login", body)
		recorder := httptest.NewRecorder()

		mockError := appErrors.TooManyRequestsError("Too many login attempts. Please try again later.")
		mockUserService.On("Login", mock.Anything, mock.AnythingOfType("*models.LoginRequest")).
			Return(nil, mockError).Once()

		// Act
		handler := userHandler.Login()
		handler(recorder, req)

		// Assert
		assert.Equal(t, http.StatusTooManyRequests, recorder.Code)

		mockUserService.AssertExpectations(t)
	})

	t.Run("Failure - Missing Password", func(t *testing.T) {
		// Arrange
		mockUserService, userHandler := setupUserTest()
		body, _ := json.Marshal(map[string]any{"email": "maria@example.com"})
		req := createUnauthenticatedRequest("POST", "/api/auth/login", body)
		recorder := httptest.NewRecorder()

		// Act
		handler := userHandler.Login()
		handler(recorder, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, recorder.Code)

		mockUserService.AssertNotCalled(t, "Login", mock.Anything, mock.Anything)
	})
}

func TestProfileHandler(t *testing.T) {
	t.Run("Success - Get Profile", func(t *testing.T) {
		// Arrange
		mockUserService, userHandler := setupUserTest()
		req, claims := createAuthenticatedRequest("GET", "/api/auth/profile", nil)
		recorder := httptest.NewRecorder()

		user := &models.User{ID: claims.UserID, Name: "Maria Lopez", Email: claims.Email}
		mockUserService.On("GetProfile", mock.Anything, claims.UserID).Return(user, nil).Once()

		// Act
		handler := userHandler.Profile()
		handler(recorder, req)

		// Assert
		assert.Equal(t, http.StatusOK, recorder.Code)

		var resp *response.APIResponse
		err := json.Unmarshal(recorder.Body.Bytes(), &resp)
		assert.NoError(t, err)
		assert.True(t, resp.Success)

		mockUserService.AssertExpectations(t)
	})

	t.Run("Failure - Unauthorized", func(t *testing.T) {
		// Arrange
		_, userHandler := setupUserTest()
		req := createUnauthenticatedRequest("GET", "/api/auth/profile", nil)
		recorder := httptest.NewRecorder()

		// Act
		handler := userHandler.Profile()
		handler(recorder, req)

		// Assert
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})

	t.Run("Failure - User Not Found", func(t *testing.T) {
		// Arrange
		mockUserService, userHandler := setupUserTest()
		req, claims := createAuthenticatedRequest("GET", "/api/auth/profile", nil)
		recorder := httptest.NewRecorder()

		mockError := appErrors.NotFoundError("User not found")
		mockUserService.On("GetProfile", mock.Anything, claims.UserID).Return(nil, mockError).Once()

		// Act
		handler := userHandler.Profile()
		handler(recorder, req)

		// Assert
		assert.Equal(t, http.StatusNotFound, recorder.Code)

		mockUserService.AssertExpectations(t)
	})
}

func TestUpdateProfileHandler(t *testing.T) {
	t.Run("Success - Profile Updated", func(t *testing.T) {
		// Arrange
		mockUserService, userHandler := setupUserTest()
		body, _ := json.Marshal(map[string]any{
			"nombre":    "Maria Lopez",
			"telefono":  "5598765432",
			"direccion": "Calle Nueva 10",
		})
		req, claims := createAuthenticatedRequest("PUT", "/api/auth/profile", body)
		recorder := httptest.NewRecorder()

		mockUserService.On("UpdateProfile", mock.Anything, claims.UserID, mock.AnythingOfType("*models.UpdateProfileRequest")).
			Return(nil).Once()

		// Act
		handler := userHandler.UpdateProfile()
		handler(recorder, req)

		// Assert
		assert.Equal(t, http.StatusOK, recorder.Code)

		mockUserService.AssertExpectations(t)
	})

	t.Run("Failure - Missing Name", func(t *testing.T) {
		// Arrange
		mockUserService, userHandler := setupUserTest()
		body, _ := json.Marshal(map[string]any{
			"telefono":  "5598765432",
			"direccion": "Calle Nueva 10",
		})
		req, _ := createAuthenticatedRequest("PUT", "/api/auth/profile", body)
		recorder := httptest.NewRecorder()

		// Act
		handler := userHandler.UpdateProfile()
		handler(recorder, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, recorder.Code)

		mockUserService.AssertNotCalled(t, "UpdateProfile", mock.Anything, mock.Anything, mock.Anything)
	})
}
