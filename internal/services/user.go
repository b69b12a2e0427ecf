package service

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/tortasmolina/storefront/internal/errors"
	"github.com/tortasmolina/storefront/internal/models"
	repository "github.com/tortasmolina/storefront/internal/repositories"
	"github.com/tortasmolina/storefront/internal/repositories/redis"

	"github.com/golang-jwt/jwt/v5"
	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/crypto/bcrypt"
)

type UserService interface {
	Register(ctx context.Context, req *models.RegisterRequest) (*models.AuthResponse, error)
	Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error)
	GetProfile(ctx context.Context, userID int64) (*models.User, error)
	UpdateProfile(ctx context.Context, userID int64, req *models.UpdateProfileRequest) error
}

type userService struct {
	repo      repository.UserRepository
	rateLimit redis.RateLimitRepository
	jwtKey    []byte
	tokenTTL  time.Duration
	sanitizer *bluemonday.Policy
}

func NewUserService(repo repository.UserRepository, rateLimit redis.RateLimitRepository, jwtKey []byte, tokenTTL time.Duration) UserService {
	return &userService{
		repo:      repo,
		rateLimit: rateLimit,
		jwtKey:    jwtKey,
		tokenTTL:  tokenTTL,
		sanitizer: bluemonday.StrictPolicy(),
	}
}

func (s *userService) Register(ctx context.Context, req *models.RegisterRequest) (*models.AuthResponse, error) {

	existingUser, _ := s.repo.GetUserByEmail(ctx, req.Email)
	if existingUser != nil {
		return nil, errors.DuplicateEntryError("Email already registered")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.InternalError("Failed to secure password").WithError(err)
	}

	user := &models.User{
		Name:     s.sanitizer.Sanitize(req.Name),
		Email:    req.Email,
		Password: string(hashedPassword),
		Phone:    req.Phone,
		Address:  s.sanitizer.Sanitize(req.Address),
		Role:     models.RoleCustomer,
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, errors.DatabaseError("Failed to create user").WithError(err)
	}

	token, expiresIn, err := s.generateToken(user)
	if err != nil {
		return nil, errors.InternalError("Failed to generate authentication token").WithError(err)
	}

	return &models.AuthResponse{Token: token, ExpiresIn: expiresIn, User: user}, nil
}

func (s *userService) Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error) {

	allowed, _, retryAfter, err := s.rateLimit.CheckLoginRateLimit(ctx, req.Email)
	if err != nil {
		return nil, errors.ThirdPartyError("Rate limit check failed").WithError(err)
	}

	if !allowed {
		return nil, errors.TooManyRequestsError("Too many login attempts. Please try again later.").
			WithDetail(fmt.Sprintf("retry after %d seconds", retryAfter))
	}

	// Same error for unknown email and wrong password, so the response never
	// reveals which one failed.
	user, err := s.repo.GetUserByEmail(ctx, req.Email)
	if err != nil || bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		return nil, errors.UnauthorizedError("Invalid email or password")
	}

	token, expiresIn, err := s.generateToken(user)
	if err != nil {
		return nil, errors.InternalError("Failed to generate authentication token").WithError(err)
	}

	return &models.AuthResponse{Token: token, ExpiresIn: expiresIn, User: user}, nil
}

func (s *userService) generateToken(user *models.User) (string, int, error) {

	claims := &models.Claims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString(s.jwtKey)
	if err != nil {
		return "", 0, err
	}

	return tokenString, int(time.Until(claims.ExpiresAt.Time).Seconds()), nil
}

func (s *userService) GetProfile(ctx context.Context, userID int64) (*models.User, error) {

	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, errors.NotFoundError("User not found").WithError(err)
	}

	return user, nil
}

func (s *userService) UpdateProfile(ctx context.Context, userID int64, req *models.UpdateProfileRequest) error {

	name := s.sanitizer.Sanitize(req.Name)
	address := s.sanitizer.Sanitize(req.Address)

	err := s.repo.UpdateProfile(ctx, userID, name, req.Phone, address)
	if err != nil {
		if err == sql.ErrNoRows {
			return errors.NotFoundError("User not found").WithError(err)
		}

		return errors.DatabaseError("Failed to update profile").WithError(err)
	}

	return nil
}
