package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"

	"converso-backend/internal/models"
	"converso-backend/internal/repository"
)

// AccountService owns registration and the stateless credential check.
// The bcrypt cost is resolved once at startup and never changes for the
// life of the process.
type AccountService struct {
	userRepo   *repository.UserRepo
	bcryptCost int
}

func NewAccountService(userRepo *repository.UserRepo, bcryptCost int) *AccountService {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &AccountService{
		userRepo:   userRepo,
		bcryptCost: bcryptCost,
	}
}

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

func (s *AccountService) Register(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	fieldErrors := make(map[string]string)

	if !emailRegex.MatchString(req.Email) {
		fieldErrors["email"] = "Invalid email format"
	}
	if req.Password == "" {
		fieldErrors["password"] = "Password is required"
	}

	if len(fieldErrors) > 0 {
		return nil, &ValidationError{Fields: fieldErrors}
	}

	// Fast path for a friendly error; the unique constraint below is
	// what actually guarantees uniqueness.
	_, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err == nil {
		return nil, &ValidationError{Fields: map[string]string{"email": "Email already registered"}}
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:        req.Email,
		PasswordHash: string(hash),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, &ValidationError{Fields: map[string]string{"email": "Email already registered"}}
		}
		return nil, err
	}

	return user, nil
}

// Login is a stateless credential check. Unknown email and wrong
// password produce the same error so the response does not leak which
// field was wrong.
func (s *AccountService) Login(ctx context.Context, req models.LoginRequest) (*models.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &UnauthorizedError{Message: "Invalid email or password"}
		}
		return nil, err
	}

	if !s.VerifyPassword(user, req.Password) {
		return nil, &UnauthorizedError{Message: "Invalid email or password"}
	}

	return user, nil
}

// VerifyPassword recomputes the bcrypt comparison; the comparison
// itself is constant-time.
func (s *AccountService) VerifyPassword(user *models.User, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) == nil
}

// Custom errors
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string { return "Validation error" }

type NotFoundError struct{ Message string }

func (e *NotFoundError) Error() string { return e.Message }

type UnauthorizedError struct{ Message string }

func (e *UnauthorizedError) Error() string { return e.Message }

// GenerationError means the generation backend could not be reached or
// answered with a non-success status. It is a server-side failure, not
// a degradation case.
type GenerationError struct{ Message string }

func (e *GenerationError) Error() string { return e.Message }
