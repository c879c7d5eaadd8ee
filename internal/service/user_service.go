// Package service implements business logic, validation, and orchestration
// between HTTP handlers and the repository layer.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/eventtix/eventtix/internal/auth"
	"github.com/eventtix/eventtix/internal/model"
	"github.com/eventtix/eventtix/internal/repository"
	"github.com/google/uuid"
)

// UserService handles registration, authentication, and profile lookups.
type UserService struct {
	users repository.UserRepository
}

// NewUserService constructs a UserService.
func NewUserService(users repository.UserRepository) *UserService {
	return &UserService{users: users}
}

// Register validates the request, hashes the password, and creates the
// account. Emails are case-normalized so registration is unique regardless
// of casing.
func (s *UserService) Register(ctx context.Context, req model.RegisterRequest) (*model.User, error) {
	name := strings.TrimSpace(req.Name)
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if name == "" || email == "" || req.Password == "" {
		return nil, fmt.Errorf("%w: name, email and password are required", model.ErrValidation)
	}
	if !isValidEmail(email) {
		return nil, fmt.Errorf("%w: email is not a valid address", model.ErrValidation)
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	created := *user
	created.PasswordHash = ""
	return &created, nil
}

// Authenticate verifies credentials and returns the account. Unknown email
// and wrong password collapse into the single model.ErrInvalidCredentials so
// the caller cannot probe which emails are registered.
func (s *UserService) Authenticate(ctx context.Context, req model.LoginRequest) (*model.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("authenticate: %w", err)
	}
	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		return nil, model.ErrInvalidCredentials
	}

	verified := *user
	verified.PasswordHash = ""
	return &verified, nil
}

// Profile returns the account for an authenticated user id.
func (s *UserService) Profile(ctx context.Context, userID string) (*model.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	profile := *user
	profile.PasswordHash = ""
	return &profile, nil
}

// isValidEmail does a basic structural check (no external deps).
func isValidEmail(email string) bool {
	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return false
	}
	return len(parts[0]) > 0 && strings.Contains(parts[1], ".")
}
