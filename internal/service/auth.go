package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/xxpisal/flower-shop/internal/hash"
	"github.com/xxpisal/flower-shop/internal/logging"
	"github.com/xxpisal/flower-shop/internal/models"
	"github.com/xxpisal/flower-shop/internal/repo"
	"github.com/xxpisal/flower-shop/internal/session"
)

const minPasswordLen = 6

type AuthService struct {
	Repo     *repo.GormRepo
	Sessions session.Store
}

// Signup creates the user and immediately establishes a session for it.
func (s *AuthService) Signup(ctx context.Context, name, email, password string) (*models.User, string, error) {
	l := logging.FromContext(ctx).With("svc", "auth.signup")

	if name == "" || email == "" || password == "" {
		return nil, "", fmt.Errorf("%w: all fields are required", ErrValidation)
	}
	if len(password) < minPasswordLen {
		return nil, "", fmt.Errorf("%w: password must be at least %d characters", ErrValidation, minPasswordLen)
	}

	pwHash, err := hash.HashPassword(password)
	if err != nil {
		l.Error("signup_error", "reason", "cannot hash the password", "error", err)
		return nil, "", err
	}

	user := models.User{
		Name:         name,
		Email:        email,
		PasswordHash: pwHash,
	}
	if err := s.Repo.CreateUserIfNotExists(ctx, &user); err != nil {
		if errors.Is(err, repo.ErrUserAlreadyExists) {
			return nil, "", fmt.Errorf("%w: email already registered", ErrConflict)
		}
		l.Error("signup_error", "error", err)
		return nil, "", err
	}

	token, err := s.Sessions.Create(ctx, user.ID, user.Name)
	if err != nil {
		l.Error("signup_error", "reason", "cannot create session", "error", err)
		return nil, "", err
	}

	l.Info("signup_successful", "user_id", user.ID)
	return &user, token, nil
}

// Login verifies the credentials and establishes a session. A missing user
// and a wrong password surface as the same ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	l := logging.FromContext(ctx).With("svc", "auth.login")

	if email == "" || password == "" {
		return nil, "", fmt.Errorf("%w: email and password are required", ErrValidation)
	}

	user, err := s.Repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		l.Error("login_error", "error", err)
		return nil, "", err
	}
	if !hash.CheckPassword(user.PasswordHash, password) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.Sessions.Create(ctx, user.ID, user.Name)
	if err != nil {
		l.Error("login_error", "reason", "cannot create session", "error", err)
		return nil, "", err
	}

	l.Info("login_successful", "user_id", user.ID)
	return user, token, nil
}

// Logout destroys the server-side session. A session that is already gone
// is not an error.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if err := s.Sessions.Destroy(ctx, token); err != nil {
		if errors.Is(err, session.ErrNoSession) {
			return nil
		}
		logging.FromContext(ctx).Error("logout_error", "error", err)
		return err
	}
	return nil
}
