package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/nareswara/libris/internal/domain/entity"
	repo "github.com/nareswara/libris/internal/domain/repository"
	"github.com/nareswara/libris/pkg/helpers"
)

// AuthService registers users and authenticates them, issuing signed tokens.
type AuthService struct {
	Users  repo.UserRepository
	JWT    *helpers.JWTManager
	Logger *logrus.Logger
}

func NewAuthService(users repo.UserRepository, jwt *helpers.JWTManager, logger *logrus.Logger) *AuthService {
	return &AuthService{Users: users, JWT: jwt, Logger: logger}
}

type RegisterInput struct {
	Username string
	Email    string
	Password string
}

// UserSummary is the client-facing projection of a user. The password hash
// never leaves the service.
type UserSummary struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// NormalizeEmail lowercases and trims the login identifier.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register validates input, hashes the password and persists a new user with
// the default role. No token is issued at registration.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*entity.User, error) {
	username := strings.TrimSpace(in.Username)
	email := NormalizeEmail(in.Email)
	if username == "" || email == "" || in.Password == "" {
		return nil, ErrValidation
	}

	// Pre-check keeps the common duplicate path cheap; the unique index still
	// backstops a race between two concurrent registrations.
	if _, err := s.Users.GetByEmail(ctx, email); err == nil {
		return nil, ErrDuplicateUser
	} else if !errors.Is(err, repo.ErrNotFound) {
		s.Logger.WithError(err).WithField("email", email).Error("duplicate check failed")
		return nil, err
	}

	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		s.Logger.WithError(err).Error("password hash failed")
		return nil, err
	}

	u := &entity.User{
		Username: username,
		Email:    email,
		Password: hash,
		Role:     entity.RoleUser,
	}
	if err := s.Users.Create(ctx, u); err != nil {
		if errors.Is(err, repo.ErrDuplicateKey) {
			return nil, ErrDuplicateUser
		}
		s.Logger.WithError(err).WithField("email", email).Error("create user failed")
		return nil, err
	}
	return u, nil
}

// Login verifies credentials and issues a signed token carrying the user's id
// and role. Unknown email and wrong password yield the identical error.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, time.Time, *UserSummary, error) {
	u, err := s.Users.GetByEmail(ctx, NormalizeEmail(email))
	if err != nil || u == nil {
		return "", time.Time{}, nil, ErrInvalidCredentials
	}
	if !helpers.CompareHashAndPassword(u.Password, password) {
		return "", time.Time{}, nil, ErrInvalidCredentials
	}

	token, exp, err := s.JWT.GenerateToken(u.ID, u.Role)
	if err != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Error("generate token failed")
		return "", time.Time{}, nil, err
	}

	summary := &UserSummary{ID: u.ID, Username: u.Username, Email: u.Email, Role: u.Role}
	return token, exp, summary, nil
}
