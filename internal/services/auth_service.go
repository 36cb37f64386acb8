package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/incogni100x/jltstones/internal/models"
	"github.com/incogni100x/jltstones/internal/redis"
	"github.com/incogni100x/jltstones/internal/repository"
)

// SessionStore holds active admin sessions keyed by bearer token.
type SessionStore interface {
	SetSession(ctx context.Context, token string, data *redis.SessionData, ttl time.Duration) error
	GetSession(ctx context.Context, token string) (*redis.SessionData, error)
	DeleteSession(ctx context.Context, token string) error
}

type AuthService interface {
	Login(ctx context.Context, username, password string) (string, *redis.SessionData, error)
	Session(ctx context.Context, token string) (*redis.SessionData, error)
	Logout(ctx context.Context, token string) error
}

type authService struct {
	userRepo   repository.UserRepository
	sessions   SessionStore
	sessionTTL time.Duration
}

func NewAuthService(userRepo repository.UserRepository, sessions SessionStore, sessionTTL time.Duration) AuthService {
	return &authService{
		userRepo:   userRepo,
		sessions:   sessions,
		sessionTTL: sessionTTL,
	}
}

// Login verifies credentials and issues an opaque session token.
func (s *authService) Login(ctx context.Context, username, password string) (string, *redis.SessionData, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			return "", nil, models.ErrInvalidCredentials
		}
		return "", nil, err
	}
	if !user.IsActive {
		return "", nil, models.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, models.ErrInvalidCredentials
	}

	token := uuid.NewString()
	session := &redis.SessionData{
		UserID:    user.ID,
		Username:  user.Username,
		Email:     user.Email,
		Role:      user.Role,
		CreatedAt: time.Now(),
	}

	if err := s.sessions.SetSession(ctx, token, session, s.sessionTTL); err != nil {
		return "", nil, err
	}

	return token, session, nil
}

// Session resolves a bearer token to its session data.
func (s *authService) Session(ctx context.Context, token string) (*redis.SessionData, error) {
	if token == "" {
		return nil, models.ErrUnauthorized
	}
	session, err := s.sessions.GetSession(ctx, token)
	if err != nil {
		if errors.Is(err, models.ErrSessionNotFound) {
			return nil, models.ErrUnauthorized
		}
		return nil, err
	}
	return session, nil
}

// Logout is idempotent: deleting an absent session is not an error.
func (s *authService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.sessions.DeleteSession(ctx, token)
}
