// Package auth verifies credentials and tracks the signed-in user through fiber sessions.
package auth

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/example/cybercalc/internal/metrics"
	"github.com/example/cybercalc/pkg/models"
)

// ErrInvalidCredentials is returned when the username or password does not match
var ErrInvalidCredentials = errors.New("invalid username or password")

// UserStore is the subset of the entity store used for accounts
type UserStore interface {
	GetUser(id int) (*models.User, bool)
	GetUserByUsername(username string) (*models.User, bool)
	CreateUser(username, password string) (*models.User, error)
}

// Service registers and authenticates accounts
type Service struct {
	users UserStore
	log   *slog.Logger
}

// NewService creates an auth service
func NewService(users UserStore, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{users: users, log: logger.With("component", "auth")}
}

// Register hashes the password and creates the account.
// A taken username surfaces the store's error unchanged.
func (s *Service) Register(username, password string) (*models.User, error) {
	hashed, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	user, err := s.users.CreateUser(username, hashed)
	if err != nil {
		return nil, fmt.Errorf("failed to register %q: %w", username, err)
	}

	metrics.Registrations.Inc()
	s.log.Info("user registered", "user_id", user.ID, "username", username)
	return user, nil
}

// Authenticate returns the account matching the credentials
func (s *Service) Authenticate(username, password string) (*models.User, error) {
	user, ok := s.users.GetUserByUsername(username)
	if !ok || !ComparePasswords(password, user.Password) {
		metrics.Logins.WithLabelValues("rejected").Inc()
		return nil, ErrInvalidCredentials
	}

	metrics.Logins.WithLabelValues("ok").Inc()
	return user, nil
}
