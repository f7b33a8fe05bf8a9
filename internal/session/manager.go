package session

import (
	"context"
	"crypto/subtle"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Manager gates the admin area with one fixed credential pair. This is a
// placeholder check, not a security boundary.
type Manager struct {
	flags        FlagStore
	ttl          time.Duration
	username     string
	passwordHash []byte
	logger       *zap.Logger
}

func NewManager(flags FlagStore, ttl time.Duration, username, password string, logger *zap.Logger) (*Manager, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash admin password: %w", err)
	}
	return &Manager{
		flags:        flags,
		ttl:          ttl,
		username:     username,
		passwordHash: hash,
		logger:       logger,
	}, nil
}

// Authenticate checks the credentials and, on success, always records the
// flag for sessionID.
func (m *Manager) Authenticate(ctx context.Context, sessionID, username, password string) (bool, error) {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(m.username)) == 1
	passOK := bcrypt.CompareHashAndPassword(m.passwordHash, []byte(password)) == nil
	if !userOK || !passOK {
		m.logger.Info("Admin login rejected", zap.String("username", username))
		return false, nil
	}

	if err := m.flags.Set(ctx, sessionID, m.ttl); err != nil {
		return false, fmt.Errorf("failed to store session: %w", err)
	}
	m.logger.Info("Admin authenticated")
	return true, nil
}

// IsAuthenticated reports the flag for sessionID. Storage errors count as
// unauthenticated.
func (m *Manager) IsAuthenticated(ctx context.Context, sessionID string) bool {
	if sessionID == "" {
		return false
	}
	ok, err := m.flags.Exists(ctx, sessionID)
	if err != nil {
		m.logger.Warn("Failed to read session flag", zap.Error(err))
		return false
	}
	return ok
}

func (m *Manager) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	return m.flags.Delete(ctx, sessionID)
}
