package auth

import (
	"crypto/rand"
	"encoding/hex"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/mrlokans/readinglog/internal/config"
)

var (
	ErrInvalidPassword = errors.New("invalid password")
	ErrNoPasswordSet   = errors.New("no gate password configured")
	ErrPasswordTooLong = errors.New("password exceeds maximum length of 72 bytes")
)

// Service verifies the gate password. The plaintext from configuration is
// hashed once at construction and discarded.
type Service struct {
	passwordHash []byte
	enabled      bool
}

// NewService creates the gate service. With mode "none" the gate is
// disabled and Authenticate always fails.
func NewService(cfg config.Auth) (*Service, error) {
	if cfg.Mode != config.AuthModeLocal {
		return &Service{enabled: false}, nil
	}
	if cfg.Password == "" {
		return nil, ErrNoPasswordSet
	}
	// bcrypt has a 72-byte limit
	if len(cfg.Password) > 72 {
		return nil, ErrPasswordTooLong
	}

	cost := cfg.BcryptCost
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.Password), cost)
	if err != nil {
		return nil, err
	}
	return &Service{passwordHash: hash, enabled: true}, nil
}

// IsAuthEnabled reports whether the gate is active.
func (s *Service) IsAuthEnabled() bool {
	return s.enabled
}

// Authenticate checks a submitted password against the configured one.
func (s *Service) Authenticate(password string) error {
	if !s.enabled {
		return ErrInvalidPassword
	}
	err := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrInvalidPassword
		}
		return err
	}
	return nil
}

// GenerateSessionSecret creates a random 32-byte secret, hex-encoded, for
// installs that do not configure one.
func GenerateSessionSecret() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}
