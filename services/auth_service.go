package services

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// AuthService checks the shared admin password. There is a single admin
// account; its bcrypt hash comes from configuration.
type AuthService interface {
	LoginAdmin(ctx context.Context, password string) error
}

type authService struct {
	adminPasswordHash []byte
}

func NewAuthService(adminPasswordHash string) AuthService {
	return &authService{adminPasswordHash: []byte(adminPasswordHash)}
}

func (s *authService) LoginAdmin(_ context.Context, password string) error {
	if password == "" {
		return ErrAuthInvalidCredentials
	}
	err := bcrypt.CompareHashAndPassword(s.adminPasswordHash, []byte(password))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrAuthInvalidCredentials
		}
		return fmt.Errorf("failed to compare password hash: %w", err)
	}
	return nil
}
