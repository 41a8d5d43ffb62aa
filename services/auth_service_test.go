package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestAuthService_LoginAdmin(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)
	svc := NewAuthService(string(hash))

	assert.NoError(t, svc.LoginAdmin(context.Background(), "s3cret"))
	assert.ErrorIs(t, svc.LoginAdmin(context.Background(), "wrong"), ErrAuthInvalidCredentials)
	assert.ErrorIs(t, svc.LoginAdmin(context.Background(), ""), ErrAuthInvalidCredentials)
}

func TestAuthService_BrokenHash(t *testing.T) {
	svc := NewAuthService("not-a-bcrypt-hash")

	err := svc.LoginAdmin(context.Background(), "anything")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrAuthInvalidCredentials)
}
