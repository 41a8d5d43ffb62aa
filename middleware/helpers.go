package middleware

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/sut-badminton/registration/models"
)

const (
	jwtClaimSubject = "sub"
	jwtClaimRole    = "role"
)

// NewAdminClaims builds the claims of an admin session token.
func NewAdminClaims(now time.Time, ttl time.Duration) jwt.MapClaims {
	return jwt.MapClaims{
		jwtClaimSubject: "admin",
		jwtClaimRole:    string(models.RoleAdmin),
		"iat":           now.Unix(),
		"exp":           now.Add(ttl).Unix(),
	}
}

func GetUserRoleFromContext(ctx context.Context) (models.UserRole, error) {
	claims, ok := ctx.Value(userContextKey).(jwt.MapClaims)
	if !ok {
		return "", errors.New("user claims not found in context or invalid type")
	}

	roleClaim, ok := claims[jwtClaimRole]
	if !ok {
		return "", fmt.Errorf("missing '%s' claim in token", jwtClaimRole)
	}

	roleStr, ok := roleClaim.(string)
	if !ok {
		return "", fmt.Errorf("invalid type for '%s' claim: expected string, got %T", jwtClaimRole, roleClaim)
	}

	role := models.UserRole(roleStr)
	switch role {
	case models.RoleAdmin:
		return role, nil
	default:
		return "", fmt.Errorf("invalid role value in claim: %q", roleStr)
	}
}
