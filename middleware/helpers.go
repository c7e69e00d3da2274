package middleware

import (
	"context"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v4"
)

type contextKey string

const userContextKey contextKey = "user"

// Имена claims. Админка ставит роль в vaiTro, сервис входа подписывает role.
const (
	jwtClaimUserID  = "id"
	jwtClaimRole    = "vaiTro"
	jwtClaimRoleAlt = "role"
)

var errNoClaims = errors.New("user claims not found in context or invalid type")

func GetUserIDFromContext(ctx context.Context) (string, error) {
	claims, ok := ctx.Value(userContextKey).(jwt.MapClaims)
	if !ok {
		return "", errNoClaims
	}

	switch v := claims[jwtClaimUserID].(type) {
	case string:
		if v == "" {
			return "", fmt.Errorf("empty '%s' claim in token", jwtClaimUserID)
		}
		return v, nil
	case float64:
		return fmt.Sprintf("%.0f", v), nil
	case nil:
		return "", fmt.Errorf("missing '%s' claim in token", jwtClaimUserID)
	default:
		return "", fmt.Errorf("invalid type for '%s' claim: %T", jwtClaimUserID, v)
	}
}

func GetUserRoleFromContext(ctx context.Context) (string, error) {
	claims, ok := ctx.Value(userContextKey).(jwt.MapClaims)
	if !ok {
		return "", errNoClaims
	}

	for _, name := range []string{jwtClaimRole, jwtClaimRoleAlt} {
		raw, ok := claims[name]
		if !ok {
			continue
		}
		role, ok := raw.(string)
		if !ok {
			return "", fmt.Errorf("invalid type for '%s' claim: expected string, got %T", name, raw)
		}
		return role, nil
	}
	return "", fmt.Errorf("missing '%s' claim in token", jwtClaimRole)
}

