package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	identityRepo "storysync/internal/domain/repository/identity"
	"storysync/internal/infrastructure/identity"
	"storysync/internal/presentation"
)

// AuthMiddleware verifies the bearer session token, requires its subject
// to match the active session identity, and stores the subject on the
// request context. A token signed for another subject never acts as the
// active identity.
func AuthMiddleware(secret []byte, provider identityRepo.Provider) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			authHeader := ctx.Request().Header.Get(presentation.AuthKey)
			if err := validateAuthHeader(authHeader); err != nil {
				return ctx.String(http.StatusUnauthorized, err.Error())
			}

			token := strings.TrimPrefix(authHeader, presentation.BearerPrefix)
			subject, err := identity.ParseSubject(secret, token)
			if err != nil {
				return ctx.String(http.StatusUnauthorized, "invalid session token")
			}

			owner, ok := provider.CurrentIdentity()
			if !ok || subject != owner {
				return ctx.String(http.StatusUnauthorized, "token does not match the active session")
			}

			ctx.Set(presentation.OwnerKey, subject)

			return next(ctx)
		}
	}
}

func validateAuthHeader(authHeader string) error {
	if authHeader == "" {
		return fmt.Errorf("missing Authorization header")
	}
	if !strings.HasPrefix(authHeader, presentation.BearerPrefix) {
		return fmt.Errorf("missing Bearer prefix")
	}

	return nil
}
