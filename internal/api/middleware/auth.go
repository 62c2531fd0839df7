package middleware

import (
	"errors"
	"fmt"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/loandesk/loan-api/internal/core/domain"
	"github.com/loandesk/loan-api/internal/core/ports"
)

const identityKey = "identity"

// DenialRecorder is notified whenever a request is stopped before its handler.
type DenialRecorder interface {
	Denied(reason string)
}

// Auth resolves the bearer token and injects the caller identity into context.
func Auth(resolver ports.IdentityResolver, rec DenialRecorder) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, err := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if err != nil {
				record(rec, "unauthenticated")
				return err
			}

			identity, err := resolver.Resolve(c.Request().Context(), token)
			if err != nil {
				if errors.Is(err, domain.ErrUnauthenticated) {
					record(rec, "unauthenticated")
				}
				return err
			}

			SetIdentity(c, identity)
			return next(c)
		}
	}
}

func bearerToken(header string) (string, error) {
	if header == "" {
		return "", fmt.Errorf("%w: missing authorization header", domain.ErrUnauthenticated)
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", fmt.Errorf("%w: invalid authorization header", domain.ErrUnauthenticated)
	}
	return strings.TrimSpace(parts[1]), nil
}

// SetIdentity stores the authenticated caller on c.
func SetIdentity(c echo.Context, identity domain.Identity) {
	c.Set(identityKey, identity)
}

// IdentityFrom returns the caller stored by Auth.
func IdentityFrom(c echo.Context) (domain.Identity, bool) {
	identity, ok := c.Get(identityKey).(domain.Identity)
	return identity, ok
}

func record(rec DenialRecorder, reason string) {
	if rec != nil {
		rec.Denied(reason)
	}
}
