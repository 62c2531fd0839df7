package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/loandesk/loan-api/internal/core/domain"
	"github.com/loandesk/loan-api/internal/core/ports"
)

// Policy is the access rule attached to a route at registration time.
type Policy struct {
	// Roles lists the roles allowed on the route. Empty means any
	// authenticated caller.
	Roles []domain.Role
	// Ownership additionally requires the caller to own the loan named by
	// the :id path parameter. Managers always pass.
	Ownership bool
}

// Enforce runs the role check and then, when the policy asks for it, the
// ownership check. It must be mounted after Auth.
func Enforce(guard ports.AccessGuard, p Policy, rec DenialRecorder) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity, ok := IdentityFrom(c)
			if !ok {
				record(rec, "unauthenticated")
				return fmt.Errorf("%w: missing identity", domain.ErrUnauthenticated)
			}

			if len(p.Roles) > 0 {
				if err := guard.CheckRole(identity, p.Roles...); err != nil {
					record(rec, "role")
					return err
				}
			}

			if p.Ownership {
				id, err := strconv.ParseInt(c.Param("id"), 10, 64)
				if err != nil || id <= 0 {
					return echo.NewHTTPError(http.StatusBadRequest, "invalid loan id")
				}
				if err := guard.CheckOwnership(c.Request().Context(), identity, id); err != nil {
					switch {
					case errors.Is(err, domain.ErrLoanNotFound):
						record(rec, "not_found")
					case errors.Is(err, domain.ErrForbidden):
						record(rec, "ownership")
					}
					return err
				}
			}

			return next(c)
		}
	}
}
