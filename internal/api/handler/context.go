package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/loandesk/loan-api/internal/api/middleware"
	"github.com/loandesk/loan-api/internal/core/domain"
)

// ctxIdentity returns the caller injected by the Auth middleware. Its absence
// means the route was registered without Auth.
func ctxIdentity(c echo.Context) (domain.Identity, error) {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		return domain.Identity{}, fmt.Errorf("%w: missing authentication", domain.ErrUnauthenticated)
	}
	return identity, nil
}

func pathLoanID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid loan id")
	}
	return id, nil
}
