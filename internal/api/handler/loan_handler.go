package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/loandesk/loan-api/internal/core/ports"
)

const headerIdempotencyKey = "Idempotency-Key"

// LoanHandler handles HTTP requests for loan request operations. Access
// control has already run by the time these methods are called.
type LoanHandler struct {
	service ports.LoanService
}

func NewLoanHandler(service ports.LoanService) *LoanHandler {
	return &LoanHandler{service: service}
}

// List handles GET /api/loans.
//
// @Summary      List loan requests
// @Description  Applicants see only their own requests. Pending requests come first, oldest first.
// @Tags         loans
// @Produce      json
// @Security     BearerAuth
// @Param        page    query     int     false  "Page index (0-based)"     default(0)  minimum(0)
// @Param        size    query     int     false  "Page size"                default(10) minimum(1) maximum(100)
// @Param        status  query     string  false  "Status filter (case-insensitive)"
// @Success      200     {object}  loanPageResponse
// @Failure      400     {object}  errorResponse
// @Failure      401     {object}  errorResponse
// @Failure      403     {object}  errorResponse
// @Router       /api/loans [get]
func (h *LoanHandler) List(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	q := listLoansQuery{Size: defaultPageSize}
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query parameters")
	}
	if err := c.Validate(&q); err != nil {
		return err
	}

	page, err := h.service.List(c.Request().Context(), identity, ports.ListLoansInput{
		Page:   q.Page,
		Size:   q.Size,
		Status: q.Status,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPageResponse(page))
}

// Get handles GET /api/loans/:id.
//
// @Summary      Get a loan request
// @Tags         loans
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Loan request ID"
// @Success      200  {object}  loanResponse
// @Failure      400  {object}  errorResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/loans/{id} [get]
func (h *LoanHandler) Get(c echo.Context) error {
	id, err := pathLoanID(c)
	if err != nil {
		return err
	}

	loan, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toLoanResponse(loan))
}

// Create handles POST /api/loans.
//
// @Summary      Create a loan request
// @Description  The new request is Pending and owned by the caller. Replaying an Idempotency-Key returns the original request with 200.
// @Tags         loans
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        Idempotency-Key  header    string             false  "Idempotency key to prevent duplicate submissions"
// @Param        body             body      createLoanRequest  true   "Loan request details"
// @Success      201              {object}  loanResponse
// @Success      200              {object}  loanResponse
// @Failure      400              {object}  errorResponse
// @Failure      401              {object}  errorResponse
// @Failure      403              {object}  errorResponse
// @Failure      409              {object}  errorResponse
// @Router       /api/loans [post]
func (h *LoanHandler) Create(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req createLoanRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	result, err := h.service.Create(c.Request().Context(), identity, toCreateInput(req, c.Request().Header.Get(headerIdempotencyKey)))
	if err != nil {
		return err
	}

	status := http.StatusCreated
	if result.AlreadyExisted {
		status = http.StatusOK
	}
	return c.JSON(status, toLoanResponse(result.Loan))
}

// Update handles PUT /api/loans/:id.
//
// @Summary      Replace a loan request
// @Description  ID, owner, status and creation time are preserved.
// @Tags         loans
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                true  "Loan request ID"
// @Param        body  body      updateLoanRequest  true  "Loan request details"
// @Success      200   {object}  loanResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/loans/{id} [put]
func (h *LoanHandler) Update(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	id, err := pathLoanID(c)
	if err != nil {
		return err
	}

	var req updateLoanRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	loan, err := h.service.Update(c.Request().Context(), identity, id, toUpdateInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toLoanResponse(loan))
}

// UpdateStatus handles PATCH /api/loans/:id/status.
//
// @Summary      Change the status of a loan request
// @Description  Allowed: Pending -> Approved/Rejected, Approved -> Cancelled. Repeating the current status is a no-op.
// @Tags         loans
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                  true  "Loan request ID"
// @Param        body  body      updateStatusRequest  true  "Target status"
// @Success      200   {object}  loanResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/loans/{id}/status [patch]
func (h *LoanHandler) UpdateStatus(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	id, err := pathLoanID(c)
	if err != nil {
		return err
	}

	var req updateStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	loan, err := h.service.UpdateStatus(c.Request().Context(), identity, id, req.Status)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toLoanResponse(loan))
}

// Delete handles DELETE /api/loans/:id.
//
// @Summary      Delete a loan request
// @Description  Who may delete is set by DELETE_POLICY (owner, manager or open).
// @Tags         loans
// @Security     BearerAuth
// @Param        id   path  int  true  "Loan request ID"
// @Success      204
// @Failure      400  {object}  errorResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/loans/{id} [delete]
func (h *LoanHandler) Delete(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	id, err := pathLoanID(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), identity, id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
