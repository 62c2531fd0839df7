package handler

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error   string              `json:"error"`
	Details []fieldErrorPayload `json:"details,omitempty"`
}

type fieldErrorPayload struct {
	Field         string `json:"field"`
	Message       string `json:"message"`
	RejectedValue any    `json:"rejectedValue,omitempty"`
}

// --- Request types ---

type createLoanRequest struct {
	ApplicantName    string          `json:"applicantName"    validate:"notblank"`
	Amount           decimal.Decimal `json:"amount"           validate:"required,gte=1" swaggertype:"number" example:"5000.00"`
	Currency         string          `json:"currency"         validate:"required,oneof=EUR USD" example:"EUR"`
	IdentityDocument string          `json:"identityDocument" validate:"required,iddoc" example:"ABC12345"`
}

// updateLoanRequest carries the same fields as a create; status, owner and
// creation time cannot be changed through it.
type updateLoanRequest createLoanRequest

type updateStatusRequest struct {
	Status string `json:"status" validate:"notblank" example:"Approved"`
}

type listLoansQuery struct {
	Page   int    `query:"page"   validate:"gte=0"`
	Size   int    `query:"size"   validate:"gte=1,lte=100"`
	Status string `query:"status"`
}

const defaultPageSize = 10

// --- Response types ---

type loanResponse struct {
	ID               int64       `json:"id"               example:"1"`
	OwnerID          int64       `json:"ownerId"          example:"1"`
	ApplicantName    string      `json:"applicantName"    example:"Mario Rossi"`
	Amount           json.Number `json:"amount"           swaggertype:"number" example:"5000.00"`
	Currency         string      `json:"currency"         example:"EUR"`
	IdentityDocument string      `json:"identityDocument" example:"ABC12345"`
	Status           string      `json:"status"           example:"Pending"`
	CreatedAt        time.Time   `json:"createdAt"`
}

type loanPageResponse struct {
	Content       []loanResponse `json:"content"`
	TotalElements int64          `json:"totalElements"`
	TotalPages    int            `json:"totalPages"`
	Page          int            `json:"page"`
	Size          int            `json:"size"`
}
