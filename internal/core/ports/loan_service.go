package ports

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/loandesk/loan-api/internal/core/domain"
)

// CreateLoanInput carries the applicant supplied fields of a new loan request.
type CreateLoanInput struct {
	ApplicantName    string
	Amount           decimal.Decimal
	Currency         string
	IdentityDocument string
	IdempotencyKey   string
}

// UpdateLoanInput replaces the mutable fields of an existing loan request.
// ID, owner, status and creation time are never touched by an update.
type UpdateLoanInput struct {
	ApplicantName    string
	Amount           decimal.Decimal
	Currency         string
	IdentityDocument string
}

// CreateLoanResult is returned by Create.
type CreateLoanResult struct {
	Loan *domain.LoanRequest
	// AlreadyExisted is true when the Idempotency-Key matched an earlier create.
	AlreadyExisted bool
}

// ListLoansInput carries the listing parameters. Page is 0-based.
type ListLoansInput struct {
	Page   int
	Size   int
	Status string // optional; ignored when it does not name a known status
}

// LoanPage is one page of the sorted, scoped listing.
type LoanPage struct {
	Content       []*domain.LoanRequest
	TotalElements int64
	TotalPages    int
	Page          int
	Size          int
}

// LoanEvents receives notifications about completed loan mutations.
type LoanEvents interface {
	LoanCreated(currency domain.Currency)
	StatusChanged(from, to domain.LoanStatus)
	LoanDeleted()
}

// LoanService defines use-case operations for loan requests. Authorization is
// enforced before these run; the identity is passed for scoping and ownership.
type LoanService interface {
	List(ctx context.Context, identity domain.Identity, input ListLoansInput) (*LoanPage, error)
	Get(ctx context.Context, id int64) (*domain.LoanRequest, error)
	Create(ctx context.Context, identity domain.Identity, input CreateLoanInput) (*CreateLoanResult, error)
	Update(ctx context.Context, identity domain.Identity, id int64, input UpdateLoanInput) (*domain.LoanRequest, error)
	UpdateStatus(ctx context.Context, identity domain.Identity, id int64, status string) (*domain.LoanRequest, error)
	Delete(ctx context.Context, identity domain.Identity, id int64) error
}
