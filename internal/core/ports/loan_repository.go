package ports

import (
	"context"

	"github.com/loandesk/loan-api/internal/core/domain"
)

// LoanRepository defines persistence operations for loan requests.
// Implementations must be safe for concurrent use without caller-side locking.
type LoanRepository interface {
	// Save allocates an ID when loan.ID is zero, then creates or replaces the record.
	Save(ctx context.Context, loan *domain.LoanRequest) (*domain.LoanRequest, error)
	// FindByID returns domain.ErrLoanNotFound when no loan has the given ID.
	FindByID(ctx context.Context, id int64) (*domain.LoanRequest, error)
	// FindAll returns an unordered snapshot of every stored loan.
	FindAll(ctx context.Context) ([]*domain.LoanRequest, error)
	// Update applies fn to the stored loan and saves the result as one atomic
	// step. It returns domain.ErrLoanNotFound when the loan does not exist and
	// leaves the record untouched when fn fails.
	Update(ctx context.Context, id int64, fn func(loan *domain.LoanRequest) error) (*domain.LoanRequest, error)
	// DeleteByID is a no-op when the loan does not exist.
	DeleteByID(ctx context.Context, id int64) error
}
