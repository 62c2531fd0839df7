package service

import (
	"context"
	"fmt"
	"slices"

	"github.com/loandesk/loan-api/internal/core/domain"
	"github.com/loandesk/loan-api/internal/core/ports"
)

// AccessGuard implements the role and ownership checks that run before every
// protected handler.
type AccessGuard struct {
	loans ports.LoanRepository
}

func NewAccessGuard(loans ports.LoanRepository) *AccessGuard {
	return &AccessGuard{loans: loans}
}

// CheckRole allows identity iff its role is in allowed.
func (g *AccessGuard) CheckRole(identity domain.Identity, allowed ...domain.Role) error {
	if slices.Contains(allowed, identity.Role) {
		return nil
	}
	return fmt.Errorf("%w: role %q is not authorized, required one of %v", domain.ErrForbidden, identity.Role, allowed)
}

// CheckOwnership allows managers on any existing loan and applicants on their
// own loans. A missing loan yields ErrLoanNotFound, not ErrForbidden.
func (g *AccessGuard) CheckOwnership(ctx context.Context, identity domain.Identity, loanID int64) error {
	loan, err := g.loans.FindByID(ctx, loanID)
	if err != nil {
		return err
	}

	switch identity.Role {
	case domain.RoleManager:
		return nil
	case domain.RoleApplicant:
		if loan.OwnerID == identity.UserID {
			return nil
		}
		return fmt.Errorf("%w: user %d is not authorized to access loan request %d", domain.ErrForbidden, identity.UserID, loanID)
	default:
		return fmt.Errorf("%w: role %q is not authorized to access loan requests", domain.ErrForbidden, identity.Role)
	}
}
