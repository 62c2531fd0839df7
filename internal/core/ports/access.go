package ports

import (
	"context"

	"github.com/loandesk/loan-api/internal/core/domain"
)

// IdentityResolver maps a bearer token to the caller identity.
type IdentityResolver interface {
	Resolve(ctx context.Context, token string) (domain.Identity, error)
}

// TokenVerifier checks a token's signature and returns its subject.
type TokenVerifier interface {
	Verify(raw string) (subject string, err error)
}

// AccessGuard decides whether an identity may run an operation.
type AccessGuard interface {
	CheckRole(identity domain.Identity, allowed ...domain.Role) error
	CheckOwnership(ctx context.Context, identity domain.Identity, loanID int64) error
}
