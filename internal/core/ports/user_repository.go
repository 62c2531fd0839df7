package ports

import (
	"context"

	"github.com/loandesk/loan-api/internal/core/domain"
)

// UserRepository exposes the fixed set of seeded users.
type UserRepository interface {
	FindByToken(ctx context.Context, token string) (*domain.User, error)
}
