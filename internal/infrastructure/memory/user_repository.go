package memory

import (
	"context"

	"github.com/loandesk/loan-api/internal/core/domain"
)

// UserRepository indexes a fixed user list by token.
type UserRepository struct {
	byToken map[string]domain.User
}

// NewUserRepository copies users into a lookup map. Users with an empty token
// never authenticate.
func NewUserRepository(users []domain.User) *UserRepository {
	r := &UserRepository{byToken: make(map[string]domain.User, len(users))}
	for _, u := range users {
		if u.Token != "" {
			r.byToken[u.Token] = u
		}
	}
	return r
}

func (r *UserRepository) FindByToken(_ context.Context, token string) (*domain.User, error) {
	u, ok := r.byToken[token]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &u, nil
}
