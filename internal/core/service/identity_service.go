package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/loandesk/loan-api/internal/core/domain"
	"github.com/loandesk/loan-api/internal/core/ports"
)

// IdentityService resolves bearer tokens against the seeded users.
type IdentityService struct {
	users    ports.UserRepository
	verifier ports.TokenVerifier
}

// NewIdentityService wires an IdentityService. With a nil verifier tokens are
// matched against the user store only.
func NewIdentityService(users ports.UserRepository, verifier ports.TokenVerifier) *IdentityService {
	return &IdentityService{users: users, verifier: verifier}
}

// Resolve checks the token signature, then requires the token to be the one
// issued to a seeded user whose ID matches the token subject.
func (s *IdentityService) Resolve(ctx context.Context, token string) (domain.Identity, error) {
	if token == "" {
		return domain.Identity{}, fmt.Errorf("%w: missing token", domain.ErrUnauthenticated)
	}

	var subject string
	if s.verifier != nil {
		sub, err := s.verifier.Verify(token)
		if err != nil || sub == "" {
			return domain.Identity{}, fmt.Errorf("%w: invalid token", domain.ErrUnauthenticated)
		}
		subject = sub
	}

	user, err := s.users.FindByToken(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.Identity{}, fmt.Errorf("%w: invalid token", domain.ErrUnauthenticated)
		}
		return domain.Identity{}, fmt.Errorf("resolve token: %w", err)
	}

	if subject != "" && subject != strconv.FormatInt(user.ID, 10) {
		return domain.Identity{}, fmt.Errorf("%w: token subject does not match its user", domain.ErrUnauthenticated)
	}
	return user.Identity(), nil
}
