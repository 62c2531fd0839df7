package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/loandesk/loan-api/internal/core/domain"
)

func TestUserRepository_Lookups(t *testing.T) {
	r := NewUserRepository([]domain.User{
		{ID: 1, Name: "Mario Rossi", Role: domain.RoleApplicant, Token: "t1"},
		{ID: 2, Name: "Luigi Bianchi", Role: domain.RoleManager, Token: "t2"},
		{ID: 3, Name: "No Token", Role: domain.RoleApplicant},
	})
	ctx := context.Background()

	u, err := r.FindByToken(ctx, "t2")
	if err != nil || u.ID != 2 {
		t.Errorf("FindByToken(t2): got %+v, %v", u, err)
	}
	if _, err := r.FindByToken(ctx, "missing"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
	if _, err := r.FindByToken(ctx, ""); !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("empty token must not match a tokenless user, got %v", err)
	}
}
