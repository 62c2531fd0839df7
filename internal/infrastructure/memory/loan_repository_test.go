package memory

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/loandesk/loan-api/internal/core/domain"
)

func newLoan(owner int64) *domain.LoanRequest {
	return &domain.LoanRequest{
		OwnerID:          owner,
		ApplicantName:    "Mario Rossi",
		Amount:           decimal.NewFromInt(100),
		Currency:         domain.CurrencyEUR,
		IdentityDocument: "ABC12345",
		Status:           domain.StatusPending,
	}
}

func TestLoanRepository_SaveAssignsSequentialIDs(t *testing.T) {
	r := NewLoanRepository()
	ctx := context.Background()

	for want := int64(1); want <= 3; want++ {
		saved, err := r.Save(ctx, newLoan(1))
		if err != nil {
			t.Fatalf("save: %v", err)
		}
		if saved.ID != want {
			t.Errorf("expected id %d, got %d", want, saved.ID)
		}
	}
}

func TestLoanRepository_SaveReplacesExisting(t *testing.T) {
	r := NewLoanRepository()
	ctx := context.Background()

	saved, _ := r.Save(ctx, newLoan(1))
	saved.Status = domain.StatusApproved
	if _, err := r.Save(ctx, saved); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := r.FindByID(ctx, saved.ID)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if got.Status != domain.StatusApproved {
		t.Errorf("expected replaced status Approved, got %q", got.Status)
	}
	all, _ := r.FindAll(ctx)
	if len(all) != 1 {
		t.Errorf("replace must not add a row, got %d", len(all))
	}
}

func TestLoanRepository_ReturnsCopies(t *testing.T) {
	r := NewLoanRepository()
	ctx := context.Background()
	saved, _ := r.Save(ctx, newLoan(1))

	found, _ := r.FindByID(ctx, saved.ID)
	found.ApplicantName = "mutated"

	again, _ := r.FindByID(ctx, saved.ID)
	if again.ApplicantName != "Mario Rossi" {
		t.Errorf("caller mutation leaked into store: %q", again.ApplicantName)
	}
}

func TestLoanRepository_FindByID_NotFound(t *testing.T) {
	r := NewLoanRepository()

	_, err := r.FindByID(context.Background(), 7)
	if !errors.Is(err, domain.ErrLoanNotFound) {
		t.Errorf("expected ErrLoanNotFound, got %v", err)
	}
}

func TestLoanRepository_DeleteByID(t *testing.T) {
	r := NewLoanRepository()
	ctx := context.Background()
	saved, _ := r.Save(ctx, newLoan(1))

	if err := r.DeleteByID(ctx, saved.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := r.FindByID(ctx, saved.ID); !errors.Is(err, domain.ErrLoanNotFound) {
		t.Errorf("expected ErrLoanNotFound after delete, got %v", err)
	}
	if err := r.DeleteByID(ctx, 999); err != nil {
		t.Errorf("deleting a missing id must be a no-op, got %v", err)
	}
}

func TestLoanRepository_SaveNil(t *testing.T) {
	if _, err := NewLoanRepository().Save(context.Background(), nil); err == nil {
		t.Error("expected error for nil loan")
	}
}

func TestLoanRepository_ConcurrentSaveDistinctIDs(t *testing.T) {
	const n = 200
	r := NewLoanRepository()
	ctx := context.Background()

	var wg sync.WaitGroup
	ids := make(chan int64, n)
	for range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			saved, err := r.Save(ctx, newLoan(1))
			if err != nil {
				t.Errorf("save: %v", err)
				return
			}
			ids <- saved.ID
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[int64]bool, n)
	for id := range ids {
		if seen[id] {
			t.Fatalf("duplicate id %d", id)
		}
		seen[id] = true
	}
	for id := int64(1); id <= n; id++ {
		if !seen[id] {
			t.Errorf("id %d was never allocated", id)
		}
	}
	all, _ := r.FindAll(ctx)
	if len(all) != n {
		t.Errorf("expected %d stored loans, got %d", n, len(all))
	}
}

func TestLoanRepository_Update(t *testing.T) {
	r := NewLoanRepository()
	ctx := context.Background()
	saved, _ := r.Save(ctx, newLoan(1))

	updated, err := r.Update(ctx, saved.ID, func(l *domain.LoanRequest) error {
		l.Status = domain.StatusApproved
		l.ID = 99
		l.OwnerID = 42
		return nil
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Status != domain.StatusApproved || updated.ID != saved.ID || updated.OwnerID != 1 {
		t.Errorf("unexpected result %+v", updated)
	}
	if _, err := r.FindByID(ctx, 99); !errors.Is(err, domain.ErrLoanNotFound) {
		t.Errorf("update must not move the record, got %v", err)
	}
}

func TestLoanRepository_Update_FailureLeavesRecord(t *testing.T) {
	r := NewLoanRepository()
	ctx := context.Background()
	saved, _ := r.Save(ctx, newLoan(1))
	boom := errors.New("boom")

	_, err := r.Update(ctx, saved.ID, func(l *domain.LoanRequest) error {
		l.ApplicantName = "half-written"
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected fn error, got %v", err)
	}
	got, _ := r.FindByID(ctx, saved.ID)
	if got.ApplicantName != "Mario Rossi" {
		t.Errorf("failed update leaked a change: %q", got.ApplicantName)
	}
}

func TestLoanRepository_Update_Missing(t *testing.T) {
	called := false
	_, err := NewLoanRepository().Update(context.Background(), 5, func(*domain.LoanRequest) error {
		called = true
		return nil
	})
	if !errors.Is(err, domain.ErrLoanNotFound) {
		t.Errorf("expected ErrLoanNotFound, got %v", err)
	}
	if called {
		t.Error("fn must not run for a missing loan")
	}
}

func TestLoanRepository_Update_Serialized(t *testing.T) {
	const n = 100
	r := NewLoanRepository()
	ctx := context.Background()
	saved, _ := r.Save(ctx, newLoan(1))
	one := decimal.NewFromInt(1)

	var wg sync.WaitGroup
	for range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = r.Update(ctx, saved.ID, func(l *domain.LoanRequest) error {
				l.Amount = l.Amount.Add(one)
				return nil
			})
		}()
	}
	wg.Wait()

	got, _ := r.FindByID(ctx, saved.ID)
	if want := decimal.NewFromInt(100 + n); !got.Amount.Equal(want) {
		t.Errorf("lost updates: amount %s, want %s", got.Amount, want)
	}
}
