// Package memory holds the process-lifetime stores: loans, seeded users and
// idempotency keys. Nothing here survives a restart.
package memory

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/loandesk/loan-api/internal/core/domain"
)

// LoanRepository is a concurrent map of loans keyed by an atomically
// allocated ID starting at 1.
type LoanRepository struct {
	mu    sync.RWMutex
	loans map[int64]domain.LoanRequest
	seq   atomic.Int64
}

func NewLoanRepository() *LoanRepository {
	return &LoanRepository{loans: make(map[int64]domain.LoanRequest)}
}

// Save assigns the next ID when loan.ID is zero and then replaces whatever is
// stored under that ID. The caller's struct receives the assigned ID.
func (r *LoanRepository) Save(_ context.Context, loan *domain.LoanRequest) (*domain.LoanRequest, error) {
	if loan == nil {
		return nil, fmt.Errorf("save loan: nil loan")
	}
	if loan.ID == 0 {
		loan.ID = r.seq.Add(1)
	}

	r.mu.Lock()
	r.loans[loan.ID] = *loan
	r.mu.Unlock()

	clone := *loan
	return &clone, nil
}

func (r *LoanRepository) FindByID(_ context.Context, id int64) (*domain.LoanRequest, error) {
	r.mu.RLock()
	l, ok := r.loans[id]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: id %d", domain.ErrLoanNotFound, id)
	}
	return &l, nil
}

// Update holds the write lock across fn, so concurrent updates and deletes of
// the same loan are serialized. ID and owner changes made by fn are ignored.
func (r *LoanRepository) Update(_ context.Context, id int64, fn func(loan *domain.LoanRequest) error) (*domain.LoanRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.loans[id]
	if !ok {
		return nil, fmt.Errorf("%w: id %d", domain.ErrLoanNotFound, id)
	}
	next := current
	if err := fn(&next); err != nil {
		return nil, err
	}
	next.ID = current.ID
	next.OwnerID = current.OwnerID
	r.loans[id] = next

	return &next, nil
}

// FindAll returns copies of every stored loan in no particular order.
func (r *LoanRepository) FindAll(_ context.Context) ([]*domain.LoanRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.LoanRequest, 0, len(r.loans))
	for _, l := range r.loans {
		clone := l
		out = append(out, &clone)
	}
	return out, nil
}

func (r *LoanRepository) DeleteByID(_ context.Context, id int64) error {
	r.mu.Lock()
	delete(r.loans, id)
	r.mu.Unlock()
	return nil
}
