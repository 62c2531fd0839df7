package ports

import "context"

// IdempotencyStore remembers which loan was created for a client supplied
// Idempotency-Key. Keys are scoped per owner.
type IdempotencyStore interface {
	// Claim reserves key for ownerID. When the key is already taken, claimed
	// is false and loanID is the remembered loan, or 0 while the request
	// that claimed it is still running.
	Claim(ctx context.Context, ownerID int64, key string) (loanID int64, claimed bool, err error)
	// Remember binds a claimed key to the created loan.
	Remember(ctx context.Context, ownerID int64, key string, loanID int64) error
	// Release drops a claim whose create failed.
	Release(ctx context.Context, ownerID int64, key string) error
}
