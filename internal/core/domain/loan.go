package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// LoanStatus represents the lifecycle state of a loan request.
type LoanStatus string

const (
	StatusPending   LoanStatus = "Pending"
	StatusApproved  LoanStatus = "Approved"
	StatusRejected  LoanStatus = "Rejected"
	StatusCancelled LoanStatus = "Cancelled"
)

var canonicalStatuses = []LoanStatus{StatusPending, StatusApproved, StatusRejected, StatusCancelled}

// validTransitions defines the allowed state machine transitions.
// Rejected and Cancelled are terminal.
var validTransitions = map[LoanStatus][]LoanStatus{
	StatusPending:  {StatusApproved, StatusRejected},
	StatusApproved: {StatusCancelled},
}

// NormalizeStatus maps s case-insensitively onto a canonical status. Strings
// that match nothing are returned unchanged so callers can report them verbatim.
func NormalizeStatus(s string) LoanStatus {
	for _, st := range canonicalStatuses {
		if strings.EqualFold(string(st), s) {
			return st
		}
	}
	return LoanStatus(s)
}

// Valid reports whether s is one of the four canonical statuses.
func (s LoanStatus) Valid() bool {
	for _, st := range canonicalStatuses {
		if st == s {
			return true
		}
	}
	return false
}

// CanTransitionTo reports whether a transition from current status to next is valid.
// Requesting the current status again is always allowed.
func (s LoanStatus) CanTransitionTo(next LoanStatus) bool {
	if s == next {
		return true
	}
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// ValidateTransition normalizes requested and checks it against the transition
// table. The returned error wraps ErrInvalidTransition.
func ValidateTransition(current LoanStatus, requested string) (LoanStatus, error) {
	next := NormalizeStatus(requested)
	if !next.Valid() || !NormalizeStatus(string(current)).CanTransitionTo(next) {
		return "", fmt.Errorf("%w from '%s' to '%s'. Allowed transitions: Pending -> Approved/Rejected, Approved -> Cancelled",
			ErrInvalidTransition, current, requested)
	}
	return next, nil
}

// Currency is the ISO code a loan is requested in.
type Currency string

const (
	CurrencyEUR Currency = "EUR"
	CurrencyUSD Currency = "USD"
)

// LoanRequest is the core aggregate. ID is zero until the first save.
type LoanRequest struct {
	ID               int64
	OwnerID          int64
	ApplicantName    string
	Amount           decimal.Decimal
	Currency         Currency
	IdentityDocument string
	Status           LoanStatus
	CreatedAt        time.Time
}

// IsPending reports whether the loan still awaits a decision.
func (l *LoanRequest) IsPending() bool {
	return l.Status == StatusPending
}
