package domain

import (
	"errors"
	"strings"
	"testing"
)

func TestNormalizeStatus(t *testing.T) {
	cases := map[string]LoanStatus{
		"pending":   StatusPending,
		"APPROVED":  StatusApproved,
		"Rejected":  StatusRejected,
		"cAnCeLlEd": StatusCancelled,
		"unknown":   LoanStatus("unknown"),
		"":          LoanStatus(""),
	}
	for in, want := range cases {
		if got := NormalizeStatus(in); got != want {
			t.Errorf("NormalizeStatus(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestValidateTransition_Grid(t *testing.T) {
	allowed := map[LoanStatus]map[LoanStatus]bool{
		StatusPending:   {StatusPending: true, StatusApproved: true, StatusRejected: true},
		StatusApproved:  {StatusApproved: true, StatusCancelled: true},
		StatusRejected:  {StatusRejected: true},
		StatusCancelled: {StatusCancelled: true},
	}

	for _, from := range canonicalStatuses {
		for _, to := range canonicalStatuses {
			next, err := ValidateTransition(from, strings.ToLower(string(to)))
			if allowed[from][to] {
				if err != nil {
					t.Errorf("%s -> %s: unexpected error %v", from, to, err)
				}
				if next != to {
					t.Errorf("%s -> %s: got canonical %q", from, to, next)
				}
				continue
			}
			if !errors.Is(err, ErrInvalidTransition) {
				t.Errorf("%s -> %s: expected ErrInvalidTransition, got %v", from, to, err)
			}
		}
	}
}

func TestValidateTransition_UnknownTargetEchoedVerbatim(t *testing.T) {
	_, err := ValidateTransition(StatusPending, "Archived")
	if !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
	msg := err.Error()
	if !strings.Contains(msg, "'Pending'") || !strings.Contains(msg, "'Archived'") {
		t.Errorf("message must carry both statuses, got %q", msg)
	}
}

func TestValidateTransition_BlankTarget(t *testing.T) {
	if _, err := ValidateTransition(StatusApproved, ""); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition for blank status, got %v", err)
	}
}

func TestValidationError_UnwrapsToSentinel(t *testing.T) {
	err := &ValidationError{Fields: []FieldError{{Field: "currency", Message: "must be one of: EUR USD"}}}
	if !errors.Is(err, ErrValidation) {
		t.Fatal("ValidationError must unwrap to ErrValidation")
	}
	if !strings.Contains(err.Error(), "currency must be one of") {
		t.Errorf("unexpected message %q", err.Error())
	}
}
