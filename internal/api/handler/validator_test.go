package handler

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/loandesk/loan-api/internal/core/domain"
)

func validCreate() createLoanRequest {
	return createLoanRequest{
		ApplicantName:    "Mario Rossi",
		Amount:           decimal.NewFromInt(5000),
		Currency:         "EUR",
		IdentityDocument: "ABC12345",
	}
}

func fieldsOf(t *testing.T, err error) map[string]string {
	t.Helper()
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected *domain.ValidationError, got %T (%v)", err, err)
	}
	out := make(map[string]string, len(ve.Fields))
	for _, f := range ve.Fields {
		out[f.Field] = f.Message
	}
	return out
}

func TestValidator_CreateLoanRequest_Valid(t *testing.T) {
	v := NewValidator()

	if err := v.Validate(&createLoanRequest{
		ApplicantName:    "Mario Rossi",
		Amount:           decimal.RequireFromString("1"),
		Currency:         "USD",
		IdentityDocument: "xyz00000",
	}); err != nil {
		t.Errorf("expected valid request, got %v", err)
	}
}

func TestValidator_CreateLoanRequest_Violations(t *testing.T) {
	v := NewValidator()

	cases := []struct {
		name   string
		mutate func(r *createLoanRequest)
		field  string
	}{
		{"blank name", func(r *createLoanRequest) { r.ApplicantName = "   " }, "applicantName"},
		{"zero amount", func(r *createLoanRequest) { r.Amount = decimal.Zero }, "amount"},
		{"amount below minimum", func(r *createLoanRequest) { r.Amount = decimal.RequireFromString("0.99") }, "amount"},
		{"negative amount", func(r *createLoanRequest) { r.Amount = decimal.NewFromInt(-5) }, "amount"},
		{"three decimals", func(r *createLoanRequest) { r.Amount = decimal.RequireFromString("1000.005") }, "amount"},
		{"unknown currency", func(r *createLoanRequest) { r.Currency = "GBP" }, "currency"},
		{"lower-case currency", func(r *createLoanRequest) { r.Currency = "eur" }, "currency"},
		{"missing currency", func(r *createLoanRequest) { r.Currency = "" }, "currency"},
		{"short document", func(r *createLoanRequest) { r.IdentityDocument = "AB12345" }, "identityDocument"},
		{"digits first", func(r *createLoanRequest) { r.IdentityDocument = "12345ABC" }, "identityDocument"},
		{"missing document", func(r *createLoanRequest) { r.IdentityDocument = "" }, "identityDocument"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validCreate()
			tc.mutate(&req)

			fields := fieldsOf(t, v.Validate(&req))
			if _, ok := fields[tc.field]; !ok {
				t.Errorf("expected violation on %q, got %v", tc.field, fields)
			}
			if len(fields) != 1 {
				t.Errorf("expected exactly one violation, got %v", fields)
			}
		})
	}
}

func TestValidator_ReportsEveryField(t *testing.T) {
	fields := fieldsOf(t, NewValidator().Validate(&createLoanRequest{}))

	for _, name := range []string{"applicantName", "amount", "currency", "identityDocument"} {
		if fields[name] == "" {
			t.Errorf("missing message for %q in %v", name, fields)
		}
	}
	if fields["applicantName"] != "is required" {
		t.Errorf("unexpected message: %q", fields["applicantName"])
	}
}

func TestValidator_UpdateStatusRequest(t *testing.T) {
	v := NewValidator()

	if err := v.Validate(&updateStatusRequest{Status: "approved"}); err != nil {
		t.Errorf("expected valid, got %v", err)
	}
	fields := fieldsOf(t, v.Validate(&updateStatusRequest{Status: ""}))
	if _, ok := fields["status"]; !ok {
		t.Errorf("expected violation on status, got %v", fields)
	}
}

func TestValidator_ListQuery(t *testing.T) {
	v := NewValidator()

	if err := v.Validate(&listLoansQuery{Page: 0, Size: 100}); err != nil {
		t.Errorf("expected valid, got %v", err)
	}
	fields := fieldsOf(t, v.Validate(&listLoansQuery{Page: -1, Size: 101}))
	if fields["page"] == "" || fields["size"] == "" {
		t.Errorf("expected page and size violations, got %v", fields)
	}
	if fields["size"] != "must be less than or equal to 100" {
		t.Errorf("unexpected size message: %q", fields["size"])
	}
}

func TestValidator_AmountScale(t *testing.T) {
	v := NewValidator()

	for _, raw := range []string{"1000", "1000.5", "1000.50", "1000.500"} {
		req := validCreate()
		req.Amount = decimal.RequireFromString(raw)
		if err := v.Validate(&req); err != nil {
			t.Errorf("amount %s: expected valid, got %v", raw, err)
		}
	}

	upd := updateLoanRequest(validCreate())
	upd.Amount = decimal.RequireFromString("12.345")
	fields := fieldsOf(t, v.Validate(&upd))
	if fields["amount"] != "must have at most 2 decimal places" {
		t.Errorf("unexpected amount message: %v", fields)
	}
}
