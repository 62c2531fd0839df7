package service

import (
	"cmp"
	"slices"

	"github.com/loandesk/loan-api/internal/core/domain"
	"github.com/loandesk/loan-api/internal/core/ports"
)

// listLoans scopes, filters, sorts and paginates a store snapshot.
//
//  1. Applicants only see their own loans; managers see everything.
//  2. A status filter that does not normalize to a known status is ignored.
//  3. Pending loans come first, each group ordered by CreatedAt ascending
//     with zero timestamps last; ties fall back to ascending ID.
//  4. Pages past the end are empty, never an error.
func listLoans(all []*domain.LoanRequest, identity domain.Identity, in ports.ListLoansInput) ports.LoanPage {
	var status domain.LoanStatus
	if in.Status != "" {
		if st := domain.NormalizeStatus(in.Status); st.Valid() {
			status = st
		}
	}

	visible := make([]*domain.LoanRequest, 0, len(all))
	for _, l := range all {
		if !identity.IsManager() && l.OwnerID != identity.UserID {
			continue
		}
		if status != "" && l.Status != status {
			continue
		}
		visible = append(visible, l)
	}

	slices.SortStableFunc(visible, compareLoans)

	size := in.Size
	if size <= 0 {
		size = 1
	}
	total := len(visible)
	totalPages := total / size
	if total%size != 0 {
		totalPages++
	}

	content := []*domain.LoanRequest{}
	if in.Page >= 0 && in.Page < totalPages {
		start := in.Page * size
		end := min(start+size, total)
		content = visible[start:end]
	}

	return ports.LoanPage{
		Content:       content,
		TotalElements: int64(total),
		TotalPages:    totalPages,
		Page:          in.Page,
		Size:          in.Size,
	}
}

func compareLoans(a, b *domain.LoanRequest) int {
	if a.IsPending() != b.IsPending() {
		if a.IsPending() {
			return -1
		}
		return 1
	}
	switch {
	case a.CreatedAt.IsZero() && b.CreatedAt.IsZero():
	case a.CreatedAt.IsZero():
		return 1
	case b.CreatedAt.IsZero():
		return -1
	default:
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
	}
	return cmp.Compare(a.ID, b.ID)
}
