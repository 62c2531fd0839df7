package handler

import (
	"encoding/json"

	"github.com/loandesk/loan-api/internal/core/domain"
	"github.com/loandesk/loan-api/internal/core/ports"
)

// --- Request → Service input ---

func toCreateInput(req createLoanRequest, idempotencyKey string) ports.CreateLoanInput {
	return ports.CreateLoanInput{
		ApplicantName:    req.ApplicantName,
		Amount:           req.Amount,
		Currency:         req.Currency,
		IdentityDocument: req.IdentityDocument,
		IdempotencyKey:   idempotencyKey,
	}
}

func toUpdateInput(req updateLoanRequest) ports.UpdateLoanInput {
	return ports.UpdateLoanInput{
		ApplicantName:    req.ApplicantName,
		Amount:           req.Amount,
		Currency:         req.Currency,
		IdentityDocument: req.IdentityDocument,
	}
}

// --- Service result → HTTP response ---

func toLoanResponse(l *domain.LoanRequest) loanResponse {
	return loanResponse{
		ID:               l.ID,
		OwnerID:          l.OwnerID,
		ApplicantName:    l.ApplicantName,
		Amount:           json.Number(l.Amount.StringFixed(2)),
		Currency:         string(l.Currency),
		IdentityDocument: l.IdentityDocument,
		Status:           string(l.Status),
		CreatedAt:        l.CreatedAt.UTC(),
	}
}

func toPageResponse(p *ports.LoanPage) loanPageResponse {
	content := make([]loanResponse, len(p.Content))
	for i, l := range p.Content {
		content[i] = toLoanResponse(l)
	}
	return loanPageResponse{
		Content:       content,
		TotalElements: p.TotalElements,
		TotalPages:    p.TotalPages,
		Page:          p.Page,
		Size:          p.Size,
	}
}
