package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/loandesk/loan-api/internal/core/domain"
	"github.com/loandesk/loan-api/internal/core/ports"
)

type LoanService struct {
	repo   ports.LoanRepository
	idem   ports.IdempotencyStore
	events ports.LoanEvents
	logger zerolog.Logger
}

// NewLoanService wires a LoanService. idem and events may be nil.
func NewLoanService(repo ports.LoanRepository, idem ports.IdempotencyStore, events ports.LoanEvents, logger zerolog.Logger) *LoanService {
	if events == nil {
		events = nopEvents{}
	}
	return &LoanService{repo: repo, idem: idem, events: events, logger: logger}
}

// List returns one page of the loans visible to identity.
func (s *LoanService) List(ctx context.Context, identity domain.Identity, input ports.ListLoansInput) (*ports.LoanPage, error) {
	all, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list loans: %w", err)
	}
	page := listLoans(all, identity, input)
	return &page, nil
}

func (s *LoanService) Get(ctx context.Context, id int64) (*domain.LoanRequest, error) {
	return s.repo.FindByID(ctx, id)
}

// Create stores a new Pending loan owned by the caller. If an idempotency key
// is provided and already seen for this caller, the earlier loan is returned
// without side effects. A key whose first request is still running yields
// ErrRequestInProgress.
func (s *LoanService) Create(ctx context.Context, identity domain.Identity, input ports.CreateLoanInput) (*ports.CreateLoanResult, error) {
	existing, claimed, err := s.claim(ctx, identity, input.IdempotencyKey)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return &ports.CreateLoanResult{Loan: existing, AlreadyExisted: true}, nil
	}

	loan := &domain.LoanRequest{
		OwnerID:          identity.UserID,
		ApplicantName:    input.ApplicantName,
		Amount:           input.Amount,
		Currency:         domain.Currency(input.Currency),
		IdentityDocument: input.IdentityDocument,
		Status:           domain.StatusPending,
		CreatedAt:        time.Now().UTC(),
	}

	saved, err := s.repo.Save(ctx, loan)
	if err != nil {
		s.logger.Error().Err(err).Int64("owner_id", identity.UserID).Msg("failed to create loan request")
		if claimed {
			if rerr := s.idem.Release(context.WithoutCancel(ctx), identity.UserID, input.IdempotencyKey); rerr != nil {
				s.logger.Warn().Err(rerr).Str("idempotency_key", input.IdempotencyKey).Msg("failed to release idempotency key")
			}
		}
		return nil, fmt.Errorf("create loan: %w", err)
	}

	if claimed {
		if err := s.idem.Remember(context.WithoutCancel(ctx), identity.UserID, input.IdempotencyKey, saved.ID); err != nil {
			s.logger.Warn().Err(err).Str("idempotency_key", input.IdempotencyKey).Msg("failed to store idempotency key")
		}
	}

	s.events.LoanCreated(saved.Currency)
	s.logger.Info().Int64("loan_id", saved.ID).Int64("owner_id", saved.OwnerID).Msg("loan request created")

	return &ports.CreateLoanResult{Loan: saved}, nil
}

// claim reserves the idempotency key before anything is created. It returns
// the earlier loan for a replay and claimed=true when this request owns the
// key. Store failures degrade to a plain create.
func (s *LoanService) claim(ctx context.Context, identity domain.Identity, key string) (*domain.LoanRequest, bool, error) {
	if key == "" || s.idem == nil {
		return nil, false, nil
	}
	id, claimed, err := s.idem.Claim(ctx, identity.UserID, key)
	if err != nil {
		s.logger.Warn().Err(err).Str("idempotency_key", key).Msg("idempotency claim failed, creating anyway")
		return nil, false, nil
	}
	if claimed {
		return nil, true, nil
	}
	if id == 0 {
		return nil, false, fmt.Errorf("%w: key %q", domain.ErrRequestInProgress, key)
	}
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		// the earlier loan was deleted; this request takes the key over
		return nil, true, nil
	}
	s.logger.Info().Str("idempotency_key", key).Int64("loan_id", existing.ID).Msg("idempotent replay")
	return existing, false, nil
}

// Update replaces the applicant supplied fields, keeping ID, owner, status and
// creation time.
func (s *LoanService) Update(ctx context.Context, identity domain.Identity, id int64, input ports.UpdateLoanInput) (*domain.LoanRequest, error) {
	updated, err := s.repo.Update(ctx, id, func(loan *domain.LoanRequest) error {
		loan.ApplicantName = input.ApplicantName
		loan.Amount = input.Amount
		loan.Currency = domain.Currency(input.Currency)
		loan.IdentityDocument = input.IdentityDocument
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrLoanNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("update loan %d: %w", id, err)
	}

	s.logger.Info().Int64("loan_id", id).Int64("updated_by", identity.UserID).Msg("loan request updated")
	return updated, nil
}

// UpdateStatus applies a status change through the transition table. The
// check runs against the stored status inside the repository update, so two
// racing requests cannot both leave Pending. A same-status request is
// accepted and still persisted.
func (s *LoanService) UpdateStatus(ctx context.Context, identity domain.Identity, id int64, status string) (*domain.LoanRequest, error) {
	var from domain.LoanStatus
	updated, err := s.repo.Update(ctx, id, func(loan *domain.LoanRequest) error {
		from = loan.Status
		next, err := domain.ValidateTransition(from, status)
		if err != nil {
			return err
		}
		loan.Status = next
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidTransition):
			s.logger.Info().Int64("loan_id", id).Str("from", string(from)).Str("to", status).Msg("status transition rejected")
			return nil, err
		case errors.Is(err, domain.ErrLoanNotFound):
			return nil, err
		}
		return nil, fmt.Errorf("update loan %d status: %w", id, err)
	}

	s.events.StatusChanged(from, updated.Status)
	s.logger.Info().
		Int64("loan_id", id).
		Str("from", string(from)).
		Str("to", string(updated.Status)).
		Int64("changed_by", identity.UserID).
		Msg("loan status updated")

	return updated, nil
}

// Delete removes the loan, failing with ErrLoanNotFound when it does not exist.
func (s *LoanService) Delete(ctx context.Context, identity domain.Identity, id int64) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.repo.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("delete loan %d: %w", id, err)
	}

	s.events.LoanDeleted()
	s.logger.Info().Int64("loan_id", id).Int64("deleted_by", identity.UserID).Msg("loan request deleted")
	return nil
}

type nopEvents struct{}

func (nopEvents) LoanCreated(domain.Currency)          {}
func (nopEvents) StatusChanged(_, _ domain.LoanStatus) {}
func (nopEvents) LoanDeleted()                         {}
