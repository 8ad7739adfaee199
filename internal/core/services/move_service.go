package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/SscSPs/mma_accounts/internal/apperrors"
	"github.com/SscSPs/mma_accounts/internal/core/domain"
	portsrepo "github.com/SscSPs/mma_accounts/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/mma_accounts/internal/core/ports/services"
	"github.com/SscSPs/mma_accounts/internal/core/scope"
	"github.com/SscSPs/mma_accounts/internal/utils/accounting"
)

var (
	ErrMoveUnbalanced     = errors.New("move lines do not balance to zero")
	ErrMoveMinLines       = errors.New("move must have at least two lines")
	ErrMoveJournalCompany = errors.New("journal does not belong to the move's company")
	ErrLineCurrency       = errors.New("line currency does not match the account currency")
)

// moveService records journal entries and maintains their free text references.
type moveService struct {
	BaseService
	moveRepo    portsrepo.MoveRepositoryFacade
	journalRepo portsrepo.JournalReader
	accountRepo portsrepo.AccountReader
	txManager   portsrepo.TransactionManager
}

// NewMoveService creates a new MoveService.
func NewMoveService(moveRepo portsrepo.MoveRepositoryFacade, journalRepo portsrepo.JournalReader, accountRepo portsrepo.AccountReader, txManager portsrepo.TransactionManager) portssvc.MoveSvcFacade {
	return &moveService{
		moveRepo:    moveRepo,
		journalRepo: journalRepo,
		accountRepo: accountRepo,
		txManager:   txManager,
	}
}

var _ portssvc.MoveSvcFacade = (*moveService)(nil)

// validateBalance checks that the lines of a move sum to zero.
func validateBalance(lines []domain.MoveLine) error {
	if len(lines) < 2 {
		return ErrMoveMinLines
	}
	if total := accounting.Imbalance(lines); !total.IsZero() {
		return fmt.Errorf("%w: lines sum to %s", ErrMoveUnbalanced, total.String())
	}
	return nil
}

func (s *moveService) CreateMove(ctx context.Context, move domain.Move, userID string) (*domain.Move, error) {
	active, err := s.ActiveCompany(ctx)
	if err != nil {
		return nil, err
	}
	if err := validateBalance(move.Lines); err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, err)
	}

	journal, err := s.journalRepo.FindJournalByID(ctx, move.JournalID)
	if err != nil {
		return nil, err
	}
	if journal.CompanyID != active {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, ErrMoveJournalCompany)
	}

	accountIDs := make([]string, 0, len(move.Lines))
	for _, line := range move.Lines {
		accountIDs = append(accountIDs, line.AccountID)
	}
	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, accountIDs)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]domain.Account, len(accounts))
	for _, acc := range accounts {
		byID[acc.AccountID] = acc
	}

	now := time.Now().UTC()
	move.MoveID = uuid.NewString()
	move.CompanyID = active
	if move.CurrencyID == nil {
		move.CurrencyID = journal.CurrencyID
	}
	if move.Date.IsZero() {
		move.Date = now.Truncate(24 * time.Hour)
	}
	move.AuditFields = domain.NewAuditFields(userID, now)

	for i := range move.Lines {
		line := &move.Lines[i]
		acc, ok := byID[line.AccountID]
		if !ok || !acc.BelongsTo(active) {
			return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, line.AccountID)
		}
		if acc.CurrencyID != nil && line.CurrencyID != nil && *acc.CurrencyID != *line.CurrencyID {
			return nil, fmt.Errorf("%w: %w for account %s", apperrors.ErrValidation, ErrLineCurrency, acc.AccountID)
		}
		line.LineID = uuid.NewString()
		line.MoveID = move.MoveID
		line.Reconciled = false
		line.AmountResidual = accounting.InitialResidual(line.Balance, acc.Reconcile)
	}

	err = s.txManager.RunInTx(ctx, func(ctx context.Context) error {
		return s.moveRepo.SaveMove(ctx, move)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to save move", slog.String("journal_id", move.JournalID))
		return nil, err
	}

	s.LogInfo(ctx, "Move created successfully", slog.String("move_id", move.MoveID), slog.Int("lines", len(move.Lines)))
	return &move, nil
}

func (s *moveService) GetMoveByID(ctx context.Context, moveID string) (*domain.Move, error) {
	move, err := s.moveRepo.FindMoveByID(ctx, moveID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find move by ID", slog.String("move_id", moveID))
		}
		return nil, err
	}
	if !scope.CanSee(ctx, []string{move.CompanyID}) {
		return nil, apperrors.ErrNotFound
	}
	return move, nil
}

func (s *moveService) UpdateMoveReferences(ctx context.Context, moveID string, noJournal *string, invoiceNo *string, userID string) (*domain.Move, error) {
	move, err := s.GetMoveByID(ctx, moveID)
	if err != nil {
		return nil, err
	}
	if noJournal != nil {
		move.NoJournal = *noJournal
	}
	if invoiceNo != nil {
		move.InvoiceNo = *invoiceNo
	}
	move.LastUpdatedAt = time.Now().UTC()
	move.LastUpdatedBy = userID

	if err := s.moveRepo.UpdateMoveReferences(ctx, *move); err != nil {
		s.LogError(ctx, err, "Failed to update move references", slog.String("move_id", moveID))
		return nil, err
	}
	return move, nil
}
