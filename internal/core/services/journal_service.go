package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/SscSPs/mma_accounts/internal/apperrors"
	"github.com/SscSPs/mma_accounts/internal/core/allocator"
	"github.com/SscSPs/mma_accounts/internal/core/domain"
	portsrepo "github.com/SscSPs/mma_accounts/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/mma_accounts/internal/core/ports/services"
	"github.com/SscSPs/mma_accounts/internal/core/scope"
)

// maxJournalSequence bounds the numeric suffix tried for journal codes.
const maxJournalSequence = 99

var journalPrefixes = map[domain.JournalType]string{
	domain.JournalSale:     "INV",
	domain.JournalPurchase: "BILL",
	domain.JournalCash:     "CSH",
	domain.JournalBank:     "BNK",
	domain.JournalCredit:   "CCD",
	domain.JournalGeneral:  "MISC",
}

// journalService manages journals and their short codes.
type journalService struct {
	BaseService
	journalRepo portsrepo.JournalRepositoryFacade
	txManager   portsrepo.TransactionManager
}

// NewJournalService creates a new JournalService.
func NewJournalService(journalRepo portsrepo.JournalRepositoryFacade, txManager portsrepo.TransactionManager) portssvc.JournalSvcFacade {
	return &journalService{
		journalRepo: journalRepo,
		txManager:   txManager,
	}
}

// Ensure journalService implements the portssvc.JournalSvcFacade interface
var _ portssvc.JournalSvcFacade = (*journalService)(nil)

// journalCodeCandidates lists the codes tried, in order, for a journal type.
func journalCodeCandidates(journalType domain.JournalType) []string {
	prefix := journalPrefixes[journalType]
	candidates := make([]string, 0, maxJournalSequence+1)

	switch journalType {
	case domain.JournalBank, domain.JournalCash, domain.JournalCredit:
		for n := 1; n <= maxJournalSequence; n++ {
			candidates = append(candidates, truncateCode(prefix+strconv.Itoa(n)))
		}
	default:
		candidates = append(candidates, truncateCode(prefix))
		for n := 2; n <= maxJournalSequence; n++ {
			candidates = append(candidates, truncateCode(prefix+strconv.Itoa(n)))
		}
	}
	return candidates
}

// truncateCode keeps the first MaxJournalCodeLength characters of code.
func truncateCode(code string) string {
	if !codeTooLong(code) {
		return code
	}
	return string([]rune(code)[:domain.MaxJournalCodeLength])
}

func codeTooLong(code string) bool {
	return utf8.RuneCountInString(code) > domain.MaxJournalCodeLength
}

func validJournalType(t domain.JournalType) bool {
	_, ok := journalPrefixes[t]
	return ok
}

// computeCode returns the first free code for the journal's type in its company.
func (s *journalService) computeCode(ctx context.Context, companyID string, journalType domain.JournalType, excludeID string, claimed allocator.Claims) (string, error) {
	taken := func(ctx context.Context, candidate string) (bool, error) {
		n, err := s.journalRepo.CountJournalsByCode(ctx, companyID, candidate, excludeID)
		return n > 0, err
	}
	code, found, err := allocator.FirstAvailable(ctx, journalCodeCandidates(journalType), claimed, taken)
	if err != nil {
		return "", err
	}
	if !found {
		return "", apperrors.NewAllocationError(fmt.Sprintf("Cannot generate an unused journal code for type %s.", journalType))
	}
	return code, nil
}

func (s *journalService) CreateJournals(ctx context.Context, values []domain.JournalValues, userID string) ([]domain.Journal, error) {
	active, err := s.ActiveCompany(ctx)
	if err != nil {
		return nil, err
	}

	journals := make([]domain.Journal, 0, len(values))
	err = s.txManager.RunInTx(ctx, func(ctx context.Context) error {
		journals = journals[:0]
		claims := make(map[string]allocator.Claims)
		now := time.Now()

		for _, v := range values {
			if !validJournalType(v.Type) {
				return apperrors.NewValidationError(fmt.Sprintf("unknown journal type %q", v.Type))
			}
			if codeTooLong(v.Code) {
				return apperrors.NewValidationError(fmt.Sprintf("journal code must be at most %d characters", domain.MaxJournalCodeLength))
			}
			companyID := v.CompanyID
			if companyID == "" {
				companyID = active
			}
			if !scope.CanSee(ctx, []string{companyID}) {
				return apperrors.NewValidationError(fmt.Sprintf("company %s is not allowed", companyID))
			}
			if claims[companyID] == nil {
				claims[companyID] = allocator.NewClaims()
			}

			journal := domain.Journal{
				JournalID:   uuid.NewString(),
				CompanyID:   companyID,
				Name:        v.Name,
				Type:        v.Type,
				CurrencyID:  v.CurrencyID,
				AuditFields: domain.NewAuditFields(userID, now),
			}
			if v.Code != "" {
				journal.Code = v.Code
				journal.CodeOverridden = true
			} else {
				code, err := s.computeCode(ctx, companyID, v.Type, "", claims[companyID])
				if err != nil {
					return err
				}
				journal.Code = code
			}
			claims[companyID].Add(journal.Code)
			journals = append(journals, journal)
		}
		return s.journalRepo.SaveJournals(ctx, journals)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to create journals", slog.Int("count", len(values)))
		return nil, err
	}

	s.LogInfo(ctx, "Journals created successfully", slog.Int("count", len(journals)))
	return journals, nil
}

func (s *journalService) GetJournalByID(ctx context.Context, journalID string) (*domain.Journal, error) {
	journal, err := s.journalRepo.FindJournalByID(ctx, journalID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find journal by ID", slog.String("journal_id", journalID))
		}
		return nil, err
	}
	if !scope.CanSee(ctx, []string{journal.CompanyID}) {
		return nil, apperrors.ErrNotFound
	}
	return journal, nil
}

func (s *journalService) ListJournals(ctx context.Context, limit int, offset int) ([]domain.Journal, error) {
	companyID, err := s.ActiveCompany(ctx)
	if err != nil {
		return nil, err
	}
	journals, err := s.journalRepo.ListJournals(ctx, companyID, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list journals", slog.String("company_id", companyID))
		return nil, fmt.Errorf("failed to list journals: %w", err)
	}
	if journals == nil {
		return []domain.Journal{}, nil
	}
	return journals, nil
}

func (s *journalService) UpdateJournal(ctx context.Context, journalID string, update domain.JournalUpdate, userID string) (*domain.Journal, error) {
	journal, err := s.GetJournalByID(ctx, journalID)
	if err != nil {
		return nil, err
	}

	if update.Name != nil {
		journal.Name = *update.Name
	}
	typeChanged := false
	if update.Type != nil && *update.Type != journal.Type {
		if !validJournalType(*update.Type) {
			return nil, apperrors.NewValidationError(fmt.Sprintf("unknown journal type %q", *update.Type))
		}
		journal.Type = *update.Type
		typeChanged = true
	}

	err = s.txManager.RunInTx(ctx, func(ctx context.Context) error {
		switch {
		case update.Code != nil:
			if codeTooLong(*update.Code) {
				return apperrors.NewValidationError(fmt.Sprintf("journal code must be at most %d characters", domain.MaxJournalCodeLength))
			}
			journal.Code = *update.Code
			journal.CodeOverridden = true
		case update.ResetCode || (typeChanged && !journal.CodeOverridden):
			code, err := s.computeCode(ctx, journal.CompanyID, journal.Type, journal.JournalID, nil)
			if err != nil {
				return err
			}
			journal.Code = code
			journal.CodeOverridden = false
		}

		journal.LastUpdatedAt = time.Now()
		journal.LastUpdatedBy = userID
		return s.journalRepo.UpdateJournal(ctx, *journal)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to update journal", slog.String("journal_id", journalID))
		return nil, err
	}

	s.LogInfo(ctx, "Journal updated successfully", slog.String("journal_id", journalID), slog.String("code", journal.Code))
	return journal, nil
}
