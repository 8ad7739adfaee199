package repositories

import (
	"context"

	"github.com/SscSPs/mma_accounts/internal/core/domain"
)

// JournalReader defines read operations for journal data
type JournalReader interface {
	// FindJournalByID retrieves a specific journal by its unique identifier.
	FindJournalByID(ctx context.Context, journalID string) (*domain.Journal, error)

	// ListJournals retrieves a paginated list of journals of a company.
	ListJournals(ctx context.Context, companyID string, limit int, offset int) ([]domain.Journal, error)

	// CountJournalsByCode counts journals of the company using code, leaving out excludeID.
	CountJournalsByCode(ctx context.Context, companyID string, code string, excludeID string) (int, error)
}

// JournalWriter defines write operations for journal data
type JournalWriter interface {
	// SaveJournals persists new journals.
	SaveJournals(ctx context.Context, journals []domain.Journal) error

	// UpdateJournal updates name, type and code of a journal.
	UpdateJournal(ctx context.Context, journal domain.Journal) error
}

// JournalRepositoryFacade combines all journal-related repository interfaces
type JournalRepositoryFacade interface {
	JournalReader
	JournalWriter
}
