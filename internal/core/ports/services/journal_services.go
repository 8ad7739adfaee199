package services

import (
	"context"

	"github.com/SscSPs/mma_accounts/internal/core/domain"
)

// JournalReaderSvc defines read operations for journal data
type JournalReaderSvc interface {
	// GetJournalByID retrieves a journal visible from the request's companies.
	GetJournalByID(ctx context.Context, journalID string) (*domain.Journal, error)

	// ListJournals retrieves a paginated list of journals of the active company.
	ListJournals(ctx context.Context, limit int, offset int) ([]domain.Journal, error)
}

// JournalWriterSvc defines write operations for journal data
type JournalWriterSvc interface {
	// CreateJournals creates journals, computing the codes that are not given.
	CreateJournals(ctx context.Context, values []domain.JournalValues, userID string) ([]domain.Journal, error)

	// UpdateJournal updates a journal and recomputes its code unless overridden.
	UpdateJournal(ctx context.Context, journalID string, update domain.JournalUpdate, userID string) (*domain.Journal, error)
}

// JournalSvcFacade combines all journal-related service interfaces
type JournalSvcFacade interface {
	JournalReaderSvc
	JournalWriterSvc
}
