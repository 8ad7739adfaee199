package services

import (
	"context"

	"github.com/SscSPs/mma_accounts/internal/core/domain"
)

// MoveSvcFacade manages journal entries and their reference fields.
type MoveSvcFacade interface {
	// CreateMove persists a balanced move in one of the active company's journals.
	CreateMove(ctx context.Context, move domain.Move, userID string) (*domain.Move, error)

	// GetMoveByID retrieves a move with its lines.
	GetMoveByID(ctx context.Context, moveID string) (*domain.Move, error)

	// UpdateMoveReferences updates the journal number and invoice number of a move.
	UpdateMoveReferences(ctx context.Context, moveID string, noJournal *string, invoiceNo *string, userID string) (*domain.Move, error)
}
