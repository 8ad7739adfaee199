package repositories

import (
	"context"

	"github.com/SscSPs/mma_accounts/internal/core/domain"
)

// MoveReader defines read operations for journal entries
type MoveReader interface {
	// FindMoveByID retrieves a move with its lines.
	FindMoveByID(ctx context.Context, moveID string) (*domain.Move, error)
}

// MoveWriter defines write operations for journal entries
type MoveWriter interface {
	// SaveMove persists a move and its lines.
	SaveMove(ctx context.Context, move domain.Move) error

	// UpdateMoveReferences updates the free text references of a move.
	UpdateMoveReferences(ctx context.Context, move domain.Move) error
}

// MoveRepositoryFacade combines all move-related repository interfaces
type MoveRepositoryFacade interface {
	MoveReader
	MoveWriter
}
