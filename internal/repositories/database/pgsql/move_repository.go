package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SscSPs/mma_accounts/internal/apperrors"
	"github.com/SscSPs/mma_accounts/internal/core/domain"
	portsrepo "github.com/SscSPs/mma_accounts/internal/core/ports/repositories"
	"github.com/SscSPs/mma_accounts/internal/models"
	"github.com/SscSPs/mma_accounts/internal/utils/mapping"
)

type PgxMoveRepository struct {
	BaseRepository
}

func newPgxMoveRepository(pool *pgxpool.Pool) portsrepo.MoveRepositoryFacade {
	return &PgxMoveRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.MoveRepositoryFacade = (*PgxMoveRepository)(nil)

// SaveMove inserts the move header and its lines in one batch.
func (r *PgxMoveRepository) SaveMove(ctx context.Context, move domain.Move) error {
	m, lines := mapping.ToModelMove(move)

	batch := &pgx.Batch{}
	batch.Queue(`
		INSERT INTO moves (move_id, journal_id, company_id, name, date, currency_id, no_journal, no_invoice, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);`,
		m.MoveID, m.JournalID, m.CompanyID, m.Name, m.Date, m.CurrencyID, m.NoJournal, m.NoInvoice,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	for _, l := range lines {
		batch.Queue(`
			INSERT INTO move_lines (line_id, move_id, account_id, currency_id, balance, amount_residual, reconciled)
			VALUES ($1, $2, $3, $4, $5, $6, $7);`,
			l.LineID, l.MoveID, l.AccountID, l.CurrencyID, l.Balance, l.AmountResidual, l.Reconciled,
		)
	}

	br := r.db(ctx).SendBatch(ctx, batch)
	defer br.Close()
	for i := 0; i < batch.Len(); i++ {
		if _, err := br.Exec(); err != nil {
			return translateError(err, "move "+m.MoveID)
		}
	}
	return br.Close()
}

func (r *PgxMoveRepository) FindMoveByID(ctx context.Context, moveID string) (*domain.Move, error) {
	rows, err := r.db(ctx).Query(ctx, `
		SELECT move_id, journal_id, company_id, name, date, currency_id, no_journal, no_invoice, created_at, created_by, last_updated_at, last_updated_by
		FROM moves
		WHERE move_id = $1;`, moveID)
	if err != nil {
		return nil, fmt.Errorf("failed to query move %s: %w", moveID, err)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.Move])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan move %s: %w", moveID, err)
	}

	rows, err = r.db(ctx).Query(ctx, `
		SELECT line_id, move_id, account_id, currency_id, balance, amount_residual, reconciled
		FROM move_lines
		WHERE move_id = $1
		ORDER BY line_id;`, moveID)
	if err != nil {
		return nil, fmt.Errorf("failed to query lines of move %s: %w", moveID, err)
	}
	lines, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.MoveLine])
	if err != nil {
		return nil, fmt.Errorf("failed to scan lines of move %s: %w", moveID, err)
	}

	move := mapping.ToDomainMove(m, lines)
	return &move, nil
}

// UpdateMoveReferences only rewrites the free text references and audit columns.
func (r *PgxMoveRepository) UpdateMoveReferences(ctx context.Context, move domain.Move) error {
	tag, err := r.db(ctx).Exec(ctx, `
		UPDATE moves
		SET no_journal = $2, no_invoice = $3, last_updated_at = $4, last_updated_by = $5
		WHERE move_id = $1;`,
		move.MoveID, move.NoJournal, move.InvoiceNo, move.LastUpdatedAt, move.LastUpdatedBy,
	)
	if err != nil {
		return translateError(err, "move "+move.MoveID)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
