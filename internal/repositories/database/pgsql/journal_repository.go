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

const journalColumns = `journal_id, company_id, name, type, code, code_overridden, currency_id, created_at, created_by, last_updated_at, last_updated_by`

type PgxJournalRepository struct {
	BaseRepository
}

// newPgxJournalRepository creates a new repository for journal data.
func newPgxJournalRepository(pool *pgxpool.Pool) portsrepo.JournalRepositoryFacade {
	return &PgxJournalRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxJournalRepository implements portsrepo.JournalRepositoryFacade
var _ portsrepo.JournalRepositoryFacade = (*PgxJournalRepository)(nil)

// SaveJournals inserts journals in one batch. A code already used in the
// company violates journals_company_code_key and surfaces as a conflict.
func (r *PgxJournalRepository) SaveJournals(ctx context.Context, journals []domain.Journal) error {
	if len(journals) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, j := range journals {
		m := mapping.ToModelJournal(j)
		batch.Queue(`
			INSERT INTO journals (`+journalColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);`,
			m.JournalID, m.CompanyID, m.Name, m.Type, m.Code, m.CodeOverridden, m.CurrencyID,
			m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
		)
	}

	br := r.db(ctx).SendBatch(ctx, batch)
	defer br.Close()
	for _, j := range journals {
		if _, err := br.Exec(); err != nil {
			return translateError(err, fmt.Sprintf("journal code %s", j.Code))
		}
	}
	return br.Close()
}

func (r *PgxJournalRepository) FindJournalByID(ctx context.Context, journalID string) (*domain.Journal, error) {
	rows, err := r.db(ctx).Query(ctx, `SELECT `+journalColumns+` FROM journals WHERE journal_id = $1;`, journalID)
	if err != nil {
		return nil, fmt.Errorf("failed to query journal %s: %w", journalID, err)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.Journal])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan journal %s: %w", journalID, err)
	}
	journal := mapping.ToDomainJournal(m)
	return &journal, nil
}

func (r *PgxJournalRepository) ListJournals(ctx context.Context, companyID string, limit int, offset int) ([]domain.Journal, error) {
	rows, err := r.db(ctx).Query(ctx, `
		SELECT `+journalColumns+` FROM journals
		WHERE company_id = $1
		ORDER BY code, journal_id
		LIMIT $2 OFFSET $3;`, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query journals of company %s: %w", companyID, err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Journal])
	if err != nil {
		return nil, fmt.Errorf("failed to scan journals: %w", err)
	}
	return mapping.ToDomainJournalSlice(ms), nil
}

func (r *PgxJournalRepository) CountJournalsByCode(ctx context.Context, companyID string, code string, excludeID string) (int, error) {
	var n int
	err := r.db(ctx).QueryRow(ctx, `
		SELECT COUNT(*) FROM journals
		WHERE company_id = $1 AND code = $2 AND journal_id <> $3;`,
		companyID, code, excludeID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count journals with code %s: %w", code, err)
	}
	return n, nil
}

func (r *PgxJournalRepository) UpdateJournal(ctx context.Context, journal domain.Journal) error {
	m := mapping.ToModelJournal(journal)
	tag, err := r.db(ctx).Exec(ctx, `
		UPDATE journals
		SET name = $2, type = $3, code = $4, code_overridden = $5, last_updated_at = $6, last_updated_by = $7
		WHERE journal_id = $1;`,
		m.JournalID, m.Name, m.Type, m.Code, m.CodeOverridden, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return translateError(err, fmt.Sprintf("journal code %s", m.Code))
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
