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

type PgxCompanyRepository struct {
	BaseRepository
}

func newPgxCompanyRepository(pool *pgxpool.Pool) portsrepo.CompanyRepositoryFacade {
	return &PgxCompanyRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.CompanyRepositoryFacade = (*PgxCompanyRepository)(nil)

func (r *PgxCompanyRepository) SaveCompany(ctx context.Context, company domain.Company) error {
	m := mapping.ToModelCompany(company)
	_, err := r.db(ctx).Exec(ctx, `
		INSERT INTO companies (company_id, name, parent_id, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7);`,
		m.CompanyID, m.Name, m.ParentID, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	return translateError(err, "company "+m.CompanyID)
}

func (r *PgxCompanyRepository) FindCompanyByID(ctx context.Context, companyID string) (*domain.Company, error) {
	rows, err := r.db(ctx).Query(ctx, `
		SELECT company_id, name, parent_id, created_at, created_by, last_updated_at, last_updated_by
		FROM companies
		WHERE company_id = $1;`, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query company %s: %w", companyID, err)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.Company])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan company %s: %w", companyID, err)
	}
	company := mapping.ToDomainCompany(m)
	return &company, nil
}

// FindHierarchyScope walks parent links up and down from companyID.
func (r *PgxCompanyRepository) FindHierarchyScope(ctx context.Context, companyID string) ([]string, error) {
	rows, err := r.db(ctx).Query(ctx, `
		WITH RECURSIVE
		ancestors AS (
			SELECT company_id, parent_id FROM companies WHERE company_id = $1
			UNION
			SELECT c.company_id, c.parent_id FROM companies c JOIN ancestors a ON c.company_id = a.parent_id
		),
		descendants AS (
			SELECT company_id FROM companies WHERE company_id = $1
			UNION
			SELECT c.company_id FROM companies c JOIN descendants d ON c.parent_id = d.company_id
		)
		SELECT company_id FROM ancestors
		UNION
		SELECT company_id FROM descendants
		ORDER BY company_id;`, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve scope of company %s: %w", companyID, err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("failed to scan scope of company %s: %w", companyID, err)
	}
	if len(ids) == 0 {
		return nil, fmt.Errorf("%w: company %s", apperrors.ErrNotFound, companyID)
	}
	return ids, nil
}

// FindRootIDs climbs parent links from each company. Unknown companies are left out.
func (r *PgxCompanyRepository) FindRootIDs(ctx context.Context, companyIDs []string) (map[string]string, error) {
	out := make(map[string]string, len(companyIDs))
	if len(companyIDs) == 0 {
		return out, nil
	}
	rows, err := r.db(ctx).Query(ctx, `
		WITH RECURSIVE chain AS (
			SELECT company_id AS origin, company_id, parent_id FROM companies WHERE company_id = ANY($1)
			UNION ALL
			SELECT ch.origin, c.company_id, c.parent_id FROM companies c JOIN chain ch ON c.company_id = ch.parent_id
		)
		SELECT origin, company_id FROM chain WHERE parent_id IS NULL;`, companyIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve company roots: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var origin, root string
		if err := rows.Scan(&origin, &root); err != nil {
			return nil, fmt.Errorf("failed to scan company root: %w", err)
		}
		out[origin] = root
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating company roots: %w", err)
	}
	return out, nil
}
