package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SscSPs/mma_accounts/internal/apperrors"
	"github.com/SscSPs/mma_accounts/internal/core/domain"
	portsrepo "github.com/SscSPs/mma_accounts/internal/core/ports/repositories"
	"github.com/SscSPs/mma_accounts/internal/models"
	"github.com/SscSPs/mma_accounts/internal/utils/mapping"
)

const accountColumns = `a.account_id, a.name, a.code, a.reconcile, a.currency_id, a.created_at, a.created_by, a.last_updated_at, a.last_updated_by`

// inCompanies restricts accounts a to those assigned to any company of the given parameter.
const inCompanies = `EXISTS (SELECT 1 FROM account_companies ac WHERE ac.account_id = a.account_id AND ac.company_id = ANY(%s))`

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for account data.
func newPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepositoryFacade {
	return &PgxAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxAccountRepository implements portsrepo.AccountRepositoryFacade
var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

func scanAccount(row pgx.Row) (models.Account, error) {
	var m models.Account
	err := row.Scan(
		&m.AccountID,
		&m.Name,
		&m.Code,
		&m.Reconcile,
		&m.CurrencyID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// queryAccounts runs an account select and attaches companies and code mappings.
func (r *PgxAccountRepository) queryAccounts(ctx context.Context, query string, args ...any) ([]domain.Account, error) {
	rows, err := r.db(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts: %w", err)
	}
	defer rows.Close()

	var rowsOut []models.Account
	for rows.Next() {
		m, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row: %w", err)
		}
		rowsOut = append(rowsOut, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account rows: %w", err)
	}
	return r.hydrate(ctx, rowsOut)
}

func (r *PgxAccountRepository) hydrate(ctx context.Context, rowsIn []models.Account) ([]domain.Account, error) {
	if len(rowsIn) == 0 {
		return nil, nil
	}
	ids := make([]string, len(rowsIn))
	for i, m := range rowsIn {
		ids[i] = m.AccountID
	}

	companies := make(map[string][]models.AccountCompany, len(ids))
	rows, err := r.db(ctx).Query(ctx, `
		SELECT account_id, company_id, position
		FROM account_companies
		WHERE account_id = ANY($1)
		ORDER BY account_id, position;
	`, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to query account companies: %w", err)
	}
	linked, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.AccountCompany])
	if err != nil {
		return nil, fmt.Errorf("failed to scan account companies: %w", err)
	}
	for _, c := range linked {
		companies[c.AccountID] = append(companies[c.AccountID], c)
	}

	mappings := make(map[string][]models.AccountCodeMapping, len(ids))
	rows, err = r.db(ctx).Query(ctx, `
		SELECT account_id, root_company_id, code
		FROM account_code_mappings
		WHERE account_id = ANY($1);
	`, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to query account code mappings: %w", err)
	}
	codes, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.AccountCodeMapping])
	if err != nil {
		return nil, fmt.Errorf("failed to scan account code mappings: %w", err)
	}
	for _, c := range codes {
		mappings[c.AccountID] = append(mappings[c.AccountID], c)
	}

	out := make([]domain.Account, len(rowsIn))
	for i, m := range rowsIn {
		out[i] = mapping.ToDomainAccount(m, companies[m.AccountID], mappings[m.AccountID])
	}
	return out, nil
}

// FindAccountByID retrieves an account by its ID.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	accounts, err := r.queryAccounts(ctx, `SELECT `+accountColumns+` FROM accounts a WHERE a.account_id = $1;`, accountID)
	if err != nil {
		return nil, err
	}
	if len(accounts) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &accounts[0], nil
}

// FindAccountsByIDs retrieves multiple accounts by their IDs, in the order given.
func (r *PgxAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) ([]domain.Account, error) {
	if len(accountIDs) == 0 {
		return []domain.Account{}, nil
	}
	accounts, err := r.queryAccounts(ctx, `SELECT `+accountColumns+` FROM accounts a WHERE a.account_id = ANY($1);`, accountIDs)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]domain.Account, len(accounts))
	for _, acc := range accounts {
		byID[acc.AccountID] = acc
	}
	out := make([]domain.Account, 0, len(accountIDs))
	for _, id := range accountIDs {
		if acc, ok := byID[id]; ok {
			out = append(out, acc)
		}
	}
	return out, nil
}

// ListAccounts retrieves accounts assigned to any of companyIDs, ordered by code.
func (r *PgxAccountRepository) ListAccounts(ctx context.Context, companyIDs []string, limit int, offset int) ([]domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts a WHERE ` + fmt.Sprintf(inCompanies, "$1") + `
		ORDER BY a.code, a.name, a.account_id
		LIMIT $2 OFFSET $3;`
	return r.queryAccounts(ctx, query, companyIDs, limit, offset)
}

func (r *PgxAccountRepository) CountAccountsByName(ctx context.Context, name string, companyIDs []string, limit int) (int, error) {
	query := `SELECT COUNT(*) FROM (
		SELECT 1 FROM accounts a WHERE a.name = $1 AND ` + fmt.Sprintf(inCompanies, "$2") + ` LIMIT $3
	) matches;`
	var n int
	if err := r.db(ctx).QueryRow(ctx, query, name, companyIDs, limit).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count accounts named %q: %w", name, err)
	}
	return n, nil
}

func (r *PgxAccountRepository) CountAccountsByCode(ctx context.Context, code string, rootCompanyID string, companyIDs []string, limit int) (int, error) {
	query := `SELECT COUNT(*) FROM (
		SELECT 1 FROM accounts a
		JOIN account_code_mappings m ON m.account_id = a.account_id
		WHERE m.code = $1 AND m.root_company_id = $2 AND ` + fmt.Sprintf(inCompanies, "$3") + ` LIMIT $4
	) matches;`
	var n int
	if err := r.db(ctx).QueryRow(ctx, query, code, rootCompanyID, companyIDs, limit).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count accounts with code %q: %w", code, err)
	}
	return n, nil
}

func (r *PgxAccountRepository) FindNamesInCompanies(ctx context.Context, names []string, companyIDs []string, excludeIDs []string) ([]string, error) {
	query := `SELECT DISTINCT a.name FROM accounts a
		WHERE a.name = ANY($1) AND ` + fmt.Sprintf(inCompanies, "$2") + ` AND NOT (a.account_id = ANY($3))
		ORDER BY a.name;`
	rows, err := r.db(ctx).Query(ctx, query, names, companyIDs, excludeIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to search account names: %w", err)
	}
	return pgx.CollectRows(rows, pgx.RowTo[string])
}

func (r *PgxAccountRepository) FindCodesInCompanies(ctx context.Context, codes []string, rootCompanyID string, companyIDs []string, excludeIDs []string) ([]string, error) {
	query := `SELECT DISTINCT m.code FROM accounts a
		JOIN account_code_mappings m ON m.account_id = a.account_id
		WHERE m.code = ANY($1) AND m.root_company_id = $2 AND ` + fmt.Sprintf(inCompanies, "$3") + ` AND NOT (a.account_id = ANY($4))
		ORDER BY m.code;`
	rows, err := r.db(ctx).Query(ctx, query, codes, rootCompanyID, companyIDs, excludeIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to search account codes: %w", err)
	}
	return pgx.CollectRows(rows, pgx.RowTo[string])
}

func queueAccountLinks(batch *pgx.Batch, companies []models.AccountCompany, mappings []models.AccountCodeMapping) {
	for _, c := range companies {
		batch.Queue(`INSERT INTO account_companies (account_id, company_id, position) VALUES ($1, $2, $3);`,
			c.AccountID, c.CompanyID, c.Position)
	}
	for _, m := range mappings {
		batch.Queue(`INSERT INTO account_code_mappings (account_id, root_company_id, code) VALUES ($1, $2, $3);`,
			m.AccountID, m.RootCompanyID, m.Code)
	}
}

func (r *PgxAccountRepository) sendBatch(ctx context.Context, batch *pgx.Batch, what string) error {
	br := r.db(ctx).SendBatch(ctx, batch)
	defer br.Close()
	for i := 0; i < batch.Len(); i++ {
		if _, err := br.Exec(); err != nil {
			return translateError(err, what)
		}
	}
	return br.Close()
}

// SaveAccounts inserts accounts with their companies and code mappings in one batch.
func (r *PgxAccountRepository) SaveAccounts(ctx context.Context, accounts []domain.Account) error {
	if len(accounts) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, acc := range accounts {
		m, companies, mappings := mapping.ToModelAccount(acc)
		batch.Queue(`
			INSERT INTO accounts (account_id, name, code, reconcile, currency_id, created_at, created_by, last_updated_at, last_updated_by)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);`,
			m.AccountID, m.Name, m.Code, m.Reconcile, m.CurrencyID,
			m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
		)
		queueAccountLinks(batch, companies, mappings)
	}
	return r.sendBatch(ctx, batch, "account")
}

// UpdateAccount rewrites an account row and replaces its companies and code mappings.
func (r *PgxAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	m, companies, mappings := mapping.ToModelAccount(account)

	tag, err := r.db(ctx).Exec(ctx, `
		UPDATE accounts
		SET name = $2, code = $3, reconcile = $4, currency_id = $5, last_updated_at = $6, last_updated_by = $7
		WHERE account_id = $1;`,
		m.AccountID, m.Name, m.Code, m.Reconcile, m.CurrencyID, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return translateError(err, "account "+m.AccountID)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	batch := &pgx.Batch{}
	batch.Queue(`DELETE FROM account_companies WHERE account_id = $1;`, m.AccountID)
	batch.Queue(`DELETE FROM account_code_mappings WHERE account_id = $1;`, m.AccountID)
	queueAccountLinks(batch, companies, mappings)
	return r.sendBatch(ctx, batch, "account "+m.AccountID)
}

func (r *PgxAccountRepository) CountLinesInOtherCurrency(ctx context.Context, accountID string, currencyID string) (int, error) {
	var n int
	err := r.db(ctx).QueryRow(ctx, `
		SELECT COUNT(*) FROM move_lines
		WHERE account_id = $1 AND currency_id IS NOT NULL AND currency_id <> $2;`,
		accountID, currencyID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count foreign currency lines of account %s: %w", accountID, err)
	}
	return n, nil
}

func (r *PgxAccountRepository) CountPartiallyReconciledLines(ctx context.Context, accountIDs []string) (int, error) {
	var n int
	err := r.db(ctx).QueryRow(ctx, `
		SELECT COUNT(*) FROM move_lines
		WHERE account_id = ANY($1) AND NOT reconciled AND amount_residual <> balance;`,
		accountIDs,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count partially reconciled lines: %w", err)
	}
	return n, nil
}

func (r *PgxAccountRepository) ResetLineResiduals(ctx context.Context, accountIDs []string, reconcilable bool) error {
	_, err := r.db(ctx).Exec(ctx, `
		UPDATE move_lines
		SET amount_residual = CASE WHEN $2 THEN balance ELSE 0 END
		WHERE account_id = ANY($1) AND NOT reconciled;`,
		accountIDs, reconcilable,
	)
	if err != nil {
		return fmt.Errorf("failed to reset line residuals: %w", err)
	}
	return nil
}
