package repositories

import (
	"context"

	"github.com/SscSPs/mma_accounts/internal/core/domain"
)

// AccountReader defines read operations for account data
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its unique identifier.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// FindAccountsByIDs retrieves multiple accounts, in the order of accountIDs.
	// Unknown IDs are skipped.
	FindAccountsByIDs(ctx context.Context, accountIDs []string) ([]domain.Account, error)

	// ListAccounts retrieves a paginated list of accounts assigned to any of companyIDs.
	ListAccounts(ctx context.Context, companyIDs []string, limit int, offset int) ([]domain.Account, error)
}

// AccountScopeSearcher looks up names and codes among the accounts of a set of
// companies, usually the parent/child scope of one company. Searches ignore
// visibility restrictions.
type AccountScopeSearcher interface {
	// CountAccountsByName counts, up to limit, accounts named name assigned to any of companyIDs.
	CountAccountsByName(ctx context.Context, name string, companyIDs []string, limit int) (int, error)

	// CountAccountsByCode counts, up to limit, accounts whose code for rootCompanyID is code
	// and which are assigned to any of companyIDs.
	CountAccountsByCode(ctx context.Context, code string, rootCompanyID string, companyIDs []string, limit int) (int, error)

	// FindNamesInCompanies returns the names among names used by accounts of companyIDs,
	// leaving out excludeIDs.
	FindNamesInCompanies(ctx context.Context, names []string, companyIDs []string, excludeIDs []string) ([]string, error)

	// FindCodesInCompanies returns the codes (for rootCompanyID) among codes used by accounts
	// of companyIDs, leaving out excludeIDs.
	FindCodesInCompanies(ctx context.Context, codes []string, rootCompanyID string, companyIDs []string, excludeIDs []string) ([]string, error)
}

// AccountWriter defines write operations for account data
type AccountWriter interface {
	// SaveAccounts persists new accounts with their companies and code mappings.
	SaveAccounts(ctx context.Context, accounts []domain.Account) error

	// UpdateAccount replaces an existing account's fields, companies and code mappings.
	UpdateAccount(ctx context.Context, account domain.Account) error
}

// AccountLineSupport covers the journal item queries account writes depend on.
type AccountLineSupport interface {
	// CountLinesInOtherCurrency counts lines of the account booked in a foreign
	// currency different from currencyID.
	CountLinesInOtherCurrency(ctx context.Context, accountID string, currencyID string) (int, error)

	// CountPartiallyReconciledLines counts unreconciled lines of the accounts whose
	// residual no longer equals their balance.
	CountPartiallyReconciledLines(ctx context.Context, accountIDs []string) (int, error)

	// ResetLineResiduals sets the residual of the accounts' unreconciled lines to their
	// balance when reconcilable, to zero otherwise.
	ResetLineResiduals(ctx context.Context, accountIDs []string, reconcilable bool) error
}

// AccountRepositoryFacade combines all account-related repository interfaces
type AccountRepositoryFacade interface {
	AccountReader
	AccountScopeSearcher
	AccountWriter
	AccountLineSupport
}
