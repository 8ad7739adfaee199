package services

import (
	"context"

	"github.com/SscSPs/mma_accounts/internal/core/allocator"
	"github.com/SscSPs/mma_accounts/internal/core/domain"
)

// AccountReaderSvc defines read operations for account data
type AccountReaderSvc interface {
	// GetAccountByID retrieves an account visible from the request's companies.
	GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// ListAccounts retrieves a paginated list of accounts of the allowed companies.
	ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error)
}

// AccountWriterSvc defines write operations for account data
type AccountWriterSvc interface {
	// CreateAccounts creates a batch of accounts; the batch fails as a whole.
	CreateAccounts(ctx context.Context, values []domain.AccountValues, userID string) ([]domain.Account, error)

	// WriteAccounts applies the same update to every account of the batch.
	WriteAccounts(ctx context.Context, accountIDs []string, update domain.AccountUpdate, userID string) ([]domain.Account, error)

	// CopyAccounts duplicates accounts under a new code and name.
	CopyAccounts(ctx context.Context, accountIDs []string, userID string) ([]domain.Account, error)
}

// AccountAllocatorSvc hands out unused names and codes in the active company's scope.
type AccountAllocatorSvc interface {
	// NewAccountName returns start or its first free ".copyN" variant.
	NewAccountName(ctx context.Context, start string, claimed allocator.Claims) (string, error)

	// NewAccountCode returns start or the first free code derived from it.
	NewAccountCode(ctx context.Context, start string, claimed allocator.Claims) (string, error)
}

// AccountCheckerSvc runs the uniqueness post-conditions on persisted accounts.
type AccountCheckerSvc interface {
	// EnsureNameIsUnique fails when a name is missing or shared within a company scope.
	EnsureNameIsUnique(ctx context.Context, accountIDs []string) error

	// EnsureCodeIsUnique fails when a code is missing or shared within a company scope.
	EnsureCodeIsUnique(ctx context.Context, accountIDs []string) error
}

// AccountSvcFacade combines all account-related service interfaces
// This is a facade for clients that need access to all operations
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
	AccountAllocatorSvc
	AccountCheckerSvc
}
