package repositories

import (
	"context"

	"github.com/SscSPs/mma_accounts/internal/core/domain"
)

// CompanyReader defines read operations over the company hierarchy
type CompanyReader interface {
	// FindCompanyByID retrieves a company by its identifier.
	FindCompanyByID(ctx context.Context, companyID string) (*domain.Company, error)

	// FindHierarchyScope returns companyID with all of its ancestors and descendants.
	FindHierarchyScope(ctx context.Context, companyID string) ([]string, error)

	// FindRootIDs maps each of companyIDs to the top-most ancestor of its hierarchy.
	FindRootIDs(ctx context.Context, companyIDs []string) (map[string]string, error)
}

// CompanyWriter defines write operations for company data
type CompanyWriter interface {
	// SaveCompany persists a new company.
	SaveCompany(ctx context.Context, company domain.Company) error
}

// CompanyRepositoryFacade combines all company-related repository interfaces
type CompanyRepositoryFacade interface {
	CompanyReader
	CompanyWriter
}
