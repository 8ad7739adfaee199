package services

import (
	"context"

	"github.com/SscSPs/mma_accounts/internal/core/domain"
)

// CompanySvcFacade manages the company hierarchy accounts are scoped by.
type CompanySvcFacade interface {
	// CreateCompany registers a company, optionally below a parent.
	CreateCompany(ctx context.Context, name string, parentID *string, userID string) (*domain.Company, error)

	// GetCompanyByID retrieves a company.
	GetCompanyByID(ctx context.Context, companyID string) (*domain.Company, error)
}
