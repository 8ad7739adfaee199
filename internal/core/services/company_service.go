package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/SscSPs/mma_accounts/internal/apperrors"
	"github.com/SscSPs/mma_accounts/internal/core/domain"
	portsrepo "github.com/SscSPs/mma_accounts/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/mma_accounts/internal/core/ports/services"
)

type companyService struct {
	BaseService
	companyRepo portsrepo.CompanyRepositoryFacade
}

// NewCompanyService creates a new CompanyService.
func NewCompanyService(companyRepo portsrepo.CompanyRepositoryFacade) portssvc.CompanySvcFacade {
	return &companyService{companyRepo: companyRepo}
}

var _ portssvc.CompanySvcFacade = (*companyService)(nil)

func (s *companyService) CreateCompany(ctx context.Context, name string, parentID *string, userID string) (*domain.Company, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.NewValidationError("company name is required")
	}
	if parentID != nil {
		if _, err := s.companyRepo.FindCompanyByID(ctx, *parentID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, apperrors.NewValidationError(fmt.Sprintf("parent company %s does not exist", *parentID))
			}
			return nil, err
		}
	}

	company := domain.Company{
		CompanyID:   uuid.NewString(),
		Name:        name,
		ParentID:    parentID,
		AuditFields: domain.NewAuditFields(userID, time.Now().UTC()),
	}
	if err := s.companyRepo.SaveCompany(ctx, company); err != nil {
		s.LogError(ctx, err, "Failed to save company", slog.String("name", name))
		return nil, err
	}

	s.LogInfo(ctx, "Company created successfully", slog.String("company_id", company.CompanyID))
	return &company, nil
}

func (s *companyService) GetCompanyByID(ctx context.Context, companyID string) (*domain.Company, error) {
	company, err := s.companyRepo.FindCompanyByID(ctx, companyID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find company by ID", slog.String("company_id", companyID))
		}
		return nil, err
	}
	return company, nil
}
