package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"go.opentelemetry.io/otel/attribute"

	"github.com/SscSPs/mma_accounts/internal/apperrors"
	"github.com/SscSPs/mma_accounts/internal/core/domain"
	"github.com/SscSPs/mma_accounts/internal/core/scope"
	"github.com/SscSPs/mma_accounts/pkg/tracing"
)

// uniqueField describes how one account field is checked for uniqueness.
type uniqueField struct {
	name       string
	missingMsg string
	dupMsg     string
	// valueIn returns the value of the account as seen from companyID.
	valueIn func(acc domain.Account, companyID string) string
	// persisted returns the values among values used by other accounts of companyID's scope.
	persisted func(ctx context.Context, values []string, companyID string, excludeIDs []string) ([]string, error)
}

func (s *accountService) nameField(_ map[string]string) uniqueField {
	return uniqueField{
		name:       "name",
		missingMsg: "The name must be set for every company to which this account belongs.",
		dupMsg:     "Account names must be unique. You can't create accounts with these duplicate names: %s",
		valueIn: func(acc domain.Account, companyID string) string {
			return acc.NameIn(companyID)
		},
		persisted: func(ctx context.Context, values []string, companyID string, excludeIDs []string) ([]string, error) {
			companies, err := s.companyRepo.FindHierarchyScope(ctx, companyID)
			if err != nil {
				return nil, err
			}
			return s.accountRepo.FindNamesInCompanies(ctx, values, companies, excludeIDs)
		},
	}
}

func (s *accountService) codeField(roots map[string]string) uniqueField {
	return uniqueField{
		name:       "code",
		missingMsg: "The code must be set for every company to which this account belongs.",
		dupMsg:     "Account codes must be unique. You can't create accounts with these duplicate codes: %s",
		valueIn: func(acc domain.Account, companyID string) string {
			return acc.CodeIn(roots[companyID])
		},
		persisted: func(ctx context.Context, values []string, companyID string, excludeIDs []string) ([]string, error) {
			companies, err := s.companyRepo.FindHierarchyScope(ctx, companyID)
			if err != nil {
				return nil, err
			}
			return s.accountRepo.FindCodesInCompanies(ctx, values, roots[companyID], companies, excludeIDs)
		},
	}
}

func (s *accountService) ensureNamesUnique(ctx context.Context, accounts []domain.Account) error {
	return s.ensureUnique(ctx, accounts, s.nameField)
}

func (s *accountService) ensureCodesUnique(ctx context.Context, accounts []domain.Account) error {
	return s.ensureUnique(ctx, accounts, s.codeField)
}

// ensureUnique checks that the field is set for every root company of each
// account, then that no two accounts sharing a company scope use the same value.
func (s *accountService) ensureUnique(ctx context.Context, accounts []domain.Account, build func(roots map[string]string) uniqueField) (err error) {
	if len(accounts) == 0 {
		return nil
	}
	ctx = scope.WithSudo(ctx)

	var companies []string
	byCompany := make(map[string][]domain.Account)
	for _, acc := range accounts {
		for _, companyID := range acc.CompanyIDs {
			if _, ok := byCompany[companyID]; !ok {
				companies = append(companies, companyID)
			}
			byCompany[companyID] = append(byCompany[companyID], acc)
		}
	}

	roots, err := s.companyRepo.FindRootIDs(ctx, companies)
	if err != nil {
		return fmt.Errorf("resolving company roots: %w", err)
	}
	field := build(roots)

	ctx, span := tracing.StartSpan(ctx, "accounts.ensure_unique",
		attribute.String("field", field.name),
		attribute.Int("accounts", len(accounts)),
	)
	defer func() { tracing.EndSpan(span, err) }()

	// Completeness: one value per distinct root company
	for _, acc := range accounts {
		seenRoots := make(map[string]bool)
		for _, companyID := range acc.CompanyIDs {
			root := roots[companyID]
			if seenRoots[root] {
				continue
			}
			seenRoots[root] = true
			if field.valueIn(acc, companyID) == "" {
				return apperrors.NewValidationError(field.missingMsg)
			}
		}
	}

	excludeIDs := make([]string, 0, len(accounts))
	for _, acc := range accounts {
		excludeIDs = append(excludeIDs, acc.AccountID)
	}

	for _, companyID := range companies {
		duplicates, err := s.duplicatesIn(ctx, field, companyID, byCompany[companyID], excludeIDs)
		if err != nil {
			return err
		}
		if len(duplicates) > 0 {
			s.LogDebug(ctx, "Duplicate account values found",
				slog.String("field", field.name),
				slog.String("company_id", companyID),
				slog.Any("values", duplicates),
			)
			return apperrors.NewValidationError(fmt.Sprintf(field.dupMsg, strings.Join(duplicates, ", ")))
		}
	}
	return nil
}

// duplicatesIn returns the values shared inside the checked accounts of one
// company; when there are none, the values already used in the company's scope.
func (s *accountService) duplicatesIn(ctx context.Context, field uniqueField, companyID string, accounts []domain.Account, excludeIDs []string) ([]string, error) {
	var values []string
	owners := make(map[string]map[string]bool)
	for _, acc := range accounts {
		value := field.valueIn(acc, companyID)
		if _, ok := owners[value]; !ok {
			values = append(values, value)
			owners[value] = make(map[string]bool)
		}
		owners[value][acc.AccountID] = true
	}

	var duplicates []string
	for _, value := range values {
		if len(owners[value]) > 1 {
			duplicates = append(duplicates, value)
		}
	}
	if len(duplicates) > 0 {
		return duplicates, nil
	}

	found, err := field.persisted(ctx, values, companyID, excludeIDs)
	if err != nil {
		return nil, fmt.Errorf("searching %s duplicates for company %s: %w", field.name, companyID, err)
	}
	seen := make(map[string]bool, len(found))
	for _, value := range found {
		if !seen[value] {
			seen[value] = true
			duplicates = append(duplicates, value)
		}
	}
	return duplicates, nil
}
