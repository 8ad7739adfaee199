package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/SscSPs/mma_accounts/internal/apperrors"
	"github.com/SscSPs/mma_accounts/internal/core/allocator"
	"github.com/SscSPs/mma_accounts/internal/core/domain"
	portsrepo "github.com/SscSPs/mma_accounts/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/mma_accounts/internal/core/ports/services"
	"github.com/SscSPs/mma_accounts/internal/core/scope"
	"github.com/SscSPs/mma_accounts/pkg/tracing"
)

// accountService implements the AccountSvcFacade interface
type accountService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
	companyRepo portsrepo.CompanyReader
	txManager   portsrepo.TransactionManager
}

// NewAccountService creates a new account service.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade, companyRepo portsrepo.CompanyReader, txManager portsrepo.TransactionManager) portssvc.AccountSvcFacade {
	return &accountService{
		accountRepo: accountRepo,
		companyRepo: companyRepo,
		txManager:   txManager,
	}
}

// Ensure accountService implements the AccountSvcFacade interface
var _ portssvc.AccountSvcFacade = (*accountService)(nil)

func (s *accountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find account by ID", slog.String("account_id", accountID))
		}
		return nil, err
	}

	// Obscure accounts of companies the caller cannot see
	if !scope.CanSee(ctx, account.CompanyIDs) {
		s.LogDebug(ctx, "Account found but belongs to other companies", slog.String("account_id", accountID))
		return nil, apperrors.ErrNotFound
	}
	return account, nil
}

func (s *accountService) ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error) {
	companies := scope.AllowedCompanies(ctx)
	if len(companies) == 0 {
		return nil, apperrors.NewValidationError("an active company is required")
	}

	accounts, err := s.accountRepo.ListAccounts(ctx, companies, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts", slog.Int("limit", limit), slog.Int("offset", offset))
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	if accounts == nil {
		return []domain.Account{}, nil
	}
	return accounts, nil
}

// loadAccounts fetches every account of accountIDs or fails with ErrNotFound.
func (s *accountService) loadAccounts(ctx context.Context, accountIDs []string) ([]domain.Account, error) {
	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, accountIDs)
	if err != nil {
		return nil, err
	}
	found := make(map[string]bool, len(accounts))
	for _, acc := range accounts {
		if !scope.CanSee(ctx, acc.CompanyIDs) {
			continue
		}
		found[acc.AccountID] = true
	}
	var missing []string
	for _, id := range accountIDs {
		if !found[id] {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: accounts %s", apperrors.ErrNotFound, strings.Join(missing, ", "))
	}
	return accounts, nil
}

// nameLookup reports names used in the parent/child scope of companyID.
func (s *accountService) nameLookup(ctx context.Context, companyID string) (allocator.TakenFunc, error) {
	companies, err := s.companyRepo.FindHierarchyScope(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("resolving scope of company %s: %w", companyID, err)
	}
	return func(ctx context.Context, candidate string) (bool, error) {
		n, err := s.accountRepo.CountAccountsByName(scope.WithSudo(ctx), candidate, companies, 1)
		return n > 0, err
	}, nil
}

// codeLookup reports codes used in the parent/child scope of companyID.
func (s *accountService) codeLookup(ctx context.Context, companyID string) (allocator.TakenFunc, error) {
	companies, err := s.companyRepo.FindHierarchyScope(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("resolving scope of company %s: %w", companyID, err)
	}
	roots, err := s.companyRepo.FindRootIDs(ctx, []string{companyID})
	if err != nil {
		return nil, fmt.Errorf("resolving root of company %s: %w", companyID, err)
	}
	root, ok := roots[companyID]
	if !ok {
		return nil, fmt.Errorf("%w: company %s", apperrors.ErrNotFound, companyID)
	}
	return func(ctx context.Context, candidate string) (bool, error) {
		n, err := s.accountRepo.CountAccountsByCode(scope.WithSudo(ctx), candidate, root, companies, 1)
		return n > 0, err
	}, nil
}

// NewAccountName returns an unused name derived from start. A nil claimed set
// claims start itself, so the result differs from start; pass an empty
// Claims to accept start when it is free.
func (s *accountService) NewAccountName(ctx context.Context, start string, claimed allocator.Claims) (name string, err error) {
	companyID, err := s.ActiveCompany(ctx)
	if err != nil {
		return "", err
	}
	ctx, span := tracing.StartSpan(ctx, "accounts.new_name", attribute.String("start", start))
	defer func() { tracing.EndSpan(span, err) }()

	taken, err := s.nameLookup(ctx, companyID)
	if err != nil {
		return "", err
	}
	if claimed == nil {
		claimed = allocator.NewClaims(start)
	}
	return allocator.UniqueName(ctx, start, claimed, taken)
}

// NewAccountCode is NewAccountName for codes.
func (s *accountService) NewAccountCode(ctx context.Context, start string, claimed allocator.Claims) (code string, err error) {
	companyID, err := s.ActiveCompany(ctx)
	if err != nil {
		return "", err
	}
	ctx, span := tracing.StartSpan(ctx, "accounts.new_code", attribute.String("start", start))
	defer func() { tracing.EndSpan(span, err) }()

	taken, err := s.codeLookup(ctx, companyID)
	if err != nil {
		return "", err
	}
	if claimed == nil {
		claimed = allocator.NewClaims(start)
	}
	return allocator.UniqueCode(ctx, start, claimed, taken)
}

// valuesGroup is a run of consecutive creation values asking for the same companies.
type valuesGroup struct {
	companyIDs []string
	values     []domain.AccountValues
}

func groupByCompanies(values []domain.AccountValues) []valuesGroup {
	var groups []valuesGroup
	lastKey := ""
	for i, v := range values {
		key := strings.Join(v.CompanyIDs, ",")
		if i == 0 || key != lastKey {
			groups = append(groups, valuesGroup{companyIDs: v.CompanyIDs})
			lastKey = key
		}
		g := &groups[len(groups)-1]
		g.values = append(g.values, v)
	}
	return groups
}

// resolveCompanies orders the companies of new accounts. The active company
// comes first when it is requested or when nothing is requested.
func resolveCompanies(requested []string, active string) []string {
	seen := make(map[string]bool, len(requested)+1)
	out := make([]string, 0, len(requested)+1)
	includeActive := len(requested) == 0
	for _, id := range requested {
		if id == active {
			includeActive = true
		}
	}
	if includeActive {
		out = append(out, active)
		seen[active] = true
	}
	for _, id := range requested {
		if !seen[id] {
			out = append(out, id)
			seen[id] = true
		}
	}
	return out
}

func (s *accountService) CreateAccounts(ctx context.Context, values []domain.AccountValues, userID string) (created []domain.Account, err error) {
	active, err := s.ActiveCompany(ctx)
	if err != nil {
		return nil, err
	}
	if len(values) == 0 {
		return []domain.Account{}, nil
	}

	ctx, span := tracing.StartSpan(ctx, "accounts.create", attribute.Int("count", len(values)))
	defer func() { tracing.EndSpan(span, err) }()

	err = s.txManager.RunInTx(ctx, func(ctx context.Context) error {
		created = created[:0]
		for _, group := range groupByCompanies(values) {
			companies := resolveCompanies(group.companyIDs, active)
			accounts, err := s.createGroup(ctx, companies, group.values, userID)
			if err != nil {
				return err
			}
			created = append(created, accounts...)
		}

		if err := s.ensureCodesUnique(ctx, created); err != nil {
			return err
		}
		return s.ensureNamesUnique(ctx, created)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to create accounts", slog.Int("count", len(values)))
		return nil, err
	}

	s.LogInfo(ctx, "Accounts created successfully", slog.Int("count", len(created)))
	return created, nil
}

// createGroup persists accounts sharing the same ordered company list.
// Generated codes are unique within the group thanks to a local claims set.
func (s *accountService) createGroup(ctx context.Context, companies []string, values []domain.AccountValues, userID string) ([]domain.Account, error) {
	primary := companies[0]

	involved := append([]string{}, companies...)
	for _, v := range values {
		for _, cmd := range v.CodeMappings {
			involved = append(involved, cmd.CompanyID)
		}
	}
	roots, err := s.companyRepo.FindRootIDs(ctx, involved)
	if err != nil {
		return nil, fmt.Errorf("resolving company roots: %w", err)
	}
	for _, id := range involved {
		if _, ok := roots[id]; !ok {
			return nil, apperrors.NewValidationError(fmt.Sprintf("unknown company %s", id))
		}
	}

	var codeTaken allocator.TakenFunc
	claims := allocator.NewClaims()
	now := time.Now()
	accounts := make([]domain.Account, 0, len(values))

	for _, v := range values {
		code := v.Code
		if v.Prefix != nil {
			if codeTaken == nil {
				if codeTaken, err = s.codeLookup(ctx, primary); err != nil {
					return nil, err
				}
			}
			start := allocator.StartCode(*v.Prefix, v.Digits)
			if code, err = allocator.UniqueCode(ctx, start, claims, codeTaken); err != nil {
				return nil, err
			}
			claims.Add(code)
		}

		// Prepopulate the code from the mapping created for the primary company
		if code == "" {
			if mapped, ok := domain.CreatedCodeFor(v.CodeMappings, primary); ok {
				code = mapped
			}
		}

		mappings := make(map[string]string)
		if code != "" {
			mappings[roots[primary]] = code
		}
		for _, cmd := range v.CodeMappings {
			if cmd.Op != domain.CommandCreate {
				continue
			}
			if root := roots[cmd.CompanyID]; mappings[root] == "" {
				mappings[root] = cmd.Code
			}
		}

		accounts = append(accounts, domain.Account{
			AccountID:    uuid.NewString(),
			Name:         v.Name,
			Code:         code,
			CompanyIDs:   append([]string{}, companies...),
			Reconcile:    v.Reconcile,
			CurrencyID:   v.CurrencyID,
			CodeMappings: mappings,
			AuditFields:  domain.NewAuditFields(userID, now),
		})
	}

	if err := s.accountRepo.SaveAccounts(ctx, accounts); err != nil {
		return nil, err
	}
	return accounts, nil
}

func (s *accountService) WriteAccounts(ctx context.Context, accountIDs []string, update domain.AccountUpdate, userID string) (accounts []domain.Account, err error) {
	if len(accountIDs) == 0 {
		return []domain.Account{}, nil
	}
	if update.CompanyIDs != nil && len(update.CompanyIDs) == 0 {
		return nil, apperrors.NewValidationError("an account must belong to at least one company")
	}
	for _, cmd := range update.CodeMappings {
		if !cmd.Valid() {
			return nil, apperrors.NewValidationError(fmt.Sprintf("unknown code mapping command %q", cmd.Op))
		}
	}

	ctx, span := tracing.StartSpan(ctx, "accounts.write", attribute.Int("count", len(accountIDs)))
	defer func() { tracing.EndSpan(span, err) }()

	accounts, err = s.loadAccounts(ctx, accountIDs)
	if err != nil {
		return nil, err
	}

	err = s.txManager.RunInTx(ctx, func(ctx context.Context) error {
		if update.Reconcile != nil {
			if err := s.toggleReconcile(ctx, accounts, *update.Reconcile); err != nil {
				return err
			}
		}
		if update.CurrencyID != nil && *update.CurrencyID != "" {
			if err := s.checkCurrencyChange(ctx, accounts, *update.CurrencyID); err != nil {
				return err
			}
		}

		roots, err := s.rootsForUpdate(ctx, accounts, update)
		if err != nil {
			return err
		}
		now := time.Now()
		for i := range accounts {
			applyAccountUpdate(&accounts[i], update, roots)
			accounts[i].LastUpdatedAt = now
			accounts[i].LastUpdatedBy = userID
			if err := s.accountRepo.UpdateAccount(ctx, accounts[i]); err != nil {
				return err
			}
		}

		if scope.ChecksDeferred(ctx) {
			return nil
		}
		if update.Touches(domain.FieldCompanyIDs, domain.FieldCode, domain.FieldCodeMappings) {
			if err := s.ensureCodesUnique(ctx, accounts); err != nil {
				return err
			}
		}
		if update.Touches(domain.FieldCompanyIDs, domain.FieldName) {
			if err := s.ensureNamesUnique(ctx, accounts); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to write accounts", slog.Int("count", len(accountIDs)))
		return nil, err
	}

	s.LogInfo(ctx, "Accounts updated successfully", slog.Int("count", len(accounts)))
	return accounts, nil
}

func (s *accountService) toggleReconcile(ctx context.Context, accounts []domain.Account, reconcile bool) error {
	var toggled []string
	for _, acc := range accounts {
		if acc.Reconcile != reconcile {
			toggled = append(toggled, acc.AccountID)
		}
	}
	if len(toggled) == 0 {
		return nil
	}

	if !reconcile {
		pending, err := s.accountRepo.CountPartiallyReconciledLines(ctx, toggled)
		if err != nil {
			return err
		}
		if pending > 0 {
			return apperrors.NewValidationError("You cannot switch an account to prevent the reconciliation if some partial reconciliations are still pending.")
		}
	}
	return s.accountRepo.ResetLineResiduals(ctx, toggled, reconcile)
}

func (s *accountService) checkCurrencyChange(ctx context.Context, accounts []domain.Account, currencyID string) error {
	for _, acc := range accounts {
		n, err := s.accountRepo.CountLinesInOtherCurrency(ctx, acc.AccountID, currencyID)
		if err != nil {
			return err
		}
		if n > 0 {
			return apperrors.NewValidationError("You cannot set a currency on this account as it already has some journal entries having a different foreign currency.")
		}
	}
	return nil
}

// rootsForUpdate resolves the roots of every company an update may map a code for.
func (s *accountService) rootsForUpdate(ctx context.Context, accounts []domain.Account, update domain.AccountUpdate) (map[string]string, error) {
	if !update.Touches(domain.FieldCompanyIDs, domain.FieldCode, domain.FieldCodeMappings) {
		return nil, nil
	}
	involved := append([]string{}, update.CompanyIDs...)
	for _, cmd := range update.CodeMappings {
		involved = append(involved, cmd.CompanyID)
	}
	for _, acc := range accounts {
		involved = append(involved, acc.CompanyIDs...)
	}
	roots, err := s.companyRepo.FindRootIDs(ctx, involved)
	if err != nil {
		return nil, fmt.Errorf("resolving company roots: %w", err)
	}
	for _, id := range involved {
		if _, ok := roots[id]; !ok {
			return nil, apperrors.NewValidationError(fmt.Sprintf("unknown company %s", id))
		}
	}
	return roots, nil
}

func applyAccountUpdate(acc *domain.Account, update domain.AccountUpdate, roots map[string]string) {
	if update.Name != nil {
		acc.Name = *update.Name
	}
	if update.Reconcile != nil {
		acc.Reconcile = *update.Reconcile
	}
	if update.CurrencyID != nil {
		if *update.CurrencyID == "" {
			acc.CurrencyID = nil
		} else {
			currencyID := *update.CurrencyID
			acc.CurrencyID = &currencyID
		}
	}
	if update.CompanyIDs != nil {
		acc.CompanyIDs = resolveCompanies(update.CompanyIDs, update.CompanyIDs[0])
	}
	if roots == nil {
		return
	}

	if acc.CodeMappings == nil {
		acc.CodeMappings = make(map[string]string)
	}
	primaryRoot := roots[acc.CompanyIDs[0]]
	if update.Code != nil {
		acc.CodeMappings[primaryRoot] = *update.Code
	}
	for _, cmd := range update.CodeMappings {
		root := roots[cmd.CompanyID]
		switch cmd.Op {
		case domain.CommandCreate, domain.CommandUpdate:
			acc.CodeMappings[root] = cmd.Code
		case domain.CommandDelete:
			delete(acc.CodeMappings, root)
		case domain.CommandLink:
			if _, ok := acc.CodeMappings[root]; !ok && acc.Code != "" {
				acc.CodeMappings[root] = acc.Code
			}
		}
	}
	acc.Code = acc.CodeMappings[primaryRoot]
}

func (s *accountService) CopyAccounts(ctx context.Context, accountIDs []string, userID string) (copies []domain.Account, err error) {
	if len(accountIDs) == 0 {
		return []domain.Account{}, nil
	}
	ctx, span := tracing.StartSpan(ctx, "accounts.copy", attribute.Int("count", len(accountIDs)))
	defer func() { tracing.EndSpan(span, err) }()

	sources, err := s.loadAccounts(ctx, accountIDs)
	if err != nil {
		return nil, err
	}

	err = s.txManager.RunInTx(ctx, func(ctx context.Context) error {
		values, err := s.copyValues(ctx, sources)
		if err != nil {
			return err
		}
		copies, err = s.CreateAccounts(ctx, values, userID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return copies, nil
}

// copyValues allocates a fresh code per root company and a fresh name for each source.
// Claims are seeded with the source value so the copy never reuses it.
func (s *accountService) copyValues(ctx context.Context, sources []domain.Account) ([]domain.AccountValues, error) {
	active, err := s.ActiveCompany(ctx)
	if err != nil {
		return nil, err
	}
	codeClaims := make(map[string]allocator.Claims)
	nameClaims := make(map[string]allocator.Claims)
	codeLookups := make(map[string]allocator.TakenFunc)
	nameLookups := make(map[string]allocator.TakenFunc)

	lookup := func(cache map[string]allocator.TakenFunc, companyID string, build func(context.Context, string) (allocator.TakenFunc, error)) (allocator.TakenFunc, error) {
		if fn, ok := cache[companyID]; ok {
			return fn, nil
		}
		fn, err := build(ctx, companyID)
		if err != nil {
			return nil, err
		}
		cache[companyID] = fn
		return fn, nil
	}
	claimsFor := func(cache map[string]allocator.Claims, companyID string) allocator.Claims {
		if c, ok := cache[companyID]; ok {
			return c
		}
		c := allocator.NewClaims()
		cache[companyID] = c
		return c
	}

	values := make([]domain.AccountValues, 0, len(sources))
	for _, src := range sources {
		// The copy is created with the same company order as any new account.
		primary := resolveCompanies(src.CompanyIDs, active)[0]
		roots, err := s.companyRepo.FindRootIDs(ctx, []string{primary})
		if err != nil {
			return nil, err
		}

		var commands []domain.MappingCommand
		var primaryCode string
		for root, code := range src.CodeMappings {
			target := root
			if root == roots[primary] {
				target = primary
			}
			taken, err := lookup(codeLookups, target, s.codeLookup)
			if err != nil {
				return nil, err
			}
			claims := claimsFor(codeClaims, root)
			newCode, err := allocator.UniqueCode(ctx, code, claims.With(code), taken)
			if err != nil {
				return nil, err
			}
			claims.Add(newCode)
			if target == primary {
				primaryCode = newCode
			} else {
				commands = append(commands, domain.MappingCommand{Op: domain.CommandCreate, CompanyID: target, Code: newCode})
			}
		}

		taken, err := lookup(nameLookups, primary, s.nameLookup)
		if err != nil {
			return nil, err
		}
		claims := claimsFor(nameClaims, primary)
		name, err := allocator.UniqueName(ctx, src.Name, claims.With(src.Name), taken)
		if err != nil {
			return nil, err
		}
		claims.Add(name)

		values = append(values, domain.AccountValues{
			Name:         name,
			Code:         primaryCode,
			CompanyIDs:   src.CompanyIDs,
			Reconcile:    src.Reconcile,
			CurrencyID:   src.CurrencyID,
			CodeMappings: commands,
		})
	}
	return values, nil
}

func (s *accountService) EnsureNameIsUnique(ctx context.Context, accountIDs []string) error {
	accounts, err := s.loadAccounts(scope.WithSudo(ctx), accountIDs)
	if err != nil {
		return err
	}
	return s.ensureNamesUnique(ctx, accounts)
}

func (s *accountService) EnsureCodeIsUnique(ctx context.Context, accountIDs []string) error {
	accounts, err := s.loadAccounts(scope.WithSudo(ctx), accountIDs)
	if err != nil {
		return err
	}
	return s.ensureCodesUnique(ctx, accounts)
}
