package services_test

import (
	"context"
	"fmt"
	"sort"

	"github.com/SscSPs/mma_accounts/internal/apperrors"
	"github.com/SscSPs/mma_accounts/internal/core/domain"
)

// fakeCompanyRepo keeps the company hierarchy as a child -> parent map.
type fakeCompanyRepo struct {
	parents   map[string]string
	companies map[string]domain.Company
}

func newFakeCompanyRepo() *fakeCompanyRepo {
	return &fakeCompanyRepo{parents: map[string]string{}, companies: map[string]domain.Company{}}
}

func (r *fakeCompanyRepo) add(id, parent string) {
	company := domain.Company{CompanyID: id, Name: id}
	if parent != "" {
		p := parent
		company.ParentID = &p
	}
	r.companies[id] = company
	r.parents[id] = parent
}

func (r *fakeCompanyRepo) FindCompanyByID(_ context.Context, companyID string) (*domain.Company, error) {
	company, ok := r.companies[companyID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &company, nil
}

func (r *fakeCompanyRepo) SaveCompany(_ context.Context, company domain.Company) error {
	parent := ""
	if company.ParentID != nil {
		parent = *company.ParentID
	}
	r.companies[company.CompanyID] = company
	r.parents[company.CompanyID] = parent
	return nil
}

func (r *fakeCompanyRepo) isAncestor(ancestor, id string) bool {
	for p := r.parents[id]; p != ""; p = r.parents[p] {
		if p == ancestor {
			return true
		}
	}
	return false
}

func (r *fakeCompanyRepo) FindHierarchyScope(_ context.Context, companyID string) ([]string, error) {
	if _, ok := r.companies[companyID]; !ok {
		return nil, apperrors.ErrNotFound
	}
	var out []string
	for id := range r.companies {
		if id == companyID || r.isAncestor(id, companyID) || r.isAncestor(companyID, id) {
			out = append(out, id)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (r *fakeCompanyRepo) FindRootIDs(_ context.Context, companyIDs []string) (map[string]string, error) {
	out := make(map[string]string, len(companyIDs))
	for _, id := range companyIDs {
		if _, ok := r.companies[id]; !ok {
			continue
		}
		root := id
		for r.parents[root] != "" {
			root = r.parents[root]
		}
		out[id] = root
	}
	return out, nil
}

// fakeAccountRepo stores accounts in memory. Snapshots let fakeTxManager roll back.
type fakeAccountRepo struct {
	companies *fakeCompanyRepo
	accounts  map[string]domain.Account
	order     []string

	// per account line facts used by writes
	partial        map[string]int
	otherCurrency  map[string]int
	residualResets map[string]bool
	saveCalls      int
}

func newFakeAccountRepo(companies *fakeCompanyRepo) *fakeAccountRepo {
	return &fakeAccountRepo{
		companies:      companies,
		accounts:       map[string]domain.Account{},
		partial:        map[string]int{},
		otherCurrency:  map[string]int{},
		residualResets: map[string]bool{},
	}
}

func cloneAccount(acc domain.Account) domain.Account {
	acc.CompanyIDs = append([]string{}, acc.CompanyIDs...)
	mappings := make(map[string]string, len(acc.CodeMappings))
	for k, v := range acc.CodeMappings {
		mappings[k] = v
	}
	acc.CodeMappings = mappings
	return acc
}

// seed stores an account with its code mapped on the root of its first company.
func (r *fakeAccountRepo) seed(id, name, code string, companyIDs ...string) domain.Account {
	roots, _ := r.companies.FindRootIDs(context.Background(), companyIDs)
	acc := domain.Account{
		AccountID:    id,
		Name:         name,
		Code:         code,
		CompanyIDs:   companyIDs,
		CodeMappings: map[string]string{roots[companyIDs[0]]: code},
	}
	r.accounts[id] = acc
	r.order = append(r.order, id)
	return acc
}

func (r *fakeAccountRepo) snapshot() (map[string]domain.Account, []string) {
	accounts := make(map[string]domain.Account, len(r.accounts))
	for k, v := range r.accounts {
		accounts[k] = cloneAccount(v)
	}
	return accounts, append([]string{}, r.order...)
}

func (r *fakeAccountRepo) FindAccountByID(_ context.Context, accountID string) (*domain.Account, error) {
	acc, ok := r.accounts[accountID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	acc = cloneAccount(acc)
	return &acc, nil
}

func (r *fakeAccountRepo) FindAccountsByIDs(_ context.Context, accountIDs []string) ([]domain.Account, error) {
	var out []domain.Account
	for _, id := range accountIDs {
		if acc, ok := r.accounts[id]; ok {
			out = append(out, cloneAccount(acc))
		}
	}
	return out, nil
}

func (r *fakeAccountRepo) ListAccounts(_ context.Context, companyIDs []string, limit int, offset int) ([]domain.Account, error) {
	var out []domain.Account
	for _, id := range r.order {
		if acc := r.accounts[id]; acc.BelongsTo(companyIDs...) {
			out = append(out, cloneAccount(acc))
		}
	}
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeAccountRepo) CountAccountsByName(_ context.Context, name string, companyIDs []string, limit int) (int, error) {
	n := 0
	for _, acc := range r.accounts {
		if acc.Name == name && acc.BelongsTo(companyIDs...) && n < limit {
			n++
		}
	}
	return n, nil
}

func (r *fakeAccountRepo) CountAccountsByCode(_ context.Context, code string, rootCompanyID string, companyIDs []string, limit int) (int, error) {
	n := 0
	for _, acc := range r.accounts {
		if acc.CodeIn(rootCompanyID) == code && acc.BelongsTo(companyIDs...) && n < limit {
			n++
		}
	}
	return n, nil
}

func excluded(id string, excludeIDs []string) bool {
	for _, ex := range excludeIDs {
		if ex == id {
			return true
		}
	}
	return false
}

func (r *fakeAccountRepo) FindNamesInCompanies(_ context.Context, names []string, companyIDs []string, excludeIDs []string) ([]string, error) {
	var out []string
	for _, id := range r.order {
		acc := r.accounts[id]
		if excluded(id, excludeIDs) || !acc.BelongsTo(companyIDs...) {
			continue
		}
		for _, name := range names {
			if acc.Name == name {
				out = append(out, name)
			}
		}
	}
	return out, nil
}

func (r *fakeAccountRepo) FindCodesInCompanies(_ context.Context, codes []string, rootCompanyID string, companyIDs []string, excludeIDs []string) ([]string, error) {
	var out []string
	for _, id := range r.order {
		acc := r.accounts[id]
		if excluded(id, excludeIDs) || !acc.BelongsTo(companyIDs...) {
			continue
		}
		for _, code := range codes {
			if acc.CodeIn(rootCompanyID) == code {
				out = append(out, code)
			}
		}
	}
	return out, nil
}

func (r *fakeAccountRepo) SaveAccounts(_ context.Context, accounts []domain.Account) error {
	r.saveCalls++
	for _, acc := range accounts {
		if _, ok := r.accounts[acc.AccountID]; ok {
			return fmt.Errorf("%w: account %s", apperrors.ErrDuplicate, acc.AccountID)
		}
		r.accounts[acc.AccountID] = cloneAccount(acc)
		r.order = append(r.order, acc.AccountID)
	}
	return nil
}

func (r *fakeAccountRepo) UpdateAccount(_ context.Context, account domain.Account) error {
	if _, ok := r.accounts[account.AccountID]; !ok {
		return apperrors.ErrNotFound
	}
	r.accounts[account.AccountID] = cloneAccount(account)
	return nil
}

func (r *fakeAccountRepo) CountLinesInOtherCurrency(_ context.Context, accountID string, _ string) (int, error) {
	return r.otherCurrency[accountID], nil
}

func (r *fakeAccountRepo) CountPartiallyReconciledLines(_ context.Context, accountIDs []string) (int, error) {
	n := 0
	for _, id := range accountIDs {
		n += r.partial[id]
	}
	return n, nil
}

func (r *fakeAccountRepo) ResetLineResiduals(_ context.Context, accountIDs []string, reconcilable bool) error {
	for _, id := range accountIDs {
		r.residualResets[id] = reconcilable
	}
	return nil
}

// fakeTxManager runs fn and restores the account store when it fails.
// Nested calls join the outer transaction.
type fakeTxManager struct {
	accounts *fakeAccountRepo
	depth    int
}

func (m *fakeTxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	m.depth++
	defer func() { m.depth-- }()
	if m.depth > 1 || m.accounts == nil {
		return fn(ctx)
	}

	accounts, order := m.accounts.snapshot()
	if err := fn(ctx); err != nil {
		m.accounts.accounts = accounts
		m.accounts.order = order
		return err
	}
	return nil
}
