package mapping

import (
	"sort"

	"github.com/SscSPs/mma_accounts/internal/core/domain"
	"github.com/SscSPs/mma_accounts/internal/models"
)

// ToModelAccount converts a domain Account to its table rows: the account,
// its ordered companies and its per-root codes.
func ToModelAccount(d domain.Account) (models.Account, []models.AccountCompany, []models.AccountCodeMapping) {
	account := models.Account{
		AccountID:   d.AccountID,
		Name:        d.Name,
		Code:        d.Code,
		Reconcile:   d.Reconcile,
		CurrencyID:  d.CurrencyID,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}

	companies := make([]models.AccountCompany, 0, len(d.CompanyIDs))
	for i, companyID := range d.CompanyIDs {
		companies = append(companies, models.AccountCompany{AccountID: d.AccountID, CompanyID: companyID, Position: i})
	}

	roots := make([]string, 0, len(d.CodeMappings))
	for root := range d.CodeMappings {
		roots = append(roots, root)
	}
	sort.Strings(roots)
	mappings := make([]models.AccountCodeMapping, 0, len(roots))
	for _, root := range roots {
		mappings = append(mappings, models.AccountCodeMapping{AccountID: d.AccountID, RootCompanyID: root, Code: d.CodeMappings[root]})
	}
	return account, companies, mappings
}

// ToDomainAccount assembles a domain Account from its table rows.
// companies must be ordered by position.
func ToDomainAccount(m models.Account, companies []models.AccountCompany, mappings []models.AccountCodeMapping) domain.Account {
	companyIDs := make([]string, 0, len(companies))
	for _, c := range companies {
		companyIDs = append(companyIDs, c.CompanyID)
	}
	codes := make(map[string]string, len(mappings))
	for _, mp := range mappings {
		codes[mp.RootCompanyID] = mp.Code
	}
	return domain.Account{
		AccountID:    m.AccountID,
		Name:         m.Name,
		Code:         m.Code,
		CompanyIDs:   companyIDs,
		Reconcile:    m.Reconcile,
		CurrencyID:   m.CurrencyID,
		CodeMappings: codes,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}
