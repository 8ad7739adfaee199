package models

// Account is a row of the accounts table. Code mirrors the mapping of the
// root of the first company, the others live in account_code_mappings.
type Account struct {
	AccountID  string  `db:"account_id"`
	Name       string  `db:"name"`
	Code       string  `db:"code"`
	Reconcile  bool    `db:"reconcile"`
	CurrencyID *string `db:"currency_id"` // Nullable
	AuditFields
}

// AccountCompany assigns an account to a company. Position 0 is the primary company.
type AccountCompany struct {
	AccountID string `db:"account_id"`
	CompanyID string `db:"company_id"`
	Position  int    `db:"position"`
}

// AccountCodeMapping holds the code of an account for one root company.
type AccountCodeMapping struct {
	AccountID     string `db:"account_id"`
	RootCompanyID string `db:"root_company_id"`
	Code          string `db:"code"`
}
