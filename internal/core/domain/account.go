package domain

// Account represents a ledger account shared by one or more companies.
// Codes are company dependent: CodeMappings holds one code per root company,
// Code mirrors the code of the primary (first) company.
type Account struct {
	AccountID    string            `json:"accountID"`
	Name         string            `json:"name"`
	Code         string            `json:"code"`
	CompanyIDs   []string          `json:"companyIDs"` // Ordered, primary company first
	Reconcile    bool              `json:"reconcile"`
	CurrencyID   *string           `json:"currencyID"` // Nullable, account restricted to this foreign currency
	CodeMappings map[string]string `json:"codeMappings"` // root company id -> code
	AuditFields
}

// CodeIn returns the code of the account as seen from the given root company.
func (a Account) CodeIn(rootCompanyID string) string {
	if code, ok := a.CodeMappings[rootCompanyID]; ok {
		return code
	}
	return ""
}

// NameIn returns the name of the account as seen from the given company.
// Names are not company dependent, the parameter keeps the call sites symmetric with CodeIn.
func (a Account) NameIn(_ string) string {
	return a.Name
}

// BelongsTo reports whether the account is assigned to any of the given companies.
func (a Account) BelongsTo(companyIDs ...string) bool {
	for _, own := range a.CompanyIDs {
		for _, id := range companyIDs {
			if own == id {
				return true
			}
		}
	}
	return false
}

// AccountValues is one entry of a batch creation request.
// Either Code or Prefix/Digits may be given; when neither is present the code
// is taken from the first create mapping command targeting the primary company.
type AccountValues struct {
	Name         string
	Code         string
	Prefix       *string
	Digits       int
	CompanyIDs   []string
	Reconcile    bool
	CurrencyID   *string
	CodeMappings []MappingCommand
}

// AccountField names a writable account field, used to decide which checks a write triggers.
type AccountField string

const (
	FieldName         AccountField = "name"
	FieldCode         AccountField = "code"
	FieldCompanyIDs   AccountField = "company_ids"
	FieldReconcile    AccountField = "reconcile"
	FieldCurrencyID   AccountField = "currency_id"
	FieldCodeMappings AccountField = "code_mapping_ids"
)

// AccountUpdate carries a batch write. Nil fields are left untouched.
type AccountUpdate struct {
	Name         *string
	Code         *string
	CompanyIDs   []string // nil means unchanged
	Reconcile    *bool
	CurrencyID   *string // pointer to "" clears the currency
	CodeMappings []MappingCommand
}

// Fields returns the set of fields the update touches.
func (u AccountUpdate) Fields() map[AccountField]bool {
	fields := make(map[AccountField]bool)
	if u.Name != nil {
		fields[FieldName] = true
	}
	if u.Code != nil {
		fields[FieldCode] = true
	}
	if u.CompanyIDs != nil {
		fields[FieldCompanyIDs] = true
	}
	if u.Reconcile != nil {
		fields[FieldReconcile] = true
	}
	if u.CurrencyID != nil {
		fields[FieldCurrencyID] = true
	}
	if len(u.CodeMappings) > 0 {
		fields[FieldCodeMappings] = true
	}
	return fields
}

// Touches reports whether the update changes any of the given fields.
func (u AccountUpdate) Touches(fields ...AccountField) bool {
	changed := u.Fields()
	for _, f := range fields {
		if changed[f] {
			return true
		}
	}
	return false
}
