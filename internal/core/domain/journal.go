package domain

// JournalType classifies a journal and drives its default short code.
type JournalType string

const (
	JournalSale     JournalType = "sale"
	JournalPurchase JournalType = "purchase"
	JournalCash     JournalType = "cash"
	JournalBank     JournalType = "bank"
	JournalCredit   JournalType = "credit"
	JournalGeneral  JournalType = "general"
)

// MaxJournalCodeLength caps the journal short code.
const MaxJournalCodeLength = 15

// Journal groups moves of one company. Code is computed from the type unless
// CodeOverridden is set.
type Journal struct {
	JournalID      string      `json:"journalID"`
	CompanyID      string      `json:"companyID"`
	Name           string      `json:"name"`
	Type           JournalType `json:"type"`
	Code           string      `json:"code"`
	CodeOverridden bool        `json:"codeOverridden"`
	CurrencyID     *string     `json:"currencyID"`
	AuditFields
}

// JournalValues is one entry of a journal creation batch. An empty Code asks
// for a computed one.
type JournalValues struct {
	CompanyID  string
	Name       string
	Type       JournalType
	Code       string
	CurrencyID *string
}

// JournalUpdate carries a journal write. ResetCode drops an override and recomputes the code.
type JournalUpdate struct {
	Name      *string
	Type      *JournalType
	Code      *string
	ResetCode bool
}
