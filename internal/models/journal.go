package models

// Journal is a row of the journals table.
type Journal struct {
	JournalID      string  `db:"journal_id"`
	CompanyID      string  `db:"company_id"`
	Name           string  `db:"name"`
	Type           string  `db:"type"`
	Code           string  `db:"code"`
	CodeOverridden bool    `db:"code_overridden"`
	CurrencyID     *string `db:"currency_id"` // Nullable
	AuditFields
}
