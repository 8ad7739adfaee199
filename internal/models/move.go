package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Move is a row of the moves table.
type Move struct {
	MoveID     string    `db:"move_id"`
	JournalID  string    `db:"journal_id"`
	CompanyID  string    `db:"company_id"`
	Name       string    `db:"name"`
	Date       time.Time `db:"date"`
	CurrencyID *string   `db:"currency_id"` // Nullable
	NoJournal  string    `db:"no_journal"`
	NoInvoice  string    `db:"no_invoice"`
	AuditFields
}

// MoveLine is a row of the move_lines table.
type MoveLine struct {
	LineID         string          `db:"line_id"`
	MoveID         string          `db:"move_id"`
	AccountID      string          `db:"account_id"`
	CurrencyID     *string         `db:"currency_id"` // Nullable
	Balance        decimal.Decimal `db:"balance"`
	AmountResidual decimal.Decimal `db:"amount_residual"`
	Reconciled     bool            `db:"reconciled"`
}
