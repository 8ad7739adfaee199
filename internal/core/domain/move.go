package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Move is a journal entry. NoJournal and InvoiceNo are free text references
// kept alongside the move.
type Move struct {
	MoveID     string     `json:"moveID"`
	JournalID  string     `json:"journalID"`
	CompanyID  string     `json:"companyID"`
	Name       string     `json:"name"`
	Date       time.Time  `json:"date"`
	CurrencyID *string    `json:"currencyID"`
	NoJournal  string     `json:"noJournal"`
	InvoiceNo  string     `json:"invoiceNo"`
	Lines      []MoveLine `json:"lines"`
	AuditFields
}

// MoveLine books a signed balance on an account.
type MoveLine struct {
	LineID         string          `json:"lineID"`
	MoveID         string          `json:"moveID"`
	AccountID      string          `json:"accountID"`
	CurrencyID     *string         `json:"currencyID"`
	Balance        decimal.Decimal `json:"balance"`
	AmountResidual decimal.Decimal `json:"amountResidual"`
	Reconciled     bool            `json:"reconciled"`
}
