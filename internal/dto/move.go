package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/SscSPs/mma_accounts/internal/core/domain"
)

// MoveLineRequest books a signed balance on an account. Positive is debit.
type MoveLineRequest struct {
	AccountID  string          `json:"accountID" binding:"required"`
	CurrencyID *string         `json:"currencyID"`
	Balance    decimal.Decimal `json:"balance"`
}

// CreateMoveRequest defines the data needed to record a move.
type CreateMoveRequest struct {
	JournalID  string            `json:"journalID" binding:"required"`
	Name       string            `json:"name"`
	Date       *time.Time        `json:"date"` // Optional, defaults to today
	CurrencyID *string           `json:"currencyID"`
	NoJournal  string            `json:"noJournal"`
	InvoiceNo  string            `json:"invoiceNo"`
	Lines      []MoveLineRequest `json:"lines" binding:"required,min=2,dive"`
}

// UpdateMoveReferencesRequest changes the free text references of a move.
type UpdateMoveReferencesRequest struct {
	NoJournal *string `json:"noJournal"`
	InvoiceNo *string `json:"invoiceNo"`
}

// MoveLineResponse defines the data returned for a move line.
type MoveLineResponse struct {
	LineID         string          `json:"lineID"`
	AccountID      string          `json:"accountID"`
	CurrencyID     *string         `json:"currencyID,omitempty"`
	Balance        decimal.Decimal `json:"balance"`
	AmountResidual decimal.Decimal `json:"amountResidual"`
	Reconciled     bool            `json:"reconciled"`
}

// MoveResponse defines the data returned for a move with its lines.
type MoveResponse struct {
	MoveID        string             `json:"moveID"`
	JournalID     string             `json:"journalID"`
	CompanyID     string             `json:"companyID"`
	Name          string             `json:"name"`
	Date          time.Time          `json:"date"`
	CurrencyID    *string            `json:"currencyID,omitempty"`
	NoJournal     string             `json:"noJournal"`
	InvoiceNo     string             `json:"invoiceNo"`
	Lines         []MoveLineResponse `json:"lines"`
	CreatedAt     time.Time          `json:"createdAt"`
	CreatedBy     string             `json:"createdBy"`
	LastUpdatedAt time.Time          `json:"lastUpdatedAt"`
	LastUpdatedBy string             `json:"lastUpdatedBy"`
}

// ToDomainMove converts the request into a move awaiting ids and residuals.
func (r CreateMoveRequest) ToDomainMove() domain.Move {
	move := domain.Move{
		JournalID:  r.JournalID,
		Name:       r.Name,
		CurrencyID: r.CurrencyID,
		NoJournal:  r.NoJournal,
		InvoiceNo:  r.InvoiceNo,
		Lines:      make([]domain.MoveLine, len(r.Lines)),
	}
	if r.Date != nil {
		move.Date = *r.Date
	}
	for i, l := range r.Lines {
		move.Lines[i] = domain.MoveLine{AccountID: l.AccountID, CurrencyID: l.CurrencyID, Balance: l.Balance}
	}
	return move
}

// ToMoveResponse converts a domain.Move to MoveResponse DTO
func ToMoveResponse(m *domain.Move) MoveResponse {
	lines := make([]MoveLineResponse, len(m.Lines))
	for i, l := range m.Lines {
		lines[i] = MoveLineResponse{
			LineID:         l.LineID,
			AccountID:      l.AccountID,
			CurrencyID:     l.CurrencyID,
			Balance:        l.Balance,
			AmountResidual: l.AmountResidual,
			Reconciled:     l.Reconciled,
		}
	}
	return MoveResponse{
		MoveID:        m.MoveID,
		JournalID:     m.JournalID,
		CompanyID:     m.CompanyID,
		Name:          m.Name,
		Date:          m.Date,
		CurrencyID:    m.CurrencyID,
		NoJournal:     m.NoJournal,
		InvoiceNo:     m.InvoiceNo,
		Lines:         lines,
		CreatedAt:     m.CreatedAt,
		CreatedBy:     m.CreatedBy,
		LastUpdatedAt: m.LastUpdatedAt,
		LastUpdatedBy: m.LastUpdatedBy,
	}
}
