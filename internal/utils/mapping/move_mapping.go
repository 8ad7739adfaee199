package mapping

import (
	"github.com/SscSPs/mma_accounts/internal/core/domain"
	"github.com/SscSPs/mma_accounts/internal/models"
)

// ToModelMove converts a domain Move to its header and line rows.
func ToModelMove(d domain.Move) (models.Move, []models.MoveLine) {
	move := models.Move{
		MoveID:      d.MoveID,
		JournalID:   d.JournalID,
		CompanyID:   d.CompanyID,
		Name:        d.Name,
		Date:        d.Date,
		CurrencyID:  d.CurrencyID,
		NoJournal:   d.NoJournal,
		NoInvoice:   d.InvoiceNo,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
	lines := make([]models.MoveLine, len(d.Lines))
	for i, l := range d.Lines {
		lines[i] = models.MoveLine{
			LineID:         l.LineID,
			MoveID:         d.MoveID,
			AccountID:      l.AccountID,
			CurrencyID:     l.CurrencyID,
			Balance:        l.Balance,
			AmountResidual: l.AmountResidual,
			Reconciled:     l.Reconciled,
		}
	}
	return move, lines
}

// ToDomainMove assembles a domain Move from its header and line rows.
func ToDomainMove(m models.Move, lines []models.MoveLine) domain.Move {
	move := domain.Move{
		MoveID:      m.MoveID,
		JournalID:   m.JournalID,
		CompanyID:   m.CompanyID,
		Name:        m.Name,
		Date:        m.Date,
		CurrencyID:  m.CurrencyID,
		NoJournal:   m.NoJournal,
		InvoiceNo:   m.NoInvoice,
		Lines:       make([]domain.MoveLine, len(lines)),
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
	for i, l := range lines {
		move.Lines[i] = domain.MoveLine{
			LineID:         l.LineID,
			MoveID:         l.MoveID,
			AccountID:      l.AccountID,
			CurrencyID:     l.CurrencyID,
			Balance:        l.Balance,
			AmountResidual: l.AmountResidual,
			Reconciled:     l.Reconciled,
		}
	}
	return move
}
