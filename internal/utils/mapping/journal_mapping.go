package mapping

import (
	"github.com/SscSPs/mma_accounts/internal/core/domain"
	"github.com/SscSPs/mma_accounts/internal/models"
)

// ToModelJournal converts a domain Journal to a model Journal
func ToModelJournal(d domain.Journal) models.Journal {
	return models.Journal{
		JournalID:      d.JournalID,
		CompanyID:      d.CompanyID,
		Name:           d.Name,
		Type:           string(d.Type),
		Code:           d.Code,
		CodeOverridden: d.CodeOverridden,
		CurrencyID:     d.CurrencyID,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainJournal converts a model Journal to a domain Journal
func ToDomainJournal(m models.Journal) domain.Journal {
	return domain.Journal{
		JournalID:      m.JournalID,
		CompanyID:      m.CompanyID,
		Name:           m.Name,
		Type:           domain.JournalType(m.Type),
		Code:           m.Code,
		CodeOverridden: m.CodeOverridden,
		CurrencyID:     m.CurrencyID,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainJournalSlice converts a slice of model Journals to a slice of domain Journals
func ToDomainJournalSlice(ms []models.Journal) []domain.Journal {
	if ms == nil {
		return nil
	}
	ds := make([]domain.Journal, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainJournal(m)
	}
	return ds
}
