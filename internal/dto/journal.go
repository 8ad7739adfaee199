package dto

import (
	"time"

	"github.com/SscSPs/mma_accounts/internal/core/domain"
)

// CreateJournalRequest defines one journal of a creation batch. An empty code
// is computed from the type.
type CreateJournalRequest struct {
	Name       string  `json:"name" binding:"required"`
	Type       string  `json:"type" binding:"required,oneof=sale purchase cash bank credit general"`
	Code       string  `json:"code" binding:"omitempty,max=15"`
	CurrencyID *string `json:"currencyID"`
}

// CreateJournalsRequest wraps a batch of journal creations.
type CreateJournalsRequest struct {
	Journals []CreateJournalRequest `json:"journals" binding:"required,min=1,dive"`
}

// UpdateJournalRequest defines the fields allowed for updating a journal.
type UpdateJournalRequest struct {
	Name      *string `json:"name"`
	Type      *string `json:"type" binding:"omitempty,oneof=sale purchase cash bank credit general"`
	Code      *string `json:"code" binding:"omitempty,max=15"`
	ResetCode bool    `json:"resetCode"`
}

// JournalResponse defines the data returned for a journal.
type JournalResponse struct {
	JournalID      string    `json:"journalID"`
	CompanyID      string    `json:"companyID"`
	Name           string    `json:"name"`
	Type           string    `json:"type"`
	Code           string    `json:"code"`
	CodeOverridden bool      `json:"codeOverridden"`
	CurrencyID     *string   `json:"currencyID,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	CreatedBy      string    `json:"createdBy"`
	LastUpdatedAt  time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy  string    `json:"lastUpdatedBy"`
}

// ListJournalsParams defines query parameters for listing journals.
type ListJournalsParams struct {
	Limit     int    `form:"limit,default=20" binding:"min=1,max=200"`
	NextToken string `form:"nextToken"`
}

// ListJournalsResponse wraps a page of journals.
type ListJournalsResponse struct {
	Journals  []JournalResponse `json:"journals"`
	NextToken *string           `json:"nextToken,omitempty"`
}

// ToJournalValues converts the batch into service input for the given company.
func (r CreateJournalsRequest) ToJournalValues(companyID string) []domain.JournalValues {
	values := make([]domain.JournalValues, len(r.Journals))
	for i, j := range r.Journals {
		values[i] = domain.JournalValues{
			CompanyID:  companyID,
			Name:       j.Name,
			Type:       domain.JournalType(j.Type),
			Code:       j.Code,
			CurrencyID: j.CurrencyID,
		}
	}
	return values
}

// ToJournalUpdate converts the request into a domain update.
func (r UpdateJournalRequest) ToJournalUpdate() domain.JournalUpdate {
	update := domain.JournalUpdate{Name: r.Name, Code: r.Code, ResetCode: r.ResetCode}
	if r.Type != nil {
		t := domain.JournalType(*r.Type)
		update.Type = &t
	}
	return update
}

// ToJournalResponse converts a domain.Journal to JournalResponse DTO
func ToJournalResponse(j *domain.Journal) JournalResponse {
	return JournalResponse{
		JournalID:      j.JournalID,
		CompanyID:      j.CompanyID,
		Name:           j.Name,
		Type:           string(j.Type),
		Code:           j.Code,
		CodeOverridden: j.CodeOverridden,
		CurrencyID:     j.CurrencyID,
		CreatedAt:      j.CreatedAt,
		CreatedBy:      j.CreatedBy,
		LastUpdatedAt:  j.LastUpdatedAt,
		LastUpdatedBy:  j.LastUpdatedBy,
	}
}

// ToJournalResponses converts a slice of domain.Journal to []JournalResponse.
func ToJournalResponses(journals []domain.Journal) []JournalResponse {
	res := make([]JournalResponse, len(journals))
	for i := range journals {
		res[i] = ToJournalResponse(&journals[i])
	}
	return res
}
