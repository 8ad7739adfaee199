package dto

import (
	"time"

	"github.com/SscSPs/mma_accounts/internal/core/domain"
)

// MappingCommandRequest is one change to an account's per-company codes.
type MappingCommandRequest struct {
	Op        string `json:"op" binding:"required,oneof=create update delete link"`
	CompanyID string `json:"companyID" binding:"required"`
	Code      string `json:"code" binding:"omitempty,accountcode"`
}

// CreateAccountRequest defines the data needed to create one account of a batch.
// Name is checked by the service so the batch reports the aggregated message.
type CreateAccountRequest struct {
	Name         string                  `json:"name"`
	Code         string                  `json:"code" binding:"omitempty,accountcode"`
	Prefix       *string                 `json:"prefix" binding:"omitempty,accountcode"`
	Digits       int                     `json:"digits" binding:"omitempty,min=1,max=64"`
	CompanyIDs   []string                `json:"companyIDs"` // Optional, defaults to the active company
	Reconcile    bool                    `json:"reconcile"`
	CurrencyID   *string                 `json:"currencyID"`
	CodeMappings []MappingCommandRequest `json:"codeMappings" binding:"omitempty,dive"`
}

// CreateAccountsRequest wraps a batch of account creations.
type CreateAccountsRequest struct {
	Accounts []CreateAccountRequest `json:"accounts" binding:"required,min=1,dive"`
}

// UpdateAccountRequest defines the fields a write may change.
// Use pointers to distinguish between zero-value updates and fields not provided.
type UpdateAccountRequest struct {
	Name         *string                 `json:"name"`
	Code         *string                 `json:"code" binding:"omitempty,accountcode"`
	CompanyIDs   []string                `json:"companyIDs"`
	Reconcile    *bool                   `json:"reconcile"`
	CurrencyID   *string                 `json:"currencyID"` // "" clears the currency
	CodeMappings []MappingCommandRequest `json:"codeMappings" binding:"omitempty,dive"`
	DeferChecks  bool                    `json:"deferChecks"`
}

// WriteAccountsRequest applies the same update to several accounts.
type WriteAccountsRequest struct {
	AccountIDs []string `json:"accountIDs" binding:"required,min=1,dive,required"`
	UpdateAccountRequest
}

// AccountIDsRequest names a set of accounts, used by copy and the checks.
type AccountIDsRequest struct {
	AccountIDs []string `json:"accountIDs" binding:"required,min=1,dive,required"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID     string            `json:"accountID"`
	Name          string            `json:"name"`
	Code          string            `json:"code"`
	CompanyIDs    []string          `json:"companyIDs"`
	Reconcile     bool              `json:"reconcile"`
	CurrencyID    *string           `json:"currencyID,omitempty"`
	CodeMappings  map[string]string `json:"codeMappings"`
	CreatedAt     time.Time         `json:"createdAt"`
	CreatedBy     string            `json:"createdBy"`
	LastUpdatedAt time.Time         `json:"lastUpdatedAt"`
	LastUpdatedBy string            `json:"lastUpdatedBy"`
}

// ListAccountsParams defines query parameters for listing accounts.
type ListAccountsParams struct {
	Limit     int    `form:"limit,default=20" binding:"min=1,max=200"`
	NextToken string `form:"nextToken"`
}

// ListAccountsResponse wraps a page of accounts.
type ListAccountsResponse struct {
	Accounts  []AccountResponse `json:"accounts"`
	NextToken *string           `json:"nextToken,omitempty"`
}

// NewNameRequest asks for an unused account name or code derived from Start.
// Without Claimed, Start itself counts as claimed.
type NewNameRequest struct {
	Start   string   `json:"start" binding:"required"`
	Claimed []string `json:"claimed"`
}

// NewNameResponse carries the allocated value.
type NewNameResponse struct {
	Value string `json:"value"`
}

func toMappingCommands(reqs []MappingCommandRequest) []domain.MappingCommand {
	if len(reqs) == 0 {
		return nil
	}
	cmds := make([]domain.MappingCommand, len(reqs))
	for i, r := range reqs {
		cmds[i] = domain.MappingCommand{Op: domain.CommandOp(r.Op), CompanyID: r.CompanyID, Code: r.Code}
	}
	return cmds
}

// ToAccountValues converts a creation batch into service input.
func (r CreateAccountsRequest) ToAccountValues() []domain.AccountValues {
	values := make([]domain.AccountValues, len(r.Accounts))
	for i, a := range r.Accounts {
		values[i] = domain.AccountValues{
			Name:         a.Name,
			Code:         a.Code,
			Prefix:       a.Prefix,
			Digits:       a.Digits,
			CompanyIDs:   a.CompanyIDs,
			Reconcile:    a.Reconcile,
			CurrencyID:   a.CurrencyID,
			CodeMappings: toMappingCommands(a.CodeMappings),
		}
	}
	return values
}

// ToAccountUpdate converts the request into a domain update.
func (r UpdateAccountRequest) ToAccountUpdate() domain.AccountUpdate {
	return domain.AccountUpdate{
		Name:         r.Name,
		Code:         r.Code,
		CompanyIDs:   r.CompanyIDs,
		Reconcile:    r.Reconcile,
		CurrencyID:   r.CurrencyID,
		CodeMappings: toMappingCommands(r.CodeMappings),
	}
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO
func ToAccountResponse(acc *domain.Account) AccountResponse {
	mappings := acc.CodeMappings
	if mappings == nil {
		mappings = map[string]string{}
	}
	return AccountResponse{
		AccountID:     acc.AccountID,
		Name:          acc.Name,
		Code:          acc.Code,
		CompanyIDs:    acc.CompanyIDs,
		Reconcile:     acc.Reconcile,
		CurrencyID:    acc.CurrencyID,
		CodeMappings:  mappings,
		CreatedAt:     acc.CreatedAt,
		CreatedBy:     acc.CreatedBy,
		LastUpdatedAt: acc.LastUpdatedAt,
		LastUpdatedBy: acc.LastUpdatedBy,
	}
}

// ToListAccountResponse converts a slice of domain.Account to a slice of AccountResponse DTOs
func ToListAccountResponse(accounts []domain.Account) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i := range accounts {
		res[i] = ToAccountResponse(&accounts[i])
	}
	return res
}
