package domain

// Company is a node of the company hierarchy. Accounts are unique within the
// set of companies reachable from their own through parent/child links.
type Company struct {
	CompanyID string  `json:"companyID"`
	Name      string  `json:"name"`
	ParentID  *string `json:"parentID"` // Nullable, nil for root companies
	AuditFields
}
