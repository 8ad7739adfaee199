package models

// Company is a row of the companies table.
type Company struct {
	CompanyID string  `db:"company_id"`
	Name      string  `db:"name"`
	ParentID  *string `db:"parent_id"` // Nullable
	AuditFields
}
