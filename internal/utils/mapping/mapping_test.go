package mapping

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/SscSPs/mma_accounts/internal/core/domain"
)

func TestAccountRowsKeepCompanyOrderAndCodes(t *testing.T) {
	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	acc := domain.Account{
		AccountID:    "a1",
		Name:         "Cash",
		Code:         "570",
		CompanyIDs:   []string{"c2", "c1"},
		CodeMappings: map[string]string{"r2": "570", "r1": "571"},
		AuditFields:  domain.NewAuditFields("u1", now),
	}

	row, companies, mappings := ToModelAccount(acc)

	assert.Equal(t, "570", row.Code)
	assert.Equal(t, 0, companies[0].Position)
	assert.Equal(t, "c2", companies[0].CompanyID)
	assert.Equal(t, "r1", mappings[0].RootCompanyID, "mappings are sorted by root")

	back := ToDomainAccount(row, companies, mappings)
	assert.Equal(t, acc, back)
}
