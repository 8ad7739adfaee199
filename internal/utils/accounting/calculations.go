package accounting

import (
	"github.com/shopspring/decimal"

	"github.com/SscSPs/mma_accounts/internal/core/domain"
)

// Imbalance returns the sum of the line balances; a balanced move sums to zero.
func Imbalance(lines []domain.MoveLine) decimal.Decimal {
	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.Balance)
	}
	return total
}

// InitialResidual is the open amount of a new line: its balance on a
// reconcilable account, zero otherwise.
func InitialResidual(balance decimal.Decimal, reconcilable bool) decimal.Decimal {
	if reconcilable {
		return balance
	}
	return decimal.Zero
}
