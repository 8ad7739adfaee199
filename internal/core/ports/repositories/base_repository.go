package repositories

import (
	"context"
)

// TransactionManager runs a unit of work inside one database transaction.
// The transaction travels in the context handed to fn, so every repository
// call made with that context joins it. Nested calls reuse the ambient
// transaction instead of opening a new one.
type TransactionManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}
