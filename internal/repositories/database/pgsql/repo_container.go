package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/SscSPs/mma_accounts/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		AccountRepo: newPgxAccountRepository(dbPool),
		CompanyRepo: newPgxCompanyRepository(dbPool),
		JournalRepo: newPgxJournalRepository(dbPool),
		MoveRepo:    newPgxMoveRepository(dbPool),
		TxManager:   newPgxTxManager(dbPool),
	}
}
