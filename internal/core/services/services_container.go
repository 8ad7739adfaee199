package services

import (
	portsrepo "github.com/SscSPs/mma_accounts/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/mma_accounts/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		Account: NewAccountService(repos.AccountRepo, repos.CompanyRepo, repos.TxManager),
		Company: NewCompanyService(repos.CompanyRepo),
		Journal: NewJournalService(repos.JournalRepo, repos.TxManager),
		Move:    NewMoveService(repos.MoveRepo, repos.JournalRepo, repos.AccountRepo, repos.TxManager),
	}
}
