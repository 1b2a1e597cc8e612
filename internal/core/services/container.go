package services

import (
	portsrepo "github.com/SscSPs/personal_finance_tracker/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/personal_finance_tracker/internal/core/ports/services"
	"github.com/SscSPs/personal_finance_tracker/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies.
// Account services are only built when the repositories provide users and sessions.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{
		Transaction: NewTransactionService(repos.TransactionRepo),
		Summary:     NewSummaryService(repos.TransactionRepo),
	}

	if repos.UserRepo != nil {
		container.User = NewUserService(repos.UserRepo)
		container.LegacyImport = NewLegacyImportService(container.User, repos.TransactionRepo)
	}

	if repos.UserRepo != nil && repos.SessionStore != nil {
		container.Session = NewSessionService(
			repos.SessionStore,
			cfg.SessionSecret,
			WithSessionTTL(cfg.SessionExpiryDuration),
			WithSessionIssuer(cfg.SessionIssuer),
		)
	}

	return container
}
