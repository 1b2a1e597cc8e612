package sqlite

import (
	"database/sql"

	portsrepo "github.com/SscSPs/personal_finance_tracker/internal/core/ports/repositories"
)

// NewRepositoryProvider builds the SQLite-backed repositories. The session store is
// supplied by the caller.
func NewRepositoryProvider(db *sql.DB, sessions portsrepo.SessionStore) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		TransactionRepo: newSQLiteTransactionRepository(db),
		UserRepo:        newSQLiteUserRepository(db),
		SessionStore:    sessions,
	}
}
