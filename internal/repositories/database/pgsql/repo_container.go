package pgsql

import (
	portsrepo "github.com/SscSPs/personal_finance_tracker/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider builds the Postgres-backed repositories. The session store is
// supplied by the caller.
func NewRepositoryProvider(dbPool *pgxpool.Pool, sessions portsrepo.SessionStore) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		TransactionRepo: newPgxTransactionRepository(dbPool),
		UserRepo:        newPgxUserRepository(dbPool),
		SessionStore:    sessions,
	}
}
