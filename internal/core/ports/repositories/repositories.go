package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
// UserRepo is nil when the application runs without accounts.
type RepositoryProvider struct {
	TransactionRepo TransactionRepositoryFacade
	UserRepo        UserRepositoryFacade
	SessionStore    SessionStore
}
