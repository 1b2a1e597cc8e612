package repositories

import (
	"context"

	"github.com/SscSPs/personal_finance_tracker/internal/core/domain"
)

// TransactionReader defines read operations for transaction data.
// Every method is scoped to the owning user.
type TransactionReader interface {
	// FindTransactionByID retrieves a transaction owned by userID.
	// Returns apperrors.ErrNotFound if it does not exist or belongs to someone else.
	FindTransactionByID(ctx context.Context, userID int64, transactionID int64) (*domain.Transaction, error)

	// FindTransactions retrieves every transaction owned by userID that matches the filter,
	// in the store's natural order.
	FindTransactions(ctx context.Context, userID int64, filter domain.TransactionFilter) ([]domain.Transaction, error)

	// CountTransactions returns the number of transactions owned by userID.
	CountTransactions(ctx context.Context, userID int64) (int, error)
}

// TransactionWriter defines write operations for transaction data.
type TransactionWriter interface {
	// SaveTransaction persists a new transaction and fills in its ID and CreatedAt.
	SaveTransaction(ctx context.Context, txn *domain.Transaction) error

	// SaveTransactions persists a batch of new transactions. Either all are stored or none.
	SaveTransactions(ctx context.Context, txns []domain.Transaction) error

	// UpdateTransaction overwrites the editable fields of an existing transaction.
	UpdateTransaction(ctx context.Context, txn domain.Transaction) error

	// DeleteTransaction removes a transaction owned by userID and returns its last state.
	DeleteTransaction(ctx context.Context, userID int64, transactionID int64) (*domain.Transaction, error)
}

// TransactionRepositoryFacade combines all transaction-related repository interfaces.
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}
