package services

import (
	"context"

	"github.com/SscSPs/personal_finance_tracker/internal/core/domain"
	"github.com/SscSPs/personal_finance_tracker/internal/dto"
)

// TransactionReaderSvc defines read operations for transactions
type TransactionReaderSvc interface {
	// ListTransactions returns the caller's transactions matching the filter parameters.
	ListTransactions(ctx context.Context, userID int64, params dto.ListTransactionsParams) ([]domain.Transaction, error)
}

// TransactionWriterSvc defines write operations for transactions
type TransactionWriterSvc interface {
	// CreateTransaction validates and stores a new transaction for the caller.
	CreateTransaction(ctx context.Context, userID int64, req dto.CreateTransactionRequest) (*domain.Transaction, error)

	// UpdateTransaction applies a partial update to one of the caller's transactions.
	UpdateTransaction(ctx context.Context, userID int64, transactionID int64, req dto.UpdateTransactionRequest) (*domain.Transaction, error)

	// DeleteTransaction removes one of the caller's transactions and returns its snapshot.
	DeleteTransaction(ctx context.Context, userID int64, transactionID int64) (*domain.Transaction, error)
}

// TransactionSvcFacade combines all transaction-related service interfaces
type TransactionSvcFacade interface {
	TransactionReaderSvc
	TransactionWriterSvc
}
