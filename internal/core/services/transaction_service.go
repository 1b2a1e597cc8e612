package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/personal_finance_tracker/internal/apperrors"
	"github.com/SscSPs/personal_finance_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/personal_finance_tracker/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/personal_finance_tracker/internal/core/ports/services"
	"github.com/SscSPs/personal_finance_tracker/internal/dto"
)

type transactionService struct {
	BaseService
	transactionRepo portsrepo.TransactionRepositoryFacade
}

// NewTransactionService creates a new transaction service.
func NewTransactionService(transactionRepo portsrepo.TransactionRepositoryFacade) portssvc.TransactionSvcFacade {
	return &transactionService{transactionRepo: transactionRepo}
}

var _ portssvc.TransactionSvcFacade = (*transactionService)(nil)

func (s *transactionService) ListTransactions(ctx context.Context, userID int64, params dto.ListTransactionsParams) ([]domain.Transaction, error) {
	txns, err := s.transactionRepo.FindTransactions(ctx, userID, params.ToFilter())
	if err != nil {
		s.LogError(ctx, err, "Failed to list transactions", slog.Int64("user_id", userID))
		return nil, fmt.Errorf("failed to list transactions in service: %w", err)
	}
	if txns == nil {
		return []domain.Transaction{}, nil
	}
	return txns, nil
}

func (s *transactionService) CreateTransaction(ctx context.Context, userID int64, req dto.CreateTransactionRequest) (*domain.Transaction, error) {
	txn, err := domain.NewTransaction(req.ToParams(userID))
	if err != nil {
		return nil, err
	}

	if err := s.transactionRepo.SaveTransaction(ctx, &txn); err != nil {
		s.LogError(ctx, err, "Failed to save transaction", slog.Int64("user_id", userID))
		return nil, fmt.Errorf("failed to create transaction in service: %w", err)
	}

	s.LogInfo(ctx, "Transaction created", slog.Int64("transaction_id", txn.ID), slog.String("type", string(txn.Type)))
	return &txn, nil
}

func (s *transactionService) UpdateTransaction(ctx context.Context, userID int64, transactionID int64, req dto.UpdateTransactionRequest) (*domain.Transaction, error) {
	patch := req.ToPatch()
	if patch.IsEmpty() {
		return nil, fmt.Errorf("%w: no data provided", apperrors.ErrValidation)
	}

	existing, err := s.transactionRepo.FindTransactionByID(ctx, userID, transactionID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to load transaction for update", slog.Int64("transaction_id", transactionID))
		}
		return nil, fmt.Errorf("failed to find transaction %d: %w", transactionID, err)
	}

	updated, err := existing.ApplyPatch(patch)
	if err != nil {
		return nil, err
	}

	if err := s.transactionRepo.UpdateTransaction(ctx, updated); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to update transaction", slog.Int64("transaction_id", transactionID))
		}
		return nil, fmt.Errorf("failed to update transaction %d: %w", transactionID, err)
	}

	s.LogInfo(ctx, "Transaction updated", slog.Int64("transaction_id", transactionID))
	return &updated, nil
}

func (s *transactionService) DeleteTransaction(ctx context.Context, userID int64, transactionID int64) (*domain.Transaction, error) {
	removed, err := s.transactionRepo.DeleteTransaction(ctx, userID, transactionID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to delete transaction", slog.Int64("transaction_id", transactionID))
		}
		return nil, fmt.Errorf("failed to delete transaction %d: %w", transactionID, err)
	}

	s.LogInfo(ctx, "Transaction deleted", slog.Int64("transaction_id", transactionID))
	return removed, nil
}
