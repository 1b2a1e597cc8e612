package services

import (
	"context"
	"fmt"

	"github.com/SscSPs/personal_finance_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/personal_finance_tracker/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/personal_finance_tracker/internal/core/ports/services"
	"github.com/SscSPs/personal_finance_tracker/internal/dto"
)

type summaryService struct {
	BaseService
	transactionRepo portsrepo.TransactionReader
}

// NewSummaryService creates a summary service reading from transactionRepo.
func NewSummaryService(transactionRepo portsrepo.TransactionReader) portssvc.SummarySvc {
	return &summaryService{transactionRepo: transactionRepo}
}

var _ portssvc.SummarySvc = (*summaryService)(nil)

// GetSummary aggregates the caller's transactions. Only the date range narrows the input.
func (s *summaryService) GetSummary(ctx context.Context, userID int64, params dto.SummaryParams) (*domain.Summary, error) {
	txns, err := s.transactionRepo.FindTransactions(ctx, userID, params.ToFilter())
	if err != nil {
		s.LogError(ctx, err, "Failed to load transactions for summary")
		return nil, fmt.Errorf("failed to compute summary in service: %w", err)
	}
	summary := domain.Summarize(txns)
	return &summary, nil
}
