package services

import (
	"context"

	"github.com/SscSPs/personal_finance_tracker/internal/core/domain"
	"github.com/SscSPs/personal_finance_tracker/internal/dto"
)

// SummarySvc computes aggregate figures over a user's transactions.
type SummarySvc interface {
	// GetSummary summarizes the caller's transactions within the optional date range.
	GetSummary(ctx context.Context, userID int64, params dto.SummaryParams) (*domain.Summary, error)
}
