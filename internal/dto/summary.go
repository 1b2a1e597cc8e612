package dto

import (
	"github.com/SscSPs/personal_finance_tracker/internal/core/domain"
)

// SummaryParams defines the optional date range of a summary.
type SummaryParams struct {
	StartDate string `form:"start_date" binding:"omitempty,datetime=2006-01-02"`
	EndDate   string `form:"end_date" binding:"omitempty,datetime=2006-01-02"`
}

// ToFilter converts the date range into a domain filter.
func (p SummaryParams) ToFilter() domain.TransactionFilter {
	return domain.TransactionFilter{StartDate: p.StartDate, EndDate: p.EndDate}
}

// CategoryAmountResponse is one row of a category breakdown.
type CategoryAmountResponse struct {
	Category string          `json:"category"`
	Amount   Amount `json:"amount" swaggertype:"number"`
}

// SummaryResponse represents the totals and breakdowns over a set of transactions.
type SummaryResponse struct {
	TotalIncome      Amount                   `json:"total_income" swaggertype:"number"`
	TotalExpenses    Amount                   `json:"total_expenses" swaggertype:"number"`
	Balance          Amount                   `json:"balance" swaggertype:"number"`
	ExpenseBreakdown []CategoryAmountResponse `json:"expense_breakdown"`
	IncomeBreakdown  []CategoryAmountResponse `json:"income_breakdown"`
}

// ToSummaryResponse converts a domain summary to its DTO.
func ToSummaryResponse(s *domain.Summary) SummaryResponse {
	return SummaryResponse{
		TotalIncome:      NewAmount(s.TotalIncome),
		TotalExpenses:    NewAmount(s.TotalExpenses),
		Balance:          NewAmount(s.Balance),
		ExpenseBreakdown: toCategoryAmountResponses(s.ExpenseBreakdown),
		IncomeBreakdown:  toCategoryAmountResponses(s.IncomeBreakdown),
	}
}

func toCategoryAmountResponses(rows []domain.CategoryAmount) []CategoryAmountResponse {
	out := make([]CategoryAmountResponse, len(rows))
	for i, row := range rows {
		out[i] = CategoryAmountResponse{Category: row.Category, Amount: NewAmount(row.Amount)}
	}
	return out
}
