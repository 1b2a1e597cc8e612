package dto

import (
	"encoding/json"
	"testing"

	"github.com/SscSPs/personal_finance_tracker/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAmountEncodesAsNumberRegardlessOfDecimalSetting(t *testing.T) {
	previous := decimal.MarshalJSONWithoutQuotes
	decimal.MarshalJSONWithoutQuotes = false
	defer func() { decimal.MarshalJSONWithoutQuotes = previous }()

	raw, err := json.Marshal(ToTransactionResponse(&domain.Transaction{
		ID:     1,
		Title:  "Lunch",
		Amount: decimal.RequireFromString("-12.50"),
		Type:   domain.Expense,
		Date:   "2024-01-02",
	}))
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"amount":-12.5`)

	raw, err = json.Marshal(ToSummaryResponse(&domain.Summary{
		TotalIncome:      decimal.NewFromInt(100),
		TotalExpenses:    decimal.RequireFromString("12.5"),
		Balance:          decimal.RequireFromString("87.5"),
		ExpenseBreakdown: []domain.CategoryAmount{{Category: "Food", Amount: decimal.RequireFromString("12.5")}},
	}))
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"total_income": 100,
		"total_expenses": 12.5,
		"balance": 87.5,
		"expense_breakdown": [{"category": "Food", "amount": 12.5}],
		"income_breakdown": []
	}`, string(raw))
}

func TestAmountUnmarshal(t *testing.T) {
	var a Amount
	require.NoError(t, json.Unmarshal([]byte(`"3.25"`), &a))
	assert.True(t, decimal.RequireFromString("3.25").Equal(a.Decimal()))
	require.NoError(t, json.Unmarshal([]byte(`-4`), &a))
	assert.True(t, decimal.NewFromInt(-4).Equal(a.Decimal()))
}
