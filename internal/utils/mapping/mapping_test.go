package mapping

import (
	"encoding/json"
	"testing"

	"github.com/SscSPs/personal_finance_tracker/internal/apperrors"
	"github.com/SscSPs/personal_finance_tracker/internal/core/domain"
	"github.com/SscSPs/personal_finance_tracker/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeFileID(t *testing.T) {
	tests := []struct {
		raw  string
		want int64
	}{
		{"1712345678901234", 1712345678901234},
		{"1712345678.901234", 1712345678901234},
		{"1712345678.5", 1712345678500000},
		{"42", 42},
	}
	for _, tt := range tests {
		got, err := NormalizeFileID(json.Number(tt.raw))
		require.NoError(t, err, tt.raw)
		assert.Equal(t, tt.want, got, tt.raw)
	}

	_, err := NormalizeFileID(json.Number("abc"))
	assert.Error(t, err)
}

func TestFileTransactionRoundTrip(t *testing.T) {
	txn := domain.Transaction{
		ID:       1712345678901234,
		UserID:   domain.LegacyOwnerID,
		Title:    "Coffee",
		Amount:   decimal.RequireFromString("-3.20"),
		Type:     domain.Expense,
		Category: "Food",
		Date:     "2024-04-05",
	}

	back, err := FromFileTransaction(ToFileTransaction(txn))
	require.NoError(t, err)
	assert.Equal(t, txn.ID, back.ID)
	assert.True(t, txn.Amount.Equal(back.Amount))
	assert.Equal(t, txn.Title, back.Title)
	assert.Equal(t, txn.Type, back.Type)
}

func TestFromFileTransaction_StringAmount(t *testing.T) {
	got, err := FromFileTransaction(models.FileTransaction{ID: "1", Title: "x", Amount: "12.5", Type: "income", Date: "2024-01-01"})
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("12.5").Equal(got.Amount))

	_, err = FromFileTransaction(models.FileTransaction{ID: "1", Amount: "many"})
	assert.ErrorIs(t, err, apperrors.ErrConversion)
}
