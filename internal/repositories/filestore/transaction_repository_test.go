package filestore

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/SscSPs/personal_finance_tracker/internal/apperrors"
	"github.com/SscSPs/personal_finance_tracker/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepo(t *testing.T) (*FileTransactionRepository, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "transactions.json")
	repo, err := NewFileTransactionRepository(path)
	require.NoError(t, err)
	return repo, path
}

func sample(title, amount string, typ domain.TransactionType, category, date string) domain.Transaction {
	return domain.Transaction{
		Title:    title,
		Amount:   decimal.RequireFromString(amount),
		Type:     typ,
		Category: category,
		Date:     date,
	}
}

func TestNewFileTransactionRepository_InitializesMissingFile(t *testing.T) {
	_, path := newRepo(t)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(raw))
}

func TestSaveAndList_PreservesInsertionOrder(t *testing.T) {
	repo, _ := newRepo(t)
	ctx := context.Background()

	for _, txn := range []domain.Transaction{
		sample("Salary", "100", domain.Income, "Salary", "2024-01-05"),
		sample("Food", "-40", domain.Expense, "Food", "2024-01-01"),
		sample("Bus", "-2.5", domain.Expense, "Transport", "2024-02-01"),
	} {
		txn := txn
		require.NoError(t, repo.SaveTransaction(ctx, &txn))
		assert.NotZero(t, txn.ID)
	}

	all, err := repo.FindTransactions(ctx, domain.LegacyOwnerID, domain.TransactionFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Salary", all[0].Title)
	assert.Equal(t, "Bus", all[2].Title)
	assert.Less(t, all[0].ID, all[1].ID)
	assert.Less(t, all[1].ID, all[2].ID)

	january, err := repo.FindTransactions(ctx, domain.LegacyOwnerID, domain.TransactionFilter{EndDate: "2024-01-31", Type: "expense"})
	require.NoError(t, err)
	require.Len(t, january, 1)
	assert.Equal(t, "Food", january[0].Title)

	others, err := repo.FindTransactions(ctx, 99, domain.TransactionFilter{})
	require.NoError(t, err)
	assert.Empty(t, others)
}

func TestUpdateAndDelete(t *testing.T) {
	repo, _ := newRepo(t)
	ctx := context.Background()

	txn := sample("Gift", "50", domain.Income, "Gifts", "2024-03-03")
	require.NoError(t, repo.SaveTransaction(ctx, &txn))

	txn.Amount = decimal.NewFromInt(-50)
	txn.Type = domain.Expense
	require.NoError(t, repo.UpdateTransaction(ctx, txn))

	got, err := repo.FindTransactionByID(ctx, domain.LegacyOwnerID, txn.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.Expense, got.Type)
	assert.True(t, decimal.NewFromInt(-50).Equal(got.Amount))

	missing := txn
	missing.ID++
	assert.ErrorIs(t, repo.UpdateTransaction(ctx, missing), apperrors.ErrNotFound)

	_, err = repo.DeleteTransaction(ctx, domain.LegacyOwnerID, txn.ID+1)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	count, err := repo.CountTransactions(ctx, domain.LegacyOwnerID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	removed, err := repo.DeleteTransaction(ctx, domain.LegacyOwnerID, txn.ID)
	require.NoError(t, err)
	assert.Equal(t, "Gift", removed.Title)

	count, err = repo.CountTransactions(ctx, domain.LegacyOwnerID)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestInvalidDocumentReadsAsEmpty(t *testing.T) {
	repo, path := newRepo(t)
	ctx := context.Background()
	require.NoError(t, os.WriteFile(path, []byte("{definitely not json"), 0o644))

	all, err := repo.FindTransactions(ctx, domain.LegacyOwnerID, domain.TransactionFilter{})
	require.NoError(t, err)
	assert.Empty(t, all)

	txn := sample("Fresh", "1", domain.Income, "Misc", "2024-01-01")
	require.NoError(t, repo.SaveTransaction(ctx, &txn))
	all, err = repo.FindTransactions(ctx, domain.LegacyOwnerID, domain.TransactionFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestLegacyDocument(t *testing.T) {
	repo, path := newRepo(t)
	ctx := context.Background()
	require.NoError(t, os.WriteFile(path, []byte(`[
		{"id": 1712345678.901234, "title": "Old", "amount": 12.5, "type": "income", "category": "Misc", "date": "2024-04-05"},
		{"id": 1712345679.5, "title": "Quoted", "amount": "-3", "type": "expense", "category": "Food", "date": "2024-04-06"},
		{"id": "x", "title": "Broken", "amount": 1, "type": "income", "category": "Misc", "date": "2024-04-07"}
	]`), 0o644))

	all, err := repo.FindTransactions(ctx, domain.LegacyOwnerID, domain.TransactionFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, int64(1712345678901234), all[0].ID)
	assert.True(t, decimal.RequireFromString("-3").Equal(all[1].Amount))

	got, err := repo.FindTransactionByID(ctx, domain.LegacyOwnerID, 1712345679500000)
	require.NoError(t, err)
	assert.Equal(t, "Quoted", got.Title)
}

func TestIDsStayUniqueWithinTheSameInstant(t *testing.T) {
	repo, _ := newRepo(t)
	frozen := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return frozen }
	ctx := context.Background()

	batch := []domain.Transaction{
		sample("a", "1", domain.Income, "x", "2024-01-01"),
		sample("b", "1", domain.Income, "x", "2024-01-01"),
	}
	require.NoError(t, repo.SaveTransactions(ctx, batch))
	assert.Equal(t, frozen.UnixMicro(), batch[0].ID)
	assert.Equal(t, frozen.UnixMicro()+1, batch[1].ID)
}

func TestConcurrentWritersInProcess(t *testing.T) {
	repo, _ := newRepo(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			txn := sample("t", "1", domain.Income, "x", "2024-01-01")
			assert.NoError(t, repo.SaveTransaction(ctx, &txn))
		}()
	}
	wg.Wait()

	count, err := repo.CountTransactions(ctx, domain.LegacyOwnerID)
	require.NoError(t, err)
	assert.Equal(t, 20, count)
}

func TestUndecodableRecordsSurviveRewrite(t *testing.T) {
	repo, path := newRepo(t)
	ctx := context.Background()
	require.NoError(t, os.WriteFile(path, []byte(`[
		{"id": 1, "title": "Salary", "amount": 100, "type": "income", "category": "Salary", "date": "2024-01-01"},
		{"id": 2, "title": 42, "amount": 5, "type": "income", "category": "Misc", "date": "2024-01-02"},
		{"title": "No id", "amount": -7, "type": "expense", "category": "Food", "date": "2024-01-03"}
	]`), 0o644))

	all, err := repo.FindTransactions(ctx, domain.LegacyOwnerID, domain.TransactionFilter{})
	require.NoError(t, err)
	require.Len(t, all, 1)

	txn := sample("New", "3", domain.Income, "Misc", "2024-01-04")
	require.NoError(t, repo.SaveTransaction(ctx, &txn))
	_, err = repo.DeleteTransaction(ctx, domain.LegacyOwnerID, 1)
	require.NoError(t, err)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	var elements []map[string]any
	require.NoError(t, json.Unmarshal(raw, &elements))
	require.Len(t, elements, 3)
	assert.Equal(t, float64(42), elements[0]["title"])
	assert.Equal(t, "No id", elements[1]["title"])
	assert.NotContains(t, elements[1], "id")
	assert.Equal(t, "New", elements[2]["title"])
}

func TestUnreadableFileIsNotOverwritten(t *testing.T) {
	repo, path := newRepo(t)
	ctx := context.Background()
	require.NoError(t, os.Remove(path))
	require.NoError(t, os.Mkdir(path, 0o755))

	_, err := repo.FindTransactions(ctx, domain.LegacyOwnerID, domain.TransactionFilter{})
	assert.Error(t, err)

	txn := sample("New", "3", domain.Income, "Misc", "2024-01-04")
	assert.Error(t, repo.SaveTransaction(ctx, &txn))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
