package sqlite

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/SscSPs/personal_finance_tracker/internal/core/domain"
	"github.com/SscSPs/personal_finance_tracker/internal/core/services"
	"github.com/SscSPs/personal_finance_tracker/internal/dto"
	"github.com/SscSPs/personal_finance_tracker/pkg/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLegacyImportAgainstSQLite(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	db, err := database.NewSQLiteDB(ctx, filepath.Join(dir, "pft.db"))
	require.NoError(t, err)
	defer db.Close()
	_, err = database.RunSQLiteMigrations(db)
	require.NoError(t, err)

	legacy := filepath.Join(dir, "transactions.json")
	require.NoError(t, os.WriteFile(legacy, []byte(`[
		{"id": 1700000000.5, "title": "Salary", "amount": 2500, "type": "income", "category": "Work", "date": "2024-01-31"},
		{"id": 1700000001.5, "title": "Groceries", "amount": -80.4, "type": "expense", "category": "Food", "date": "2024-02-01"},
		{"id": 1700000002.5, "title": "Bad", "amount": "n/a", "type": "expense", "category": "Food", "date": "2024-02-02"}
	]`), 0o644))

	repos := NewRepositoryProvider(db, nil)
	users := services.NewUserService(repos.UserRepo)
	importer := services.NewLegacyImportService(users, repos.TransactionRepo)

	first, err := importer.ImportFile(ctx, legacy, dto.LegacyImportOptions{})
	require.NoError(t, err)
	assert.True(t, first.UserCreated)
	assert.Equal(t, 3, first.Found)
	assert.Equal(t, 2, first.Imported)
	assert.Equal(t, 1, first.Skipped)
	assert.Equal(t, 2, first.TotalOwned)

	// The default account can log in with the placeholder password.
	owner, err := users.AuthenticateUser(ctx, services.DefaultImportUsername, services.DefaultImportPassword)
	require.NoError(t, err)

	// Not idempotent: a second run appends the same records again.
	second, err := importer.ImportFile(ctx, legacy, dto.LegacyImportOptions{})
	require.NoError(t, err)
	assert.False(t, second.UserCreated)
	assert.Equal(t, 4, second.TotalOwned)

	txns, err := repos.TransactionRepo.FindTransactions(ctx, owner.UserID, domain.TransactionFilter{Category: "Food"})
	require.NoError(t, err)
	require.Len(t, txns, 2)
	assert.Equal(t, domain.Expense, txns[0].Type)
	assert.Equal(t, "-80.4", txns[0].Amount.String())
}

func TestLegacyImportMissingFileLeavesDatabaseUntouched(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	db, err := database.NewSQLiteDB(ctx, filepath.Join(dir, "pft.db"))
	require.NoError(t, err)
	defer db.Close()
	_, err = database.RunSQLiteMigrations(db)
	require.NoError(t, err)

	repos := NewRepositoryProvider(db, nil)
	importer := services.NewLegacyImportService(services.NewUserService(repos.UserRepo), repos.TransactionRepo)

	_, err = importer.ImportFile(ctx, filepath.Join(dir, "missing.json"), dto.LegacyImportOptions{})
	require.Error(t, err)

	var users int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM users;`).Scan(&users))
	assert.Zero(t, users)
}
