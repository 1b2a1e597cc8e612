package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/SscSPs/personal_finance_tracker/internal/apperrors"
	"github.com/SscSPs/personal_finance_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/personal_finance_tracker/internal/core/ports/repositories"
	"github.com/SscSPs/personal_finance_tracker/internal/models"
	"github.com/SscSPs/personal_finance_tracker/internal/utils/mapping"
)

const transactionColumns = "id, user_id, title, amount, type, category, date, created_at"

const insertTransactionQuery = `
	INSERT INTO transactions (user_id, title, amount, type, category, date, created_at)
	VALUES (?, ?, ?, ?, ?, ?, ?)
	RETURNING id;
`

// SQLiteTransactionRepository implements portsrepo.TransactionRepositoryFacade on SQLite.
type SQLiteTransactionRepository struct {
	BaseRepository
}

func newSQLiteTransactionRepository(db *sql.DB) *SQLiteTransactionRepository {
	return &SQLiteTransactionRepository{BaseRepository: BaseRepository{DB: db}}
}

var _ portsrepo.TransactionRepositoryFacade = (*SQLiteTransactionRepository)(nil)

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row rowScanner) (models.Transaction, error) {
	var (
		m         models.Transaction
		createdAt string
	)
	if err := row.Scan(&m.ID, &m.UserID, &m.Title, &m.Amount, &m.Type, &m.Category, &m.Date, &createdAt); err != nil {
		return m, err
	}
	t, err := parseTimestamp(createdAt)
	if err != nil {
		return m, err
	}
	m.CreatedAt = t
	return m, nil
}

// execer is satisfied by both *sql.DB and *sql.Tx.
type execer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (r *SQLiteTransactionRepository) insert(ctx context.Context, q execer, txn *domain.Transaction) error {
	m := mapping.ToModelTransaction(*txn)
	createdAt := r.timestamp()
	err := q.QueryRowContext(ctx, insertTransactionQuery,
		m.UserID, m.Title, m.Amount.String(), m.Type, m.Category, m.Date, createdAt,
	).Scan(&txn.ID)
	if err != nil {
		return mapSQLiteError(err)
	}
	t, err := parseTimestamp(createdAt)
	if err != nil {
		return err
	}
	txn.CreatedAt = t
	return nil
}

// SaveTransaction inserts a new transaction and fills in its ID and CreatedAt.
func (r *SQLiteTransactionRepository) SaveTransaction(ctx context.Context, txn *domain.Transaction) error {
	if err := r.insert(ctx, r.DB, txn); err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}
	return nil
}

// SaveTransactions inserts a batch inside one database transaction.
func (r *SQLiteTransactionRepository) SaveTransactions(ctx context.Context, txns []domain.Transaction) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(tx)

	for i := range txns {
		if err := r.insert(ctx, tx, &txns[i]); err != nil {
			return fmt.Errorf("failed to insert transaction %d of batch: %w", i, err)
		}
	}

	return r.Commit(tx)
}

// FindTransactionByID retrieves a transaction owned by userID.
func (r *SQLiteTransactionRepository) FindTransactionByID(ctx context.Context, userID int64, transactionID int64) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE id = ? AND user_id = ?;`
	m, err := scanTransaction(r.DB.QueryRowContext(ctx, query, transactionID, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find transaction %d: %w", transactionID, err)
	}
	txn := mapping.ToDomainTransaction(m)
	return &txn, nil
}

// FindTransactions retrieves every transaction owned by userID that matches the filter,
// in primary key order.
func (r *SQLiteTransactionRepository) FindTransactions(ctx context.Context, userID int64, filter domain.TransactionFilter) ([]domain.Transaction, error) {
	conditions := []string{"user_id = ?"}
	args := []any{userID}
	if filter.StartDate != "" {
		conditions = append(conditions, "date >= ?")
		args = append(args, filter.StartDate)
	}
	if filter.EndDate != "" {
		conditions = append(conditions, "date <= ?")
		args = append(args, filter.EndDate)
	}
	if filter.CategorySelected() {
		conditions = append(conditions, "category = ?")
		args = append(args, filter.Category)
	}
	if filter.TypeSelected() {
		conditions = append(conditions, "type = ?")
		args = append(args, filter.Type)
	}

	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE ` + strings.Join(conditions, " AND ") + ` ORDER BY id;`
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	txns := []domain.Transaction{}
	for rows.Next() {
		m, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		txns = append(txns, mapping.ToDomainTransaction(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate transactions: %w", err)
	}
	return txns, nil
}

// CountTransactions returns the number of transactions owned by userID.
func (r *SQLiteTransactionRepository) CountTransactions(ctx context.Context, userID int64) (int, error) {
	var count int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM transactions WHERE user_id = ?;`, userID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count transactions: %w", err)
	}
	return count, nil
}

// UpdateTransaction overwrites the editable fields of an existing transaction.
func (r *SQLiteTransactionRepository) UpdateTransaction(ctx context.Context, txn domain.Transaction) error {
	m := mapping.ToModelTransaction(txn)
	query := `
		UPDATE transactions
		SET title = ?, amount = ?, type = ?, category = ?, date = ?
		WHERE id = ? AND user_id = ?;
	`
	res, err := r.DB.ExecContext(ctx, query, m.Title, m.Amount.String(), m.Type, m.Category, m.Date, m.ID, m.UserID)
	if err != nil {
		return fmt.Errorf("failed to update transaction %d: %w", m.ID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update transaction %d: %w", m.ID, err)
	}
	if affected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteTransaction removes a transaction owned by userID and returns its last state.
func (r *SQLiteTransactionRepository) DeleteTransaction(ctx context.Context, userID int64, transactionID int64) (*domain.Transaction, error) {
	query := `DELETE FROM transactions WHERE id = ? AND user_id = ? RETURNING ` + transactionColumns + `;`
	m, err := scanTransaction(r.DB.QueryRowContext(ctx, query, transactionID, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to delete transaction %d: %w", transactionID, err)
	}
	txn := mapping.ToDomainTransaction(m)
	return &txn, nil
}
