package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/SscSPs/personal_finance_tracker/internal/apperrors"
	"github.com/SscSPs/personal_finance_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/personal_finance_tracker/internal/core/ports/repositories"
	"github.com/SscSPs/personal_finance_tracker/internal/models"
	"github.com/SscSPs/personal_finance_tracker/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const transactionColumns = "id, user_id, title, amount, type, category, date, created_at"

// PgxTransactionRepository implements portsrepo.TransactionRepositoryFacade using pgx.
type PgxTransactionRepository struct {
	BaseRepository
}

func newPgxTransactionRepository(pool *pgxpool.Pool) portsrepo.TransactionRepositoryFacade {
	return &PgxTransactionRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

func scanTransaction(row pgx.Row) (models.Transaction, error) {
	var m models.Transaction
	err := row.Scan(
		&m.ID,
		&m.UserID,
		&m.Title,
		&m.Amount,
		&m.Type,
		&m.Category,
		&m.Date,
		&m.CreatedAt,
	)
	return m, err
}

// SaveTransaction inserts a new transaction and fills in its ID and CreatedAt.
func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, txn *domain.Transaction) error {
	m := mapping.ToModelTransaction(*txn)
	query := `
		INSERT INTO transactions (user_id, title, amount, type, category, date)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at;
	`
	err := r.Pool.QueryRow(ctx, query, m.UserID, m.Title, m.Amount, m.Type, m.Category, m.Date).
		Scan(&txn.ID, &txn.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert transaction: %w", mapPgError(err))
	}
	return nil
}

// SaveTransactions inserts a batch inside one database transaction.
func (r *PgxTransactionRepository) SaveTransactions(ctx context.Context, txns []domain.Transaction) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	query := `
		INSERT INTO transactions (user_id, title, amount, type, category, date)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	batch := &pgx.Batch{}
	for _, txn := range txns {
		m := mapping.ToModelTransaction(txn)
		batch.Queue(query, m.UserID, m.Title, m.Amount, m.Type, m.Category, m.Date)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("failed to insert transaction batch: %w", mapPgError(err))
	}

	return r.Commit(ctx, tx)
}

// FindTransactionByID retrieves a transaction owned by userID.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, userID int64, transactionID int64) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE id = $1 AND user_id = $2;`
	m, err := scanTransaction(r.Pool.QueryRow(ctx, query, transactionID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find transaction %d: %w", transactionID, err)
	}
	txn := mapping.ToDomainTransaction(m)
	return &txn, nil
}

// FindTransactions retrieves every transaction owned by userID that matches the filter,
// in primary key order.
func (r *PgxTransactionRepository) FindTransactions(ctx context.Context, userID int64, filter domain.TransactionFilter) ([]domain.Transaction, error) {
	conditions := []string{"user_id = $1"}
	args := []any{userID}
	add := func(clause string, value any) {
		args = append(args, value)
		conditions = append(conditions, fmt.Sprintf(clause, len(args)))
	}
	if filter.StartDate != "" {
		add("date >= $%d", filter.StartDate)
	}
	if filter.EndDate != "" {
		add("date <= $%d", filter.EndDate)
	}
	if filter.CategorySelected() {
		add("category = $%d", filter.Category)
	}
	if filter.TypeSelected() {
		add("type = $%d", filter.Type)
	}

	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE ` + strings.Join(conditions, " AND ") + ` ORDER BY id;`
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	modelTxns, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Transaction, error) {
		return scanTransaction(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan transactions: %w", err)
	}

	return mapping.ToDomainTransactionSlice(modelTxns), nil
}

// CountTransactions returns the number of transactions owned by userID.
func (r *PgxTransactionRepository) CountTransactions(ctx context.Context, userID int64) (int, error) {
	var count int
	if err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM transactions WHERE user_id = $1;`, userID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count transactions: %w", err)
	}
	return count, nil
}

// UpdateTransaction overwrites the editable fields of an existing transaction.
func (r *PgxTransactionRepository) UpdateTransaction(ctx context.Context, txn domain.Transaction) error {
	m := mapping.ToModelTransaction(txn)
	query := `
		UPDATE transactions
		SET title = $1, amount = $2, type = $3, category = $4, date = $5
		WHERE id = $6 AND user_id = $7;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, m.Title, m.Amount, m.Type, m.Category, m.Date, m.ID, m.UserID)
	if err != nil {
		return fmt.Errorf("failed to update transaction %d: %w", m.ID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteTransaction removes a transaction owned by userID and returns its last state.
func (r *PgxTransactionRepository) DeleteTransaction(ctx context.Context, userID int64, transactionID int64) (*domain.Transaction, error) {
	query := `DELETE FROM transactions WHERE id = $1 AND user_id = $2 RETURNING ` + transactionColumns + `;`
	m, err := scanTransaction(r.Pool.QueryRow(ctx, query, transactionID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to delete transaction %d: %w", transactionID, err)
	}
	txn := mapping.ToDomainTransaction(m)
	return &txn, nil
}
