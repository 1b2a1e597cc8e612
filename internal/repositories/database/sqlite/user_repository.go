package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/SscSPs/personal_finance_tracker/internal/apperrors"
	"github.com/SscSPs/personal_finance_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/personal_finance_tracker/internal/core/ports/repositories"
	"github.com/SscSPs/personal_finance_tracker/internal/models"
	"github.com/SscSPs/personal_finance_tracker/internal/utils/mapping"
)

// SQLiteUserRepository implements portsrepo.UserRepositoryFacade on SQLite.
type SQLiteUserRepository struct {
	BaseRepository
}

func newSQLiteUserRepository(db *sql.DB) *SQLiteUserRepository {
	return &SQLiteUserRepository{BaseRepository: BaseRepository{DB: db}}
}

var _ portsrepo.UserRepositoryFacade = (*SQLiteUserRepository)(nil)

func (r *SQLiteUserRepository) SaveUser(ctx context.Context, user *domain.User) error {
	modelUser := mapping.ToModelUser(*user)
	createdAt := r.timestamp()
	query := `
		INSERT INTO users (username, email, password_hash, created_at)
		VALUES (?, ?, ?, ?)
		RETURNING id;
	`
	err := r.DB.QueryRowContext(ctx, query, modelUser.Username, modelUser.Email, modelUser.PasswordHash, createdAt).
		Scan(&user.UserID)
	if err != nil {
		return fmt.Errorf("failed to save user %s: %w", modelUser.Username, mapSQLiteError(err))
	}
	t, err := parseTimestamp(createdAt)
	if err != nil {
		return err
	}
	user.CreatedAt = t
	return nil
}

func (r *SQLiteUserRepository) FindUserByID(ctx context.Context, userID int64) (*domain.User, error) {
	return r.findUser(ctx, "id", userID)
}

func (r *SQLiteUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.findUser(ctx, "username", username)
}

func (r *SQLiteUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findUser(ctx, "email", email)
}

// findUser looks a user up by one of the unique columns. column is never user input.
func (r *SQLiteUserRepository) findUser(ctx context.Context, column string, value any) (*domain.User, error) {
	query := `SELECT id, username, email, password_hash, created_at FROM users WHERE ` + column + ` = ?;`
	var (
		modelUser models.User
		createdAt string
	)
	err := r.DB.QueryRowContext(ctx, query, value).Scan(
		&modelUser.ID,
		&modelUser.Username,
		&modelUser.Email,
		&modelUser.PasswordHash,
		&createdAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user by %s: %w", column, err)
	}
	if modelUser.CreatedAt, err = parseTimestamp(createdAt); err != nil {
		return nil, err
	}
	user := mapping.ToDomainUser(modelUser)
	return &user, nil
}
