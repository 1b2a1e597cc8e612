package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/personal_finance_tracker/internal/apperrors"
	"github.com/SscSPs/personal_finance_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/personal_finance_tracker/internal/core/ports/repositories"
	"github.com/SscSPs/personal_finance_tracker/internal/models"
	"github.com/SscSPs/personal_finance_tracker/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxUserRepository implements portsrepo.UserRepositoryFacade using pgx.
type PgxUserRepository struct {
	BaseRepository
}

func newPgxUserRepository(pool *pgxpool.Pool) portsrepo.UserRepositoryFacade {
	return &PgxUserRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxUserRepository implements portsrepo.UserRepositoryFacade
var _ portsrepo.UserRepositoryFacade = (*PgxUserRepository)(nil)

func (r *PgxUserRepository) SaveUser(ctx context.Context, user *domain.User) error {
	modelUser := mapping.ToModelUser(*user)
	query := `
		INSERT INTO users (username, email, password_hash)
		VALUES ($1, $2, $3)
		RETURNING id, created_at;
	`
	err := r.Pool.QueryRow(ctx, query, modelUser.Username, modelUser.Email, modelUser.PasswordHash).
		Scan(&user.UserID, &user.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save user %s: %w", modelUser.Username, mapPgError(err))
	}
	return nil
}

func (r *PgxUserRepository) FindUserByID(ctx context.Context, userID int64) (*domain.User, error) {
	return r.findUser(ctx, "id", userID)
}

func (r *PgxUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.findUser(ctx, "username", username)
}

func (r *PgxUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findUser(ctx, "email", email)
}

// findUser looks a user up by one of the unique columns. column is never user input.
func (r *PgxUserRepository) findUser(ctx context.Context, column string, value any) (*domain.User, error) {
	query := `SELECT id, username, email, password_hash, created_at FROM users WHERE ` + column + ` = $1;`
	var modelUser models.User
	err := r.Pool.QueryRow(ctx, query, value).Scan(
		&modelUser.ID,
		&modelUser.Username,
		&modelUser.Email,
		&modelUser.PasswordHash,
		&modelUser.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user by %s: %w", column, err)
	}
	user := mapping.ToDomainUser(modelUser)
	return &user, nil
}
