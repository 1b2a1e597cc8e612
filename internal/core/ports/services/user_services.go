package services

import (
	"context"

	"github.com/SscSPs/personal_finance_tracker/internal/core/domain"
	"github.com/SscSPs/personal_finance_tracker/internal/dto"
)

// UserReaderSvc defines read operations for user data
type UserReaderSvc interface {
	// GetUserByID retrieves a user by ID.
	GetUserByID(ctx context.Context, userID int64) (*domain.User, error)
}

// UserWriterSvc defines write operations for user data
type UserWriterSvc interface {
	// RegisterUser creates a new account after checking the password confirmation
	// and the uniqueness of username and email.
	RegisterUser(ctx context.Context, req dto.RegisterRequest) (*domain.User, error)

	// EnsureUser returns the user with the given username, creating it with the given
	// email and password when missing. The boolean reports whether it was created.
	EnsureUser(ctx context.Context, username, email, password string) (*domain.User, bool, error)
}

// UserAuthSvc defines operations for user authentication
type UserAuthSvc interface {
	// AuthenticateUser checks a username and password.
	// Returns apperrors.ErrInvalidCredentials on any mismatch.
	AuthenticateUser(ctx context.Context, username, password string) (*domain.User, error)
}

// UserSvcFacade combines all user-related service interfaces
type UserSvcFacade interface {
	UserReaderSvc
	UserWriterSvc
	UserAuthSvc
}
