package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/personal_finance_tracker/internal/apperrors"
	"github.com/SscSPs/personal_finance_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/personal_finance_tracker/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/personal_finance_tracker/internal/core/ports/services"
	"github.com/SscSPs/personal_finance_tracker/internal/dto"
	"github.com/SscSPs/personal_finance_tracker/internal/utils"
)

type userService struct {
	BaseService
	userRepo portsrepo.UserRepositoryFacade
}

// NewUserService creates a new user service.
func NewUserService(userRepo portsrepo.UserRepositoryFacade) portssvc.UserSvcFacade {
	return &userService{userRepo: userRepo}
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

func (s *userService) GetUserByID(ctx context.Context, userID int64) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user by ID in service: %w", err)
	}
	return user, nil
}

// RegisterUser validates the registration form and creates the account.
// Nothing is persisted unless every check passes.
func (s *userService) RegisterUser(ctx context.Context, req dto.RegisterRequest) (*domain.User, error) {
	username := strings.TrimSpace(req.Username)
	email := strings.TrimSpace(req.Email)
	if username == "" || email == "" || req.Password == "" || req.ConfirmPassword == "" {
		return nil, fmt.Errorf("%w: all fields are required", apperrors.ErrValidation)
	}
	if req.Password != req.ConfirmPassword {
		return nil, fmt.Errorf("%w: passwords do not match", apperrors.ErrValidation)
	}

	if err := s.ensureAvailable(ctx, username, email); err != nil {
		return nil, err
	}

	user, err := s.createUser(ctx, username, email, req.Password)
	if err != nil {
		return nil, err
	}
	s.LogInfo(ctx, "User registered", slog.Int64("user_id", user.UserID), slog.String("username", user.Username))
	return user, nil
}

// EnsureUser returns the account named username, creating it when it does not exist.
func (s *userService) EnsureUser(ctx context.Context, username, email, password string) (*domain.User, bool, error) {
	existing, err := s.userRepo.FindUserByUsername(ctx, username)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, false, fmt.Errorf("failed to look up user %q: %w", username, err)
	}

	user, err := s.createUser(ctx, username, email, password)
	if err != nil {
		return nil, false, err
	}
	return user, true, nil
}

// AuthenticateUser reports ErrInvalidCredentials without telling apart an unknown
// username from a wrong password.
func (s *userService) AuthenticateUser(ctx context.Context, username, password string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.LogWarn(ctx, "Login attempt for unknown user", slog.String("username", username))
			return nil, apperrors.ErrInvalidCredentials
		}
		s.LogError(ctx, err, "Failed to look up user during login")
		return nil, fmt.Errorf("failed to authenticate user: %w", err)
	}

	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		s.LogWarn(ctx, "Login attempt with wrong password", slog.Int64("user_id", user.UserID))
		return nil, apperrors.ErrInvalidCredentials
	}
	return user, nil
}

func (s *userService) ensureAvailable(ctx context.Context, username, email string) error {
	if _, err := s.userRepo.FindUserByUsername(ctx, username); err == nil {
		return fmt.Errorf("%w: username already exists", apperrors.ErrDuplicate)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return fmt.Errorf("failed to check username: %w", err)
	}

	if _, err := s.userRepo.FindUserByEmail(ctx, email); err == nil {
		return fmt.Errorf("%w: email already exists", apperrors.ErrDuplicate)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return fmt.Errorf("failed to check email: %w", err)
	}
	return nil
}

func (s *userService) createUser(ctx context.Context, username, email, password string) (*domain.User, error) {
	hash, err := utils.HashPassword(password)
	if errors.Is(err, apperrors.ErrValidation) {
		return nil, err
	}
	if err != nil {
		s.LogError(ctx, err, "Failed to hash password")
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: username or email already exists", apperrors.ErrDuplicate)
		}
		s.LogError(ctx, err, "Failed to save user", slog.String("username", username))
		return nil, fmt.Errorf("failed to create user in service: %w", err)
	}
	return user, nil
}
