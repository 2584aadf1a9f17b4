package identity

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/techcare/core/pkg/models"
	"github.com/techcare/core/pkg/repository"
)

var (
	// ErrDuplicateIdentity reports a unique-constraint collision on email or phone.
	ErrDuplicateIdentity = errors.New("identity: email or phone already registered")
	// ErrInvalidCredentials reports a failed login or password-change check.
	ErrInvalidCredentials = errors.New("identity: invalid credentials")
	// ErrNotFound reports a failed lookup by id.
	ErrNotFound = errors.New("identity: user not found")
)

// Service implements the identity store operations over a user repository.
// Passwords are stored as bcrypt hashes and compared in constant time; the
// source system kept them in plain text, which is deliberately not preserved.
type Service struct {
	users      repository.UserRepo
	logger     *slog.Logger
	bcryptCost int
}

func NewService(users repository.UserRepo, logger *slog.Logger, bcryptCost int) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Service{users: users, logger: logger, bcryptCost: bcryptCost}
}

// Register creates a customer account. Email and phone must each be unused.
func (s *Service) Register(ctx context.Context, email, phone, password, name string) (int64, error) {
	for _, ident := range []string{email, phone} {
		existing, err := s.users.GetByIdentifier(ctx, ident)
		if err != nil {
			return 0, fmt.Errorf("register lookup: %w", err)
		}
		if existing != nil {
			return 0, ErrDuplicateIdentity
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return 0, fmt.Errorf("hash password: %w", err)
	}

	id, err := s.users.CreateUser(ctx, &models.User{
		Email:        email,
		Phone:        phone,
		PasswordHash: string(hash),
		Name:         name,
		Role:         models.RoleCustomer,
	})
	if err != nil {
		return 0, fmt.Errorf("create user: %w", err)
	}

	s.logger.Info("user registered", slog.Int64("user_id", id))
	return id, nil
}

// Authenticate checks credentials against a user found by email or phone.
func (s *Service) Authenticate(ctx context.Context, identifier, password string) (int64, error) {
	u, err := s.users.GetByIdentifier(ctx, identifier)
	if err != nil {
		return 0, fmt.Errorf("authenticate lookup: %w", err)
	}
	if u == nil {
		return 0, ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return 0, ErrInvalidCredentials
	}

	return u.ID, nil
}

// GetRole never errors; unknown identifiers resolve to customer. It is used
// for post-login routing, not for gating.
func (s *Service) GetRole(ctx context.Context, identifier string) models.Role {
	u, err := s.users.GetByIdentifier(ctx, identifier)
	if err != nil || u == nil {
		return models.RoleCustomer
	}

	return u.Role
}

func (s *Service) GetProfile(ctx context.Context, userID int64) (*models.User, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("profile lookup: %w", err)
	}
	if u == nil {
		return nil, ErrNotFound
	}

	return u, nil
}

// UpdateProfile rewrites name, email and phone. The new identity must not
// collide with a different user.
func (s *Service) UpdateProfile(ctx context.Context, userID int64, name, email, phone string) error {
	for _, ident := range []string{email, phone} {
		existing, err := s.users.GetByIdentifier(ctx, ident)
		if err != nil {
			return fmt.Errorf("profile collision lookup: %w", err)
		}
		if existing != nil && existing.ID != userID {
			return ErrDuplicateIdentity
		}
	}

	ok, err := s.users.UpdateProfile(ctx, userID, name, email, phone)
	if err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	if !ok {
		return ErrNotFound
	}

	return nil
}

// ChangePassword requires the correct current password. Strength policy
// beyond minimum length is the caller's concern.
func (s *Service) ChangePassword(ctx context.Context, userID int64, current, newPassword string) error {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("password lookup: %w", err)
	}
	if u == nil {
		return ErrNotFound
	}

	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(current)) != nil {
		return ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), s.bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	ok, err := s.users.UpdatePassword(ctx, userID, string(hash))
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	if !ok {
		return ErrNotFound
	}

	s.logger.Info("password changed", slog.Int64("user_id", userID))
	return nil
}
