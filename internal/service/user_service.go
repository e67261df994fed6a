package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/zen-api/internal/domain"
	"github.com/phrazzld/zen-api/internal/domain/oracle"
	"github.com/phrazzld/zen-api/internal/service/auth"
	"github.com/phrazzld/zen-api/internal/store"
)

// RegisterInput holds the fields submitted at registration.
type RegisterInput struct {
	Email     string
	Password  string
	FullName  string
	BirthDate string
}

// UserService provides member and plan management.
type UserService interface {
	// Register creates a member on the free plan.
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)

	// Authenticate checks an email/password pair.
	// Returns ErrInvalidCredentials on any mismatch.
	Authenticate(ctx context.Context, email, password string) (*domain.User, error)

	// GetUser retrieves a member by ID.
	GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error)

	// ListUsers returns every member, newest first.
	ListUsers(ctx context.Context) ([]*domain.User, error)

	// UpdatePlan moves a member to the named plan and restarts plan_since.
	UpdatePlan(ctx context.Context, userID uuid.UUID, rawPlan string) (*domain.User, error)

	// Checkout starts a plan purchase. Payment is not integrated; the
	// member's plan is left unchanged.
	Checkout(ctx context.Context, userID uuid.UUID, rawPlan string) (domain.Plan, error)

	// DeleteUser deletes a member and, by cascade, their readings.
	DeleteUser(ctx context.Context, userID uuid.UUID) error

	// EnsureAdmin makes sure the admin account exists on premium_custom.
	// An existing admin keeps its password.
	EnsureAdmin(ctx context.Context, email, password string) (*domain.User, error)
}

// userServiceImpl implements the UserService interface
type userServiceImpl struct {
	userStore store.UserStore
	verifier  auth.PasswordVerifier
	db        *sql.DB
	logger    *slog.Logger
	now       func() time.Time
}

// NewUserService creates a new UserService. A nil db runs writes without a
// surrounding transaction.
func NewUserService(
	userStore store.UserStore,
	verifier auth.PasswordVerifier,
	db *sql.DB,
	logger *slog.Logger,
) UserService {
	if verifier == nil {
		verifier = auth.NewBcryptVerifier()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &userServiceImpl{
		userStore: userStore,
		verifier:  verifier,
		db:        db,
		logger:    logger.With("component", "user_service"),
		now:       time.Now,
	}
}

// Register implements UserService.Register.
func (s *userServiceImpl) Register(ctx context.Context, in RegisterInput) (*domain.User, error) {
	var birthDate *time.Time
	if strings.TrimSpace(in.BirthDate) != "" {
		bd, ok := oracle.ParseBirthDate(in.BirthDate)
		if !ok {
			return nil, domain.NewValidationError("birth_date", "must be a valid date", domain.ErrInvalidFormat)
		}
		birthDate = &bd
	}

	user, err := domain.NewUser(in.Email, in.Password, in.FullName, birthDate)
	if err != nil {
		s.logger.Debug("registration rejected by validation", "error", err)
		return nil, err
	}

	err = s.inTx(ctx, func(ctx context.Context, users store.UserStore) error {
		return users.Create(ctx, user)
	})
	if err != nil {
		if errors.Is(err, store.ErrEmailExists) {
			s.logger.Debug("attempted to register an existing email")
		} else {
			s.logger.Error("failed to save user", "error", err)
		}
		return nil, wrapError("user", "register", err)
	}

	s.logger.Info("user registered", "user_id", user.ID)
	return user, nil
}

// Authenticate implements UserService.Authenticate.
func (s *userServiceImpl) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.userStore.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			s.logger.Debug("login for unknown email")
			_ = s.verifier.Compare(auth.DummyHash(), password)
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("failed to look up user for login", "error", err)
		return nil, wrapError("user", "authenticate", err)
	}

	if err := s.verifier.Compare(user.HashedPassword, password); err != nil {
		s.logger.Debug("login with wrong password", "user_id", user.ID)
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// GetUser implements UserService.GetUser.
func (s *userServiceImpl) GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	user, err := s.userStore.GetByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, store.ErrUserNotFound) {
			s.logger.Error("failed to retrieve user", "error", err, "user_id", userID)
		}
		return nil, wrapError("user", "get", err)
	}
	return user, nil
}

// ListUsers implements UserService.ListUsers.
func (s *userServiceImpl) ListUsers(ctx context.Context) ([]*domain.User, error) {
	users, err := s.userStore.List(ctx)
	if err != nil {
		s.logger.Error("failed to list users", "error", err)
		return nil, wrapError("user", "list", err)
	}
	return users, nil
}

// UpdatePlan implements UserService.UpdatePlan.
func (s *userServiceImpl) UpdatePlan(ctx context.Context, userID uuid.UUID, rawPlan string) (*domain.User, error) {
	plan, err := domain.ParsePlan(rawPlan)
	if err != nil {
		return nil, err
	}

	var user *domain.User
	err = s.inTx(ctx, func(ctx context.Context, users store.UserStore) error {
		if err := users.UpdatePlan(ctx, userID, plan, s.now()); err != nil {
			return err
		}
		var getErr error
		user, getErr = users.GetByID(ctx, userID)
		return getErr
	})
	if err != nil {
		if !errors.Is(err, store.ErrUserNotFound) {
			s.logger.Error("failed to update plan", "error", err, "user_id", userID)
		}
		return nil, wrapError("user", "update_plan", err)
	}

	s.logger.Info("user plan changed", "user_id", userID, "plan", plan)
	return user, nil
}

// Checkout implements UserService.Checkout.
func (s *userServiceImpl) Checkout(ctx context.Context, userID uuid.UUID, rawPlan string) (domain.Plan, error) {
	plan, err := domain.ParsePlan(rawPlan)
	if err != nil {
		return "", err
	}
	// premium_custom is arranged by hand and free needs no payment.
	if plan != domain.PlanStandard {
		return "", ErrCheckoutUnavailable
	}
	if _, err := s.GetUser(ctx, userID); err != nil {
		return "", err
	}

	s.logger.Info("checkout requested", "user_id", userID, "plan", plan)
	return plan, nil
}

// DeleteUser implements UserService.DeleteUser.
func (s *userServiceImpl) DeleteUser(ctx context.Context, userID uuid.UUID) error {
	err := s.inTx(ctx, func(ctx context.Context, users store.UserStore) error {
		return users.Delete(ctx, userID)
	})
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			s.logger.Debug("attempted to delete non-existent user", "user_id", userID)
		} else {
			s.logger.Error("failed to delete user", "error", err, "user_id", userID)
		}
		return wrapError("user", "delete", err)
	}

	s.logger.Info("user deleted", "user_id", userID)
	return nil
}

// EnsureAdmin implements UserService.EnsureAdmin.
func (s *userServiceImpl) EnsureAdmin(ctx context.Context, email, password string) (*domain.User, error) {
	existing, err := s.userStore.GetByEmail(ctx, email)
	switch {
	case err == nil:
		if existing.Plan == domain.PlanPremiumCustom {
			return existing, nil
		}
		return s.UpdatePlan(ctx, existing.ID, string(domain.PlanPremiumCustom))
	case !errors.Is(err, store.ErrUserNotFound):
		return nil, wrapError("user", "ensure_admin", err)
	}

	admin, err := domain.NewUser(email, password, "Admin", nil)
	if err != nil {
		return nil, err
	}
	if err := admin.ChangePlan(domain.PlanPremiumCustom, s.now()); err != nil {
		return nil, err
	}
	err = s.inTx(ctx, func(ctx context.Context, users store.UserStore) error {
		return users.Create(ctx, admin)
	})
	if err != nil {
		return nil, wrapError("user", "ensure_admin", err)
	}

	s.logger.Info("admin account seeded", "user_id", admin.ID)
	return admin, nil
}

func (s *userServiceImpl) inTx(ctx context.Context, fn func(ctx context.Context, users store.UserStore) error) error {
	if s.db == nil {
		return fn(ctx, s.userStore)
	}
	return store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		return fn(ctx, s.userStore.WithTx(tx))
	})
}
