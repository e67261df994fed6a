package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/zen-api/internal/domain"
	"github.com/phrazzld/zen-api/internal/platform/logger"
	"github.com/phrazzld/zen-api/internal/store"
	"golang.org/x/crypto/bcrypt"
)

const userColumns = `id, email, full_name, birth_date, hashed_password, plan, plan_since, created_at, updated_at`

// PostgresUserStore implements the store.UserStore interface
// using a PostgreSQL database as the storage backend.
type PostgresUserStore struct {
	db         store.DBTX
	bcryptCost int
}

// NewPostgresUserStore creates a new PostgreSQL implementation of the UserStore interface.
// It accepts a database connection or transaction that should be initialized and managed
// by the caller. A bcryptCost outside bcrypt's valid range falls back to bcrypt.DefaultCost.
func NewPostgresUserStore(db store.DBTX, bcryptCost int) *PostgresUserStore {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &PostgresUserStore{
		db:         db,
		bcryptCost: bcryptCost,
	}
}

// Ensure PostgresUserStore implements store.UserStore interface
var _ store.UserStore = (*PostgresUserStore)(nil)

// DB returns the connection or transaction the store runs queries on.
func (s *PostgresUserStore) DB() store.DBTX {
	return s.db
}

// WithTx implements store.UserStore.WithTx.
func (s *PostgresUserStore) WithTx(tx *sql.Tx) store.UserStore {
	return &PostgresUserStore{
		db:         tx,
		bcryptCost: s.bcryptCost,
	}
}

// Create implements store.UserStore.Create.
// The plaintext password is hashed here and cleared from the user afterwards.
func (s *PostgresUserStore) Create(ctx context.Context, user *domain.User) error {
	log := logger.FromContext(ctx)

	if err := user.Validate(); err != nil {
		log.Warn("user validation failed during create",
			slog.String("error", err.Error()),
			slog.String("user_id", user.ID.String()))
		return err
	}

	if user.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(user.Password), s.bcryptCost)
		if err != nil {
			log.Error("failed to hash password", slog.String("error", err.Error()))
			return fmt.Errorf("failed to hash password: %w", err)
		}
		user.HashedPassword = string(hash)
		user.Password = ""
	}

	query := `
		INSERT INTO users (` + userColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := s.db.ExecContext(ctx, query,
		user.ID,
		user.Email,
		user.FullName,
		nullDate(user.BirthDate),
		user.HashedPassword,
		string(user.Plan),
		user.PlanSince,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		if IsUniqueViolation(err) {
			log.Warn("attempt to create user with existing email",
				slog.String("user_id", user.ID.String()))
			return store.ErrEmailExists
		}
		log.Error("failed to insert user",
			slog.String("error", err.Error()),
			slog.String("user_id", user.ID.String()))
		return store.NewStoreError("user", "create", "insert failed", MapError(err))
	}

	log.Info("user created successfully", slog.String("user_id", user.ID.String()))
	return nil
}

// GetByID implements store.UserStore.GetByID.
func (s *PostgresUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return s.getOne(ctx, "get", query, id)
}

// GetByEmail implements store.UserStore.GetByEmail.
// Emails compare case-insensitively.
func (s *PostgresUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE LOWER(email) = LOWER($1)`
	return s.getOne(ctx, "get_by_email", query, email)
}

// LockForQuota implements store.UserStore.LockForQuota.
func (s *PostgresUserStore) LockForQuota(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1 FOR UPDATE`
	return s.getOne(ctx, "lock", query, id)
}

func (s *PostgresUserStore) getOne(ctx context.Context, op, query string, arg any) (*domain.User, error) {
	log := logger.FromContext(ctx)

	user, err := scanUser(s.db.QueryRowContext(ctx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("user not found", slog.String("operation", op))
			return nil, store.ErrUserNotFound
		}
		log.Error("failed to query user",
			slog.String("operation", op),
			slog.String("error", err.Error()))
		return nil, store.NewStoreError("user", op, "query failed", MapError(err))
	}
	return user, nil
}

// List implements store.UserStore.List.
func (s *PostgresUserStore) List(ctx context.Context) ([]*domain.User, error) {
	log := logger.FromContext(ctx)

	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at DESC`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		log.Error("failed to list users", slog.String("error", err.Error()))
		return nil, store.NewStoreError("user", "list", "query failed", MapError(err))
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	users := []*domain.User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			log.Error("failed to scan user row", slog.String("error", err.Error()))
			return nil, store.NewStoreError("user", "list", "scan failed", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("user", "list", "row iteration failed", err)
	}
	return users, nil
}

// UpdatePlan implements store.UserStore.UpdatePlan.
func (s *PostgresUserStore) UpdatePlan(ctx context.Context, id uuid.UUID, plan domain.Plan, since time.Time) error {
	log := logger.FromContext(ctx)

	if !plan.IsValid() {
		return domain.ErrInvalidPlan
	}

	query := `
		UPDATE users
		SET plan = $1, plan_since = $2, updated_at = $2
		WHERE id = $3
	`
	result, err := s.db.ExecContext(ctx, query, string(plan), since.UTC(), id)
	if err != nil {
		log.Error("failed to update user plan",
			slog.String("error", err.Error()),
			slog.String("user_id", id.String()))
		return store.NewStoreError("user", "update_plan", "update failed", MapError(err))
	}

	if err := CheckRowsAffected(result, "user"); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.ErrUserNotFound
		}
		return err
	}

	log.Info("user plan updated",
		slog.String("user_id", id.String()),
		slog.String("plan", string(plan)))
	return nil
}

// Delete implements store.UserStore.Delete.
func (s *PostgresUserStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContext(ctx)

	result, err := s.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete user",
			slog.String("error", err.Error()),
			slog.String("user_id", id.String()))
		return store.NewStoreError("user", "delete", "delete failed", MapError(err))
	}

	if err := CheckRowsAffected(result, "user"); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.ErrUserNotFound
		}
		return err
	}

	log.Info("user deleted", slog.String("user_id", id.String()))
	return nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*domain.User, error) {
	var (
		user      domain.User
		birthDate sql.NullTime
		plan      string
	)
	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.FullName,
		&birthDate,
		&user.HashedPassword,
		&plan,
		&user.PlanSince,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if birthDate.Valid {
		bd := birthDate.Time
		user.BirthDate = &bd
	}
	user.Plan = domain.Plan(plan)
	return &user, nil
}

func nullDate(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
