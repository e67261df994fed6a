package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/zen-api/internal/domain"
)

// UserStore persists members. Lookups that miss return ErrUserNotFound.
type UserStore interface {
	// Create validates the user, hashes user.Password into HashedPassword
	// and inserts the row. A taken email yields ErrEmailExists.
	Create(ctx context.Context, user *domain.User) error

	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// GetByEmail matches the email case-insensitively.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// List returns every member, newest first.
	List(ctx context.Context) ([]*domain.User, error)

	// UpdatePlan switches the plan and sets plan_since to since.
	UpdatePlan(ctx context.Context, id uuid.UUID, plan domain.Plan, since time.Time) error

	// Delete removes the member; the schema cascades to their readings.
	Delete(ctx context.Context, id uuid.UUID) error

	// LockForQuota reads the member row with SELECT ... FOR UPDATE. The lock
	// only means something on a store returned by WithTx and is held until
	// that transaction ends.
	LockForQuota(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// WithTx binds a copy of the store to tx.
	WithTx(tx *sql.Tx) UserStore
}
