package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/zen-api/internal/domain"
)

// ReadingStore defines the interface for reading persistence.
// Readings are append-only; there is no update operation.
type ReadingStore interface {
	// CountByUserInWindow counts the user's readings whose created_at lies
	// in [start, end], both bounds inclusive.
	CountByUserInWindow(ctx context.Context, userID uuid.UUID, start, end time.Time) (int, error)

	// Create appends a reading. The store assigns CreatedAt at insert time
	// and writes it back into the passed reading.
	// Returns ErrInvalidEntity if the reading fails validation or
	// references a missing user.
	Create(ctx context.Context, reading *domain.Reading) error

	// ListByUser returns the user's most recent readings, newest first,
	// capped at limit.
	ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*domain.Reading, error)

	// GetByID retrieves a reading by ID.
	// Returns ErrReadingNotFound if the reading does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Reading, error)

	// WithTx returns a new ReadingStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) ReadingStore
}
