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
)

const readingColumns = `id, user_id, question, card_key, card_name, upright, sign, reading_text, created_at`

// PostgresReadingStore implements store.ReadingStore.
type PostgresReadingStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresReadingStore creates a reading store over db.
// If logger is nil, the default logger is used.
func NewPostgresReadingStore(db store.DBTX, logger *slog.Logger) *PostgresReadingStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresReadingStore{
		db:     db,
		logger: logger.With(slog.String("component", "reading_store")),
	}
}

var _ store.ReadingStore = (*PostgresReadingStore)(nil)

// WithTx implements store.ReadingStore.WithTx.
func (s *PostgresReadingStore) WithTx(tx *sql.Tx) store.ReadingStore {
	return &PostgresReadingStore{db: tx, logger: s.logger}
}

// CountByUserInWindow implements store.ReadingStore.CountByUserInWindow.
func (s *PostgresReadingStore) CountByUserInWindow(
	ctx context.Context,
	userID uuid.UUID,
	start, end time.Time,
) (int, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT COUNT(*)
		FROM readings
		WHERE user_id = $1 AND created_at BETWEEN $2 AND $3
	`
	var count int
	if err := s.db.QueryRowContext(ctx, query, userID, start, end).Scan(&count); err != nil {
		log.Error("failed to count readings",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return 0, store.NewStoreError("reading", "count", "query failed", MapError(err))
	}

	log.Debug("counted readings in window",
		slog.String("user_id", userID.String()),
		slog.Time("start", start),
		slog.Time("end", end),
		slog.Int("count", count))
	return count, nil
}

// Create implements store.ReadingStore.Create.
func (s *PostgresReadingStore) Create(ctx context.Context, reading *domain.Reading) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := reading.Validate(); err != nil {
		log.Warn("reading validation failed during create",
			slog.String("error", err.Error()),
			slog.String("reading_id", reading.ID.String()))
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO readings (id, user_id, question, card_key, card_name, upright, sign, reading_text, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, clock_timestamp())
		RETURNING created_at
	`
	err := s.db.QueryRowContext(ctx, query,
		reading.ID,
		reading.UserID,
		reading.Question,
		reading.CardKey,
		reading.CardName,
		reading.Upright,
		reading.Sign,
		reading.ReadingText,
	).Scan(&reading.CreatedAt)
	if err != nil {
		if IsForeignKeyViolation(err) {
			log.Warn("foreign key violation during reading creation",
				slog.String("reading_id", reading.ID.String()),
				slog.String("user_id", reading.UserID.String()))
			return fmt.Errorf("%w: user with ID %s not found", store.ErrInvalidEntity, reading.UserID)
		}
		log.Error("failed to create reading",
			slog.String("error", err.Error()),
			slog.String("reading_id", reading.ID.String()))
		return store.NewStoreError("reading", "create", "insert failed", MapError(err))
	}

	log.Info("reading created",
		slog.String("reading_id", reading.ID.String()),
		slog.String("user_id", reading.UserID.String()),
		slog.String("card_key", reading.CardKey))
	return nil
}

// ListByUser implements store.ReadingStore.ListByUser.
func (s *PostgresReadingStore) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*domain.Reading, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if limit <= 0 {
		return nil, store.NewStoreError("reading", "list", "limit must be positive", store.ErrInvalidEntity)
	}

	query := `
		SELECT ` + readingColumns + `
		FROM readings
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`
	rows, err := s.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		log.Error("failed to list readings",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, store.NewStoreError("reading", "list", "query failed", MapError(err))
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	readings := []*domain.Reading{}
	for rows.Next() {
		r, err := scanReading(rows)
		if err != nil {
			log.Error("failed to scan reading row", slog.String("error", err.Error()))
			return nil, store.NewStoreError("reading", "list", "scan failed", err)
		}
		readings = append(readings, r)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("reading", "list", "row iteration failed", err)
	}
	return readings, nil
}

// GetByID implements store.ReadingStore.GetByID.
func (s *PostgresReadingStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Reading, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + readingColumns + ` FROM readings WHERE id = $1`
	r, err := scanReading(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrReadingNotFound
		}
		log.Error("failed to get reading",
			slog.String("error", err.Error()),
			slog.String("reading_id", id.String()))
		return nil, store.NewStoreError("reading", "get", "query failed", MapError(err))
	}
	return r, nil
}

func scanReading(row rowScanner) (*domain.Reading, error) {
	var r domain.Reading
	err := row.Scan(
		&r.ID,
		&r.UserID,
		&r.Question,
		&r.CardKey,
		&r.CardName,
		&r.Upright,
		&r.Sign,
		&r.ReadingText,
		&r.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &r, nil
}
