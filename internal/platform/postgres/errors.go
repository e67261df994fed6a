package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/phrazzld/zen-api/internal/store"
)

// SQLSTATE codes from the integrity constraint violation class (23).
const (
	codeNotNull    = "23502"
	codeForeignKey = "23503"
	codeUnique     = "23505"
	codeCheck      = "23514"
)

// constraintKinds names the violations reported as store.ErrInvalidEntity.
var constraintKinds = map[string]string{
	codeNotNull:    "not null",
	codeForeignKey: "foreign key",
	codeCheck:      "check",
}

func pgCode(err error) (*pgconn.PgError, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr, true
	}
	return nil, false
}

// MapError translates driver errors into store sentinels. The driver text
// stays in the message for logs; anything without a mapping is returned
// as is.
func MapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %v", store.ErrNotFound, err)
	}

	pgErr, ok := pgCode(err)
	if !ok {
		return err
	}
	if pgErr.Code == codeUnique {
		return fmt.Errorf("%w: %v", store.ErrDuplicate, err)
	}
	if kind, known := constraintKinds[pgErr.Code]; known {
		subject := pgErr.ConstraintName
		if pgErr.Code == codeNotNull {
			subject = pgErr.ColumnName
		}
		return fmt.Errorf("%w: %s violation on %s: %v", store.ErrInvalidEntity, kind, subject, err)
	}
	return err
}

// IsUniqueViolation reports whether err carries a unique constraint violation.
func IsUniqueViolation(err error) bool {
	pgErr, ok := pgCode(err)
	return ok && pgErr.Code == codeUnique
}

// IsForeignKeyViolation reports whether err carries a foreign key violation.
func IsForeignKeyViolation(err error) bool {
	pgErr, ok := pgCode(err)
	return ok && pgErr.Code == codeForeignKey
}

// CheckRowsAffected turns an UPDATE or DELETE that touched nothing into
// store.ErrNotFound.
func CheckRowsAffected(result sql.Result, entity string) error {
	if result == nil {
		return errors.New("postgres: nil sql.Result")
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if n > 0 {
		return nil
	}
	if entity == "" {
		return store.ErrNotFound
	}
	return fmt.Errorf("%s: %w", entity, store.ErrNotFound)
}
