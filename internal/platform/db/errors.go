package db

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ehr/prescribeit/internal/platform/apperr"
)

const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
)

// Translate maps driver errors onto the apperr kinds. Other errors are
// returned unchanged.
func Translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%w: %w", apperr.ErrNotFound, err)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case uniqueViolation:
			return fmt.Errorf("%w: %s", apperr.ErrConflict, pgErr.ConstraintName)
		case foreignKeyViolation:
			return fmt.Errorf("%w: %s", apperr.ErrInvalidInput, pgErr.ConstraintName)
		}
	}
	return err
}

// translateDelete is Translate for deletes: a foreign key violation there
// comes from a referencing row, not from the request.
func translateDelete(err error, what string, id int64) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation {
		if pgErr.TableName == "" {
			return apperr.Conflict("%s %d is still referenced", what, id)
		}
		return apperr.Conflict("%s %d is still referenced by %s", what, id, pgErr.TableName)
	}
	return Translate(err)
}

func notFound(what string, id int64) error {
	return apperr.NotFound("%s %d", what, id)
}
