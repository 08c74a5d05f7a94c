package repositories

import (
	"errors"

	"resto-backend/internal/apperr"

	"github.com/jackc/pgx/v5/pgconn"
)

const pgForeignKeyViolation = "23503"

// classify turns a driver error into an apperr kind. Connectivity errors are
// wrapped unchanged so the retry gateway can still recognise them.
func classify(op string, err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
		return &apperr.ValidationError{Message: "record is still referenced: " + pgErr.Detail, Err: err}
	}
	return apperr.Store(op, err)
}
