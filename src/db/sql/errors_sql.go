package db

import (
	"errors"
	"fmt"

	"dimdim-server/src/models"

	"github.com/jackc/pgx/v5/pgconn"
)

// classify maps constraint violations onto rule-engine error kinds. These are
// the backstop for races between a rule check and the write that follows it.
func classify(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			if pgErr.ConstraintName == "clients_email_key" {
				return &models.Error{Kind: models.KindDuplicateEmail, Message: "a client with this email already exists", Err: err}
			}
		case "23503":
			if pgErr.ConstraintName == "transactions_client_id_fkey" {
				return &models.Error{Kind: models.KindClientNotFound, Message: "client not found", Err: err}
			}
		case "23514":
			return &models.Error{Kind: models.KindValidation, Message: "value violates a check constraint", Err: err}
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}

type scanner interface {
	Scan(dest ...any) error
}
