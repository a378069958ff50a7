package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeInvalidTextRepr     = "22P02"
)

func isUniqueViolation(err error) bool {
	return hasSQLState(err, codeUniqueViolation)
}

func isForeignKeyViolation(err error) bool {
	return hasSQLState(err, codeForeignKeyViolation)
}

func isInvalidTextRepr(err error) bool {
	return hasSQLState(err, codeInvalidTextRepr)
}

func hasSQLState(err error, code string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == code
}
