// Package storage implements the record store on PostgreSQL using
// database/sql and lib/pq. Each entity gets its own repository
// interface so services and tests can substitute fakes without global
// state.
package storage

import (
	"database/sql"
	"errors"

	"github.com/lib/pq"
)

// ErrNotFound is returned when a referenced record does not exist.
var ErrNotFound = errors.New("record not found")

// ErrConflict is returned when a write is rejected because other
// records still reference the target.
var ErrConflict = errors.New("record is referenced by other records")

// isForeignKeyViolation reports whether err is a Postgres foreign key
// violation (class 23503).
func isForeignKeyViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23503"
}

// nullable maps an empty string to NULL for optional text columns.
func nullable(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

// requireRow converts a zero-row result into ErrNotFound.
func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
