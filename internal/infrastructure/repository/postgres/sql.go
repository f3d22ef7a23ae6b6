package postgres

import (
	"database/sql"
	"errors"
)

// isNotFound lets repositories translate an empty Get into the
// (value, found, err) idiom instead of surfacing sql.ErrNoRows.
func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
