// Package store holds the pgx-backed repositories behind the
// interfaces in internal/contracts. SQL lives here and nowhere else.
package store

import (
	"errors"

	"github.com/jackc/pgx/v5"
)

func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
