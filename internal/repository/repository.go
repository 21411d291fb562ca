// Package repository holds the SQL behind the user store.
//
// Repositories return driver errors wrapped with context; mapping them to
// application errors is left to the service layer through sqlerr.
package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// Querier is the part of pgxpool.Pool (or a pgx.Tx) the repositories use.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}
