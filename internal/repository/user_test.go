package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRow struct {
	scan func(dest ...any) error
}

func (r fakeRow) Scan(dest ...any) error { return r.scan(dest...) }

type fakeQuerier struct {
	sql  string
	args []any
	row  pgx.Row
}

func (q *fakeQuerier) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	q.sql = sql
	q.args = args
	return q.row
}

func TestUserRepository_CreateUser(t *testing.T) {
	createdAt := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	q := &fakeQuerier{row: fakeRow{scan: func(dest ...any) error {
		require.Len(t, dest, 1)
		*(dest[0].(*time.Time)) = createdAt
		return nil
	}}}

	user, err := NewUserRepository(q).CreateUser(context.Background(), CreateUserParams{
		Username:     "validUser1",
		Email:        "user@example.com",
		PasswordHash: "$2a$10$hash",
	})
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, user.ID)
	assert.Equal(t, "validUser1", user.Username)
	assert.Equal(t, "user@example.com", user.Email)
	assert.Equal(t, "$2a$10$hash", user.PasswordHash)
	assert.Equal(t, createdAt, user.CreatedAt)

	assert.Contains(t, q.sql, "INSERT INTO users")
	assert.Equal(t, []any{user.ID, "validUser1", "user@example.com", "$2a$10$hash"}, q.args)
}

func TestUserRepository_CreateUserWrapsDriverError(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505", TableName: "users", ConstraintName: "users_username_key"}
	q := &fakeQuerier{row: fakeRow{scan: func(...any) error { return pgErr }}}

	user, err := NewUserRepository(q).CreateUser(context.Background(), CreateUserParams{Username: "taken"})

	assert.Nil(t, user)
	var got *pgconn.PgError
	require.True(t, errors.As(err, &got))
	assert.Equal(t, "23505", got.Code)
	assert.Contains(t, err.Error(), "taken")
}
