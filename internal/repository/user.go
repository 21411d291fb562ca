package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/deppfellow/go-registration/internal/model"
)

type UserRepository struct {
	db Querier
}

func NewUserRepository(db Querier) *UserRepository {
	return &UserRepository{db: db}
}

// CreateUserParams carries an already hashed password.
type CreateUserParams struct {
	Username     string
	Email        string
	PasswordHash string
}

const createUserQuery = `
INSERT INTO users (id, username, email, password_hash)
VALUES ($1, $2, $3, $4)
RETURNING created_at`

// CreateUser inserts a user. Duplicate usernames or e-mails surface as a
// unique violation from the driver.
func (r *UserRepository) CreateUser(ctx context.Context, params CreateUserParams) (*model.User, error) {
	user := &model.User{
		ID:           uuid.New(),
		Username:     params.Username,
		Email:        params.Email,
		PasswordHash: params.PasswordHash,
	}

	err := r.db.QueryRow(ctx, createUserQuery,
		user.ID,
		user.Username,
		user.Email,
		user.PasswordHash,
	).Scan(&user.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create user %s: %w", params.Username, err)
	}

	return user, nil
}
