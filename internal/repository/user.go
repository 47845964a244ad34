package repository

import (
	"context"
	"fmt"

	"github.com/deppfellow/go-profile/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// UserRepository reads and writes rows of the users table.
type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

const userColumns = `id, name, email, email_verified_at, created_at, updated_at`

// GetByID returns the user with the given id.
//
// A missing row surfaces as pgx.ErrNoRows prefixed with "table:users:", which
// sqlerr.HandleError turns into a "User not found" response.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("querying user %s: %w", id, err)
	}

	user, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[model.User])
	if err != nil {
		return nil, fmt.Errorf("table:users: %w", err)
	}

	return &user, nil
}

// Create inserts user and returns the stored row. An existing row with the
// same id is returned unchanged, so concurrent first requests of one user
// both succeed.
func (r *UserRepository) Create(ctx context.Context, user *model.User) (*model.User, error) {
	rows, err := r.pool.Query(ctx, `
		INSERT INTO users (id, name, email, email_verified_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE SET id = EXCLUDED.id
		RETURNING `+userColumns,
		user.ID, user.Name, user.Email, user.EmailVerifiedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("creating user %s: %w", user.ID, err)
	}

	created, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[model.User])
	if err != nil {
		return nil, fmt.Errorf("table:users: %w", err)
	}

	return &created, nil
}

// UpdateProfile persists name, email and email_verified_at of user and
// returns the stored row.
func (r *UserRepository) UpdateProfile(ctx context.Context, user *model.User) (*model.User, error) {
	rows, err := r.pool.Query(ctx, `
		UPDATE users
		SET name = $2,
			email = $3,
			email_verified_at = $4,
			updated_at = NOW()
		WHERE id = $1
		RETURNING `+userColumns,
		user.ID, user.Name, user.Email, user.EmailVerifiedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("updating user %s: %w", user.ID, err)
	}

	updated, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[model.User])
	if err != nil {
		// A users_email_key violation stays reachable through errors.As
		// for sqlerr.HandleError.
		return nil, fmt.Errorf("table:users: %w", err)
	}

	return &updated, nil
}
