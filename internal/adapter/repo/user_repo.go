package repo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"wishshare/internal/domain"
)

const userColumns = `id, username, about, avatar, email, created_at, updated_at`

// UserRepositoryPG implements domain.UserRepository backed by PostgreSQL.
type UserRepositoryPG struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new UserRepositoryPG.
func NewUserRepository(pool *pgxpool.Pool) *UserRepositoryPG {
	return &UserRepositoryPG{pool: pool}
}

// Create inserts a new account. A duplicate username or email maps to
// domain.ErrConflict.
func (r *UserRepositoryPG) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (username, about, avatar, email, password_hash)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+userColumns+`
	`, user.Username, user.About, user.Avatar, user.Email, user.Password)
	created, err := scanUser(row)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrConflict
		}
		return nil, err
	}
	return created, nil
}

// GetByID fetches a user by id, without the password hash.
func (r *UserRepositoryPG) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

// GetByUsername fetches a user by username, without the password hash.
func (r *UserRepositoryPG) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username)
	return scanUser(row)
}

// GetCredentials fetches a user including the password hash, for signin.
func (r *UserRepositoryPG) GetCredentials(ctx context.Context, username string) (*domain.User, error) {
	var u domain.User
	err := r.pool.QueryRow(ctx, `
		SELECT id, username, about, avatar, email, password_hash, created_at, updated_at
		FROM users WHERE username = $1
	`, username).Scan(&u.ID, &u.Username, &u.About, &u.Avatar, &u.Email, &u.Password, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// Update applies profile changes. Nil fields are left untouched.
func (r *UserRepositoryPG) Update(ctx context.Context, id int64, upd domain.UserUpdate) (*domain.User, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE users SET
			username = COALESCE($2, username),
			about = COALESCE($3, about),
			avatar = COALESCE($4, avatar),
			email = COALESCE($5, email),
			password_hash = COALESCE($6, password_hash),
			updated_at = NOW()
		WHERE id = $1
		RETURNING `+userColumns+`
	`, id, upd.Username, upd.About, upd.Avatar, upd.Email, upd.Password)
	updated, err := scanUser(row)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrConflict
		}
		return nil, err
	}
	return updated, nil
}

// Search finds users whose username or email contains the query,
// case-insensitively.
func (r *UserRepositoryPG) Search(ctx context.Context, query string) ([]domain.User, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE username ILIKE '%' || $1 || '%' OR email ILIKE '%' || $1 || '%'
		ORDER BY username
	`, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(&u.ID, &u.Username, &u.About, &u.Avatar, &u.Email, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}
