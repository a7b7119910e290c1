package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"sidehustle-backend/internal/domains/user/model"
	"sidehustle-backend/internal/infrastructure/database"
	"sidehustle-backend/pkg/cache"
)

// postgresRepository là concrete implementation của Repository interface
type postgresRepository struct {
	pool     *pgxpool.Pool
	cache    cache.Cache
	cacheTTL time.Duration
}

// NewPostgresRepository nhận pool và cache (injected dependency)
func NewPostgresRepository(pool *pgxpool.Pool, c cache.Cache, cacheTTL time.Duration) Repository {
	return &postgresRepository{
		pool:     pool,
		cache:    c,
		cacheTTL: cacheTTL,
	}
}

const selectUserColumns = `id, username, a_number, email, first_name, last_name, password_hash, date_joined`

func cacheKey(id int64) string {
	return fmt.Sprintf("user:%d", id)
}

func scanUser(row pgx.Row) (*model.User, error) {
	var u model.User
	err := row.Scan(
		&u.ID,
		&u.Username,
		&u.ANumber,
		&u.Email,
		&u.FirstName,
		&u.LastName,
		&u.PasswordHash,
		&u.DateJoined,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// ========================================
// BASIC CRUD OPERATIONS
// ========================================

func (r *postgresRepository) Create(ctx context.Context, u *model.User) error {
	query := `
		INSERT INTO users (username, a_number, email, first_name, last_name, password_hash, date_joined)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	err := r.pool.QueryRow(ctx, query,
		u.Username,
		u.ANumber,
		u.Email,
		u.FirstName,
		u.LastName,
		u.PasswordHash,
		u.DateJoined,
	).Scan(&u.ID)

	if err != nil {
		// 23505 = unique_violation, map constraint name sang domain error
		if constraint, ok := database.UniqueViolation(err); ok {
			switch constraint {
			case "users_email_key":
				return model.ErrEmailAlreadyExists
			case "users_username_key":
				return model.ErrUsernameAlreadyExists
			case "users_a_number_key":
				return model.ErrANumberAlreadyExists
			}
		}
		return fmt.Errorf("insert user: %w", err)
	}

	return nil
}

// FindByID tìm user theo ID với cache-aside (hash không được cache, xem model.User)
func (r *postgresRepository) FindByID(ctx context.Context, id int64) (*model.User, error) {
	return cache.GetOrLoad(ctx, r.cache, cacheKey(id), r.cacheTTL, func(ctx context.Context) (*model.User, error) {
		query := `SELECT ` + selectUserColumns + ` FROM users WHERE id = $1`
		u, err := scanUser(r.pool.QueryRow(ctx, query, id))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, model.ErrUserNotFound
			}
			return nil, fmt.Errorf("find user by id: %w", err)
		}
		return u, nil
	})
}

// FindByEmail không cache vì chỉ dùng khi login
func (r *postgresRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `SELECT ` + selectUserColumns + ` FROM users WHERE email = $1`
	u, err := scanUser(r.pool.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return u, nil
}

func (r *postgresRepository) List(ctx context.Context) ([]*model.User, error) {
	query := `SELECT ` + selectUserColumns + ` FROM users ORDER BY id`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	users := make([]*model.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// ========================================
// UTILITY
// ========================================

func (r *postgresRepository) exists(ctx context.Context, column, value string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE ` + column + ` = $1)`
	if err := r.pool.QueryRow(ctx, query, value).Scan(&exists); err != nil {
		return false, fmt.Errorf("check %s exists: %w", column, err)
	}
	return exists, nil
}

func (r *postgresRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return r.exists(ctx, "email", email)
}

func (r *postgresRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	return r.exists(ctx, "username", username)
}

func (r *postgresRepository) ExistsByANumber(ctx context.Context, aNumber string) (bool, error) {
	return r.exists(ctx, "a_number", aNumber)
}
