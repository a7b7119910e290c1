package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"sidehustle-backend/internal/domains/post/model"
	"sidehustle-backend/pkg/database"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

const selectPostColumns = `
	id, title, description, category, target_market, business_model,
	funding_needs, status, created_at, updated_at, author_id
`

func scanPost(row pgx.Row) (*model.Post, error) {
	var p model.Post
	err := row.Scan(
		&p.ID,
		&p.Title,
		&p.Description,
		&p.Category,
		&p.TargetMarket,
		&p.BusinessModel,
		&p.FundingNeeds,
		&p.Status,
		&p.CreatedAt,
		&p.UpdatedAt,
		&p.AuthorID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrPostNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *postgresRepository) Create(ctx context.Context, p *model.Post) error {
	query := `
		INSERT INTO posts (
			title, description, category, target_market, business_model,
			funding_needs, status, created_at, updated_at, author_id
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`

	err := r.pool.QueryRow(ctx, query,
		p.Title,
		p.Description,
		p.Category,
		p.TargetMarket,
		p.BusinessModel,
		p.FundingNeeds,
		p.Status,
		p.CreatedAt,
		p.UpdatedAt,
		p.AuthorID,
	).Scan(&p.ID)
	if err != nil {
		return fmt.Errorf("insert post: %w", err)
	}
	return nil
}

func (r *postgresRepository) FindByID(ctx context.Context, id int64) (*model.Post, error) {
	query := `SELECT ` + selectPostColumns + ` FROM posts WHERE id = $1`

	p, err := scanPost(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, model.ErrPostNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("find post %d: %w", id, err)
	}
	return p, nil
}

// ========================================
// LISTING
// ========================================

func (r *postgresRepository) ListPublished(ctx context.Context) ([]*model.Post, error) {
	query := `
		SELECT ` + selectPostColumns + `
		FROM posts
		WHERE status = $1
		ORDER BY created_at DESC, id DESC
	`
	return r.list(ctx, query, model.StatusPublished)
}

func (r *postgresRepository) ListByAuthor(ctx context.Context, authorID int64) ([]*model.Post, error) {
	query := `
		SELECT ` + selectPostColumns + `
		FROM posts
		WHERE author_id = $1
		ORDER BY created_at DESC, id DESC
	`
	return r.list(ctx, query, authorID)
}

func (r *postgresRepository) list(ctx context.Context, query string, args ...interface{}) ([]*model.Post, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query posts: %w", err)
	}
	defer rows.Close()

	posts := make([]*model.Post, 0)
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate posts: %w", err)
	}
	return posts, nil
}

// ========================================
// READ-MODIFY-WRITE (row lock trong transaction)
// ========================================

func lockPost(ctx context.Context, tx pgx.Tx, id int64) (*model.Post, error) {
	query := `SELECT ` + selectPostColumns + ` FROM posts WHERE id = $1 FOR UPDATE`
	return scanPost(tx.QueryRow(ctx, query, id))
}

func (r *postgresRepository) Update(ctx context.Context, id int64, fn MutateFunc) (*model.Post, error) {
	return database.WithTransactionResult(ctx, r.pool, func(tx pgx.Tx) (*model.Post, error) {
		p, err := lockPost(ctx, tx, id)
		if err != nil {
			return nil, err
		}

		changed, err := fn(p)
		if err != nil {
			return nil, err
		}
		if !changed {
			return p, nil
		}

		query := `
			UPDATE posts
			SET title = $2,
				description = $3,
				category = $4,
				target_market = $5,
				business_model = $6,
				funding_needs = $7,
				status = $8,
				updated_at = $9
			WHERE id = $1
		`
		_, err = tx.Exec(ctx, query,
			p.ID,
			p.Title,
			p.Description,
			p.Category,
			p.TargetMarket,
			p.BusinessModel,
			p.FundingNeeds,
			p.Status,
			p.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("update post %d: %w", id, err)
		}
		return p, nil
	})
}

func (r *postgresRepository) Delete(ctx context.Context, id int64, check func(p *model.Post) error) error {
	return database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		p, err := lockPost(ctx, tx, id)
		if err != nil {
			return err
		}
		if err := check(p); err != nil {
			return err
		}

		if _, err := tx.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id); err != nil {
			return fmt.Errorf("delete post %d: %w", id, err)
		}
		return nil
	})
}
