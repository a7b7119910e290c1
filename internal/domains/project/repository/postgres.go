package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"sidehustle-backend/internal/domains/project/model"
	"sidehustle-backend/internal/infrastructure/database"
	pkgdb "sidehustle-backend/pkg/database"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

const selectProjectColumns = `id, owner_id, name, type, description, url`

func scanProject(row pgx.Row) (*model.Project, error) {
	var p model.Project
	if err := row.Scan(&p.ID, &p.OwnerID, &p.Name, &p.Type, &p.Description, &p.URL); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrProjectNotFound
		}
		return nil, err
	}
	return &p, nil
}

// ========================================
// PROJECTS
// ========================================

func (r *postgresRepository) Create(ctx context.Context, p *model.Project) error {
	query := `
		INSERT INTO projects (owner_id, name, type, description, url)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	if err := r.pool.QueryRow(ctx, query, p.OwnerID, p.Name, p.Type, p.Description, p.URL).Scan(&p.ID); err != nil {
		return fmt.Errorf("insert project: %w", err)
	}
	return nil
}

func (r *postgresRepository) FindByID(ctx context.Context, id int64) (*model.Project, error) {
	query := `SELECT ` + selectProjectColumns + ` FROM projects WHERE id = $1`
	p, err := scanProject(r.pool.QueryRow(ctx, query, id))
	if err != nil && !errors.Is(err, model.ErrProjectNotFound) {
		return nil, fmt.Errorf("find project %d: %w", id, err)
	}
	return p, err
}

func (r *postgresRepository) ListByOwner(ctx context.Context, ownerID int64) ([]*model.Project, error) {
	query := `SELECT ` + selectProjectColumns + ` FROM projects WHERE owner_id = $1 ORDER BY id`

	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("query projects: %w", err)
	}
	defer rows.Close()

	projects := make([]*model.Project, 0)
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

func lockProject(ctx context.Context, tx pgx.Tx, id int64) (*model.Project, error) {
	query := `SELECT ` + selectProjectColumns + ` FROM projects WHERE id = $1 FOR UPDATE`
	return scanProject(tx.QueryRow(ctx, query, id))
}

func (r *postgresRepository) Update(ctx context.Context, id int64, fn MutateFunc) (*model.Project, error) {
	return pkgdb.WithTransactionResult(ctx, r.pool, func(tx pgx.Tx) (*model.Project, error) {
		p, err := lockProject(ctx, tx, id)
		if err != nil {
			return nil, err
		}
		if err := fn(p); err != nil {
			return nil, err
		}

		query := `UPDATE projects SET name = $2, type = $3, description = $4, url = $5 WHERE id = $1`
		if _, err := tx.Exec(ctx, query, p.ID, p.Name, p.Type, p.Description, p.URL); err != nil {
			return nil, fmt.Errorf("update project %d: %w", id, err)
		}
		return p, nil
	})
}

func (r *postgresRepository) Delete(ctx context.Context, id int64, check MutateFunc) error {
	return pkgdb.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		p, err := lockProject(ctx, tx, id)
		if err != nil {
			return err
		}
		if err := check(p); err != nil {
			return err
		}
		// project_team xoá theo ON DELETE CASCADE
		if _, err := tx.Exec(ctx, `DELETE FROM projects WHERE id = $1`, id); err != nil {
			return fmt.Errorf("delete project %d: %w", id, err)
		}
		return nil
	})
}

// ========================================
// TEAM
// ========================================

func (r *postgresRepository) ListMembers(ctx context.Context, projectID int64) ([]*model.TeamMember, error) {
	query := `SELECT id, project_id, user_id, role FROM project_team WHERE project_id = $1 ORDER BY id`

	rows, err := r.pool.Query(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("query project team: %w", err)
	}
	defer rows.Close()

	members := make([]*model.TeamMember, 0)
	for rows.Next() {
		var m model.TeamMember
		if err := rows.Scan(&m.ID, &m.ProjectID, &m.UserID, &m.Role); err != nil {
			return nil, fmt.Errorf("scan team member: %w", err)
		}
		members = append(members, &m)
	}
	return members, rows.Err()
}

func (r *postgresRepository) AddMember(ctx context.Context, m *model.TeamMember) error {
	query := `
		INSERT INTO project_team (project_id, user_id, role)
		VALUES ($1, $2, $3)
		RETURNING id
	`
	err := r.pool.QueryRow(ctx, query, m.ProjectID, m.UserID, m.Role).Scan(&m.ID)
	if err != nil {
		if _, ok := database.UniqueViolation(err); ok {
			return model.ErrMemberExists
		}
		if constraint, ok := database.ForeignKeyViolation(err); ok {
			if constraint == "project_team_project_id_fkey" {
				return model.ErrProjectNotFound
			}
			return model.ErrUnknownUser
		}
		return fmt.Errorf("insert team member: %w", err)
	}
	return nil
}

func (r *postgresRepository) RemoveMember(ctx context.Context, projectID, userID int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM project_team WHERE project_id = $1 AND user_id = $2`, projectID, userID)
	if err != nil {
		return fmt.Errorf("delete team member: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrMemberNotFound
	}
	return nil
}
