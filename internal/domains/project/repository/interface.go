package repository

import (
	"context"

	"sidehustle-backend/internal/domains/project/model"
)

// MutateFunc chạy trên project đã lock, error huỷ thao tác
type MutateFunc func(p *model.Project) error

type Repository interface {
	// Projects
	Create(ctx context.Context, p *model.Project) error
	FindByID(ctx context.Context, id int64) (*model.Project, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]*model.Project, error)
	Update(ctx context.Context, id int64, fn MutateFunc) (*model.Project, error)
	Delete(ctx context.Context, id int64, check MutateFunc) error

	// Team (xoá project thì xoá luôn team)
	ListMembers(ctx context.Context, projectID int64) ([]*model.TeamMember, error)
	AddMember(ctx context.Context, m *model.TeamMember) error
	RemoveMember(ctx context.Context, projectID, userID int64) error
}
