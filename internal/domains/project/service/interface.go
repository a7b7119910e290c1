package service

import (
	"context"

	"sidehustle-backend/internal/domains/project/model"
)

// Service - projects luôn owner-scoped: project của người khác trả về NotFound
type Service interface {
	List(ctx context.Context, callerID int64) ([]model.ProjectResponse, error)
	Create(ctx context.Context, callerID int64, in model.ProjectInput) (*model.ProjectResponse, error)
	Get(ctx context.Context, callerID, projectID int64) (*model.ProjectResponse, error)
	Update(ctx context.Context, callerID, projectID int64, in model.ProjectInput, partial bool) (*model.ProjectResponse, error)
	Delete(ctx context.Context, callerID, projectID int64) error

	// Team
	ListTeam(ctx context.Context, callerID, projectID int64) ([]model.TeamMemberResponse, error)
	AddMember(ctx context.Context, callerID, projectID int64, req model.AddMemberRequest) (*model.TeamMemberResponse, error)
	RemoveMember(ctx context.Context, callerID, projectID, userID int64) error
}
