package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"sidehustle-backend/internal/domains/project/model"
	"sidehustle-backend/internal/domains/project/repository"
	userModel "sidehustle-backend/internal/domains/user/model"
	"sidehustle-backend/internal/shared/apperr"
)

// UserReader - user repository thoả mãn interface này
type UserReader interface {
	FindByID(ctx context.Context, id int64) (*userModel.User, error)
}

type projectService struct {
	repo  repository.Repository
	users UserReader
}

func NewProjectService(repo repository.Repository, users UserReader) Service {
	return &projectService{repo: repo, users: users}
}

// ========================================
// PROJECTS
// ========================================

func (s *projectService) List(ctx context.Context, callerID int64) ([]model.ProjectResponse, error) {
	projects, err := s.repo.ListByOwner(ctx, callerID)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}

	owner, err := s.owner(ctx, callerID)
	if err != nil {
		return nil, err
	}

	out := make([]model.ProjectResponse, 0, len(projects))
	for _, p := range projects {
		out = append(out, p.ToResponse(owner))
	}
	return out, nil
}

func (s *projectService) Create(ctx context.Context, callerID int64, in model.ProjectInput) (*model.ProjectResponse, error) {
	if err := in.Validate(false); err != nil {
		return nil, apperr.FromValidation(err)
	}

	p := &model.Project{OwnerID: callerID}
	in.ApplyTo(p)
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}

	log.Info().Int64("project_id", p.ID).Int64("owner_id", callerID).Msg("Project created")
	return s.toResponse(ctx, p)
}

func (s *projectService) Get(ctx context.Context, callerID, projectID int64) (*model.ProjectResponse, error) {
	p, err := s.ownedProject(ctx, callerID, projectID)
	if err != nil {
		return nil, err
	}
	return s.toResponse(ctx, p)
}

func (s *projectService) Update(ctx context.Context, callerID, projectID int64, in model.ProjectInput, partial bool) (*model.ProjectResponse, error) {
	p, err := s.repo.Update(ctx, projectID, func(p *model.Project) error {
		if !p.IsOwner(callerID) {
			return apperr.NotFound(model.ErrProjectNotFound)
		}
		if err := in.Validate(partial); err != nil {
			return apperr.FromValidation(err)
		}
		in.ApplyTo(p)
		return nil
	})
	if err != nil {
		return nil, mapError(err)
	}
	return s.toResponse(ctx, p)
}

func (s *projectService) Delete(ctx context.Context, callerID, projectID int64) error {
	err := s.repo.Delete(ctx, projectID, func(p *model.Project) error {
		if !p.IsOwner(callerID) {
			return apperr.NotFound(model.ErrProjectNotFound)
		}
		return nil
	})
	if err != nil {
		return mapError(err)
	}

	log.Info().Int64("project_id", projectID).Int64("owner_id", callerID).Msg("Project deleted")
	return nil
}

// ========================================
// TEAM
// ========================================

func (s *projectService) ListTeam(ctx context.Context, callerID, projectID int64) ([]model.TeamMemberResponse, error) {
	if _, err := s.ownedProject(ctx, callerID, projectID); err != nil {
		return nil, err
	}

	members, err := s.repo.ListMembers(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("list team: %w", err)
	}

	out := make([]model.TeamMemberResponse, 0, len(members))
	for _, m := range members {
		out = append(out, m.ToResponse())
	}
	return out, nil
}

func (s *projectService) AddMember(ctx context.Context, callerID, projectID int64, req model.AddMemberRequest) (*model.TeamMemberResponse, error) {
	if _, err := s.ownedProject(ctx, callerID, projectID); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, apperr.FromValidation(err)
	}

	userID := *req.UserID
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		if errors.Is(err, userModel.ErrUserNotFound) {
			return nil, apperr.FieldError("UserID", model.MsgUnknownUser(userID))
		}
		return nil, fmt.Errorf("load team user: %w", err)
	}

	m := &model.TeamMember{ProjectID: projectID, UserID: userID, Role: req.Role}
	if err := s.repo.AddMember(ctx, m); err != nil {
		switch {
		case errors.Is(err, model.ErrMemberExists):
			return nil, apperr.FieldError("non_field_errors", model.MsgMemberExists)
		case errors.Is(err, model.ErrUnknownUser):
			return nil, apperr.FieldError("UserID", model.MsgUnknownUser(userID))
		}
		return nil, mapError(err)
	}

	log.Info().Int64("project_id", projectID).Int64("user_id", userID).Msg("Team member added")
	resp := m.ToResponse()
	return &resp, nil
}

func (s *projectService) RemoveMember(ctx context.Context, callerID, projectID, userID int64) error {
	if _, err := s.ownedProject(ctx, callerID, projectID); err != nil {
		return err
	}
	if err := s.repo.RemoveMember(ctx, projectID, userID); err != nil {
		return mapError(err)
	}

	log.Info().Int64("project_id", projectID).Int64("user_id", userID).Msg("Team member removed")
	return nil
}

// ========================================
// HELPERS
// ========================================

// ownedProject: project không tồn tại và project của người khác đều là NotFound
func (s *projectService) ownedProject(ctx context.Context, callerID, projectID int64) (*model.Project, error) {
	p, err := s.repo.FindByID(ctx, projectID)
	if err != nil {
		return nil, mapError(err)
	}
	if !p.IsOwner(callerID) {
		return nil, apperr.NotFound(model.ErrProjectNotFound)
	}
	return p, nil
}

func (s *projectService) owner(ctx context.Context, id int64) (userModel.UserDTO, error) {
	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		return userModel.UserDTO{}, fmt.Errorf("load project owner %d: %w", id, err)
	}
	return u.ToDTO(), nil
}

func (s *projectService) toResponse(ctx context.Context, p *model.Project) (*model.ProjectResponse, error) {
	owner, err := s.owner(ctx, p.OwnerID)
	if err != nil {
		return nil, err
	}
	resp := p.ToResponse(owner)
	return &resp, nil
}

func mapError(err error) error {
	if _, ok := apperr.As(err); ok {
		return err
	}
	if errors.Is(err, model.ErrProjectNotFound) || errors.Is(err, model.ErrMemberNotFound) {
		return apperr.NotFound(err)
	}
	return err
}
