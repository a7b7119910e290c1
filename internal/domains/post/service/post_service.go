package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"sidehustle-backend/internal/domains/post/model"
	"sidehustle-backend/internal/domains/post/repository"
	userModel "sidehustle-backend/internal/domains/user/model"
	"sidehustle-backend/internal/shared/apperr"
)

// AuthorReader resolve author của post (user repository thoả mãn interface này)
type AuthorReader interface {
	FindByID(ctx context.Context, id int64) (*userModel.User, error)
}

type postService struct {
	repo    repository.Repository
	authors AuthorReader
	now     func() time.Time
}

func NewPostService(repo repository.Repository, authors AuthorReader) Service {
	return NewPostServiceWithClock(repo, authors, time.Now)
}

// NewPostServiceWithClock cho phép inject clock (tests)
func NewPostServiceWithClock(repo repository.Repository, authors AuthorReader, now func() time.Time) Service {
	return &postService{
		repo:    repo,
		authors: authors,
		now:     now,
	}
}

// timestamp lưu ở độ chính xác microsecond như cột TIMESTAMPTZ
func (s *postService) timestamp() time.Time {
	return s.now().UTC().Truncate(time.Microsecond)
}

// ========================================
// QUERIES
// ========================================

func (s *postService) List(ctx context.Context, callerID int64, scope model.Scope) ([]model.PostResponse, error) {
	var (
		posts []*model.Post
		err   error
	)
	switch scope {
	case model.ScopePublic:
		posts, err = s.repo.ListPublished(ctx)
	case model.ScopeMine:
		posts, err = s.repo.ListByAuthor(ctx, callerID)
	default:
		verr := apperr.FieldError("scope", fmt.Sprintf("%q is not a valid choice.", string(scope)))
		verr.Err = model.ErrInvalidScope
		return nil, verr
	}
	if err != nil {
		return nil, fmt.Errorf("list posts (%s): %w", scope, err)
	}

	return s.toResponses(ctx, posts)
}

// Get: author thấy mọi status, người khác chỉ thấy published (còn lại là NotFound)
func (s *postService) Get(ctx context.Context, callerID, postID int64) (*model.PostResponse, error) {
	p, err := s.repo.FindByID(ctx, postID)
	if err != nil {
		return nil, s.mapError(err)
	}
	if !p.VisibleTo(callerID) {
		return nil, apperr.NotFound(model.ErrPostNotFound)
	}
	return s.toResponse(ctx, p)
}

// ========================================
// COMMANDS
// ========================================

func (s *postService) Create(ctx context.Context, callerID int64, in model.PostInput) (*model.PostResponse, error) {
	if err := in.Validate(false); err != nil {
		return nil, apperr.FromValidation(err)
	}

	// Author luôn là caller, status luôn là draft
	p := model.NewDraft(callerID, s.timestamp())
	in.ApplyTo(p)

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}

	log.Info().Int64("post_id", p.ID).Int64("author_id", callerID).Msg("Post created")
	return s.toResponse(ctx, p)
}

func (s *postService) Update(ctx context.Context, callerID, postID int64, in model.PostInput, partial bool) (*model.PostResponse, error) {
	p, err := s.repo.Update(ctx, postID, func(p *model.Post) (bool, error) {
		if !p.IsAuthor(callerID) {
			return false, apperr.Permission(model.ErrNotAuthor)
		}
		if err := in.Validate(partial); err != nil {
			return false, apperr.FromValidation(err)
		}
		in.ApplyTo(p)
		p.Touch(s.timestamp())
		return true, nil
	})
	if err != nil {
		return nil, s.mapError(err)
	}

	return s.toResponse(ctx, p)
}

func (s *postService) Delete(ctx context.Context, callerID, postID int64) error {
	err := s.repo.Delete(ctx, postID, func(p *model.Post) error {
		if !p.IsAuthor(callerID) {
			return apperr.Permission(model.ErrNotAuthor)
		}
		return nil
	})
	if err != nil {
		return s.mapError(err)
	}

	log.Info().Int64("post_id", postID).Int64("author_id", callerID).Msg("Post deleted")
	return nil
}

// Publish: cho phép từ mọi status, gọi lại trên post đã published vẫn thành công và refresh UpdatedAt
func (s *postService) Publish(ctx context.Context, callerID, postID int64) (*model.PostResponse, error) {
	var from model.Status
	p, err := s.repo.Update(ctx, postID, func(p *model.Post) (bool, error) {
		if !p.IsAuthor(callerID) {
			return false, apperr.Permission(model.ErrNotAuthor)
		}
		from = p.Status
		p.Publish(s.timestamp())
		return true, nil
	})
	if err != nil {
		return nil, s.mapError(err)
	}

	log.Info().
		Int64("post_id", postID).
		Int64("author_id", callerID).
		Str("from", string(from)).
		Str("to", string(p.Status)).
		Msg("Post published")
	return s.toResponse(ctx, p)
}

// Archive: đã archived thì no-op
func (s *postService) Archive(ctx context.Context, callerID, postID int64) (*model.PostResponse, error) {
	var changed bool
	p, err := s.repo.Update(ctx, postID, func(p *model.Post) (bool, error) {
		if !p.IsAuthor(callerID) {
			return false, apperr.Permission(model.ErrNotAuthor)
		}
		changed = p.Archive(s.timestamp())
		return changed, nil
	})
	if err != nil {
		return nil, s.mapError(err)
	}

	if changed {
		log.Info().Int64("post_id", postID).Int64("author_id", callerID).Msg("Post archived")
	}
	return s.toResponse(ctx, p)
}

// ========================================
// HELPERS
// ========================================

func (s *postService) mapError(err error) error {
	if _, ok := apperr.As(err); ok {
		return err
	}
	if errors.Is(err, model.ErrPostNotFound) {
		return apperr.NotFound(err)
	}
	return err
}

func (s *postService) author(ctx context.Context, id int64, seen map[int64]userModel.UserDTO) (userModel.UserDTO, error) {
	if dto, ok := seen[id]; ok {
		return dto, nil
	}
	u, err := s.authors.FindByID(ctx, id)
	if err != nil {
		return userModel.UserDTO{}, fmt.Errorf("load author %d: %w", id, err)
	}
	dto := u.ToDTO()
	seen[id] = dto
	return dto, nil
}

func (s *postService) toResponse(ctx context.Context, p *model.Post) (*model.PostResponse, error) {
	author, err := s.author(ctx, p.AuthorID, map[int64]userModel.UserDTO{})
	if err != nil {
		return nil, err
	}
	resp := p.ToResponse(author)
	return &resp, nil
}

func (s *postService) toResponses(ctx context.Context, posts []*model.Post) ([]model.PostResponse, error) {
	seen := make(map[int64]userModel.UserDTO)
	out := make([]model.PostResponse, 0, len(posts))
	for _, p := range posts {
		author, err := s.author(ctx, p.AuthorID, seen)
		if err != nil {
			return nil, err
		}
		out = append(out, p.ToResponse(author))
	}
	return out, nil
}
