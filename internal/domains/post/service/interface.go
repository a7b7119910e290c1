package service

import (
	"context"

	"sidehustle-backend/internal/domains/post/model"
)

// Service - Post Lifecycle & Visibility Policy.
// Mọi operation nhận caller ID tường minh (user đã xác thực).
type Service interface {
	List(ctx context.Context, callerID int64, scope model.Scope) ([]model.PostResponse, error)
	Create(ctx context.Context, callerID int64, in model.PostInput) (*model.PostResponse, error)
	Get(ctx context.Context, callerID, postID int64) (*model.PostResponse, error)
	Update(ctx context.Context, callerID, postID int64, in model.PostInput, partial bool) (*model.PostResponse, error)
	Delete(ctx context.Context, callerID, postID int64) error

	// Lifecycle transitions (author only)
	Publish(ctx context.Context, callerID, postID int64) (*model.PostResponse, error)
	Archive(ctx context.Context, callerID, postID int64) (*model.PostResponse, error)
}
