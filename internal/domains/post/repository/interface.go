package repository

import (
	"context"

	"sidehustle-backend/internal/domains/post/model"
)

// MutateFunc chạy trên bản ghi đã bị lock.
// Trả về changed=false để bỏ qua write (no-op), error để huỷ toàn bộ thao tác.
type MutateFunc func(p *model.Post) (changed bool, err error)

// Repository định nghĩa data access contract cho posts
type Repository interface {
	Create(ctx context.Context, p *model.Post) error
	FindByID(ctx context.Context, id int64) (*model.Post, error)

	// Listing luôn sắp xếp CreatedAt DESC, ID DESC
	ListPublished(ctx context.Context) ([]*model.Post, error)
	ListByAuthor(ctx context.Context, authorID int64) ([]*model.Post, error)

	// Update: read-modify-write nguyên tử, ErrPostNotFound nếu không tồn tại
	Update(ctx context.Context, id int64, fn MutateFunc) (*model.Post, error)
	// Delete: check chạy trên bản ghi đã lock, error từ check huỷ việc xoá
	Delete(ctx context.Context, id int64, check func(p *model.Post) error) error
}
