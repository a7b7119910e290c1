package repository

import (
	"context"

	"sidehustle-backend/internal/domains/user/model"
)

// Repository định nghĩa contract cho data access layer của user
type Repository interface {
	// Create tạo user mới và gán ID
	// Returns: ErrEmailAlreadyExists / ErrUsernameAlreadyExists / ErrANumberAlreadyExists
	Create(ctx context.Context, u *model.User) error

	// FindByID tìm user theo ID. Kết quả có thể đến từ cache nên không chứa PasswordHash
	// Returns: ErrUserNotFound
	FindByID(ctx context.Context, id int64) (*model.User, error)

	// FindByEmail tìm user theo email (dùng cho login), có PasswordHash
	FindByEmail(ctx context.Context, email string) (*model.User, error)

	// List trả về toàn bộ users theo ID tăng dần
	List(ctx context.Context) ([]*model.User, error)

	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByANumber(ctx context.Context, aNumber string) (bool, error)
}
