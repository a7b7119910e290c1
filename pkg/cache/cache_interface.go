package cache

import (
	"context"
	"time"
)

// Cache interface định nghĩa contract cho cache layer (Redis hoặc in-process)
type Cache interface {
	// Get unmarshal giá trị vào dest, found=false khi miss (dest giữ nguyên)
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	Ping(ctx context.Context) error
}

// GetOrLoad: cache-aside cho một key.
// Lỗi đọc/ghi cache bị bỏ qua, chỉ lỗi từ load được trả về.
func GetOrLoad[T any](ctx context.Context, c Cache, key string, ttl time.Duration, load func(context.Context) (*T, error)) (*T, error) {
	var cached T
	if found, err := c.Get(ctx, key, &cached); err == nil && found {
		return &cached, nil
	}

	v, err := load(ctx)
	if err != nil {
		return nil, err
	}

	_ = c.Set(ctx, key, v, ttl)
	return v, nil
}
