package repository

import (
	"context"
	"sort"
	"sync"

	"sidehustle-backend/internal/domains/user/model"
)

// memoryRepository giữ users trong RAM, dùng cho APP_STORE=memory và tests
type memoryRepository struct {
	mu     sync.RWMutex
	nextID int64
	users  map[int64]model.User
}

func NewMemoryRepository() Repository {
	return &memoryRepository{users: make(map[int64]model.User)}
}

func (r *memoryRepository) Create(_ context.Context, u *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.users {
		switch {
		case existing.Email == u.Email:
			return model.ErrEmailAlreadyExists
		case existing.Username == u.Username:
			return model.ErrUsernameAlreadyExists
		case existing.ANumber == u.ANumber:
			return model.ErrANumberAlreadyExists
		}
	}

	r.nextID++
	u.ID = r.nextID
	r.users[u.ID] = *u
	return nil
}

func (r *memoryRepository) FindByID(_ context.Context, id int64) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	return &u, nil
}

func (r *memoryRepository) FindByEmail(_ context.Context, email string) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Email == email {
			found := u
			return &found, nil
		}
	}
	return nil, model.ErrUserNotFound
}

func (r *memoryRepository) List(_ context.Context) ([]*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make([]*model.User, 0, len(r.users))
	for _, u := range r.users {
		u := u
		users = append(users, &u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

func (r *memoryRepository) exists(match func(model.User) bool) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if match(u) {
			return true
		}
	}
	return false
}

func (r *memoryRepository) ExistsByEmail(_ context.Context, email string) (bool, error) {
	return r.exists(func(u model.User) bool { return u.Email == email }), nil
}

func (r *memoryRepository) ExistsByUsername(_ context.Context, username string) (bool, error) {
	return r.exists(func(u model.User) bool { return u.Username == username }), nil
}

func (r *memoryRepository) ExistsByANumber(_ context.Context, aNumber string) (bool, error) {
	return r.exists(func(u model.User) bool { return u.ANumber == aNumber }), nil
}
