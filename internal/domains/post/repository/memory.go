package repository

import (
	"context"
	"sort"
	"sync"

	"sidehustle-backend/internal/domains/post/model"
)

// memoryRepository: mọi mutation được serialize bởi mutex
type memoryRepository struct {
	mu     sync.RWMutex
	nextID int64
	posts  map[int64]model.Post
}

func NewMemoryRepository() Repository {
	return &memoryRepository{posts: make(map[int64]model.Post)}
}

func (r *memoryRepository) Create(_ context.Context, p *model.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	p.ID = r.nextID
	r.posts[p.ID] = clonePost(*p)
	return nil
}

func (r *memoryRepository) FindByID(_ context.Context, id int64) (*model.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.posts[id]
	if !ok {
		return nil, model.ErrPostNotFound
	}
	out := clonePost(p)
	return &out, nil
}

func (r *memoryRepository) ListPublished(_ context.Context) ([]*model.Post, error) {
	return r.filter(func(p model.Post) bool { return p.Status == model.StatusPublished }), nil
}

func (r *memoryRepository) ListByAuthor(_ context.Context, authorID int64) ([]*model.Post, error) {
	return r.filter(func(p model.Post) bool { return p.AuthorID == authorID }), nil
}

func (r *memoryRepository) filter(match func(model.Post) bool) []*model.Post {
	r.mu.RLock()
	defer r.mu.RUnlock()

	posts := make([]*model.Post, 0)
	for _, p := range r.posts {
		if match(p) {
			out := clonePost(p)
			posts = append(posts, &out)
		}
	}
	sort.Slice(posts, func(i, j int) bool {
		if !posts[i].CreatedAt.Equal(posts[j].CreatedAt) {
			return posts[i].CreatedAt.After(posts[j].CreatedAt)
		}
		return posts[i].ID > posts[j].ID
	})
	return posts
}

func (r *memoryRepository) Update(_ context.Context, id int64, fn MutateFunc) (*model.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.posts[id]
	if !ok {
		return nil, model.ErrPostNotFound
	}

	// fn làm việc trên bản copy, lỗi thì không có gì bị ghi
	p := clonePost(stored)
	changed, err := fn(&p)
	if err != nil {
		return nil, err
	}
	if changed {
		r.posts[id] = clonePost(p)
	}
	return &p, nil
}

func (r *memoryRepository) Delete(_ context.Context, id int64, check func(p *model.Post) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.posts[id]
	if !ok {
		return model.ErrPostNotFound
	}
	p := clonePost(stored)
	if err := check(&p); err != nil {
		return err
	}
	delete(r.posts, id)
	return nil
}

// clonePost copy sâu các field pointer để caller không sửa được state bên trong
func clonePost(p model.Post) model.Post {
	if p.TargetMarket != nil {
		v := *p.TargetMarket
		p.TargetMarket = &v
	}
	if p.BusinessModel != nil {
		v := *p.BusinessModel
		p.BusinessModel = &v
	}
	if p.FundingNeeds != nil {
		v := *p.FundingNeeds
		p.FundingNeeds = &v
	}
	return p
}
