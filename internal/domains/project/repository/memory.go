package repository

import (
	"context"
	"sort"
	"sync"

	"sidehustle-backend/internal/domains/project/model"
)

type memberKey struct {
	projectID int64
	userID    int64
}

type memoryRepository struct {
	mu           sync.RWMutex
	nextID       int64
	nextMemberID int64
	projects     map[int64]model.Project
	members      map[memberKey]model.TeamMember
}

func NewMemoryRepository() Repository {
	return &memoryRepository{
		projects: make(map[int64]model.Project),
		members:  make(map[memberKey]model.TeamMember),
	}
}

func (r *memoryRepository) Create(_ context.Context, p *model.Project) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	p.ID = r.nextID
	r.projects[p.ID] = *p
	return nil
}

func (r *memoryRepository) FindByID(_ context.Context, id int64) (*model.Project, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.projects[id]
	if !ok {
		return nil, model.ErrProjectNotFound
	}
	return &p, nil
}

func (r *memoryRepository) ListByOwner(_ context.Context, ownerID int64) ([]*model.Project, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	projects := make([]*model.Project, 0)
	for _, p := range r.projects {
		if p.OwnerID == ownerID {
			p := p
			projects = append(projects, &p)
		}
	}
	sort.Slice(projects, func(i, j int) bool { return projects[i].ID < projects[j].ID })
	return projects, nil
}

func (r *memoryRepository) Update(_ context.Context, id int64, fn MutateFunc) (*model.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.projects[id]
	if !ok {
		return nil, model.ErrProjectNotFound
	}
	if err := fn(&p); err != nil {
		return nil, err
	}
	r.projects[id] = p
	return &p, nil
}

func (r *memoryRepository) Delete(_ context.Context, id int64, check MutateFunc) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.projects[id]
	if !ok {
		return model.ErrProjectNotFound
	}
	if err := check(&p); err != nil {
		return err
	}

	delete(r.projects, id)
	for key := range r.members {
		if key.projectID == id {
			delete(r.members, key)
		}
	}
	return nil
}

func (r *memoryRepository) ListMembers(_ context.Context, projectID int64) ([]*model.TeamMember, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	members := make([]*model.TeamMember, 0)
	for key, m := range r.members {
		if key.projectID == projectID {
			m := m
			members = append(members, &m)
		}
	}
	sort.Slice(members, func(i, j int) bool { return members[i].ID < members[j].ID })
	return members, nil
}

func (r *memoryRepository) AddMember(_ context.Context, m *model.TeamMember) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.projects[m.ProjectID]; !ok {
		return model.ErrProjectNotFound
	}
	key := memberKey{projectID: m.ProjectID, userID: m.UserID}
	if _, exists := r.members[key]; exists {
		return model.ErrMemberExists
	}

	r.nextMemberID++
	m.ID = r.nextMemberID
	r.members[key] = *m
	return nil
}

func (r *memoryRepository) RemoveMember(_ context.Context, projectID, userID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := memberKey{projectID: projectID, userID: userID}
	if _, ok := r.members[key]; !ok {
		return model.ErrMemberNotFound
	}
	delete(r.members, key)
	return nil
}
