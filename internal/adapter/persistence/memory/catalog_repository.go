package memory

import (
	"context"
	"sync"

	"projectease/internal/domain/entities"
	"projectease/internal/usecase/interfaces"
)

// ProjectRepository is a read-mostly project catalog for local runs and tests.
type ProjectRepository struct {
	mu       sync.RWMutex
	projects map[string]entities.Project
}

var _ interfaces.IProjectRepository = (*ProjectRepository)(nil)

func NewProjectRepository(seed ...entities.Project) *ProjectRepository {
	r := &ProjectRepository{projects: make(map[string]entities.Project, len(seed))}
	for _, p := range seed {
		r.Put(p)
	}
	return r
}

func (r *ProjectRepository) Put(p entities.Project) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.projects[p.ID] = p
}

func (r *ProjectRepository) GetByID(_ context.Context, id string) (entities.Project, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.projects[id], nil
}

type UserRepository struct {
	mu    sync.RWMutex
	users map[string]entities.User
}

var _ interfaces.IUserRepository = (*UserRepository)(nil)

func NewUserRepository(seed ...entities.User) *UserRepository {
	r := &UserRepository{users: make(map[string]entities.User, len(seed))}
	for _, u := range seed {
		r.Put(u)
	}
	return r
}

func (r *UserRepository) Put(u entities.User) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[u.ID] = u
}

func (r *UserRepository) GetByID(_ context.Context, id string) (entities.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.users[id], nil
}
