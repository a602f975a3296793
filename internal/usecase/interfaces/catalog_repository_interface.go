package interfaces

import (
	"context"

	"projectease/internal/domain/entities"
)

// IProjectRepository reads catalog projects. A zero Project means not found.
type IProjectRepository interface {
	GetByID(ctx context.Context, id string) (entities.Project, error)
}

// IUserRepository reads registered users. A zero User means not found.
type IUserRepository interface {
	GetByID(ctx context.Context, id string) (entities.User, error)
}
