package ports

import (
	"context"

	"github.com/cloudnative-labs/microservices/internal/core/domain/user"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	Create(ctx context.Context, req *user.CreateUserRequest) (*user.User, error)
	GetByID(ctx context.Context, id int64) (*user.User, error)
	Delete(ctx context.Context, id int64) (*user.User, error)
	// ListAll returns every user ordered by ascending id.
	ListAll(ctx context.Context) ([]*user.User, error)
}

// UserService defines the interface for user business logic
type UserService interface {
	CreateUser(ctx context.Context, req *user.CreateUserRequest) (*user.User, error)
	GetUser(ctx context.Context, id int64) (*user.User, error)
	DeleteUser(ctx context.Context, id int64) (*user.User, error)
	// ListUsers returns the full listing and whether it was served from cache.
	ListUsers(ctx context.Context) ([]*user.User, bool, error)
}
