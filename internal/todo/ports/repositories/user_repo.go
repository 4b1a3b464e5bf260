package repositories

import (
	"context"

	"gotodo/internal/todo/domain/entities"
	"gotodo/internal/todo/domain/pagination"
	"gotodo/internal/todo/domain/query"
)

// UserRepository stores users keyed by email.
type UserRepository interface {
	// Save inserts the user or overwrites the one with the same email.
	Save(ctx context.Context, user entities.User) error

	// FindByEmail returns nil and no error when no user has that email.
	FindByEmail(ctx context.Context, email string) (*entities.User, error)

	List(ctx context.Context, q query.UserQuery) (pagination.Result[entities.User], error)
}
