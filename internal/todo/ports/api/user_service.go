package api

import (
	"context"

	"gotodo/internal/todo/domain/entities"
	"gotodo/internal/todo/domain/pagination"
	"gotodo/internal/todo/domain/query"
)

// UserUseCase is the user API exposed to transports.
type UserUseCase interface {
	CreateUser(ctx context.Context, name, email string) (entities.User, error)
	ListUsers(ctx context.Context, q query.UserQuery) (pagination.Result[entities.User], error)
}
