package app_test

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"gotodo/internal/todo/domain/entities"
	"gotodo/internal/todo/domain/pagination"
	"gotodo/internal/todo/domain/query"
)

var errDatabase = errors.New("database error")

type mockTaskRepository struct {
	mock.Mock
}

func (m *mockTaskRepository) Get(ctx context.Context, id uuid.UUID) (entities.Task, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(entities.Task), args.Error(1)
}

func (m *mockTaskRepository) Save(ctx context.Context, task entities.Task) error {
	return m.Called(ctx, task).Error(0)
}

func (m *mockTaskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockTaskRepository) List(ctx context.Context, page, pageSize int) (pagination.Result[entities.Task], error) {
	args := m.Called(ctx, page, pageSize)
	return args.Get(0).(pagination.Result[entities.Task]), args.Error(1)
}

func (m *mockTaskRepository) ListFiltered(ctx context.Context, q query.TaskQuery) (pagination.Result[entities.Task], error) {
	args := m.Called(ctx, q)
	return args.Get(0).(pagination.Result[entities.Task]), args.Error(1)
}

type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) Save(ctx context.Context, user entities.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *mockUserRepository) List(ctx context.Context, q query.UserQuery) (pagination.Result[entities.User], error) {
	args := m.Called(ctx, q)
	return args.Get(0).(pagination.Result[entities.User]), args.Error(1)
}
