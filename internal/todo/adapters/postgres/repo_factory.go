package postgres

import (
	"gotodo/internal/todo/ports/repositories"
)

// RepositoryFactory builds every Postgres repository over one pool.
type RepositoryFactory struct {
	taskRepo repositories.TaskRepository
	userRepo repositories.UserRepository
}

// NewRepositoryFactory creates the repositories.
func NewRepositoryFactory(pool PgxPoolInterface) *RepositoryFactory {
	return &RepositoryFactory{
		taskRepo: NewTaskRepository(pool),
		userRepo: NewUserRepository(pool),
	}
}

// TaskRepository returns the task repository.
func (f *RepositoryFactory) TaskRepository() repositories.TaskRepository {
	return f.taskRepo
}

// UserRepository returns the user repository.
func (f *RepositoryFactory) UserRepository() repositories.UserRepository {
	return f.userRepo
}
