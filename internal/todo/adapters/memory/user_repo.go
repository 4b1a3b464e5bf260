package memory

import (
	"context"
	"maps"
	"slices"
	"sync"

	"gotodo/internal/todo/domain/entities"
	"gotodo/internal/todo/domain/pagination"
	"gotodo/internal/todo/domain/query"
	"gotodo/internal/todo/ports/repositories"
)

// UserRepository keeps users in a map keyed by email.
type UserRepository struct {
	mu       sync.RWMutex
	users    map[string]entities.User
	composer *query.Composer
}

var _ repositories.UserRepository = (*UserRepository)(nil)

// NewUserRepository returns an empty repository.
func NewUserRepository(composer *query.Composer) *UserRepository {
	if composer == nil {
		composer = query.DefaultComposer()
	}
	return &UserRepository{
		users:    make(map[string]entities.User),
		composer: composer,
	}
}

func (r *UserRepository) Save(_ context.Context, user entities.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.users[user.Email] = user
	return nil
}

func (r *UserRepository) FindByEmail(_ context.Context, email string) (*entities.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[email]
	if !ok {
		return nil, nil //nolint:nilnil // absence is not an error for email lookups
	}
	return &user, nil
}

func (r *UserRepository) List(_ context.Context, q query.UserQuery) (pagination.Result[entities.User], error) {
	r.mu.RLock()
	all := slices.Collect(maps.Values(r.users))
	r.mu.RUnlock()

	return r.composer.Users(all, q), nil
}

// Clear removes every user.
func (r *UserRepository) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	clear(r.users)
}
