package app_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"gotodo/internal/todo/adapters/memory"
	"gotodo/internal/todo/app"
	"gotodo/internal/todo/domain/entities"
	"gotodo/internal/todo/domain/query"
)

func TestCreateUser(t *testing.T) {
	ctx := context.Background()

	t.Run("email uniqueness", func(t *testing.T) {
		repo := memory.NewUserRepository(nil)
		svc := app.NewUserUseCase(repo, app.WithClock(tickingClock()))

		first, err := svc.CreateUser(ctx, "Ada", "ada@example.com")
		require.NoError(t, err)

		_, err = svc.CreateUser(ctx, "Impostor", "ada@example.com")
		require.ErrorIs(t, err, entities.ErrEmailAlreadyInUse)

		stored, err := repo.FindByEmail(ctx, "ada@example.com")
		require.NoError(t, err)
		require.NotNil(t, stored)
		assert.Equal(t, first, *stored)
	})

	t.Run("validation", func(t *testing.T) {
		svc := app.NewUserUseCase(memory.NewUserRepository(nil))

		_, err := svc.CreateUser(ctx, "  ", "a@b.io")
		assert.ErrorIs(t, err, entities.ErrNameRequired)

		_, err = svc.CreateUser(ctx, strings.Repeat("n", 51), "a@b.io")
		assert.ErrorIs(t, err, entities.ErrNameTooLong)

		_, err = svc.CreateUser(ctx, "Ada", "ada-at-example")
		assert.ErrorIs(t, err, entities.ErrInvalidEmailFormat)
	})

	t.Run("existence is checked before validation", func(t *testing.T) {
		repo := new(mockUserRepository)
		taken := &entities.User{Name: "Ada", Email: "bad"}
		repo.On("FindByEmail", mock.Anything, "bad").Return(taken, nil).Once()

		_, err := app.NewUserUseCase(repo).CreateUser(ctx, "", "bad")
		require.ErrorIs(t, err, entities.ErrEmailAlreadyInUse)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("lookup failure", func(t *testing.T) {
		repo := new(mockUserRepository)
		repo.On("FindByEmail", mock.Anything, "ada@example.com").Return(nil, errDatabase).Once()

		_, err := app.NewUserUseCase(repo).CreateUser(ctx, "Ada", "ada@example.com")
		require.ErrorIs(t, err, errDatabase)
		repo.AssertExpectations(t)
	})

	t.Run("save failure", func(t *testing.T) {
		repo := new(mockUserRepository)
		repo.On("FindByEmail", mock.Anything, "ada@example.com").Return(nil, nil).Once()
		repo.On("Save", mock.Anything, mock.MatchedBy(func(u entities.User) bool {
			return u.Name == "Ada" && u.Email == "ada@example.com"
		})).Return(errDatabase).Once()

		_, err := app.NewUserUseCase(repo).CreateUser(ctx, " Ada ", "ada@example.com")
		require.ErrorIs(t, err, errDatabase)
		repo.AssertExpectations(t)
	})
}

func TestListUsers(t *testing.T) {
	ctx := context.Background()
	svc := app.NewUserUseCase(memory.NewUserRepository(nil), app.WithClock(tickingClock()))

	for _, u := range [][2]string{{"Zoé", "z@x.io"}, {"Bob", "b@x.io"}, {"Émile", "e@x.io"}} {
		_, err := svc.CreateUser(ctx, u[0], u[1])
		require.NoError(t, err)
	}

	res, err := svc.ListUsers(ctx, query.DefaultUserQuery())
	require.NoError(t, err)
	require.Len(t, res.Items, 3)
	assert.Equal(t, "Bob", res.Items[0].Name)
	assert.Equal(t, "Émile", res.Items[1].Name)
	assert.Equal(t, "Zoé", res.Items[2].Name)

	q := query.DefaultUserQuery()
	q.Sort = query.UsersByCreationDate(query.Descending)
	res, err = svc.ListUsers(ctx, q)
	require.NoError(t, err)
	assert.Equal(t, "Émile", res.Items[0].Name)

	q.PageSize = 0
	_, err = svc.ListUsers(ctx, q)
	assert.ErrorIs(t, err, app.ErrInvalidPageParameters)
}
