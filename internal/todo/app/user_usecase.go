package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"gotodo/internal/todo/domain/entities"
	"gotodo/internal/todo/domain/pagination"
	"gotodo/internal/todo/domain/query"
	"gotodo/internal/todo/ports/api"
	"gotodo/internal/todo/ports/repositories"
	"gotodo/pkg/logger"
)

const (
	methodCreateUser = "CreateUser"
	methodListUsers  = "ListUsers"

	msgCreatingUser      = "creating user"
	msgUserCreated       = "user created"
	msgEmailInUse        = "user with this email already exists"
	msgInvalidUser       = "user validation failed"
	msgListingUsers      = "listing users"
	msgErrCheckEmail     = "failed to check existing user"
	msgErrSaveUser       = "failed to save user"
	msgErrListUsers      = "failed to list users"
	errCtxCheckingUser   = "checking existing user"
	errCtxValidatingUser = "validating user"
	errCtxSavingUser     = "saving user"
	errCtxListingUsers   = "listing users"
)

// UserUseCaseImpl implements api.UserUseCase.
type UserUseCaseImpl struct {
	repo repositories.UserRepository
	opts options
}

// NewUserUseCase creates the user service on top of repo.
func NewUserUseCase(repo repositories.UserRepository, opts ...Option) api.UserUseCase {
	return &UserUseCaseImpl{repo: repo, opts: newOptions(opts)}
}

// CreateUser registers a user. The email must not be taken yet.
func (uc *UserUseCaseImpl) CreateUser(ctx context.Context, name, email string) (entities.User, error) {
	log := logger.Log(ctx).With(zap.String("method", methodCreateUser), zap.String("email", email))
	log.Debug(ctx, msgCreatingUser)

	existing, err := uc.repo.FindByEmail(ctx, email)
	if err != nil {
		log.Error(ctx, msgErrCheckEmail, zap.Error(err))
		return entities.User{}, fmt.Errorf("%s: %w", errCtxCheckingUser, err)
	}
	if existing != nil {
		log.Debug(ctx, msgEmailInUse)
		return entities.User{}, entities.ErrEmailAlreadyInUse
	}

	user, err := entities.NewUser(name, email, uc.opts.now())
	if err != nil {
		log.Debug(ctx, msgInvalidUser, zap.Error(err))
		return entities.User{}, fmt.Errorf("%s: %w", errCtxValidatingUser, err)
	}

	if err := uc.repo.Save(ctx, user); err != nil {
		log.Error(ctx, msgErrSaveUser, zap.Error(err))
		return entities.User{}, fmt.Errorf("%s: %w", errCtxSavingUser, err)
	}

	log.Info(ctx, msgUserCreated, zap.String("user_id", user.ID.String()))
	return user, nil
}

// ListUsers returns a sorted page of users.
func (uc *UserUseCaseImpl) ListUsers(ctx context.Context, q query.UserQuery) (pagination.Result[entities.User], error) {
	log := logger.Log(ctx).With(zap.String("method", methodListUsers), zap.Int("page", q.Page), zap.Int("page_size", q.PageSize))
	log.Debug(ctx, msgListingUsers)

	if err := validatePage(q.Page, q.PageSize); err != nil {
		log.Debug(ctx, msgInvalidPage)
		return pagination.Result[entities.User]{}, err
	}

	res, err := uc.repo.List(ctx, q)
	if err != nil {
		log.Error(ctx, msgErrListUsers, zap.Error(err))
		return pagination.Result[entities.User]{}, fmt.Errorf("%s: %w", errCtxListingUsers, err)
	}
	return res, nil
}
