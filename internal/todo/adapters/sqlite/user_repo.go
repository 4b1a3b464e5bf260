package sqlite

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"gotodo/internal/todo/domain/entities"
	"gotodo/internal/todo/domain/pagination"
	"gotodo/internal/todo/domain/query"
	"gotodo/internal/todo/ports/repositories"
	"gotodo/pkg/logger"
)

const (
	errCtxFindUser  = "failed to find user"
	errCtxSaveUser  = "failed to save user"
	errCtxListUsers = "failed to list users"
)

// UserRepository stores users in SQLite keyed by email.
type UserRepository struct {
	db       *gorm.DB
	composer *query.Composer
}

var _ repositories.UserRepository = (*UserRepository)(nil)

// NewUserRepository creates the repository.
func NewUserRepository(db *gorm.DB, composer *query.Composer) *UserRepository {
	if composer == nil {
		composer = query.DefaultComposer()
	}
	return &UserRepository{db: db, composer: composer}
}

func (r *UserRepository) Save(ctx context.Context, user entities.User) error {
	m := newUserModel(user)
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}},
		DoUpdates: clause.AssignmentColumns([]string{"id", "name", "created_at"}),
	}).Create(&m).Error
	if err != nil {
		logger.Log(ctx).Error(ctx, errCtxSaveUser, zap.Error(err))
		return fmt.Errorf("%s: %w", errCtxSaveUser, err)
	}
	return nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	var m userModel
	if err := r.db.WithContext(ctx).Where("email = ?", email).Take(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil //nolint:nilnil
		}
		logger.Log(ctx).Error(ctx, errCtxFindUser, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxFindUser, err)
	}

	user, err := m.toEntity()
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) List(ctx context.Context, q query.UserQuery) (pagination.Result[entities.User], error) {
	var models []userModel
	if err := r.db.WithContext(ctx).Find(&models).Error; err != nil {
		logger.Log(ctx).Error(ctx, errCtxListUsers, zap.Error(err))
		return pagination.Result[entities.User]{}, fmt.Errorf("%s: %w", errCtxListUsers, err)
	}

	users := make([]entities.User, 0, len(models))
	for _, m := range models {
		u, err := m.toEntity()
		if err != nil {
			return pagination.Result[entities.User]{}, fmt.Errorf("%s: %w", errCtxListUsers, err)
		}
		users = append(users, u)
	}
	return r.composer.Users(users, q), nil
}
