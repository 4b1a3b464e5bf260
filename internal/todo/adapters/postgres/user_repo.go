package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"gotodo/internal/todo/domain/entities"
	"gotodo/internal/todo/domain/pagination"
	"gotodo/internal/todo/domain/query"
	"gotodo/internal/todo/ports/repositories"
	"gotodo/pkg/logger"
)

const (
	errCtxFindUser   = "error querying user by email"
	errCtxSaveUser   = "error saving user"
	errCtxCountUsers = "error counting users"
	errCtxListUsers  = "error listing users"
)

// UserRepository stores users in the users table.
type UserRepository struct {
	pool PgxPoolInterface
}

// NewUserRepository creates a user repository over pool.
func NewUserRepository(pool PgxPoolInterface) repositories.UserRepository {
	return &UserRepository{pool: pool}
}

// Save upserts the user by email.
func (r *UserRepository) Save(ctx context.Context, user entities.User) error {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "Save"))

	sql := `
        INSERT INTO users (id, name, email, created_at)
        VALUES ($1, $2, $3, $4)
        ON CONFLICT (email) DO UPDATE SET
            id = EXCLUDED.id,
            name = EXCLUDED.name,
            created_at = EXCLUDED.created_at
    `

	if _, err := r.pool.Exec(ctx, sql, user.ID.String(), user.Name, user.Email, user.CreatedAt); err != nil {
		log.Error(ctx, errCtxSaveUser, zap.Error(err))
		return fmt.Errorf("%s: %w", errCtxSaveUser, err)
	}
	return nil
}

// FindByEmail returns nil, nil when no user has the email.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "FindByEmail"))

	sql := `SELECT id, name, email, created_at FROM users WHERE email = $1`

	user, err := scanUser(r.pool.QueryRow(ctx, sql, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "user not found", zap.String("email", email))
			return nil, nil //nolint:nilnil
		}
		log.Error(ctx, errCtxFindUser, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxFindUser, err)
	}
	return &user, nil
}

// List returns a sorted page of users.
func (r *UserRepository) List(ctx context.Context, q query.UserQuery) (pagination.Result[entities.User], error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "List"))

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&total); err != nil {
		log.Error(ctx, errCtxCountUsers, zap.Error(err))
		return pagination.Result[entities.User]{}, fmt.Errorf("%s: %w", errCtxCountUsers, err)
	}

	offset, ok := pagination.Offset(q.Page, q.PageSize, total)
	if !ok {
		return pagination.NewResult[entities.User](nil, q.Page, q.PageSize, total), nil
	}

	sql := `SELECT id, name, email, created_at FROM users` + userOrderBy(q.Sort) + ` LIMIT $1 OFFSET $2`

	rows, err := r.pool.Query(ctx, sql, q.PageSize, offset)
	if err != nil {
		log.Error(ctx, errCtxListUsers, zap.Error(err))
		return pagination.Result[entities.User]{}, fmt.Errorf("%s: %w", errCtxListUsers, err)
	}
	defer rows.Close()

	items := make([]entities.User, 0, q.PageSize)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			log.Error(ctx, errCtxListUsers, zap.Error(err))
			return pagination.Result[entities.User]{}, fmt.Errorf("%s: %w", errCtxListUsers, err)
		}
		items = append(items, user)
	}
	if err := rows.Err(); err != nil {
		log.Error(ctx, errCtxListUsers, zap.Error(err))
		return pagination.Result[entities.User]{}, fmt.Errorf("%s: %w", errCtxListUsers, err)
	}

	return pagination.NewResult(items, q.Page, q.PageSize, total), nil
}

func scanUser(row pgx.Row) (entities.User, error) {
	var (
		user entities.User
		id   string
	)
	if err := row.Scan(&id, &user.Name, &user.Email, &user.CreatedAt); err != nil {
		return entities.User{}, err
	}

	parsed, err := uuid.Parse(id)
	if err != nil {
		return entities.User{}, fmt.Errorf("invalid user id %q: %w", id, err)
	}
	user.ID = parsed
	return user, nil
}
