// Package users contains the HTTP handlers for users.
package users

import (
	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"gotodo/internal/todo/adapters/http/dto"
	"gotodo/internal/todo/adapters/http/middleware"
	"gotodo/internal/todo/adapters/http/params"
	"gotodo/internal/todo/adapters/http/respond"
	"gotodo/internal/todo/domain/query"
	"gotodo/internal/todo/ports/api"
	"gotodo/pkg/logger"
)

const (
	LogHandlerCreateUser = "handling create user request"
	LogHandlerListUsers  = "handling list users request"
)

// Handler serves /users.
type Handler struct {
	users           api.UserUseCase
	defaultPageSize int
}

func NewHandler(users api.UserUseCase, defaultPageSize int) *Handler {
	if defaultPageSize <= 0 {
		defaultPageSize = query.DefaultPageSize
	}
	return &Handler{users: users, defaultPageSize: defaultPageSize}
}

// CreateUser handles POST /users.
func (h *Handler) CreateUser(ctx fiber.Ctx) error {
	reqCtx := middleware.RequestContext(ctx)
	log := logger.Log(reqCtx).With(zap.String("handler", "Handler.CreateUser"))
	log.Debug(reqCtx, LogHandlerCreateUser)

	var req dto.CreateUserRequest
	if err := ctx.Bind().Body(&req); err != nil {
		log.Debug(reqCtx, respond.ErrMsgInvalidRequestBody, zap.Error(err))
		return respond.BadRequest(ctx, respond.ErrMsgInvalidRequestBody)
	}

	user, err := h.users.CreateUser(reqCtx, req.Name, req.Email)
	if err != nil {
		log.Debug(reqCtx, "failed to create user", zap.Error(err))
		return respond.Error(ctx, err)
	}

	return respond.JSON(ctx, fiber.StatusCreated, dto.FromUser(user))
}

// ListUsers handles GET /users.
func (h *Handler) ListUsers(ctx fiber.Ctx) error {
	reqCtx := middleware.RequestContext(ctx)
	log := logger.Log(reqCtx).With(zap.String("handler", "Handler.ListUsers"))
	log.Debug(reqCtx, LogHandlerListUsers)

	page, pageSize, err := params.Page(ctx, h.defaultPageSize)
	if err != nil {
		log.Debug(reqCtx, respond.ErrMsgInvalidPagination, zap.Error(err))
		return respond.BadRequest(ctx, respond.ErrMsgInvalidPagination)
	}

	sort, err := query.ParseUserSort(ctx.Query("sort"), ctx.Query("order"))
	if err != nil {
		return respond.Error(ctx, err)
	}

	res, err := h.users.ListUsers(reqCtx, query.UserQuery{Sort: sort, Page: page, PageSize: pageSize})
	if err != nil {
		log.Debug(reqCtx, "failed to list users", zap.Error(err))
		return respond.Error(ctx, err)
	}

	return respond.JSON(ctx, fiber.StatusOK, dto.FromUserPage(res))
}
