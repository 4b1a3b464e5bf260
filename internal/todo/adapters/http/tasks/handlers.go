// Package tasks contains the HTTP handlers for tasks.
package tasks

import (
	"strings"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"gotodo/internal/todo/adapters/http/dto"
	"gotodo/internal/todo/adapters/http/middleware"
	"gotodo/internal/todo/adapters/http/params"
	"gotodo/internal/todo/adapters/http/respond"
	"gotodo/internal/todo/domain/entities"
	"gotodo/internal/todo/domain/query"
	"gotodo/internal/todo/ports/api"
	"gotodo/pkg/logger"
)

const (
	LogHandlerCreateTask     = "handling create task request"
	LogHandlerGetTask        = "handling get task request"
	LogHandlerUpdateTask     = "handling update task request"
	LogHandlerChangeStatus   = "handling change status request"
	LogHandlerChangePriority = "handling change priority request"
	LogHandlerSetDueDate     = "handling set due date request"
	LogHandlerDeleteTask     = "handling delete task request"
	LogHandlerListTasks      = "handling list tasks request"

	paramTaskID = "task_id"
)

// Handler serves /tasks.
type Handler struct {
	tasks           api.TaskUseCase
	defaultPageSize int
}

// NewHandler creates a task handler. A non-positive defaultPageSize means query.DefaultPageSize.
func NewHandler(tasks api.TaskUseCase, defaultPageSize int) *Handler {
	if defaultPageSize <= 0 {
		defaultPageSize = query.DefaultPageSize
	}
	return &Handler{tasks: tasks, defaultPageSize: defaultPageSize}
}

// CreateTask handles POST /tasks.
func (h *Handler) CreateTask(ctx fiber.Ctx) error {
	reqCtx := middleware.RequestContext(ctx)
	log := logger.Log(reqCtx).With(zap.String("handler", "Handler.CreateTask"))
	log.Debug(reqCtx, LogHandlerCreateTask)

	var req dto.CreateTaskRequest
	if err := ctx.Bind().Body(&req); err != nil {
		log.Debug(reqCtx, respond.ErrMsgInvalidRequestBody, zap.Error(err))
		return respond.BadRequest(ctx, respond.ErrMsgInvalidRequestBody)
	}

	var priority entities.Priority
	if strings.TrimSpace(req.Priority) != "" {
		p, err := entities.ParsePriority(req.Priority)
		if err != nil {
			return respond.Error(ctx, err)
		}
		priority = p
	}

	task, err := h.tasks.CreateTask(reqCtx, req.Title, req.Description, priority)
	if err != nil {
		log.Debug(reqCtx, "failed to create task", zap.Error(err))
		return respond.Error(ctx, err)
	}

	return respond.JSON(ctx, fiber.StatusCreated, dto.FromTask(task))
}

// GetTask handles GET /tasks/:task_id.
func (h *Handler) GetTask(ctx fiber.Ctx) error {
	reqCtx := middleware.RequestContext(ctx)
	log := logger.Log(reqCtx).With(zap.String("handler", "Handler.GetTask"))
	log.Debug(reqCtx, LogHandlerGetTask)

	task, err := h.tasks.FindTask(reqCtx, ctx.Params(paramTaskID))
	if err != nil {
		log.Debug(reqCtx, "failed to get task", zap.Error(err))
		return respond.Error(ctx, err)
	}

	return respond.JSON(ctx, fiber.StatusOK, dto.FromTask(task))
}

// UpdateTask handles PUT /tasks/:task_id.
func (h *Handler) UpdateTask(ctx fiber.Ctx) error {
	reqCtx := middleware.RequestContext(ctx)
	log := logger.Log(reqCtx).With(zap.String("handler", "Handler.UpdateTask"))
	log.Debug(reqCtx, LogHandlerUpdateTask)

	var req dto.UpdateTaskRequest
	if err := ctx.Bind().Body(&req); err != nil {
		log.Debug(reqCtx, respond.ErrMsgInvalidRequestBody, zap.Error(err))
		return respond.BadRequest(ctx, respond.ErrMsgInvalidRequestBody)
	}

	task, err := h.tasks.UpdateTask(reqCtx, ctx.Params(paramTaskID), req.Title, req.Description)
	if err != nil {
		log.Debug(reqCtx, "failed to update task", zap.Error(err))
		return respond.Error(ctx, err)
	}

	return respond.JSON(ctx, fiber.StatusOK, dto.FromTask(task))
}

// ChangeStatus handles PATCH /tasks/:task_id/status.
func (h *Handler) ChangeStatus(ctx fiber.Ctx) error {
	reqCtx := middleware.RequestContext(ctx)
	log := logger.Log(reqCtx).With(zap.String("handler", "Handler.ChangeStatus"))
	log.Debug(reqCtx, LogHandlerChangeStatus)

	var req dto.ChangeStatusRequest
	if err := ctx.Bind().Body(&req); err != nil {
		log.Debug(reqCtx, respond.ErrMsgInvalidRequestBody, zap.Error(err))
		return respond.BadRequest(ctx, respond.ErrMsgInvalidRequestBody)
	}

	status, err := entities.ParseStatus(req.Status)
	if err != nil {
		return respond.Error(ctx, err)
	}

	task, err := h.tasks.ChangeTaskStatus(reqCtx, ctx.Params(paramTaskID), status)
	if err != nil {
		log.Debug(reqCtx, "failed to change task status", zap.Error(err))
		return respond.Error(ctx, err)
	}

	return respond.JSON(ctx, fiber.StatusOK, dto.FromTask(task))
}

// ChangePriority handles PATCH /tasks/:task_id/priority.
func (h *Handler) ChangePriority(ctx fiber.Ctx) error {
	reqCtx := middleware.RequestContext(ctx)
	log := logger.Log(reqCtx).With(zap.String("handler", "Handler.ChangePriority"))
	log.Debug(reqCtx, LogHandlerChangePriority)

	var req dto.ChangePriorityRequest
	if err := ctx.Bind().Body(&req); err != nil {
		log.Debug(reqCtx, respond.ErrMsgInvalidRequestBody, zap.Error(err))
		return respond.BadRequest(ctx, respond.ErrMsgInvalidRequestBody)
	}

	priority, err := entities.ParsePriority(req.Priority)
	if err != nil {
		return respond.Error(ctx, err)
	}

	task, err := h.tasks.ChangeTaskPriority(reqCtx, ctx.Params(paramTaskID), priority)
	if err != nil {
		log.Debug(reqCtx, "failed to change task priority", zap.Error(err))
		return respond.Error(ctx, err)
	}

	return respond.JSON(ctx, fiber.StatusOK, dto.FromTask(task))
}

// SetDueDate handles PATCH /tasks/:task_id/due-date.
func (h *Handler) SetDueDate(ctx fiber.Ctx) error {
	reqCtx := middleware.RequestContext(ctx)
	log := logger.Log(reqCtx).With(zap.String("handler", "Handler.SetDueDate"))
	log.Debug(reqCtx, LogHandlerSetDueDate)

	var req dto.SetDueDateRequest
	if err := ctx.Bind().Body(&req); err != nil {
		log.Debug(reqCtx, respond.ErrMsgInvalidRequestBody, zap.Error(err))
		return respond.BadRequest(ctx, respond.ErrMsgInvalidRequestBody)
	}

	task, err := h.tasks.SetTaskDueDate(reqCtx, ctx.Params(paramTaskID), req.DueDate)
	if err != nil {
		log.Debug(reqCtx, "failed to set task due date", zap.Error(err))
		return respond.Error(ctx, err)
	}

	return respond.JSON(ctx, fiber.StatusOK, dto.FromTask(task))
}

// DeleteTask handles DELETE /tasks/:task_id.
func (h *Handler) DeleteTask(ctx fiber.Ctx) error {
	reqCtx := middleware.RequestContext(ctx)
	log := logger.Log(reqCtx).With(zap.String("handler", "Handler.DeleteTask"))
	log.Debug(reqCtx, LogHandlerDeleteTask)

	if err := h.tasks.DeleteTask(reqCtx, ctx.Params(paramTaskID)); err != nil {
		log.Debug(reqCtx, "failed to delete task", zap.Error(err))
		return respond.Error(ctx, err)
	}

	return ctx.SendStatus(fiber.StatusNoContent)
}

// ListTasks handles GET /tasks. Without sort, order, filter or search parameters
// it uses the plain newest-first listing.
func (h *Handler) ListTasks(ctx fiber.Ctx) error {
	reqCtx := middleware.RequestContext(ctx)
	log := logger.Log(reqCtx).With(zap.String("handler", "Handler.ListTasks"))
	log.Debug(reqCtx, LogHandlerListTasks)

	page, pageSize, err := params.Page(ctx, h.defaultPageSize)
	if err != nil {
		log.Debug(reqCtx, respond.ErrMsgInvalidPagination, zap.Error(err))
		return respond.BadRequest(ctx, respond.ErrMsgInvalidPagination)
	}

	q, plain, err := taskQuery(ctx)
	if err != nil {
		return respond.Error(ctx, err)
	}
	q.Page, q.PageSize = page, pageSize

	var res dto.TaskList
	if plain {
		r, err := h.tasks.ListTasks(reqCtx, page, pageSize)
		if err != nil {
			log.Debug(reqCtx, "failed to list tasks", zap.Error(err))
			return respond.Error(ctx, err)
		}
		res = dto.FromTaskPage(r)
	} else {
		r, err := h.tasks.ListFilteredTasks(reqCtx, q)
		if err != nil {
			log.Debug(reqCtx, "failed to list filtered tasks", zap.Error(err))
			return respond.Error(ctx, err)
		}
		res = dto.FromTaskPage(r)
	}

	return respond.JSON(ctx, fiber.StatusOK, res)
}

// taskQuery reads sort, order, status, priority and search. plain is true
// when none of them is set.
func taskQuery(ctx fiber.Ctx) (q query.TaskQuery, plain bool, err error) {
	sortKey, order := ctx.Query("sort"), ctx.Query("order")
	status, priority := ctx.Query("status"), ctx.Query("priority")
	search := ctx.Query("search")

	q = query.DefaultTaskQuery()
	if q.Sort, err = query.ParseTaskSort(sortKey, order); err != nil {
		return q, false, err
	}
	if status != "" {
		s, err := entities.ParseStatus(status)
		if err != nil {
			return q, false, err
		}
		q = q.WithStatus(s)
	}
	if priority != "" {
		p, err := entities.ParsePriority(priority)
		if err != nil {
			return q, false, err
		}
		q = q.WithPriority(p)
	}
	q.Search = search

	plain = sortKey == "" && order == "" && !q.Filtered()
	return q, plain, nil
}
