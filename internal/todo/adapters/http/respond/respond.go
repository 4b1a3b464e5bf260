// Package respond writes JSON responses and maps domain errors to HTTP statuses.
package respond

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v3"

	"gotodo/internal/todo/adapters/http/dto"
	"gotodo/internal/todo/app"
	"gotodo/internal/todo/domain/entities"
)

const (
	ErrMsgInvalidRequestBody = "invalid request body"
	ErrMsgInvalidPagination  = "invalid pagination parameters"
	ErrMsgInternal           = "internal server error"
)

var badRequest = []error{
	entities.ErrTitleRequired,
	entities.ErrTitleTooLong,
	entities.ErrDescriptionTooLong,
	entities.ErrNameRequired,
	entities.ErrNameTooLong,
	entities.ErrInvalidEmailFormat,
	entities.ErrInvalidStatus,
	entities.ErrInvalidPriority,
	entities.ErrInvalidSortCriteria,
	app.ErrInvalidIDFormat,
	app.ErrInvalidPageParameters,
}

// Status returns the HTTP status for err.
func Status(err error) int {
	switch {
	case errors.Is(err, entities.ErrTaskNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, entities.ErrEmailAlreadyInUse):
		return fiber.StatusConflict
	}

	for _, target := range badRequest {
		if errors.Is(err, target) {
			return fiber.StatusBadRequest
		}
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return fiberErr.Code
	}

	return fiber.StatusInternalServerError
}

// Error writes err with its mapped status. Internal failures are not echoed.
func Error(ctx fiber.Ctx, err error) error {
	status := Status(err)
	msg := err.Error()
	if status == fiber.StatusInternalServerError {
		msg = ErrMsgInternal
	}
	return JSON(ctx, status, dto.ErrorResponse{Error: msg})
}

// BadRequest writes a 400 with msg.
func BadRequest(ctx fiber.Ctx, msg string) error {
	return JSON(ctx, fiber.StatusBadRequest, dto.ErrorResponse{Error: msg})
}

// JSON writes body with status.
func JSON(ctx fiber.Ctx, status int, body any) error {
	if err := ctx.Status(status).JSON(body); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}
