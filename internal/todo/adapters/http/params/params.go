// Package params reads shared query parameters.
package params

import (
	"strconv"

	"github.com/gofiber/fiber/v3"

	"gotodo/internal/todo/domain/query"
)

// Page reads page and page_size. Missing values fall back to page 1 and
// defaultPageSize; range checks are left to the use cases.
func Page(ctx fiber.Ctx, defaultPageSize int) (page, pageSize int, err error) {
	page, err = strconv.Atoi(ctx.Query("page", strconv.Itoa(query.DefaultPage)))
	if err != nil {
		return 0, 0, err
	}
	pageSize, err = strconv.Atoi(ctx.Query("page_size", strconv.Itoa(defaultPageSize)))
	if err != nil {
		return 0, 0, err
	}
	return page, pageSize, nil
}
