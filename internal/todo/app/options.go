// Package app implements the task and user use cases.
package app

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"gotodo/internal/todo/domain/entities"
)

// Input-shape errors.
var (
	ErrInvalidIDFormat       = errors.New("invalid id format")
	ErrInvalidPageParameters = errors.New("page and page size must be positive")
)

// Clock returns the current time.
type Clock func() time.Time

type options struct {
	now Clock
}

// Option configures a use case.
type Option func(*options)

// WithClock overrides the time source used for creation timestamps.
func WithClock(c Clock) Option {
	return func(o *options) {
		if c != nil {
			o.now = c
		}
	}
}

func newOptions(opts []Option) options {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// canonicalIDLength is the length of the hyphenated 8-4-4-4-12 form.
const canonicalIDLength = 36

// parseID accepts only the canonical hyphenated form; uuid.Parse alone would
// also take the bare, braced and urn:uuid: variants.
func parseID(s string) (uuid.UUID, error) {
	if len(s) != canonicalIDLength {
		return uuid.Nil, ErrInvalidIDFormat
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, ErrInvalidIDFormat
	}
	return id, nil
}

func validatePage(page, pageSize int) error {
	if page <= 0 || pageSize <= 0 {
		return ErrInvalidPageParameters
	}
	return nil
}

func isNotFound(err error) bool {
	return errors.Is(err, entities.ErrTaskNotFound)
}
