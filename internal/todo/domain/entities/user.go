package entities

import (
	"time"

	"github.com/google/uuid"
)

// User is a registered person. Email is the uniqueness key.
type User struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// NewUser validates the fields and builds a user with a fresh id.
func NewUser(name, email string, createdAt time.Time) (User, error) {
	name, email, err := ValidateUserFields(name, email)
	if err != nil {
		return User{}, err
	}

	return User{
		ID:        uuid.New(),
		Name:      name,
		Email:     email,
		CreatedAt: createdAt,
	}, nil
}
