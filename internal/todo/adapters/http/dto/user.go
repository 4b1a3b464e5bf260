package dto

import (
	"time"

	"gotodo/internal/todo/domain/entities"
	"gotodo/internal/todo/domain/pagination"
)

// CreateUserRequest is the body of POST /users.
type CreateUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// User is a user as rendered by the API.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// UserList is one page of users.
type UserList struct {
	Items    []User              `json:"items"`
	Metadata pagination.Metadata `json:"metadata"`
}

func FromUser(u entities.User) User {
	return User{
		ID:        u.ID.String(),
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}

func FromUserPage(r pagination.Result[entities.User]) UserList {
	page := pagination.Map(r, FromUser)
	return UserList{Items: page.Items, Metadata: page.Metadata}
}
