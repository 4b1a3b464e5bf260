// Package sqlite implements the todo repositories on an embedded SQLite file through gorm.
package sqlite

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"gotodo/internal/todo/domain/entities"
)

type taskModel struct {
	ID            string    `gorm:"primarykey;size:36"`
	Title         string    `gorm:"size:100;not null"`
	Description   string    `gorm:"size:500;not null"`
	CreatedAt     time.Time `gorm:"not null;index"`
	DueDate       *time.Time
	Status        string `gorm:"size:16;not null;index"`
	StatusOrder   int    `gorm:"not null"`
	Priority      string `gorm:"size:16;not null;index"`
	PriorityOrder int    `gorm:"not null"`
}

func (taskModel) TableName() string {
	return "tasks"
}

func newTaskModel(t entities.Task) taskModel {
	return taskModel{
		ID:            t.ID.String(),
		Title:         t.Title,
		Description:   t.Description,
		CreatedAt:     t.CreatedAt,
		DueDate:       t.Clone().DueDate,
		Status:        t.Status.String(),
		StatusOrder:   t.Status.SortOrder(),
		Priority:      t.Priority.String(),
		PriorityOrder: t.Priority.SortOrder(),
	}
}

func (m taskModel) toEntity() (entities.Task, error) {
	id, err := uuid.Parse(m.ID)
	if err != nil {
		return entities.Task{}, fmt.Errorf("invalid task id %q: %w", m.ID, err)
	}

	var due *time.Time
	if m.DueDate != nil {
		d := m.DueDate.UTC()
		due = &d
	}

	return entities.Task{
		ID:          id,
		Title:       m.Title,
		Description: m.Description,
		CreatedAt:   m.CreatedAt.UTC(),
		DueDate:     due,
		Status:      entities.Status(m.Status),
		Priority:    entities.Priority(m.Priority),
	}, nil
}

type userModel struct {
	ID        string    `gorm:"size:36;not null"`
	Name      string    `gorm:"size:50;not null"`
	Email     string    `gorm:"primarykey"`
	CreatedAt time.Time `gorm:"not null"`
}

func (userModel) TableName() string {
	return "users"
}

func newUserModel(u entities.User) userModel {
	return userModel{ID: u.ID.String(), Name: u.Name, Email: u.Email, CreatedAt: u.CreatedAt}
}

func (m userModel) toEntity() (entities.User, error) {
	id, err := uuid.Parse(m.ID)
	if err != nil {
		return entities.User{}, fmt.Errorf("invalid user id %q: %w", m.ID, err)
	}
	return entities.User{ID: id, Name: m.Name, Email: m.Email, CreatedAt: m.CreatedAt.UTC()}, nil
}
