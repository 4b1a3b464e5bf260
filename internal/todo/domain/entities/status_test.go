package entities_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gotodo/internal/todo/domain/entities"
)

func TestStatus(t *testing.T) {
	assert.Equal(t, 0, entities.StatusTodo.SortOrder())
	assert.Equal(t, 1, entities.StatusInProgress.SortOrder())
	assert.Equal(t, 2, entities.StatusDone.SortOrder())
	assert.False(t, entities.Status("LATER").Valid())

	for in, want := range map[string]entities.Status{
		"TODO":        entities.StatusTodo,
		"todo":        entities.StatusTodo,
		"ONGOING":     entities.StatusInProgress,
		"inProgress":  entities.StatusInProgress,
		"in_progress": entities.StatusInProgress,
		" done ":      entities.StatusDone,
	} {
		got, err := entities.ParseStatus(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := entities.ParseStatus("blocked")
	assert.ErrorIs(t, err, entities.ErrInvalidStatus)
}

func TestPriority(t *testing.T) {
	assert.Equal(t, 0, entities.PriorityCritical.SortOrder())
	assert.Equal(t, 1, entities.PriorityHigh.SortOrder())
	assert.Equal(t, 2, entities.PriorityNormal.SortOrder())
	assert.Equal(t, 3, entities.PriorityLow.SortOrder())
	assert.True(t, entities.PriorityLow.Valid())
	assert.False(t, entities.Priority("").Valid())

	got, err := entities.ParsePriority("Critical")
	require.NoError(t, err)
	assert.Equal(t, entities.PriorityCritical, got)

	_, err = entities.ParsePriority("urgent")
	assert.ErrorIs(t, err, entities.ErrInvalidPriority)
}
