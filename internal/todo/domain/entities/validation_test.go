package entities_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gotodo/internal/todo/domain/entities"
)

func TestValidateTaskFields(t *testing.T) {
	tests := []struct {
		name        string
		title       string
		description string
		wantTitle   string
		wantErr     error
		wantCount   int
	}{
		{name: "trims title", title: "  Buy milk \n", description: "two litres", wantTitle: "Buy milk"},
		{name: "empty title", title: "", wantErr: entities.ErrTitleRequired},
		{name: "whitespace title", title: " \t\n ", wantErr: entities.ErrTitleRequired},
		{name: "title at limit", title: strings.Repeat("a", 100), wantTitle: strings.Repeat("a", 100)},
		{name: "title over limit", title: strings.Repeat("a", 101), wantErr: entities.ErrTitleTooLong, wantCount: 101},
		{name: "title limit counts after trim", title: "  " + strings.Repeat("a", 100) + "  ", wantTitle: strings.Repeat("a", 100)},
		{name: "multibyte title counts characters", title: strings.Repeat("é", 100), wantTitle: strings.Repeat("é", 100)},
		{name: "combining sequences count once", title: strings.Repeat("e\u0301", 60), wantTitle: strings.Repeat("e\u0301", 60)},
		{name: "combining sequences over limit", title: strings.Repeat("e\u0301", 101), wantErr: entities.ErrTitleTooLong, wantCount: 101},
		{name: "emoji sequence is one character", title: strings.Repeat("👩‍💻", 100), wantTitle: strings.Repeat("👩‍💻", 100)},
		{name: "description over limit", title: "ok", description: strings.Repeat("d", 501), wantErr: entities.ErrDescriptionTooLong, wantCount: 501},
		{name: "description at limit", title: "ok", description: strings.Repeat("d", 500), wantTitle: "ok"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			title, desc, err := entities.ValidateTaskFields(tt.title, tt.description)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				if tt.wantCount > 0 {
					var lenErr *entities.LengthError
					require.ErrorAs(t, err, &lenErr)
					assert.Equal(t, tt.wantCount, lenErr.Count)
				}
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantTitle, title)
			assert.Equal(t, tt.description, desc)
		})
	}
}

func TestValidateUserFields(t *testing.T) {
	tests := []struct {
		name     string
		userName string
		email    string
		wantName string
		wantErr  error
	}{
		{name: "valid", userName: "  Ada ", email: "ada@example.com", wantName: "Ada"},
		{name: "empty name", userName: "   ", email: "ada@example.com", wantErr: entities.ErrNameRequired},
		{name: "long name", userName: strings.Repeat("n", 51), email: "a@b.c", wantErr: entities.ErrNameTooLong},
		{name: "combining name at limit", userName: strings.Repeat("n\u0303", 50), email: "a@b.c", wantName: strings.Repeat("n\u0303", 50)},
		{name: "missing at", userName: "Ada", email: "ada.example.com", wantErr: entities.ErrInvalidEmailFormat},
		{name: "missing dot", userName: "Ada", email: "ada@example", wantErr: entities.ErrInvalidEmailFormat},
		{name: "empty email", userName: "Ada", email: "", wantErr: entities.ErrInvalidEmailFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			name, email, err := entities.ValidateUserFields(tt.userName, tt.email)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, name)
			assert.Equal(t, tt.email, email)
		})
	}
}

func TestLengthError(t *testing.T) {
	_, _, err := entities.ValidateUserFields(strings.Repeat("n", 60), "a@b.c")

	var lenErr *entities.LengthError
	require.ErrorAs(t, err, &lenErr)
	assert.Equal(t, 60, lenErr.Count)
	assert.Equal(t, entities.MaxNameLength, lenErr.Max)
	assert.Contains(t, err.Error(), "60 characters")
}
