package services_test

import (
	"errors"
	"postboard/domain/services"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatePost(t *testing.T) {
	t.Run("accepts complete post", func(t *testing.T) {
		assert.NoError(t, services.ValidatePost("Hello", "First post"))
	})

	cases := []struct {
		name           string
		title, content string
		fields         []string
	}{
		{"empty title", "", "First post", []string{"title"}},
		{"empty content", "Hello", "", []string{"content"}},
		{"both empty", "", "", []string{"title", "content"}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := services.ValidatePost(c.title, c.content)
			require.Error(t, err)
			assert.ErrorIs(t, err, services.ErrInvalidPost)

			var verr *services.ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, c.fields, verr.Fields)
		})
	}
}

func TestNotFoundError(t *testing.T) {
	err := error(&services.NotFoundError{ID: 7})

	assert.ErrorIs(t, err, services.ErrPostNotFound)
	assert.NotErrorIs(t, err, services.ErrInvalidPost)
	assert.Equal(t, "post 7 not found", err.Error())
}

func TestSortFieldValid(t *testing.T) {
	assert.True(t, services.SortByTitle.Valid())
	assert.True(t, services.SortByContent.Valid())
	assert.False(t, services.SortField("id").Valid())
	assert.False(t, services.SortField("").Valid())
}
