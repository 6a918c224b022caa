package core

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPreconditionErrors(t *testing.T) {
	assert.True(t, IsPreconditionFailed(ErrProjectNotFound))
	assert.True(t, IsPreconditionFailed(ErrProjectWrongState))
	assert.True(t, IsPreconditionFailed(fmt.Errorf("complete proj-x: %w", ErrProjectWrongState)))
	assert.False(t, IsPreconditionFailed(errors.New("discord: 403 forbidden")))

	assert.False(t, errors.Is(ErrProjectNotFound, ErrProjectWrongState))
}

func TestIsNotFoundError(t *testing.T) {
	assert.True(t, IsNotFoundError(ErrCategoryNotFound))
	assert.True(t, IsNotFoundError(fmt.Errorf("lookup Active Projects: %w", ErrCategoryNotFound)))
	assert.False(t, IsNotFoundError(nil))
	assert.False(t, IsNotFoundError(ErrProjectNotFound))
	assert.Equal(t, "category not found", ErrCategoryNotFound.Error())
}
