package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidationError(t *testing.T) {
	wrapped := fmt.Errorf("creating transfer: %w", ErrTransferSameAccount)

	assert.True(t, IsValidationError(wrapped))
	assert.Equal(t, "creating transfer: Select a different account to transfer to.", wrapped.Error())
	assert.False(t, IsValidationError(ErrAccountNotFound))
}

func TestValidationErrors(t *testing.T) {
	ve := &ValidationErrors{}
	assert.NoError(t, ve.OrNil())

	ve.Add(NewValidationError("Name is required"))
	ve.Add(NewValidationError("Invalid account type"))

	err := ve.OrNil()
	assert.Error(t, err)
	assert.True(t, IsValidationErrors(err))
	assert.Equal(t, []string{"Name is required", "Invalid account type"}, ve.Messages())
	assert.Equal(t, "multiple validation errors: Name is required; Invalid account type", err.Error())

	var target *ValidationErrors
	assert.True(t, errors.As(fmt.Errorf("wrap: %w", err), &target))
}
