package apperrors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFieldConflict(t *testing.T) {
	ce := NewFieldConflict("email", "email already exists")
	assert.Equal(t, "Validation failed", ce.Message)
	assert.Equal(t, []string{"email already exists"}, ce.Errors["email"])
	assert.Contains(t, ce.Error(), "email already exists")
}

func TestAsConflict(t *testing.T) {
	ce := NewFieldConflict("email", "email already exists")
	wrapped := fmt.Errorf("creating user: %w", ce)

	got, ok := AsConflict(wrapped)
	require.True(t, ok)
	assert.Same(t, ce, got)

	_, ok = AsConflict(fmt.Errorf("plain failure"))
	assert.False(t, ok)
}
