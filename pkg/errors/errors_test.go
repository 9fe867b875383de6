package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCapturesStack(t *testing.T) {
	err := New(ErrorTypeValidation, "bad length")

	assert.Equal(t, "validation: bad length", err.Error())
	require.NotEmpty(t, err.Stack)
}

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("disk full")
	err := Wrap(cause, ErrorTypeInternal, "flush failed")

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "internal: flush failed: disk full", err.Error())

	// Wrapping our own error keeps the original stack.
	outer := Wrap(err, ErrorTypeConfig, "startup aborted")
	assert.Equal(t, err.Stack[0], outer.Stack[0])
}

func TestWrapNil(t *testing.T) {
	assert.Nil(t, Wrap(nil, ErrorTypeInternal, "ignored"))
}

func TestIsType(t *testing.T) {
	err := New(ErrorTypeCorruption, "double-return of *intList")

	assert.True(t, IsType(err, ErrorTypeCorruption))
	assert.False(t, IsType(err, ErrorTypeConfig))
	assert.False(t, IsType(errors.New("plain"), ErrorTypeCorruption))
}

func TestWithDetail(t *testing.T) {
	err := New(ErrorTypeValidation, "bad workers").WithDetail("workers", -1)
	assert.Equal(t, -1, err.Details["workers"])
}
