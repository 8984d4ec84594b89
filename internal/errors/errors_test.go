package errors

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorCodes(t *testing.T) {
	codes := []string{ErrConfig, ErrAPI, ErrState}

	seen := make(map[string]bool)
	for _, code := range codes {
		assert.NotEmpty(t, code)
		assert.False(t, seen[code], "error code %q should be unique", code)
		seen[code] = true
	}
}

func TestNew(t *testing.T) {
	err := New(ErrAPI, "Enclosure dashboard call failed", "Check the middleware is reachable")

	require.NotNil(t, err)
	assert.Equal(t, ErrAPI, err.Code)
	assert.Equal(t, "Enclosure dashboard call failed", err.Message)
	assert.Nil(t, err.Cause)

	msg := err.Error()
	assert.True(t, strings.HasPrefix(msg, "✗ "))
	assert.Contains(t, msg, "Check the middleware is reachable")
}

func TestWrap(t *testing.T) {
	cause := errors.New("connection reset")
	err := Wrap(cause, "Lost middleware connection")

	assert.Equal(t, ErrAPI, err.Code)
	assert.Equal(t, cause, err.Cause)
	assert.Contains(t, err.Error(), "connection reset")
}

func TestWrapWithCode(t *testing.T) {
	cause := errors.New("yaml: line 3: mapping values")
	err := WrapWithCode(cause, ErrConfig, "Failed to parse config", "Check the file is valid YAML")

	assert.Equal(t, ErrConfig, err.Code)
	assert.Contains(t, err.Error(), "Failed to parse config")
	assert.Contains(t, err.Error(), "yaml: line 3")
	assert.Contains(t, err.Error(), "valid YAML")
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := Wrap(cause, "wrapped")

	assert.True(t, errors.Is(err, cause))

	var serr *Error
	require.True(t, errors.As(error(err), &serr))
	assert.Equal(t, "wrapped", serr.Message)
}

func TestIsCode(t *testing.T) {
	err := New(ErrState, "Store already closed", "")

	assert.True(t, IsCode(err, ErrState))
	assert.False(t, IsCode(err, ErrConfig))
	assert.False(t, IsCode(nil, ErrState))
	assert.False(t, IsCode(errors.New("plain"), ErrState))
}
