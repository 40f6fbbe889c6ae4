package main

import (
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTreeErrorKinds(t *testing.T) {
	ioErr := ioError("cannot read directory", "/tmp/x", os.ErrPermission)
	assert.True(t, errors.Is(ioErr, ErrIO))
	assert.False(t, errors.Is(ioErr, ErrInvalidInput))
	assert.True(t, errors.Is(ioErr, os.ErrPermission))
	assert.Equal(t, "cannot read directory /tmp/x: permission denied", ioErr.Error())

	wrapped := fmt.Errorf("build failed: %w", invalidInput("unknown sort key", "color", nil))
	assert.True(t, errors.Is(wrapped, ErrInvalidInput))
	assert.False(t, errors.Is(wrapped, ErrIO))

	var treeErr *TreeError
	assert.True(t, errors.As(wrapped, &treeErr))
	assert.Equal(t, KindInvalidInput, treeErr.Kind)
	assert.Equal(t, "color", treeErr.Path)
}
