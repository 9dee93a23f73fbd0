package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsMatchesCode(t *testing.T) {
	err := NotFound("User", nil)

	assert.True(t, Is(err, "NOT_FOUND"))
	assert.False(t, Is(err, "BAD_REQUEST"))
}

func TestIsSeesThroughWrapping(t *testing.T) {
	err := fmt.Errorf("handler: %w", Forbidden("nope", nil))

	assert.True(t, Is(err, "FORBIDDEN"))
}

func TestIsRejectsPlainErrors(t *testing.T) {
	assert.False(t, Is(fmt.Errorf("boom"), "INTERNAL_ERROR"))
	assert.False(t, Is(nil, "NOT_FOUND"))
}

func TestUnwrapExposesCause(t *testing.T) {
	cause := fmt.Errorf("socket closed")
	err := Internal("request failed", cause)

	assert.ErrorIs(t, err, cause)
}
