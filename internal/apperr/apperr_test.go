package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindValidation, KindOf(Validation("empty invitee list")))
	assert.Equal(t, KindNotFound, KindOf(NotFound("habit %s not found", "x")))
	assert.Equal(t, KindUnauthenticated, KindOf(Unauthenticated("missing session")))
	assert.Equal(t, KindUnauthorized, KindOf(Unauthorized("not the owner")))
	assert.Equal(t, KindConflict, KindOf(Conflict("habit already exists")))
	assert.Equal(t, KindUnknown, KindOf(errors.New("plain")))
	assert.Equal(t, KindUnknown, KindOf(nil))
}

func TestKindOfWrapped(t *testing.T) {
	inner := NotFound("marathon not found")
	wrapped := fmt.Errorf("get progress: %w", inner)
	assert.Equal(t, KindNotFound, KindOf(wrapped))
}

func TestIsMatchesByKind(t *testing.T) {
	err := fmt.Errorf("outer: %w", Conflict("duplicate invitation"))
	assert.True(t, errors.Is(err, Conflict("")))
	assert.False(t, errors.Is(err, NotFound("")))
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("no rows")
	err := Wrap(KindNotFound, cause, "invitation not found")
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "invitation not found")
}
