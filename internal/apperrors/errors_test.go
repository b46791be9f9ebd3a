package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
)

func TestStorage_Wraps(t *testing.T) {
	base := errors.New("disk I/O error")
	err := Storage("create radio", base)

	assert.True(t, IsStorage(err))
	assert.ErrorIs(t, err, base)
	assert.Equal(t, "create radio: disk I/O error", err.Error())
	assert.Nil(t, Storage("noop", nil))
}

func TestStorage_PassThrough(t *testing.T) {
	ve := Invalid("serial", "is required")
	assert.Same(t, ve, Storage("create radio", ve))

	nf := fmt.Errorf("radio 3: %w", ErrNotFound)
	assert.Equal(t, nf, Storage("update radio", nf))
	assert.False(t, IsStorage(Storage("update radio", nf)))

	inner := Storage("inner", errors.New("boom"))
	assert.Same(t, inner, Storage("outer", inner))
}

func TestValidationError_Message(t *testing.T) {
	assert.Equal(t, "serial: is required", Invalid("serial", "is required").Error())
	assert.Equal(t, "pick one", (&ValidationError{Message: "pick one"}).Error())
	assert.True(t, IsValidation(fmt.Errorf("wrapped: %w", Invalid("x", "y"))))
}

func TestClassify(t *testing.T) {
	busy := Storage("update", sqlite3.Error{Code: sqlite3.ErrBusy})
	locked := sqlite3.Error{Code: sqlite3.ErrLocked}
	constraint := fmt.Errorf("insert: %w", sqlite3.Error{Code: sqlite3.ErrConstraint})

	assert.True(t, IsBusy(busy))
	assert.True(t, IsBusy(locked))
	assert.False(t, IsBusy(constraint))
	assert.True(t, IsConstraint(constraint))
	assert.False(t, IsConstraint(errors.New("plain")))
}
