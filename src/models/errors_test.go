package models

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorMatchesByKind(t *testing.T) {
	err := NewError(KindDuplicateEmail, "a client with this email already exists")

	assert.ErrorIs(t, err, ErrDuplicateEmail)
	assert.NotErrorIs(t, err, ErrNotFound)

	wrapped := fmt.Errorf("create client: %w", err)
	assert.ErrorIs(t, wrapped, ErrDuplicateEmail)
	assert.Equal(t, KindDuplicateEmail, KindOf(wrapped))
}

func TestStoreError(t *testing.T) {
	assert.NoError(t, StoreError("op", nil))

	kinded := NewError(KindNotFound, "client not found")
	assert.Same(t, kinded, StoreError("op", kinded))

	cause := errors.New("connection reset")
	err := StoreError("list clients", cause)
	assert.ErrorIs(t, err, ErrStore)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "list clients: connection reset", err.Error())
}

func TestKindOfPlainError(t *testing.T) {
	assert.Equal(t, KindUnknown, KindOf(errors.New("x")))
	assert.Equal(t, "unknown", KindUnknown.String())
	assert.Equal(t, "client_not_found", KindClientNotFound.String())
}
