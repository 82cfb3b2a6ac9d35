package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrapWithCode(t *testing.T) {
	err := WrapWithCode(ErrNotFound, CodeNotFound, "session_1")
	assert.Equal(t, "session_1: not found", err.Error())
	assert.Equal(t, CodeNotFound, GetCode(err))
	assert.Equal(t, "session_1", GetMessage(err))
	assert.True(t, Is(err, ErrNotFound))

	assert.Nil(t, WrapWithCode(nil, CodeNotFound, "ignored"))
	assert.Nil(t, Wrap(nil, "ignored"))
}

func TestCodedConstructors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     string
		sentinel error
	}{
		{"not eligible", NotEligible("https://example.com"), CodeNotEligibleSource, ErrNotEligibleSource},
		{"in progress", InProgress("acme"), CodeAlreadyInProgress, ErrAlreadyInProgress},
		{"no content", NoContent("acme"), CodeNoContentFound, ErrNoContentFound},
		{"storage", Storage(fmt.Errorf("disk full"), "failed to cache posts"), CodeStorageFailure, ErrStorage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, GetCode(tt.err))
			assert.True(t, Is(tt.err, tt.sentinel))
		})
	}

	invalid := InvalidInput("maxPosts must be between 1 and 20")
	assert.Equal(t, CodeInvalidInput, GetCode(invalid))
	assert.True(t, Is(invalid, ErrInvalidInput))
}

func TestStorageKeepsCause(t *testing.T) {
	cause := fmt.Errorf("disk full")
	err := Storage(cause, "failed to cache posts")

	assert.True(t, Is(err, cause))
	assert.True(t, IsStorage(err))
	assert.Equal(t, "failed to cache posts: storage failure: disk full", err.Error())
	assert.Nil(t, Storage(nil, "ignored"))
}

func TestUnavailable(t *testing.T) {
	cause := fmt.Errorf("browser disabled")
	err := Unavailable(cause, "no page markup and no renderer")

	assert.Equal(t, CodeUnavailable, GetCode(err))
	assert.True(t, Is(err, ErrServiceUnavailable))
	assert.True(t, Is(err, cause))
	assert.Nil(t, Unavailable(nil, "ignored"))
}

func TestPlainErrors(t *testing.T) {
	err := fmt.Errorf("boom")
	assert.Empty(t, GetCode(err))
	assert.Equal(t, "boom", GetMessage(err))
	assert.Empty(t, GetMessage(nil))

	var target *Error
	assert.True(t, As(New("plain"), &target))
	assert.Equal(t, "plain", target.Message)
}
