package errors

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCloneMatchesTemplate(t *testing.T) {
	err := Clone(ErrValidation, "nisn is required")
	assert.True(t, errors.Is(err, ErrValidation))
	assert.False(t, errors.Is(err, ErrNotFound))
	assert.Equal(t, "nisn is required", err.Message)
	assert.Equal(t, "validation failed", ErrValidation.Message)
}

func TestFromErrorMapsDeadline(t *testing.T) {
	err := FromError(fmt.Errorf("clear: %w", context.DeadlineExceeded))
	assert.Equal(t, ErrStoreTimeout.Code, err.Code)
	assert.Equal(t, http.StatusGatewayTimeout, err.Status)

	plain := FromError(errors.New("boom"))
	assert.Equal(t, ErrInternal.Code, plain.Code)
	assert.Nil(t, FromError(nil))
}

func TestWrapUnwrap(t *testing.T) {
	cause := errors.New("dial tcp")
	err := Wrap(cause, ErrStoreUnavailable.Code, ErrStoreUnavailable.Status, "fetch students")
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "fetch students: dial tcp", err.Error())
}

func TestRetryable(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil", err: nil, want: false},
		{name: "store down", err: Wrap(errors.New("502"), ErrStoreUnavailable.Code, ErrStoreUnavailable.Status, "monthlyRecap request failed"), want: true},
		{name: "deadline", err: fmt.Errorf("render: %w", context.DeadlineExceeded), want: true},
		{name: "untyped", err: errors.New("disk full"), want: true},
		{name: "cancelled", err: context.Canceled, want: false},
		{name: "validation", err: Clone(ErrValidation, "kelas is required"), want: false},
		{name: "not found", err: ErrNotFound, want: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Retryable(tc.err))
		})
	}
}
