package failure_test

import (
	"errors"
	"fmt"
	"hotelier/shared/failure"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConstructors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		code    int
		message string
	}{
		{
			name:    "bad request from error",
			err:     failure.BadRequest(errors.New("check_in must be before check_out")),
			code:    http.StatusBadRequest,
			message: "check_in must be before check_out",
		},
		{
			name:    "bad request from string",
			err:     failure.BadRequestFromString("booking has no pending amount"),
			code:    http.StatusBadRequest,
			message: "booking has no pending amount",
		},
		{
			name:    "invalid param",
			err:     failure.InvalidParam("room_type_id", "a positive integer"),
			code:    http.StatusBadRequest,
			message: "room_type_id must be a positive integer",
		},
		{
			name:    "unauthorized",
			err:     failure.Unauthorized("token revoked"),
			code:    http.StatusUnauthorized,
			message: "token revoked",
		},
		{
			name:    "internal",
			err:     failure.InternalError(errors.New("connection reset")),
			code:    http.StatusInternalServerError,
			message: "connection reset",
		},
		{
			name:    "not found",
			err:     failure.NotFound("booking not found"),
			code:    http.StatusNotFound,
			message: "booking not found",
		},
		{
			name:    "conflict",
			err:     failure.Conflict("room 101 is already occupied"),
			code:    http.StatusConflict,
			message: "room 101 is already occupied",
		},
		{
			name:    "forbidden",
			err:     failure.Forbidden("operators cannot delete guests"),
			code:    http.StatusForbidden,
			message: "operators cannot delete guests",
		},
		{
			name:    "arbitrary code",
			err:     failure.New(http.StatusUnprocessableEntity, "coupon expired"),
			code:    http.StatusUnprocessableEntity,
			message: "coupon expired",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, failure.GetCode(tt.err))
			assert.Equal(t, tt.message, tt.err.Error())
		})
	}
}

func TestNilWrappers(t *testing.T) {
	assert.NoError(t, failure.BadRequest(nil))
	assert.NoError(t, failure.InternalError(nil))
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{
			name: "predefined forbidden",
			err:  failure.ForbiddenError,
			code: http.StatusForbidden,
		},
		{
			name: "wrapped failure",
			err:  fmt.Errorf("assign: %w", failure.Conflict("overlap")),
			code: http.StatusConflict,
		},
		{
			name: "plain error",
			err:  errors.New("boom"),
			code: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, failure.GetCode(tt.err))
		})
	}
}

func TestIs(t *testing.T) {
	assert.True(t, failure.Is(fmt.Errorf("get: %w", failure.NotFound("guest")), http.StatusNotFound))
	assert.False(t, failure.Is(failure.NotFound("guest"), http.StatusConflict))
	assert.False(t, failure.Is(nil, http.StatusInternalServerError))
}
