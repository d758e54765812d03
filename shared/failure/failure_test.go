package failure_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"bizdesk/shared/failure"
)

func TestFailure_Error(t *testing.T) {
	f := &failure.Failure{
		Code:    http.StatusBadRequest,
		Message: "test error message",
	}

	if f.Error() != "test error message" {
		t.Errorf("expected error message to be 'test error message', got %s", f.Error())
	}
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{
			name: "BadRequestFromString",
			err:  failure.BadRequestFromString("boom"),
			code: http.StatusBadRequest,
		},
		{
			name: "NotFound",
			err:  failure.NotFound("appointment not found"),
			code: http.StatusNotFound,
		},
		{
			name: "Conflict",
			err:  failure.Conflict("time slot is not available"),
			code: http.StatusConflict,
		},
		{
			name: "UnprocessableEntity",
			err:  failure.UnprocessableEntity("invalid status transition"),
			code: http.StatusUnprocessableEntity,
		},
		{
			name: "Unauthorized",
			err:  failure.Unauthorized("missing token"),
			code: http.StatusUnauthorized,
		},
		{
			name: "InternalError",
			err:  failure.InternalError(errors.New("db down")),
			code: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := failure.GetCode(tt.err); got != tt.code {
				t.Errorf("expected code %d, got %d", tt.code, got)
			}
		})
	}
}

func TestGetCode_WrappedFailure(t *testing.T) {
	inner := failure.Conflict("overlap")
	wrapped := fmt.Errorf("creating appointment: %w", inner)

	if got := failure.GetCode(wrapped); got != http.StatusConflict {
		t.Errorf("expected code %d for wrapped failure, got %d", http.StatusConflict, got)
	}
}

func TestGetCode_PlainError(t *testing.T) {
	if got := failure.GetCode(errors.New("oops")); got != http.StatusInternalServerError {
		t.Errorf("expected fallback code %d, got %d", http.StatusInternalServerError, got)
	}
}

func TestBadRequest_NilError(t *testing.T) {
	if err := failure.BadRequest(nil); err != nil {
		t.Errorf("expected nil, got %v", err)
	}
}
