package errs

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructors(t *testing.T) {
	code := "USER_ALREADY_EXISTS"

	tests := []struct {
		name       string
		err        *HTTPError
		wantStatus int
		wantCode   string
	}{
		{"unauthorized", NewUnauthorizedError("no", false), http.StatusUnauthorized, "UNAUTHORIZED"},
		{"forbidden", NewForbiddenError("no", false), http.StatusForbidden, "FORBIDDEN"},
		{"bad request", NewBadRequestError("no", true, nil, nil, nil), http.StatusBadRequest, "BAD_REQUEST"},
		{"bad request custom code", NewBadRequestError("no", true, &code, nil, nil), http.StatusBadRequest, code},
		{"not found", NewNotFoundError("no", false, nil), http.StatusNotFound, "NOT_FOUND"},
		{"too many requests", NewTooManyRequestsError("slow down"), http.StatusTooManyRequests, "TOO_MANY_REQUESTS"},
		{"internal", NewInternalServerError(), http.StatusInternalServerError, "INTERNAL_SERVER_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantStatus, tt.err.Status)
			assert.Equal(t, tt.wantCode, tt.err.Code)
		})
	}
}

func TestHTTPError_Unwrapping(t *testing.T) {
	err := fmt.Errorf("updating profile: %w", NewNotFoundError("User not found", true, nil))

	var httpErr *HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, "User not found", httpErr.Error())
	assert.True(t, errors.Is(err, &HTTPError{}))
}

func TestHTTPError_FieldErrors(t *testing.T) {
	err := NewBadRequestError("Validation failed", true, nil, []FieldError{
		{Field: "email", Error: "has already been taken"},
		{Field: "name", Error: "is required"},
	}, nil)

	assert.Equal(t, map[string]string{
		"email": "has already been taken",
		"name":  "is required",
	}, err.FieldErrors())
	assert.Empty(t, NewInternalServerError().FieldErrors())
}

func TestHTTPError_WithMessage(t *testing.T) {
	original := NewForbiddenError("no", false)
	changed := original.WithMessage("still no")

	assert.Equal(t, "no", original.Message)
	assert.Equal(t, "still no", changed.Message)
	assert.Equal(t, original.Status, changed.Status)
}

func TestMakeUpperCaseWithUnderscores(t *testing.T) {
	assert.Equal(t, "BAD_REQUEST", MakeUpperCaseWithUnderscores("Bad Request"))
}
