package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/deppfellow/go-profile/internal/errs"
	"github.com/deppfellow/go-profile/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGlobalErrorHandler(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
		wantFields map[string]string
	}{
		{
			name: "http error",
			err: errs.NewBadRequestError("Validation failed", true, nil, []errs.FieldError{
				{Field: "email", Error: "has already been taken"},
			}, nil),
			wantStatus: http.StatusBadRequest,
			wantCode:   "BAD_REQUEST",
			wantFields: map[string]string{"email": "has already been taken"},
		},
		{
			name:       "route not found",
			err:        echo.ErrNotFound,
			wantStatus: http.StatusNotFound,
			wantCode:   "NOT_FOUND",
			wantFields: map[string]string{},
		},
		{
			name:       "echo error",
			err:        echo.NewHTTPError(http.StatusMethodNotAllowed, "nope"),
			wantStatus: http.StatusMethodNotAllowed,
			wantCode:   "METHOD_NOT_ALLOWED",
			wantFields: map[string]string{},
		},
		{
			name:       "unknown error",
			err:        errors.New("dial tcp: connection refused"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   "INTERNAL_SERVER_ERROR",
			wantFields: map[string]string{},
		},
	}

	global := NewGlobalMiddlewares(&server.Server{})

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := newContext()

			global.GlobalErrorHandler(tt.err, c)

			require.Equal(t, tt.wantStatus, rec.Code)

			var body errs.HTTPError
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantCode, body.Code)
			assert.Equal(t, tt.wantStatus, body.Status)
			assert.Equal(t, tt.wantFields, body.FieldErrors())
			assert.NotContains(t, rec.Body.String(), "connection refused")
		})
	}
}
