package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newContext() (echo.Context, *httptest.ResponseRecorder) {
	rec := httptest.NewRecorder()
	return echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec), rec
}

func TestCurrentUserID(t *testing.T) {
	c, _ := newContext()
	assert.Nil(t, CurrentUserID(c))
	assert.Equal(t, "", GetUserID(c))

	c.Set(UserIDKey, "user_1")
	id := CurrentUserID(c)
	require.NotNil(t, id)
	assert.Equal(t, "user_1", *id)
}

func TestGetUserRole(t *testing.T) {
	c, _ := newContext()
	assert.Equal(t, "", GetUserRole(c))

	c.Set(UserRoleKey, "org:admin")
	assert.Equal(t, "org:admin", GetUserRole(c))
}

func TestGetLogger_DefaultsToNop(t *testing.T) {
	c, _ := newContext()

	assert.NotNil(t, GetLogger(c))
}

func TestRequestID(t *testing.T) {
	const valid = "123e4567-e89b-12d3-a456-426614174000"

	tests := []struct {
		name     string
		incoming string
		keep     bool
	}{
		{"generated when missing", "", false},
		{"kept when uuid", valid, true},
		{"replaced when not uuid", "hello\nworld", false},
		{"replaced when malformed uuid", "123e4567-e89b-12d3-a456-42661417400z", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := newContext()
			if tt.incoming != "" {
				c.Request().Header.Set(RequestIDHeader, tt.incoming)
			}

			var seen string
			err := RequestID()(func(c echo.Context) error {
				seen = GetRequestID(c)
				return nil
			})(c)

			require.NoError(t, err)
			assert.Len(t, seen, 36)
			assert.Equal(t, seen, rec.Header().Get(RequestIDHeader))
			if tt.keep {
				assert.Equal(t, tt.incoming, seen)
			} else {
				assert.NotEqual(t, tt.incoming, seen)
			}
		})
	}
}
