package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/deppfellow/go-profile/internal/errs"
	"github.com/deppfellow/go-profile/internal/middleware"
	"github.com/deppfellow/go-profile/internal/model"
	"github.com/deppfellow/go-profile/internal/request"
	"github.com/deppfellow/go-profile/internal/server"
	"github.com/deppfellow/go-profile/internal/service"
	"github.com/deppfellow/go-profile/internal/validation"
	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProfiles struct {
	user    *model.User
	err     error
	updates []request.ProfileUpdateRequest
}

func (f *fakeProfiles) Get(_ context.Context, userID string) (*model.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.user, nil
}

func (f *fakeProfiles) Update(_ context.Context, userID string, req *request.ProfileUpdateRequest) (*model.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.updates = append(f.updates, *req)
	return &model.User{ID: userID, Name: req.Name, Email: req.Email}, nil
}

type takenEmails struct {
	taken   map[string]string
	ignored []*string
}

func (t *takenEmails) Exists(_ context.Context, rule validation.UniqueRule, value any) (bool, error) {
	t.ignored = append(t.ignored, rule.IgnoreID)
	owner, ok := t.taken[value.(string)]
	if !ok {
		return false, nil
	}
	return rule.IgnoreID == nil || *rule.IgnoreID != owner, nil
}

func newTestRouter(profiles *fakeProfiles, checker *takenEmails, userID string) *echo.Echo {
	s := &server.Server{}
	h := NewProfileHandler(s, validation.NewValidator(checker), profiles)

	e := echo.New()
	e.HTTPErrorHandler = middleware.NewGlobalMiddlewares(s).GlobalErrorHandler

	authenticate := func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if userID != "" {
				c.Set(middleware.UserIDKey, userID)
			}
			return next(c)
		}
	}

	e.GET("/profile", h.GetProfile, authenticate)
	e.PATCH("/profile", Handle(h.Handler, h.UpdateProfile, http.StatusOK, request.NewProfileUpdateRequest), authenticate)
	return e
}

func patch(e *echo.Echo, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPatch, "/profile", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) *errs.HTTPError {
	t.Helper()

	httpErr := &errs.HTTPError{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), httpErr))
	return httpErr
}

func TestUpdateProfile_OK(t *testing.T) {
	profiles := &fakeProfiles{}
	checker := &takenEmails{taken: map[string]string{"jane@example.com": "user_1"}}
	e := newTestRouter(profiles, checker, "user_1")

	rec := patch(e, `{"name":"Jane Doe","email":"jane@example.com"}`)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var user model.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &user))
	assert.Equal(t, "user_1", user.ID)
	assert.Equal(t, "jane@example.com", user.Email)

	require.Len(t, checker.ignored, 1)
	require.NotNil(t, checker.ignored[0])
	assert.Equal(t, "user_1", *checker.ignored[0])
}

func TestUpdateProfile_EmailTakenByAnotherUser(t *testing.T) {
	profiles := &fakeProfiles{}
	checker := &takenEmails{taken: map[string]string{"taken@example.com": "user_2"}}
	e := newTestRouter(profiles, checker, "user_1")

	rec := patch(e, `{"name":"Jane Doe","email":"taken@example.com"}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	httpErr := decodeError(t, rec)
	assert.Equal(t, "BAD_REQUEST", httpErr.Code)
	assert.Equal(t, map[string]string{"email": "has already been taken"}, httpErr.FieldErrors())
	assert.Empty(t, profiles.updates)
}

func TestUpdateProfile_InvalidInput(t *testing.T) {
	tests := []struct {
		name string
		body string
		want map[string]string
	}{
		{
			name: "empty body",
			body: `{}`,
			want: map[string]string{"name": "is required", "email": "is required"},
		},
		{
			name: "upper case email",
			body: `{"name":"Jane","email":"Jane@Example.com"}`,
			want: map[string]string{"email": "must be lowercase"},
		},
		{
			name: "long name",
			body: fmt.Sprintf(`{"name":%q,"email":"jane@example.com"}`, strings.Repeat("a", 256)),
			want: map[string]string{"name": "must not exceed 255 characters"},
		},
		{
			name: "name is a number",
			body: `{"name":123,"email":"jane@example.com"}`,
			want: map[string]string{"name": "must be a string"},
		},
		{
			name: "number name and missing email",
			body: `{"name":123}`,
			want: map[string]string{"name": "must be a string", "email": "is required"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profiles := &fakeProfiles{}
			e := newTestRouter(profiles, &takenEmails{}, "user_1")

			rec := patch(e, tt.body)

			require.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, tt.want, decodeError(t, rec).FieldErrors())
			assert.Empty(t, profiles.updates)
		})
	}
}

func TestUpdateProfile_WrongTypeHidesDecoderDetails(t *testing.T) {
	e := newTestRouter(&fakeProfiles{}, &takenEmails{}, "user_1")

	rec := patch(e, `{"name":123,"email":"jane@example.com"}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	httpErr := decodeError(t, rec)
	assert.Equal(t, "Validation failed", httpErr.Message)
	assert.NotContains(t, rec.Body.String(), "Unmarshal")
	assert.NotContains(t, rec.Body.String(), "Go value")
}

func TestUpdateProfile_Unauthenticated(t *testing.T) {
	profiles := &fakeProfiles{}
	checker := &takenEmails{}
	e := newTestRouter(profiles, checker, "")

	rec := patch(e, `{"name":"Jane Doe","email":"jane@example.com"}`)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Empty(t, profiles.updates)
	require.Len(t, checker.ignored, 1)
	assert.Nil(t, checker.ignored[0])
}

func TestUpdateProfile_UniquenessUsesTrimmedEmail(t *testing.T) {
	profiles := &fakeProfiles{}
	checker := &takenEmails{taken: map[string]string{"taken@example.com": "user_2"}}
	e := newTestRouter(profiles, checker, "user_1")

	rec := patch(e, `{"name":"  Jane Doe  ","email":" taken@example.com "}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, map[string]string{"email": "has already been taken"}, decodeError(t, rec).FieldErrors())
}

func TestGetProfile(t *testing.T) {
	profiles := &fakeProfiles{user: &model.User{ID: "user_1", Name: "Jane Doe", Email: "jane@example.com"}}
	e := newTestRouter(profiles, &takenEmails{}, "user_1")

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/profile", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"email":"jane@example.com"`)
	assert.Contains(t, rec.Body.String(), `"email_verified_at":null`)
}

func TestGetProfile_NotFound(t *testing.T) {
	profiles := &fakeProfiles{err: fmt.Errorf("table:users: %w", pgx.ErrNoRows)}
	e := newTestRouter(profiles, &takenEmails{}, "user_1")

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/profile", nil))

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "User not found", decodeError(t, rec).Message)
}

type memoryUsers struct {
	users map[string]*model.User
}

func (m *memoryUsers) GetByID(_ context.Context, id string) (*model.User, error) {
	user, ok := m.users[id]
	if !ok {
		return nil, fmt.Errorf("table:users: %w", pgx.ErrNoRows)
	}
	return user, nil
}

func (m *memoryUsers) Create(_ context.Context, user *model.User) (*model.User, error) {
	m.users[user.ID] = user
	return user, nil
}

func (m *memoryUsers) UpdateProfile(_ context.Context, user *model.User) (*model.User, error) {
	m.users[user.ID] = user
	return user, nil
}

type signedUpUsers map[string]*model.User

func (s signedUpUsers) Lookup(_ context.Context, userID string) (*model.User, error) {
	return s[userID], nil
}

func TestGetProfile_FirstAccessProvisionsUser(t *testing.T) {
	users := &memoryUsers{users: map[string]*model.User{}}
	identities := signedUpUsers{"user_9": {ID: "user_9", Name: "New User", Email: "new@example.com"}}
	profiles := service.NewProfileService(users, identities, nil, nil)

	h := NewProfileHandler(&server.Server{}, validation.NewValidator(&takenEmails{}), profiles)
	e := echo.New()
	e.GET("/profile", h.GetProfile, func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(middleware.UserIDKey, "user_9")
			return next(c)
		}
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/profile", nil))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"email":"new@example.com"`)
	assert.Contains(t, users.users, "user_9")
}
