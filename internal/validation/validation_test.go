package validation

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/deppfellow/go-profile/internal/errs"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type profileForm struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (f *profileForm) Rules(userID *string) RuleSet { return profileRules(userID) }

func (f *profileForm) Values() map[string]any {
	return map[string]any{"name": f.Name, "email": f.Email}
}

type settings struct {
	Retries int `json:"retries"`
}

func newContext(body string) echo.Context {
	req := httptest.NewRequest(http.MethodPatch, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return echo.New().NewContext(req, httptest.NewRecorder())
}

func TestBindAndValidate_FormRequest(t *testing.T) {
	checker := &fakeChecker{taken: map[string]bool{"taken@example.com": true}}
	v := NewValidator(checker)
	userID := "user_1"

	form := &profileForm{}
	err := BindAndValidate(newContext(`{"name":"","email":"taken@example.com"}`), form, v, &userID)

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, "Validation failed", httpErr.Message)
	assert.Equal(t, map[string]string{
		"name":  "is required",
		"email": "has already been taken",
	}, httpErr.FieldErrors())
	assert.Equal(t, "user_1", *checker.calls[0].IgnoreID)
}

func TestBindAndValidate_FormRequestValid(t *testing.T) {
	form := &profileForm{}

	err := BindAndValidate(newContext(`{"name":"Jane","email":"jane@example.com"}`), form, NewValidator(&fakeChecker{}), nil)

	require.NoError(t, err)
	assert.Equal(t, "Jane", form.Name)
}

func TestBindAndValidate_MalformedBody(t *testing.T) {
	err := BindAndValidate(newContext(`{"name":`), &profileForm{}, NewValidator(&fakeChecker{}), nil)

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Empty(t, httpErr.Errors)
}

func TestBindAndValidate_WrongJSONType(t *testing.T) {
	checker := &fakeChecker{taken: map[string]bool{"taken@example.com": true}}
	form := &profileForm{}

	err := BindAndValidate(newContext(`{"name":123,"email":"taken@example.com"}`), form, NewValidator(checker), nil)

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, []errs.FieldError{
		{Field: "email", Error: "has already been taken"},
		{Field: "name", Error: "must be a string"},
	}, httpErr.Errors)
	assert.NotContains(t, httpErr.Message, "Unmarshal")
}

func TestBindAndValidate_WrongJSONTypeOnly(t *testing.T) {
	err := BindAndValidate(newContext(`{"name":"Jane","email":["jane@example.com"]}`), &profileForm{}, NewValidator(&fakeChecker{}), nil)

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, map[string]string{"email": "must be a string"}, httpErr.FieldErrors())
}

func TestBindAndValidate_WrongJSONTypeNonString(t *testing.T) {
	err := BindAndValidate(newContext(`{"retries":"three"}`), &settings{}, nil, nil)

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, map[string]string{"retries": "is invalid"}, httpErr.FieldErrors())
}

func TestBindAndValidate_PlainPayload(t *testing.T) {
	payload := &settings{}

	require.NoError(t, BindAndValidate(newContext(`{"retries":3}`), payload, nil, nil))
	assert.Equal(t, 3, payload.Retries)
}

func TestBindAndValidate_FormRequestWithoutValidator(t *testing.T) {
	err := BindAndValidate(newContext(`{}`), &profileForm{}, nil, nil)

	require.Error(t, err)
	var httpErr *errs.HTTPError
	assert.False(t, errors.As(err, &httpErr))
}
