package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	userapp "github.com/oksasatya/car-collection/internal/application"
	"github.com/oksasatya/car-collection/internal/infrastructure/memory"
	"github.com/oksasatya/car-collection/web"
)

type fixture struct {
	router *gin.Engine
	repo   *memory.UserRepository
	hook   *test.Hook
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	return newFixtureWith(t, userapp.PlainPasswords{})
}

func newFixtureWith(t *testing.T, enc userapp.PasswordEncoder) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger, hook := test.NewNullLogger()
	repo := memory.NewUserRepository()
	svc := userapp.NewService(repo, enc, logger)
	h := NewSignupHandler(svc, NewSignupValidator(nil), logger, "/auth/signup-success")

	tmpl, err := web.Templates()
	require.NoError(t, err)
	r := gin.New()
	r.SetHTMLTemplate(tmpl)
	r.GET("/auth/signup", h.ShowForm)
	r.POST("/auth/signup", h.Submit)
	r.GET("/auth/signup-success", h.Success)
	return &fixture{router: r, repo: repo, hook: hook}
}

func (f *fixture) post(values url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/auth/signup", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func signupValues(email, password, first, last string) url.Values {
	return url.Values{
		"email":      {email},
		"password":   {password},
		"first_name": {first},
		"last_name":  {last},
	}
}

func fieldError(field, msg string) string {
	return `data-field="` + field + `" style="color: red;">` + msg + `</span>`
}

func TestShowForm(t *testing.T) {
	f := newFixture(t)
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/auth/signup", nil))

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	require.Contains(t, body, `<form method="POST" action="/auth/signup">`)
	for _, name := range []string{"email", "password", "first_name", "last_name"} {
		require.Contains(t, body, `name="`+name+`"`)
	}
	require.NotContains(t, body, `class="error"`)
}

func TestSubmit_Success(t *testing.T) {
	f := newFixture(t)
	w := f.post(signupValues("a@b.com", "x", "Ann", "Lee"))

	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, "/auth/signup-success", w.Header().Get("Location"))

	u, err := f.repo.GetByEmail(context.Background(), "a@b.com")
	require.NoError(t, err)
	require.Equal(t, "Ann", u.FirstName)
	require.Equal(t, "Lee", u.LastName)
	require.Equal(t, "x", u.Password)
	require.NotZero(t, u.ID)
	require.False(t, u.DateCreated.IsZero())
	require.Nil(t, u.Token)

	w = httptest.NewRecorder()
	f.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/auth/signup-success", nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "Signup successful! You can now login.", w.Body.String())
}

func TestSubmit_EmptyEmail(t *testing.T) {
	f := newFixture(t)
	w := f.post(signupValues("", "x", "Ann", "Lee"))

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	require.Contains(t, body, fieldError("email", "This field is required."))
	require.Contains(t, body, `value="Ann"`)
	require.Contains(t, body, `value="Lee"`)
	require.Equal(t, 0, f.repo.Len())
}

func TestSubmit_MissingFields(t *testing.T) {
	cases := map[string]url.Values{
		"email":      signupValues("  ", "x", "Ann", "Lee"),
		"password":   signupValues("a@b.com", "", "Ann", "Lee"),
		"first_name": signupValues("a@b.com", "x", "\t", "Lee"),
		"last_name":  signupValues("a@b.com", "x", "Ann", ""),
	}
	for field, values := range cases {
		t.Run(field, func(t *testing.T) {
			f := newFixture(t)
			w := f.post(values)
			require.Equal(t, http.StatusOK, w.Code)
			require.Contains(t, w.Body.String(), fieldError(field, "This field is required."))
			require.Equal(t, 1, strings.Count(w.Body.String(), `class="error"`))
			require.Equal(t, 0, f.repo.Len())
		})
	}
}

func TestSubmit_AllFieldsMissing(t *testing.T) {
	f := newFixture(t)
	w := f.post(url.Values{})

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	for _, field := range []string{"email", "password", "first_name", "last_name"} {
		require.Contains(t, body, fieldError(field, "This field is required."))
	}
	require.Equal(t, 0, f.repo.Len())
}

func TestSubmit_MalformedEmail(t *testing.T) {
	f := newFixture(t)
	w := f.post(signupValues("not-an-email", "x", "Ann", "Lee"))

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), fieldError("email", "Invalid email address."))
	require.Contains(t, w.Body.String(), `value="not-an-email"`)
	require.Equal(t, 0, f.repo.Len())
}

func TestSubmit_PasswordNotEchoed(t *testing.T) {
	f := newFixture(t)
	w := f.post(signupValues("not-an-email", "hunter2", "Ann", "Lee"))

	require.Equal(t, http.StatusOK, w.Code)
	require.NotContains(t, w.Body.String(), "hunter2")
}

func TestSubmit_DuplicateEmail(t *testing.T) {
	f := newFixture(t)
	values := signupValues("a@b.com", "x", "Ann", "Lee")

	w := f.post(values)
	require.Equal(t, http.StatusFound, w.Code)

	w = f.post(values)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), fieldError("email", "An account with this email already exists."))
	require.Equal(t, 1, f.repo.Count("a@b.com"))
	require.Equal(t, 1, f.repo.Len())
}

func TestSubmit_StoreUnavailable(t *testing.T) {
	f := newFixture(t)
	f.repo.Err = errors.New("connection refused")

	w := f.post(signupValues("a@b.com", "x", "Ann", "Lee"))
	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.NotContains(t, w.Body.String(), "connection refused")

	entry := f.hook.LastEntry()
	require.NotNil(t, entry)
	require.Equal(t, "signup failed", entry.Message)
	require.Contains(t, entry.Data["error"], "connection refused")
}

func TestSubmit_LongValues(t *testing.T) {
	f := newFixture(t)
	first := strings.Repeat("A", 51)
	last := strings.Repeat("L", 300)
	password := strings.Repeat("p", 121)

	w := f.post(signupValues("a@b.com", password, first, last))
	require.Equal(t, http.StatusFound, w.Code)

	u, err := f.repo.GetByEmail(context.Background(), "a@b.com")
	require.NoError(t, err)
	require.Equal(t, first, u.FirstName)
	require.Equal(t, last, u.LastName)
	require.Equal(t, password, u.Password)
}

func TestSubmit_BcryptLongPassword(t *testing.T) {
	enc := userapp.BcryptPasswords{Cost: bcrypt.MinCost}
	f := newFixtureWith(t, enc)
	password := strings.Repeat("p", 73)

	w := f.post(signupValues("a@b.com", password, "Ann", "Lee"))
	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, "/auth/signup-success", w.Header().Get("Location"))

	u, err := f.repo.GetByEmail(context.Background(), "a@b.com")
	require.NoError(t, err)
	require.True(t, enc.Matches(u.Password, password))
}
