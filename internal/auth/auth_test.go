package auth

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/cybercalc/pkg/models"
)

var errTaken = errors.New("taken")

// fakeUsers is an in-memory UserStore
type fakeUsers struct {
	mu    sync.Mutex
	users map[int]models.User
	next  int
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{users: make(map[int]models.User), next: 1}
}

func (f *fakeUsers) GetUser(id int) (*models.User, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, false
	}
	return &u, true
}

func (f *fakeUsers) GetUserByUsername(username string) (*models.User, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Username == username {
			return &u, true
		}
	}
	return nil, false
}

func (f *fakeUsers) CreateUser(username, password string) (*models.User, error) {
	if _, ok := f.GetUserByUsername(username); ok {
		return nil, errTaken
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	u := models.User{ID: f.next, Username: username, Password: password, Lives: models.MaxLives}
	f.users[u.ID] = u
	f.next++
	return &u, nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestService_RegisterAndAuthenticate(t *testing.T) {
	users := newFakeUsers()
	svc := NewService(users, discardLogger())

	user, err := svc.Register("alice", "s3cret")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret", user.Password)

	got, err := svc.Authenticate("alice", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	_, err = svc.Authenticate("alice", "nope")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Authenticate("nobody", "s3cret")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestService_RegisterTaken(t *testing.T) {
	svc := NewService(newFakeUsers(), discardLogger())

	_, err := svc.Register("alice", "one")
	require.NoError(t, err)
	_, err = svc.Register("alice", "two")
	assert.ErrorIs(t, err, errTaken)
}

func newGateApp(t *testing.T, users *fakeUsers) *fiber.App {
	t.Helper()
	gate := NewGate(session.New(), users, discardLogger())

	app := fiber.New()
	app.Post("/login/:id", func(c *fiber.Ctx) error {
		id, err := strconv.Atoi(c.Params("id"))
		if err != nil {
			return fiber.ErrBadRequest
		}
		user, ok := users.GetUser(id)
		if !ok {
			return fiber.ErrNotFound
		}
		if err := gate.Login(c, user); err != nil {
			return err
		}
		return c.SendStatus(fiber.StatusOK)
	})
	app.Post("/logout", func(c *fiber.Ctx) error {
		if err := gate.Logout(c); err != nil {
			return err
		}
		return c.SendStatus(fiber.StatusOK)
	})
	app.Get("/me", gate.RequireUser, func(c *fiber.Ctx) error {
		user, ok := UserFromContext(c)
		if !ok {
			return fiber.ErrInternalServerError
		}
		return c.SendString(user.Username)
	})
	return app
}

func doRequest(t *testing.T, app *fiber.App, method, target string, cookies []*http.Cookie) *http.Response {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestGate_LoginFlow(t *testing.T) {
	users := newFakeUsers()
	_, err := users.CreateUser("alice", "x")
	require.NoError(t, err)
	app := newGateApp(t, users)

	resp := doRequest(t, app, http.MethodGet, "/me", nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp = doRequest(t, app, http.MethodPost, "/login/1", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	cookies := resp.Cookies()
	require.NotEmpty(t, cookies)

	resp = doRequest(t, app, http.MethodGet, "/me", cookies)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "alice", string(body))

	resp = doRequest(t, app, http.MethodPost, "/logout", cookies)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = doRequest(t, app, http.MethodGet, "/me", cookies)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestGate_UnknownSessionCookie(t *testing.T) {
	app := newGateApp(t, newFakeUsers())

	cookies := []*http.Cookie{{Name: "session_id", Value: "forged"}}
	resp := doRequest(t, app, http.MethodGet, "/me", cookies)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
