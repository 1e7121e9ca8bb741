package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"skill-community/internal/domain/session"
	"skill-community/internal/domain/user"
	"skill-community/internal/pkg/response"
	"skill-community/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSessions struct {
	sessions map[string]session.Session
	err      error
}

func (s *stubSessions) Begin(context.Context, user.ID, string) (usecase.SessionGrant, error) {
	return usecase.SessionGrant{}, errors.New("not implemented")
}

func (s *stubSessions) Resolve(_ context.Context, token string) (session.Session, error) {
	if s.err != nil {
		return session.Session{}, s.err
	}
	sess, ok := s.sessions[token]
	if !ok {
		return session.Session{}, usecase.ErrNoSession
	}
	return sess, nil
}

func (s *stubSessions) End(context.Context, string) error { return nil }

func (s *stubSessions) Expire(context.Context, session.Session, string) error { return nil }

func newTestApp(sessions usecase.SessionUsecase) *fiber.App {
	app := fiber.New()
	app.Use(NewErrorMiddleware(nil).Middleware())

	mw := NewSessionMiddleware(sessions, SessionCookie{Name: "community_session"})
	whoami := func(c fiber.Ctx) error {
		sess := SessionFromCtx(c)
		if sess == nil {
			return response.Success(c, fiber.StatusOK, response.MessageOK, "anonymous")
		}
		return response.Success(c, fiber.StatusOK, response.MessageOK, sess.UserID.String())
	}
	app.Get("/optional", mw.Optional(), whoami)
	app.Get("/required", mw.Required(), whoami)
	app.Get("/boom", func(c fiber.Ctx) error {
		return NewAppError(fiber.StatusInternalServerError, "db password leaked", nil, errors.New("boom"))
	})
	app.Get("/upstream", func(c fiber.Ctx) error {
		return NewAppError(fiber.StatusBadGateway, "Backend said no", nil, nil)
	})
	return app
}

func call(t *testing.T, app *fiber.App, req *http.Request) (int, response.Envelope) {
	t.Helper()
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var body response.Envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, body
}

func TestSessionMiddleware(t *testing.T) {
	app := newTestApp(&stubSessions{sessions: map[string]session.Session{
		"good": {ID: "sid", UserID: "7", AuthToken: "tok"},
	}})

	tests := []struct {
		name       string
		path       string
		header     string
		cookie     string
		wantStatus int
		wantData   any
	}{
		{name: "optional anonymous", path: "/optional", wantStatus: 200, wantData: "anonymous"},
		{name: "optional bearer", path: "/optional", header: "Bearer good", wantStatus: 200, wantData: "7"},
		{name: "optional cookie", path: "/optional", cookie: "good", wantStatus: 200, wantData: "7"},
		{name: "optional stale cookie", path: "/optional", cookie: "stale", wantStatus: 200, wantData: "anonymous"},
		{name: "required missing", path: "/required", wantStatus: 401},
		{name: "required malformed header", path: "/required", header: "Basic good", wantStatus: 401},
		{name: "required ok", path: "/required", header: "bearer good", wantStatus: 200, wantData: "7"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: "community_session", Value: tt.cookie})
			}

			status, body := call(t, app, req)
			assert.Equal(t, tt.wantStatus, status)
			if tt.wantData != nil {
				assert.Equal(t, tt.wantData, body.Data)
			}
			if status == 401 {
				assert.Equal(t, usecase.MessageLoginRequired, body.Message)
			}
		})
	}
}

func TestSessionMiddleware_StaleCookieExpiresAtRootPath(t *testing.T) {
	app := newTestApp(&stubSessions{})

	req := httptest.NewRequest(http.MethodGet, "/optional", nil)
	req.AddCookie(&http.Cookie{Name: "community_session", Value: "stale"})
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var cleared *http.Cookie
	for _, ck := range resp.Cookies() {
		if ck.Name == "community_session" {
			cleared = ck
		}
	}
	require.NotNil(t, cleared)
	assert.Equal(t, "/", cleared.Path)
	assert.Empty(t, cleared.Value)
	assert.True(t, cleared.Expires.Before(time.Now()))
}

func TestSessionMiddleware_StoreOutageIs500(t *testing.T) {
	app := newTestApp(&stubSessions{err: usecase.ErrInternal})

	req := httptest.NewRequest(http.MethodGet, "/optional", nil)
	req.Header.Set("Authorization", "Bearer good")
	status, body := call(t, app, req)
	assert.Equal(t, 500, status)
	assert.Equal(t, response.MessageInternalServerError, body.Message)
}

func TestErrorMiddleware(t *testing.T) {
	app := newTestApp(&stubSessions{})

	status, body := call(t, app, httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Equal(t, 500, status)
	assert.Equal(t, response.MessageInternalServerError, body.Message)

	status, body = call(t, app, httptest.NewRequest(http.MethodGet, "/upstream", nil))
	assert.Equal(t, 502, status)
	assert.Equal(t, "Backend said no", body.Message)
}

func TestErrorMiddleware_DefaultMessages(t *testing.T) {
	app := fiber.New()
	app.Use(NewErrorMiddleware(nil).Middleware())
	app.Get("/bad", func(c fiber.Ctx) error {
		return NewAppError(fiber.StatusBadRequest, "", map[string]string{"id": "abc"}, nil)
	})
	app.Get("/teapot", func(c fiber.Ctx) error {
		return fiber.NewError(fiber.StatusTeapot)
	})
	app.Get("/unavailable", func(c fiber.Ctx) error {
		return fiber.NewError(fiber.StatusServiceUnavailable, "redis down at 10.0.0.3")
	})
	app.Get("/plain", func(c fiber.Ctx) error {
		return errors.New("unexpected")
	})

	cases := []struct {
		path    string
		status  int
		message string
	}{
		{"/bad", 400, response.MessageBadRequest},
		{"/teapot", 418, "I'm a teapot"},
		{"/unavailable", 500, response.MessageInternalServerError},
		{"/plain", 500, response.MessageInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.path, func(t *testing.T) {
			status, body := call(t, app, httptest.NewRequest(http.MethodGet, tc.path, nil))
			assert.Equal(t, tc.status, status)
			assert.Equal(t, tc.status, body.Status)
			assert.Equal(t, tc.message, body.Message)
		})
	}
}

func TestMessageFor(t *testing.T) {
	assert.Equal(t, response.MessageUnauthorized, response.MessageFor(fiber.StatusUnauthorized))
	assert.Equal(t, "Conflict", response.MessageFor(fiber.StatusConflict))
	assert.Equal(t, response.MessageInternalServerError, response.MessageFor(599))
}
