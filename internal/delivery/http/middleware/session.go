package middleware

import (
	"errors"
	"strings"
	"time"

	"skill-community/internal/domain/session"
	"skill-community/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

const (
	CtxSessionKey      = "session"
	CtxSessionTokenKey = "session_token"
)

// SessionCookie writes and expires the session cookie. Both use Path=/ so an
// expiry always replaces the cookie set at login.
type SessionCookie struct {
	Name   string
	Secure bool
}

func (sc SessionCookie) Set(c fiber.Ctx, token string, expires time.Time) {
	c.Cookie(&fiber.Cookie{
		Name:     sc.Name,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		HTTPOnly: true,
		Secure:   sc.Secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

func (sc SessionCookie) Clear(c fiber.Ctx) {
	if sc.Name == "" {
		return
	}
	sc.Set(c, "", time.Unix(0, 0))
}

// SessionMiddleware resolves the session token from the session cookie or a
// Bearer header and stores the session in Locals.
type SessionMiddleware struct {
	sessions usecase.SessionUsecase
	cookie   SessionCookie
}

func NewSessionMiddleware(sessions usecase.SessionUsecase, cookie SessionCookie) *SessionMiddleware {
	return &SessionMiddleware{sessions: sessions, cookie: cookie}
}

// Optional attaches the session when one resolves and continues either way.
// Stale cookies are cleared.
func (m *SessionMiddleware) Optional() fiber.Handler {
	return func(c fiber.Ctx) error {
		if err := m.attach(c); err != nil {
			if errors.Is(err, usecase.ErrInternal) {
				return NewAppError(fiber.StatusInternalServerError, "", nil, err)
			}
			if m.cookie.Name != "" && c.Cookies(m.cookie.Name) != "" {
				m.cookie.Clear(c)
			}
		}
		return c.Next()
	}
}

// Required rejects requests without a session.
func (m *SessionMiddleware) Required() fiber.Handler {
	return func(c fiber.Ctx) error {
		if err := m.attach(c); err != nil {
			if errors.Is(err, usecase.ErrInternal) {
				return NewAppError(fiber.StatusInternalServerError, "", nil, err)
			}
			return NewAppError(fiber.StatusUnauthorized, usecase.MessageLoginRequired, nil, err)
		}
		return c.Next()
	}
}

func (m *SessionMiddleware) attach(c fiber.Ctx) error {
	if SessionFromCtx(c) != nil {
		return nil
	}
	token, ok := SessionToken(c, m.cookie.Name)
	if !ok {
		return usecase.ErrNoSession
	}
	sess, err := m.sessions.Resolve(c.Context(), token)
	if err != nil {
		return err
	}
	c.Locals(CtxSessionKey, &sess)
	c.Locals(CtxSessionTokenKey, token)
	return nil
}

// SessionFromCtx returns the session attached by SessionMiddleware, or nil.
func SessionFromCtx(c fiber.Ctx) *session.Session {
	sess, _ := c.Locals(CtxSessionKey).(*session.Session)
	return sess
}

// SessionToken reads the session token, preferring the Authorization header.
func SessionToken(c fiber.Ctx, cookieName string) (string, bool) {
	if tok, ok := bearerTokenFromHeader(c.Get("Authorization")); ok {
		return tok, true
	}
	if cookieName == "" {
		return "", false
	}
	tok := strings.TrimSpace(c.Cookies(cookieName))
	return tok, tok != ""
}

func bearerTokenFromHeader(authHeader string) (string, bool) {
	authHeader = strings.TrimSpace(authHeader)
	if authHeader == "" {
		return "", false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		return "", false
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}

	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", false
	}

	return token, true
}
