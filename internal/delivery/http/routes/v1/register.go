package v1

import (
	"skill-community/internal/delivery/http/handler"
	"skill-community/internal/delivery/http/middleware"

	"github.com/gofiber/fiber/v3"
)

// Handlers are the v1 endpoints. WS may be nil when live updates are off.
type Handlers struct {
	Session   *handler.SessionHandler
	Community *handler.CommunityHandler
	Card      *handler.CardHandler
	WS        fiber.Handler

	SessionMiddleware *middleware.SessionMiddleware
}

func Register(r fiber.Router, h Handlers) {
	if r == nil {
		return
	}

	RegisterSession(r, h.Session)
	RegisterCommunity(r.Group("/community", h.SessionMiddleware.Optional()), h)
}
