package v1

import "github.com/gofiber/fiber/v3"

func RegisterCommunity(r fiber.Router, h Handlers) {
	if r == nil {
		return
	}

	if h.WS != nil {
		r.Get("/ws", h.WS)
	}
	if h.Community != nil {
		h.Community.RegisterRoutes(r)
	}
	if h.Card != nil {
		h.Card.RegisterRoutes(r)
	}
}
