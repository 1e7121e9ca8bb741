package handler

import (
	"errors"

	"skill-community/internal/delivery/http/dto"
	"skill-community/internal/delivery/http/middleware"
	"skill-community/internal/domain/user"
	"skill-community/internal/pkg/response"
	"skill-community/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type CardHandler struct {
	uc      usecase.CardUsecase
	session *middleware.SessionMiddleware
}

func NewCardHandler(uc usecase.CardUsecase, session *middleware.SessionMiddleware) *CardHandler {
	return &CardHandler{uc: uc, session: session}
}

func (h *CardHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	grp := r.Group("/cards/:id")
	grp.Get("/", h.Status)
	grp.Post("/connect", h.session.Required(), h.Connect)
	grp.Post("/chat", h.session.Required(), h.Chat)
}

// Status resolves one card. Lookup failures stay inline on a 200.
func (h *CardHandler) Status(c fiber.Ctx) error {
	card := h.uc.ResolveStatus(c.Context(), middleware.SessionFromCtx(c), targetID(c))
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewCardResponse(card))
}

func (h *CardHandler) Connect(c fiber.Ctx) error {
	card, err := h.uc.Connect(c.Context(), middleware.SessionFromCtx(c), targetID(c))
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrNoSession):
			return middleware.NewAppError(fiber.StatusUnauthorized, usecase.MessageLoginRequired, nil, err)
		case errors.Is(err, usecase.ErrInvalidTarget):
			return middleware.NewAppError(fiber.StatusBadRequest, usecase.MessageInvalidConnection, dto.NewCardResponse(card), err)
		default:
			return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
		}
	}

	if card.Error != "" {
		return response.Error(c, fiber.StatusBadGateway, card.Error, dto.NewCardResponse(card))
	}
	return response.Success(c, fiber.StatusOK, "Connection request sent", dto.NewCardResponse(card))
}

// Chat navigates only to connections; anything else is a 400 with the card
// and its inline error.
func (h *CardHandler) Chat(c fiber.Ctx) error {
	route, card, err := h.uc.ChatRoute(c.Context(), middleware.SessionFromCtx(c), targetID(c))
	if err != nil {
		if errors.Is(err, usecase.ErrNoSession) {
			return middleware.NewAppError(fiber.StatusUnauthorized, usecase.MessageLoginRequired, nil, err)
		}
		msg := card.Error
		if msg == "" {
			msg = usecase.MessageInvalidUserID
		}
		return middleware.NewAppError(fiber.StatusBadRequest, msg, dto.NewCardResponse(card), err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.ChatResponse{NavigateTo: route})
}

func targetID(c fiber.Ctx) user.ID {
	return user.ID(c.Params("id"))
}
