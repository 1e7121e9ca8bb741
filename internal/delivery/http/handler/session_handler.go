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

type SessionHandler struct {
	uc      usecase.SessionUsecase
	cookie  middleware.SessionCookie
	session *middleware.SessionMiddleware
}

type createSessionRequest struct {
	UserID    user.ID `json:"user_id"`
	AuthToken string  `json:"auth_token"`
}

func NewSessionHandler(uc usecase.SessionUsecase, cookie middleware.SessionCookie, session *middleware.SessionMiddleware) *SessionHandler {
	return &SessionHandler{uc: uc, cookie: cookie, session: session}
}

func (h *SessionHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	grp := r.Group("/session")
	grp.Post("/", h.Create)
	grp.Delete("/", h.session.Optional(), h.Delete)
	grp.Get("/", h.session.Required(), h.Current)
}

func (h *SessionHandler) Create(c fiber.Ctx) error {
	var req createSessionRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	grant, err := h.uc.Begin(c.Context(), req.UserID, req.AuthToken)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidInput) {
			return middleware.NewAppError(fiber.StatusBadRequest, "user_id and auth_token are required", nil, err)
		}
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}

	h.cookie.Set(c, grant.Token, grant.ExpiresAt)

	return response.Success(c, fiber.StatusCreated, "Session created", dto.SessionResponse{
		Token:     grant.Token,
		UserID:    grant.Session.UserID.String(),
		ExpiresAt: grant.ExpiresAt,
		CreatedAt: grant.Session.CreatedAt,
	})
}

func (h *SessionHandler) Delete(c fiber.Ctx) error {
	if sess := middleware.SessionFromCtx(c); sess != nil {
		if err := h.uc.End(c.Context(), sess.ID); err != nil {
			return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
		}
	}
	h.cookie.Clear(c)
	return response.Success(c, fiber.StatusOK, "Logged out", nil)
}

func (h *SessionHandler) Current(c fiber.Ctx) error {
	sess := middleware.SessionFromCtx(c)
	if sess == nil {
		return middleware.NewAppError(fiber.StatusUnauthorized, usecase.MessageLoginRequired, nil, nil)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.SessionResponse{
		UserID:    sess.UserID.String(),
		CreatedAt: sess.CreatedAt,
	})
}
