package ws

import (
	"net/http"
	"time"

	"skill-community/internal/delivery/http/handler"
	"skill-community/internal/delivery/http/middleware"
	"skill-community/internal/pkg/logger"
	"skill-community/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/gorilla/websocket"
)

type Handler struct {
	hub       *Hub
	sessions  usecase.SessionUsecase
	directory usecase.DirectoryUsecase
	debounce  time.Duration
	logger    logger.Logger
}

func NewHandler(hub *Hub, sessions usecase.SessionUsecase, directory usecase.DirectoryUsecase, debounce time.Duration, log logger.Logger) *Handler {
	if log == nil {
		log = logger.NewNop()
	}
	return &Handler{hub: hub, sessions: sessions, directory: directory, debounce: debounce, logger: log}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// HandleDirectoryWS upgrades to a live directory socket. The initial query is
// read from the same parameters as GET /community and loaded right away.
func (h *Handler) HandleDirectoryWS(c fiber.Ctx) error {
	if h == nil || h.hub == nil {
		return fiber.ErrServiceUnavailable
	}

	sess := middleware.SessionFromCtx(c)
	if sess == nil {
		return middleware.NewAppError(fiber.StatusUnauthorized, usecase.MessageLoginRequired, nil, usecase.ErrNoSession)
	}
	token, _ := c.Locals(middleware.CtxSessionTokenKey).(string)
	initial := handler.DirectoryQueryFromRequest(c)
	opts := ClientOptions{
		Session:   *sess,
		Token:     token,
		Sessions:  h.sessions,
		Directory: h.directory,
		Debounce:  h.debounce,
		Initial:   initial,
	}

	fiberHandler := adaptor.HTTPHandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			h.logger.Warn("WS", "upgrade failed", map[string]any{"error": err.Error()})
			return
		}

		client := NewClient(h.hub, conn, opts)
		h.hub.Register(client)
		go client.WritePump()
		go client.ReadPump()
		client.Refresh()
	})

	return fiberHandler(c)
}
