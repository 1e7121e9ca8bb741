package app

import (
	"fmt"
	"strings"

	"skill-community/internal/config"
	"skill-community/internal/delivery/http/handler"
	"skill-community/internal/delivery/http/middleware"
	"skill-community/internal/delivery/http/routes"
	v1 "skill-community/internal/delivery/http/routes/v1"
	"skill-community/internal/pkg/logger"
	"skill-community/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
}

// New wires an App around an already built container.
func New(cfg config.Config, c *Container) *App {
	f := fiber.New(fiber.Config{AppName: cfg.App.AppName})

	registerGlobalMiddleware(f, c.Logger)
	registerRoutes(f, cfg, c)

	return &App{Fiber: f, Container: c}
}

func Bootstrap(cfg config.Config, log logger.Logger) (*App, func() error, error) {
	c, err := NewContainer(cfg, log)
	if err != nil {
		return nil, nil, err
	}
	go c.Hub.Run()

	app := New(cfg, c)
	return app, c.Close, nil
}

func registerGlobalMiddleware(app *fiber.App, log logger.Logger) {
	if app == nil {
		return
	}

	app.Use(middleware.NewAccessLogMiddleware(log).Middleware())
	app.Use(middleware.NewErrorMiddleware(log).Middleware())
}

func registerRoutes(app *fiber.App, cfg config.Config, c *Container) {
	if app == nil {
		return
	}

	cookie := middleware.SessionCookie{Name: cfg.Session.CookieName, Secure: cfg.Session.CookieSecure}
	sessionMw := middleware.NewSessionMiddleware(c.Sessions, cookie)
	wsHandler := ws.NewHandler(c.Hub, c.Sessions, c.Directory, cfg.Community.FilterDebounce, c.Logger)

	checks := map[string]handler.Pinger{"redis": c.Cache}
	if c.DB != nil {
		checks["database"] = c.DB
	}

	registry := routes.NewRegistry(handler.NewHealthHandler(checks), v1.Handlers{
		Session:           handler.NewSessionHandler(c.Sessions, cookie, sessionMw),
		Community:         handler.NewCommunityHandler(c.Directory, c.Skills, cookie),
		Card:              handler.NewCardHandler(c.Cards, sessionMw),
		WS:                wsHandler.HandleDirectoryWS,
		SessionMiddleware: sessionMw,
	})
	registry.Register(app)
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
