package app

import (
	"fmt"
	"strings"

	"gigboard/internal/config"
	"gigboard/internal/delivery/http/handler"
	"gigboard/internal/delivery/http/middleware"
	"gigboard/internal/delivery/http/routes"
	"gigboard/internal/ws"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
}

func Bootstrap(cfg config.Config, container *Container) *App {
	f := fiber.New(fiber.Config{
		AppName: cfg.App.AppName,
	})

	errMw := middleware.NewErrorMiddleware()
	accessMw := middleware.NewAccessLogMiddleware(container.Logger)
	f.Use(errMw.Middleware())
	f.Use(accessMw.Middleware())
	f.Use(container.Metrics.Middleware())

	f.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	registry := &routes.Registry{
		Auth:          handler.NewAuthHandler(container.Auth, container.Metrics),
		Protected:     handler.NewProtectedHandler(),
		Jobs:          handler.NewJobHandler(container.JobUC, container.Metrics),
		Applications:  handler.NewApplicationHandler(container.ApplicationUC, container.Metrics),
		Account:       handler.NewAccountHandler(container.AccountUC),
		Search:        handler.NewSearchHandler(container.SearchUC),
		Browse:        handler.NewBrowseHandler(container.BrowseUC),
		Profile:       handler.NewProfileHandler(container.ProfileUC, container.Auth),
		Notifications: handler.NewNotificationHandler(container.NotifUC),
		Health:        handler.NewHealthHandler(container.DB, container.Cache),
		WS:            ws.NewHandler(container.Hub, container.Logger),
		AuthMW:        middleware.NewAuthMiddleware(container.JWT),
	}
	registry.Register(f)

	return &App{Fiber: f, Container: container}
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
