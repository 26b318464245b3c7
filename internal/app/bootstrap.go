package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"skillswap/internal/config"
	"skillswap/internal/database/migration"
	"skillswap/internal/delivery/http/middleware"
	"skillswap/internal/delivery/http/routes"
	"skillswap/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
	Hub       *ws.Hub
}

func Bootstrap(cfg config.Config) (*App, func() error, error) {
	c, err := NewContainer(cfg)
	if err != nil {
		return nil, nil, err
	}

	if err := runMigrations(c); err != nil {
		_ = c.Close()
		return nil, nil, err
	}

	hub := ws.NewHub(c.Logger)
	go hub.Run()

	f := fiber.New(fiber.Config{AppName: cfg.App.AppName})
	registerGlobalMiddleware(f, c)
	routes.NewRegistry(cfg, c.DB, c.Cache, hub, c.Logger).Register(f)

	app := &App{Fiber: f, Container: c, Hub: hub}
	return app, c.Close, nil
}

func runMigrations(c *Container) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	runner := migration.Runner{Dir: "migrations"}
	return runner.Run(ctx, c.DB.SQLDB())
}

func registerGlobalMiddleware(app *fiber.App, c *Container) {
	if app == nil {
		return
	}

	app.Use(middleware.NewErrorMiddleware().Middleware())
	app.Use(middleware.NewAccessLogMiddleware(c.Logger).Middleware())
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
