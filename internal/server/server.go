package server

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/void-adarsh/Notes-App/config"
	authhandler "github.com/void-adarsh/Notes-App/internal/auth/handler"
	apperror "github.com/void-adarsh/Notes-App/internal/errors"
	"github.com/void-adarsh/Notes-App/internal/gate"
	"github.com/void-adarsh/Notes-App/internal/metrics"
	noteshandler "github.com/void-adarsh/Notes-App/internal/notes/handler"
)

type Handlers struct {
	Auth  *authhandler.AuthHandler
	Notes *noteshandler.NoteHandler
}

// New assembles the HTTP application. The gate guards every notes route and
// throttles the test route.
func New(cfg *config.Config, g *gate.Gate, h Handlers, log *zap.Logger) *fiber.App {
	if log == nil {
		log = zap.NewNop()
	}

	app := fiber.New(fiber.Config{
		AppName:               "notes-api",
		ErrorHandler:          apperror.ErrorHandler,
		ProxyHeader:           cfg.ProxyHeader,
		DisableStartupMessage: cfg.IsProduction(),
	})

	app.Use(recover.New())
	app.Use(cors.New())
	app.Use(requestLogger(log))
	app.Use(metrics.Middleware())

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Notes API")
	})
	app.Get("/api/test", g.Throttle(), func(c *fiber.Ctx) error {
		return c.SendString("This is a test route")
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	authhandler.RegisterRoutes(app, h.Auth)
	noteshandler.RegisterRoutes(app, h.Notes, g.Protect())

	return app
}

func requestLogger(log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			status = fiber.StatusInternalServerError
			var fe *fiber.Error
			if errors.As(err, &fe) {
				status = fe.Code
			}
		}

		fields := []zap.Field{
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
			zap.String("ip", c.IP()),
		}
		if status >= fiber.StatusInternalServerError {
			log.Warn("request", fields...)
		} else {
			log.Info("request", fields...)
		}
		return err
	}
}
