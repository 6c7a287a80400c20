// Package server exposes the analysis engine over HTTP.
package server

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spigell/skillmatch/internal/analysis"
	"github.com/spigell/skillmatch/internal/logger"
	"github.com/spigell/skillmatch/internal/metrics"
)

const (
	DefaultListen     = ":8080"
	DefaultRateLimit  = 50
	DefaultRateWindow = time.Minute

	shutdownTimeout = 10 * time.Second
)

// Config holds the HTTP surface settings.
type Config struct {
	Listen     string        `mapstructure:"listen"`
	RateLimit  int           `mapstructure:"rate-limit"`
	RateWindow time.Duration `mapstructure:"rate-window"`
}

// Server wraps a fiber app bound to an analysis engine.
type Server struct {
	app      *fiber.App
	engine   *analysis.Engine
	recorder *metrics.Recorder
	validate *validator.Validate
	logger   *zap.Logger
	listen   string
}

// New builds the app and registers every route. rec may be nil, in which
// case /metrics is not served.
func New(engine *analysis.Engine, rec *metrics.Recorder, cfg Config, log *zap.Logger) *Server {
	if cfg.Listen == "" {
		cfg.Listen = DefaultListen
	}
	if cfg.RateLimit <= 0 {
		cfg.RateLimit = DefaultRateLimit
	}
	if cfg.RateWindow <= 0 {
		cfg.RateWindow = DefaultRateWindow
	}

	s := &Server{
		engine:   engine,
		recorder: rec,
		validate: validator.New(),
		logger:   logger.OrNop(log),
		listen:   cfg.Listen,
	}

	s.app = fiber.New(fiber.Config{
		AppName:               "skillmatch",
		DisableStartupMessage: true,
		ErrorHandler:          s.handleError,
	})

	s.app.Use(recover.New())
	s.app.Use(requestid.New(requestid.Config{
		Generator: uuid.NewString,
	}))
	s.app.Use(s.accessLog)

	s.app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	if rec != nil {
		s.app.Get("/metrics", adaptor.HTTPHandler(rec.Handler()))
	}

	group := s.app.Group("/ai", rateLimiter(cfg.RateLimit, cfg.RateWindow))
	group.Post("/analyze", s.analyze)
	group.Post("/suggestions", s.suggestions)

	return s
}

// App returns the underlying fiber app.
func (s *Server) App() *fiber.App { return s.app }

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", zap.String("listen", s.listen))
		errCh <- s.app.Listen(s.listen)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down http server")
		if err := s.app.ShutdownWithTimeout(shutdownTimeout); err != nil {
			return err
		}
		return <-errCh
	}
}

func rateLimiter(max int, window time.Duration) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: window,
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "too many requests",
			})
		},
		LimiterMiddleware: limiter.SlidingWindow{},
	})
}

func (s *Server) accessLog(c *fiber.Ctx) error {
	start := time.Now()
	err := c.Next()

	status := c.Response().StatusCode()
	if err != nil {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			status = fe.Code
		} else {
			status = fiber.StatusInternalServerError
		}
	}

	route := c.Route().Path
	if s.recorder != nil {
		s.recorder.ObserveHTTP(route, c.Method(), status)
	}

	s.logger.Debug("http request",
		zap.String("request_id", requestID(c)),
		zap.String("method", c.Method()),
		zap.String("path", c.Path()),
		zap.Int("status", status),
		zap.Duration("elapsed", time.Since(start)),
	)

	return err
}

func (s *Server) handleError(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}

	message := err.Error()
	if code == fiber.StatusInternalServerError {
		s.logger.Error("request failed", zap.String("request_id", requestID(c)), zap.Error(err))
		message = "internal server error"
	}

	return c.Status(code).JSON(fiber.Map{"error": message})
}

func requestID(c *fiber.Ctx) string {
	if id, ok := c.Locals(requestid.ConfigDefault.ContextKey).(string); ok {
		return id
	}
	return ""
}
