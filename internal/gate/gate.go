// Package gate admits or rejects requests before they reach the notes
// handlers. Every request runs a fixed pipeline of stages: rate limit,
// credential presence, bearer format, token verification. The first stage
// that fails ends the request.
package gate

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/void-adarsh/Notes-App/internal/auth/service"
	apperror "github.com/void-adarsh/Notes-App/internal/errors"
	"github.com/void-adarsh/Notes-App/internal/metrics"
	"github.com/void-adarsh/Notes-App/internal/ratelimit"
)

const bearerPrefix = "Bearer "

// RateLimiter decides whether a client may make another request.
type RateLimiter interface {
	Admit(ctx context.Context, key string) (ratelimit.Decision, error)
}

// TokenVerifier turns a bearer token into verified claims.
type TokenVerifier interface {
	Verify(tokenString string) (*service.Claims, error)
}

// Stage inspects the request and returns nil to pass it on, or the
// rejection error.
type Stage struct {
	Name string
	Run  func(c *fiber.Ctx) error
}

type Gate struct {
	limiter  RateLimiter
	verifier TokenVerifier
	log      *zap.Logger
}

func New(limiter RateLimiter, verifier TokenVerifier, log *zap.Logger) *Gate {
	if log == nil {
		log = zap.NewNop()
	}
	return &Gate{limiter: limiter, verifier: verifier, log: log}
}

// Protect runs every stage and attaches the verified user id.
func (g *Gate) Protect() fiber.Handler {
	return g.Pipeline(
		Stage{Name: "rate_limit", Run: g.rateLimit},
		Stage{Name: "authenticate", Run: g.authenticate},
	)
}

// Throttle applies the rate limit only.
func (g *Gate) Throttle() fiber.Handler {
	return g.Pipeline(Stage{Name: "rate_limit", Run: g.rateLimit})
}

// Pipeline composes stages into a handler. Stage panics are recovered and
// reported as internal faults; downstream handlers are not covered.
func (g *Gate) Pipeline(stages ...Stage) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := g.run(c, stages); err != nil {
			return g.reject(c, err)
		}
		return c.Next()
	}
}

func (g *Gate) run(c *fiber.Ctx, stages []Stage) (err error) {
	current := ""
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: panic in stage %s: %v", apperror.ErrInternalFault, current, r)
		}
	}()

	for _, s := range stages {
		current = s.Name
		if err := s.Run(c); err != nil {
			return err
		}
	}
	return nil
}

func (g *Gate) rateLimit(c *fiber.Ctx) error {
	client := c.IP()
	d, err := g.limiter.Admit(c.UserContext(), client)
	if err != nil {
		return fmt.Errorf("%w: rate limiter: %v", apperror.ErrInternalFault, err)
	}

	c.Set("X-RateLimit-Limit", strconv.Itoa(d.Limit))
	c.Set("X-RateLimit-Remaining", strconv.Itoa(d.Remaining))
	c.Set("X-RateLimit-Reset", strconv.FormatInt(d.ResetAt.Unix(), 10))

	if !d.Allowed {
		retryAfter := int(math.Ceil(d.RetryAfter.Seconds()))
		if retryAfter < 1 {
			retryAfter = 1
		}
		c.Set(fiber.HeaderRetryAfter, strconv.Itoa(retryAfter))
		return apperror.ErrQuotaExceeded
	}
	return nil
}

func (g *Gate) authenticate(c *fiber.Ctx) error {
	header := c.Get(fiber.HeaderAuthorization)
	if header == "" {
		return apperror.ErrMissingCredential
	}
	if !strings.HasPrefix(header, bearerPrefix) {
		return apperror.ErrMalformedCredential
	}

	claims, err := g.verifier.Verify(strings.TrimPrefix(header, bearerPrefix))
	if err != nil {
		return fmt.Errorf("%w: %v", apperror.ErrInvalidCredential, err)
	}

	setUserID(c, claims.UserID)
	return nil
}

func (g *Gate) reject(c *fiber.Ctx, err error) error {
	reason := apperror.Reason(err)
	metrics.GateRejectionsTotal.WithLabelValues(reason).Inc()

	fields := []zap.Field{
		zap.String("reason", reason),
		zap.String("method", c.Method()),
		zap.String("path", c.Path()),
		zap.String("client", c.IP()),
	}
	if reason == "internal_fault" {
		g.log.Error("gate fault", append(fields, zap.Error(err))...)
	} else {
		g.log.Debug("request rejected", append(fields, zap.Error(err))...)
	}

	status, message := apperror.HTTPStatus(err)
	return c.Status(status).JSON(apperror.Response{Message: message})
}
