package errors

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/void-adarsh/Notes-App/internal/logger"
)

// Response is the body of every message reply.
type Response struct {
	Message string `json:"message"`
}

// Write replies with the status and message mapped from err. Server-side
// faults are logged in full; the client only sees the generic message.
func Write(c *fiber.Ctx, err error) error {
	status, message := HTTPStatus(err)
	if status >= fiber.StatusInternalServerError {
		logger.Logger().Error("request failed",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Error(err))
	}
	return c.Status(status).JSON(Response{Message: message})
}

// ErrorHandler is the fiber error handler. fiber errors such as 404 and
// 405 keep their code.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return c.Status(fe.Code).JSON(Response{Message: fe.Message})
	}
	return Write(c, err)
}
