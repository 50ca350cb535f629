package handler

import (
	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(app fiber.Router, h *AuthHandler) {
	auth := app.Group("/api/auth")
	auth.Post("/signup", h.Signup)
	auth.Post("/login", h.Login)
}
