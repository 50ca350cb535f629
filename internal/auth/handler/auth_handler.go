package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/void-adarsh/Notes-App/internal/auth/dto"
	"github.com/void-adarsh/Notes-App/internal/auth/service"
	apperror "github.com/void-adarsh/Notes-App/internal/errors"
)

type AuthHandler struct {
	userService *service.UserService
}

func NewAuthHandler(userService *service.UserService) *AuthHandler {
	return &AuthHandler{userService: userService}
}

func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var input dto.SignupInput
	if err := c.BodyParser(&input); err != nil {
		return apperror.Write(c, apperror.ErrInvalidInput)
	}

	resp, err := h.userService.Signup(c.UserContext(), input)
	if err != nil {
		return apperror.Write(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(resp)
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var input dto.LoginInput
	if err := c.BodyParser(&input); err != nil {
		return apperror.Write(c, apperror.ErrInvalidInput)
	}

	resp, err := h.userService.Login(c.UserContext(), input)
	if err != nil {
		return apperror.Write(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(resp)
}
