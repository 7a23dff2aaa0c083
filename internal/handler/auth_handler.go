package handler

import (
	"errors"

	"fees-api/internal/apperrors"
	"fees-api/internal/models"
	"fees-api/internal/service"
	"fees-api/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req models.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "name, email and password are required", nil)
	}

	user, err := h.authService.Register(c.Context(), req)
	if err != nil {
		if ce, ok := apperrors.AsConflict(err); ok {
			return utils.ConflictResponse(c, ce)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to register user", err)
	}

	c.Status(fiber.StatusCreated)
	return utils.SuccessResponse(c, "User registered successfully", user)
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req models.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}

	response, err := h.authService.Login(c.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Invalid email or password", nil)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to log in", err)
	}

	return utils.SuccessResponse(c, "Login successful", response)
}

func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var req models.RefreshRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}
	if req.RefreshToken == "" {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "refresh_token is required", nil)
	}

	response, err := h.authService.Refresh(c.Context(), req)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Invalid refresh token", nil)
	}

	return utils.SuccessResponse(c, "Token refreshed successfully", response)
}

func (h *AuthHandler) Me(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)

	user, err := h.authService.GetUserByID(c.Context(), userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return utils.NotFoundResponse(c, "User not found")
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to retrieve user", err)
	}
	return utils.SuccessResponse(c, "User retrieved successfully", user)
}
