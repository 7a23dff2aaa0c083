package handler

import (
	"fees-api/internal/apperrors"
	"fees-api/internal/models"
	"fees-api/internal/repository"
	"fees-api/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type UserHandler struct {
	users repository.UserRepository
}

func NewUserHandler(users repository.UserRepository) *UserHandler {
	return &UserHandler{users: users}
}

func (h *UserHandler) CreateUser(c *fiber.Ctx) error {
	var input models.CreateUserInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}
	if input.Name == "" || input.Email == "" || input.Password == "" {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "name, email and password are required", nil)
	}

	passwordHash, err := utils.HashPassword(input.Password)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to hash password", err)
	}
	input.Password = passwordHash

	user, err := h.users.Create(c.Context(), &input)
	if err != nil {
		if ce, ok := apperrors.AsConflict(err); ok {
			return utils.ConflictResponse(c, ce)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create user", err)
	}

	c.Status(fiber.StatusCreated)
	return utils.SuccessResponse(c, "User created successfully", user)
}

func (h *UserHandler) GetUsers(c *fiber.Ctx) error {
	if utils.HasPaginationParams(c) {
		opts := utils.GetPaginationOptions(c)
		users, total, err := h.users.FindAllPaginated(c.Context(), opts)
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to retrieve users", err)
		}

		meta := utils.GeneratePaginationMeta(total, opts.Page, opts.Limit, len(users))
		return utils.PaginatedResponse(c, "Users retrieved successfully", meta, users)
	}

	users, err := h.users.FindAll(c.Context())
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to retrieve users", err)
	}
	return utils.SuccessResponse(c, "Users retrieved successfully", users)
}

func (h *UserHandler) GetUser(c *fiber.Ctx) error {
	user, err := h.users.FindByID(c.Context(), c.Params("id"))
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to retrieve user", err)
	}
	if user == nil {
		return utils.NotFoundResponse(c, "User not found")
	}
	return utils.SuccessResponse(c, "User retrieved successfully", user)
}

func (h *UserHandler) UpdateUser(c *fiber.Ctx) error {
	var input models.UpdateUserInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}

	user, err := h.users.Update(c.Context(), c.Params("id"), &input)
	if err != nil {
		if ce, ok := apperrors.AsConflict(err); ok {
			return utils.ConflictResponse(c, ce)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update user", err)
	}
	if user == nil {
		return utils.NotFoundResponse(c, "User not found")
	}
	return utils.SuccessResponse(c, "User updated successfully", user)
}

func (h *UserHandler) DeleteUser(c *fiber.Ctx) error {
	user, err := h.users.Delete(c.Context(), c.Params("id"))
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to delete user", err)
	}
	if user == nil {
		return utils.NotFoundResponse(c, "User not found")
	}
	return utils.SuccessResponse(c, "User deleted successfully", user)
}
