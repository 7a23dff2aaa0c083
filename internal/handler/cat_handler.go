package handler

import (
	"fees-api/internal/models"
	"fees-api/internal/service"
	"fees-api/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type CatHandler struct {
	cats *service.CatService
}

func NewCatHandler(cats *service.CatService) *CatHandler {
	return &CatHandler{cats: cats}
}

func (h *CatHandler) GetCats(c *fiber.Ctx) error {
	return utils.SuccessResponse(c, "Cats retrieved successfully", h.cats.FindAll())
}

func (h *CatHandler) CreateCat(c *fiber.Ctx) error {
	var cat models.Cat
	if err := c.BodyParser(&cat); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}
	if cat.Name == "" {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "name is required", nil)
	}

	c.Status(fiber.StatusCreated)
	return utils.SuccessResponse(c, "Cat created successfully", h.cats.Create(cat))
}
