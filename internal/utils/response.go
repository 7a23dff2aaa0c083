package utils

import (
	"fees-api/internal/apperrors"

	"github.com/gofiber/fiber/v2"
)

// SuccessResponse writes the uniform {message, data} envelope.
func SuccessResponse(c *fiber.Ctx, message string, data interface{}) error {
	return c.JSON(fiber.Map{
		"message": message,
		"data":    data,
	})
}

// PaginatedResponse writes the {message, data: {meta, records}} envelope used
// by list endpoints when pagination/search/sort was requested.
func PaginatedResponse(c *fiber.Ctx, message string, meta PaginationMeta, records interface{}) error {
	return c.JSON(fiber.Map{
		"message": message,
		"data": fiber.Map{
			"meta":    meta,
			"records": records,
		},
	})
}

// ErrorResponse writes an error envelope with the given status code.
func ErrorResponse(c *fiber.Ctx, status int, message string, err error) error {
	body := fiber.Map{
		"message": message,
		"data":    nil,
	}
	if err != nil {
		body["errors"] = err.Error()
	}
	return c.Status(status).JSON(body)
}

// ConflictResponse writes a 409 with the {field: [messages]} error payload.
func ConflictResponse(c *fiber.Ctx, ce *apperrors.ConflictError) error {
	return c.Status(fiber.StatusConflict).JSON(fiber.Map{
		"message": ce.Message,
		"data":    nil,
		"errors":  ce.Errors,
	})
}

// NotFoundResponse writes the standard 404 envelope.
func NotFoundResponse(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"message": message,
		"data":    nil,
	})
}
