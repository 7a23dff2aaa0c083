package utils

import (
	"math"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

const (
	DefaultLimit = 10
	MaxLimit     = 100
)

// PaginationOptions carries validated pagination query parameters.
type PaginationOptions struct {
	Page   int    `json:"page"`
	Limit  int    `json:"limit"`
	Sort   string `json:"sort"`
	Order  string `json:"order"`
	Search string `json:"search"`
}

// PaginationMeta is the computed block accompanying a paginated list response.
type PaginationMeta struct {
	TotalPages           int    `json:"totalPages"`
	CurrentPage          int    `json:"currentPage"`
	TotalRecords         int    `json:"totalRecords"`
	RecordsOnCurrentPage int    `json:"recordsOnCurrentPage"`
	RecordFrom           int    `json:"recordFrom"`
	RecordTo             int    `json:"recordTo"`
}

// GetPaginationOptions extracts and validates pagination parameters from the
// query string. Order is normalized to ASC/DESC, defaulting to DESC.
func GetPaginationOptions(c *fiber.Ctx) PaginationOptions {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", strconv.Itoa(DefaultLimit)))

	page, limit = ValidateParams(page, limit)

	order := c.Query("order", "DESC")
	if order != "ASC" && order != "DESC" {
		order = "DESC"
	}

	return PaginationOptions{
		Page:   page,
		Limit:  limit,
		Sort:   c.Query("sort", ""),
		Order:  order,
		Search: c.Query("search", ""),
	}
}

// HasPaginationParams reports whether the request asked for a paginated,
// searched, or sorted listing.
func HasPaginationParams(c *fiber.Ctx) bool {
	return c.Query("page") != "" || c.Query("limit") != "" ||
		c.Query("sort") != "" || c.Query("order") != "" || c.Query("search") != ""
}

// ValidateParams clamps page to >=1 and limit to [1, MaxLimit].
func ValidateParams(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return page, limit
}

// GetSkip calculates the offset for database queries.
func GetSkip(page, limit int) int {
	return (page - 1) * limit
}

// GeneratePaginationMeta computes pagination metadata from the total record
// count and the number of records actually returned on the current page.
func GeneratePaginationMeta(total, page, limit, recordsCount int) PaginationMeta {
	totalPages := 0
	if total > 0 && limit > 0 {
		totalPages = int(math.Ceil(float64(total) / float64(limit)))
	}

	recordFrom := 0
	recordTo := 0
	if total > 0 && recordsCount > 0 {
		recordFrom = (page-1)*limit + 1
		recordTo = recordFrom + recordsCount - 1
		if recordTo > total {
			recordTo = total
		}
	}

	return PaginationMeta{
		TotalPages:           totalPages,
		CurrentPage:          page,
		TotalRecords:         total,
		RecordsOnCurrentPage: recordsCount,
		RecordFrom:           recordFrom,
		RecordTo:             recordTo,
	}
}
