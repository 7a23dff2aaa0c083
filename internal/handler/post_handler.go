package handler

import (
	"strconv"

	"fees-api/internal/models"
	"fees-api/internal/repository"
	"fees-api/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type PostHandler struct {
	posts repository.PostRepository
}

func NewPostHandler(posts repository.PostRepository) *PostHandler {
	return &PostHandler{posts: posts}
}

func (h *PostHandler) CreatePost(c *fiber.Ctx) error {
	var input models.CreatePostInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}
	if input.Title == "" || input.UserID <= 0 {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "title and userId are required", nil)
	}

	post, err := h.posts.Create(c.Context(), &input)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create post", err)
	}

	c.Status(fiber.StatusCreated)
	return utils.SuccessResponse(c, "Post created successfully", post)
}

func (h *PostHandler) GetPosts(c *fiber.Ctx) error {
	if utils.HasPaginationParams(c) {
		opts := utils.GetPaginationOptions(c)
		posts, total, err := h.posts.FindAllPaginated(c.Context(), opts)
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to retrieve posts", err)
		}

		meta := utils.GeneratePaginationMeta(total, opts.Page, opts.Limit, len(posts))
		return utils.PaginatedResponse(c, "Posts retrieved successfully", meta, posts)
	}

	posts, err := h.posts.FindAll(c.Context())
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to retrieve posts", err)
	}
	return utils.SuccessResponse(c, "Posts retrieved successfully", posts)
}

func (h *PostHandler) GetActivePosts(c *fiber.Ctx) error {
	posts, err := h.posts.FindActive(c.Context())
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to retrieve posts", err)
	}
	return utils.SuccessResponse(c, "Active posts retrieved successfully", posts)
}

func (h *PostHandler) GetPostsByUser(c *fiber.Ctx) error {
	userID, err := strconv.Atoi(c.Params("userId"))
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid user ID", err)
	}

	posts, err := h.posts.FindByUserID(c.Context(), userID)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to retrieve posts", err)
	}
	return utils.SuccessResponse(c, "Posts retrieved successfully", posts)
}

func (h *PostHandler) GetPost(c *fiber.Ctx) error {
	post, err := h.posts.FindByID(c.Context(), c.Params("id"))
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to retrieve post", err)
	}
	if post == nil {
		return utils.NotFoundResponse(c, "Post not found")
	}
	return utils.SuccessResponse(c, "Post retrieved successfully", post)
}

func (h *PostHandler) UpdatePost(c *fiber.Ctx) error {
	var input models.UpdatePostInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}

	post, err := h.posts.Update(c.Context(), c.Params("id"), &input)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update post", err)
	}
	if post == nil {
		return utils.NotFoundResponse(c, "Post not found")
	}
	return utils.SuccessResponse(c, "Post updated successfully", post)
}

func (h *PostHandler) DeletePost(c *fiber.Ctx) error {
	post, err := h.posts.Delete(c.Context(), c.Params("id"))
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to delete post", err)
	}
	if post == nil {
		return utils.NotFoundResponse(c, "Post not found")
	}
	return utils.SuccessResponse(c, "Post deleted successfully", post)
}
