package handler

import (
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"fees-api/internal/config"
	"fees-api/internal/models"
	"fees-api/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthTestApp(repo *fakeUserRepo, userID string) *fiber.App {
	cfg := &config.Config{
		JWTSecret:        "test-secret",
		JWTRefreshSecret: "test-refresh-secret",
		JWTAccessExpire:  time.Hour,
		JWTRefreshExpire: time.Hour,
	}
	h := NewAuthHandler(service.NewAuthService(repo, cfg))

	app := fiber.New()
	app.Get("/auth/me", func(c *fiber.Ctx) error {
		c.Locals("user_id", userID)
		return c.Next()
	}, h.Me)
	return app
}

func TestMeReturnsUser(t *testing.T) {
	app := newAuthTestApp(newFakeUserRepo(2), "2")

	resp, err := app.Test(httptest.NewRequest("GET", "/auth/me", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body struct {
		Data models.User `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "2", body.Data.ID)
	assert.Equal(t, "user2@example.com", body.Data.Email)
}

func TestMeUnknownUser(t *testing.T) {
	app := newAuthTestApp(newFakeUserRepo(2), "99")

	resp, err := app.Test(httptest.NewRequest("GET", "/auth/me", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
