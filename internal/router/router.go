package router

import (
	"fees-api/internal/config"
	"fees-api/internal/repository"

	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"
	surrealdb "github.com/surrealdb/surrealdb.go"
)

// Setup wires the HTTP surface. The persistence backend is resolved exactly
// once here, from cfg.DBType; exactly one of mysqlDB and surrealDB is set.
func Setup(app *fiber.App, mysqlDB *sqlx.DB, surrealDB *surrealdb.DB, cfg *config.Config) error {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":   "ok",
			"app":      cfg.AppName,
			"database": cfg.DBType,
		})
	})

	repos, err := repository.New(cfg, mysqlDB, surrealDB)
	if err != nil {
		return err
	}

	api := app.Group("/api/v1")
	setupAPIRoutes(api, repos, cfg)
	return nil
}
