package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"fees-api/internal/config"
	"fees-api/internal/database"
	"fees-api/internal/router"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jmoiron/sqlx"
	surrealdb "github.com/surrealdb/surrealdb.go"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()

	// Open the backend selected by DB_TYPE. The choice is made once, here.
	var (
		mysqlDB   *sqlx.DB
		surrealDB *surrealdb.DB
	)
	switch cfg.DBType {
	case config.BackendMySQL:
		mysqlDB, err = database.NewMySQL(cfg)
		if err != nil {
			log.Fatalf("Failed to connect to MySQL: %v", err)
		}
		defer mysqlDB.Close()
	case config.BackendSurreal:
		surrealDB, err = database.NewSurreal(ctx, cfg)
		if err != nil {
			log.Fatalf("Failed to connect to SurrealDB: %v", err)
		}
		defer surrealDB.Close(ctx)
	}

	// Redis backs the async ingestion queue. The API still serves without
	// it, minus the async endpoint.
	redisClient, err := database.NewRedis(cfg)
	if err != nil {
		log.Printf("Warning: Failed to connect to Redis: %v", err)
		log.Printf("Application will continue without Redis (async ingestion disabled)")
	} else {
		defer redisClient.Close()
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		BodyLimit:    cfg.UploadMaxSize,
		ErrorHandler: errorHandler,
	})

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${method} ${path} (${latency})\n",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, DELETE, OPTIONS",
	}))

	if err := router.Setup(app, mysqlDB, surrealDB, cfg); err != nil {
		log.Fatalf("Failed to set up routes: %v", err)
	}

	// Graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		fmt.Println("\nGracefully shutting down...")
		_ = app.Shutdown()
	}()

	port := fmt.Sprintf(":%s", cfg.AppPort)
	log.Printf("Server starting on %s (backend: %s)", port, cfg.DBType)
	if err := app.Listen(port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}

	fmt.Println("Server exited")
}

func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	return c.Status(code).JSON(fiber.Map{
		"message": message,
		"error":   err.Error(),
	})
}
