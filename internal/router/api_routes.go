package router

import (
	"fees-api/internal/config"
	"fees-api/internal/handler"
	"fees-api/internal/middleware"
	"fees-api/internal/repository"
	"fees-api/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/hibiken/asynq"
)

func setupAPIRoutes(router fiber.Router, repos *repository.Repositories, cfg *config.Config) {
	// Services
	authService := service.NewAuthService(repos.Users, cfg)
	csvService := service.NewCSVService(repos.Fees)
	exportService := service.NewExportService(repos.Fees)
	catService := service.NewCatService()

	asynqClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     cfg.AsynqRedisAddr,
		Password: cfg.AsynqRedisPassword,
		DB:       cfg.AsynqRedisDB,
	})

	// Handlers
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(repos.Users)
	postHandler := handler.NewPostHandler(repos.Posts)
	catHandler := handler.NewCatHandler(catService)
	uploadHandler := handler.NewUploadHandler(csvService, exportService, asynqClient, cfg)

	authRequired := middleware.AuthMiddleware(cfg)

	// Auth
	auth := router.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/refresh", authHandler.Refresh)
	auth.Get("/me", authRequired, authHandler.Me)

	// Users: reads are public, mutations require a token
	users := router.Group("/users")
	users.Get("/", userHandler.GetUsers)
	users.Get("/:id", userHandler.GetUser)
	users.Post("/", authRequired, userHandler.CreateUser)
	users.Put("/:id", authRequired, userHandler.UpdateUser)
	users.Delete("/:id", authRequired, userHandler.DeleteUser)

	// Posts: the static segments must register before /:id
	posts := router.Group("/posts")
	posts.Get("/", postHandler.GetPosts)
	posts.Get("/active", postHandler.GetActivePosts)
	posts.Get("/user/:userId", postHandler.GetPostsByUser)
	posts.Get("/:id", postHandler.GetPost)
	posts.Post("/", authRequired, postHandler.CreatePost)
	posts.Put("/:id", authRequired, postHandler.UpdatePost)
	posts.Delete("/:id", authRequired, postHandler.DeletePost)

	// Cats
	cats := router.Group("/cats")
	cats.Get("/", catHandler.GetCats)
	cats.Post("/", authRequired, catHandler.CreateCat)

	// File upload
	fileUpload := router.Group("/file-upload", authRequired)
	fileUpload.Post("/csv", uploadHandler.UploadCSV)
	fileUpload.Post("/csv/async", uploadHandler.UploadCSVAsync)
	fileUpload.Post("/csv/validate", uploadHandler.ValidateCSV)
	fileUpload.Post("/csv/info", uploadHandler.CSVInfo)
	fileUpload.Post("/csv/debug", uploadHandler.DebugCSV)
	fileUpload.Get("/export", uploadHandler.ExportFees)
}
