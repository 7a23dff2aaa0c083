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
	"fees-api/internal/repository"
	"fees-api/internal/worker"

	"github.com/hibiken/asynq"
	"github.com/jmoiron/sqlx"
	surrealdb "github.com/surrealdb/surrealdb.go"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()

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

	repos, err := repository.New(cfg, mysqlDB, surrealDB)
	if err != nil {
		log.Fatalf("Failed to set up repositories: %v", err)
	}

	srv := asynq.NewServer(
		asynq.RedisClientOpt{
			Addr:     cfg.AsynqRedisAddr,
			Password: cfg.AsynqRedisPassword,
			DB:       cfg.AsynqRedisDB,
		},
		asynq.Config{
			Concurrency: cfg.WorkerConcurrency,
			Queues: map[string]int{
				"critical": 6,
				"default":  3,
				"low":      1,
			},
			ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
				log.Printf("Error processing task %s: %v", task.Type(), err)
			}),
		},
	)

	mux := asynq.NewServeMux()
	worker.RegisterHandlers(mux, repos)

	// Graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		fmt.Println("\nGracefully shutting down worker...")
		srv.Shutdown()
	}()

	log.Printf("Worker starting with concurrency: %d", cfg.WorkerConcurrency)
	if err := srv.Run(mux); err != nil {
		log.Fatalf("Failed to start worker: %v", err)
	}

	fmt.Println("Worker exited")
}
