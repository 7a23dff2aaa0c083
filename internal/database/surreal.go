package database

import (
	"context"
	"fmt"

	"fees-api/internal/config"

	surrealdb "github.com/surrealdb/surrealdb.go"
)

// NewSurreal connects to SurrealDB, signs in, and selects the configured
// namespace and database.
func NewSurreal(ctx context.Context, cfg *config.Config) (*surrealdb.DB, error) {
	db, err := surrealdb.FromEndpointURLString(ctx, cfg.SurrealURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to surrealdb: %w", err)
	}

	if _, err := db.SignIn(ctx, surrealdb.Auth{
		Username: cfg.SurrealUsername,
		Password: cfg.SurrealPassword,
	}); err != nil {
		db.Close(ctx)
		return nil, fmt.Errorf("failed to sign in to surrealdb: %w", err)
	}

	if err := db.Use(ctx, cfg.SurrealNamespace, cfg.SurrealDatabase); err != nil {
		db.Close(ctx)
		return nil, fmt.Errorf("failed to select surrealdb namespace: %w", err)
	}

	return db, nil
}
