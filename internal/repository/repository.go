package repository

import (
	"context"

	"fees-api/internal/models"
	"fees-api/internal/utils"
)

// UserRepository is the backend-neutral persistence contract for users.
// IDs are opaque strings; lookups that miss return (nil, nil), never an
// error. Create and Update surface duplicate emails as a ConflictError.
type UserRepository interface {
	Create(ctx context.Context, input *models.CreateUserInput) (*models.User, error)
	FindAll(ctx context.Context) ([]models.User, error)
	FindAllPaginated(ctx context.Context, opts utils.PaginationOptions) ([]models.User, int, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, id string, input *models.UpdateUserInput) (*models.User, error)
	Delete(ctx context.Context, id string) (*models.User, error)
}

// PostRepository mirrors UserRepository for posts. Update is a merge patch
// and Delete returns the removed entity.
type PostRepository interface {
	Create(ctx context.Context, input *models.CreatePostInput) (*models.Post, error)
	FindAll(ctx context.Context) ([]models.Post, error)
	FindAllPaginated(ctx context.Context, opts utils.PaginationOptions) ([]models.Post, int, error)
	FindByID(ctx context.Context, id string) (*models.Post, error)
	FindByUserID(ctx context.Context, userID int) ([]models.Post, error)
	FindActive(ctx context.Context) ([]models.Post, error)
	Update(ctx context.Context, id string, input *models.UpdatePostInput) (*models.Post, error)
	Delete(ctx context.Context, id string) (*models.Post, error)
}

// FeesBatchSink opens one transactional handle per ingestion run. Concurrent
// runs each drive their own handle; the sink itself holds no per-run state.
type FeesBatchSink interface {
	Begin(ctx context.Context) (FeesTx, error)
}

// FeesTx is the transaction of a single run. The driver calls InsertBatch for
// every flush in file order, then exactly one of Commit or Rollback. After
// Rollback nothing from the run is visible in storage.
type FeesTx interface {
	InsertBatch(ctx context.Context, records []models.FeesRecord) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// FeesRepository adds read and maintenance operations on top of the sink,
// used by the export endpoint and by tooling.
type FeesRepository interface {
	FeesBatchSink
	FindAll(ctx context.Context) ([]models.FeesRecord, error)
	Count(ctx context.Context) (int, error)
	DeleteAll(ctx context.Context) error
}
