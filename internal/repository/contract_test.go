package repository

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"fees-api/internal/apperrors"
	"fees-api/internal/config"
	"fees-api/internal/database"
	"fees-api/internal/models"
	"fees-api/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runUserRepositoryContract exercises the behavior both engines must agree
// on: duplicate emails conflict, lookups that miss return (nil, nil), update
// is a merge patch, delete returns the removed entity, and pagination reports
// the same totals. Each run uses a unique marker so it can share a database
// with other data.
func runUserRepositoryContract(t *testing.T, repo UserRepository) {
	ctx := context.Background()
	stamp := fmt.Sprintf("%d", time.Now().UnixNano())

	created, err := repo.Create(ctx, &models.CreateUserInput{
		Name:     "contract-" + stamp,
		Email:    fmt.Sprintf("contract-%s@example.com", stamp),
		Age:      30,
		Password: "hashed-secret",
	})
	require.NoError(t, err)
	require.NotNil(t, created)
	require.NotEmpty(t, created.ID)

	_, err = repo.Create(ctx, &models.CreateUserInput{
		Name:     "contract-dup-" + stamp,
		Email:    created.Email,
		Age:      31,
		Password: "hashed-secret",
	})
	ce, ok := apperrors.AsConflict(err)
	require.True(t, ok, "duplicate email must surface a ConflictError")
	assert.Equal(t, []string{"email already exists"}, ce.Errors["email"])

	found, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, created.Email, found.Email)

	byEmail, err := repo.FindByEmail(ctx, created.Email)
	require.NoError(t, err)
	require.NotNil(t, byEmail)
	assert.Equal(t, created.ID, byEmail.ID)

	missing, err := repo.FindByID(ctx, "contract-missing-"+stamp)
	require.NoError(t, err)
	assert.Nil(t, missing)

	newName := "contract-renamed-" + stamp
	updated, err := repo.Update(ctx, created.ID, &models.UpdateUserInput{Name: &newName})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, newName, updated.Name)
	assert.Equal(t, created.Email, updated.Email, "update must merge, not replace")

	extra := make([]*models.User, 2)
	for i := range extra {
		extra[i], err = repo.Create(ctx, &models.CreateUserInput{
			Name:     fmt.Sprintf("contract-page-%s-%02d", stamp, i),
			Email:    fmt.Sprintf("contract-page-%s-%02d@example.com", stamp, i),
			Age:      40 + i,
			Password: "hashed-secret",
		})
		require.NoError(t, err)
	}

	records, total, err := repo.FindAllPaginated(ctx, utils.PaginationOptions{
		Page:   1,
		Limit:  1,
		Sort:   "name",
		Order:  "ASC",
		Search: "contract-page-" + stamp,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	require.Len(t, records, 1)
	assert.Equal(t, extra[0].Name, records[0].Name)

	meta := utils.GeneratePaginationMeta(total, 1, 1, len(records))
	assert.Equal(t, 2, meta.TotalPages)
	assert.Equal(t, 1, meta.RecordFrom)
	assert.Equal(t, 1, meta.RecordTo)

	for _, u := range []*models.User{created, extra[0], extra[1]} {
		removed, err := repo.Delete(ctx, u.ID)
		require.NoError(t, err)
		require.NotNil(t, removed)
		assert.Equal(t, u.ID, removed.ID)
	}

	gone, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestMySQLUserRepositoryContract(t *testing.T) {
	if os.Getenv("MYSQL_HOST") == "" {
		t.Skip("set MYSQL_HOST to run the MySQL contract suite")
	}

	cfg, err := config.Load()
	require.NoError(t, err)

	db, err := database.NewMySQL(cfg)
	require.NoError(t, err)
	defer db.Close()

	runUserRepositoryContract(t, NewMySQLUserRepository(db))
}

func TestSurrealUserRepositoryContract(t *testing.T) {
	if os.Getenv("SURREALDB_URL") == "" {
		t.Skip("set SURREALDB_URL to run the SurrealDB contract suite")
	}

	cfg, err := config.Load()
	require.NoError(t, err)

	ctx := context.Background()
	db, err := database.NewSurreal(ctx, cfg)
	require.NoError(t, err)
	defer db.Close(ctx)

	runUserRepositoryContract(t, NewSurrealUserRepository(db))
}
