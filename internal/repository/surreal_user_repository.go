package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"fees-api/internal/apperrors"
	"fees-api/internal/models"
	"fees-api/internal/utils"

	surrealdb "github.com/surrealdb/surrealdb.go"
	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"
)

const tableUsers = "users"

type surrealUserRecord struct {
	ID        *surrealmodels.RecordID `json:"id,omitempty"`
	Name      string                  `json:"name"`
	Email     string                  `json:"email"`
	Age       int                     `json:"age"`
	Password  string                  `json:"password"`
	CreatedAt time.Time               `json:"created_at"`
	UpdatedAt time.Time               `json:"updated_at"`
}

func (rec surrealUserRecord) toModel() models.User {
	user := models.User{
		Name:      rec.Name,
		Email:     rec.Email,
		Age:       rec.Age,
		Password:  rec.Password,
		CreatedAt: rec.CreatedAt,
		UpdatedAt: rec.UpdatedAt,
	}
	if rec.ID != nil {
		user.ID = rec.ID.String()
	}
	return user
}

// parseRecordID accepts both "table:identifier" and a bare identifier and
// pins the result to the given table.
func parseRecordID(table, id string) surrealmodels.RecordID {
	if prefix, rest, found := strings.Cut(id, ":"); found && prefix == table {
		return surrealmodels.NewRecordID(table, rest)
	}
	return surrealmodels.NewRecordID(table, id)
}

var surrealUserSortFields = map[string]string{
	"id":        "id",
	"name":      "name",
	"email":     "email",
	"age":       "age",
	"createdAt": "created_at",
	"updatedAt": "updated_at",
}

type surrealCountRow struct {
	Total int `json:"total"`
}

type SurrealUserRepository struct {
	db *surrealdb.DB
}

func NewSurrealUserRepository(db *surrealdb.DB) *SurrealUserRepository {
	return &SurrealUserRepository{db: db}
}

func (r *SurrealUserRepository) Create(ctx context.Context, input *models.CreateUserInput) (*models.User, error) {
	existing, err := r.FindByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.NewFieldConflict("email", "email already exists")
	}

	now := time.Now().UTC()
	created, err := surrealdb.Create[surrealUserRecord](ctx, r.db, tableUsers, surrealUserRecord{
		Name:      input.Name,
		Email:     input.Email,
		Age:       input.Age,
		Password:  input.Password,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	user := created.toModel()
	return &user, nil
}

func (r *SurrealUserRepository) FindAll(ctx context.Context) ([]models.User, error) {
	records, err := surrealQueryRows[surrealUserRecord](ctx, r.db,
		"SELECT * FROM users ORDER BY id DESC", map[string]any{})
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return surrealUsersToModels(records), nil
}

func (r *SurrealUserRepository) FindAllPaginated(ctx context.Context, opts utils.PaginationOptions) ([]models.User, int, error) {
	whereClause := ""
	vars := map[string]any{
		"limit": opts.Limit,
		"start": utils.GetSkip(opts.Page, opts.Limit),
	}
	if opts.Search != "" {
		whereClause = "WHERE string::lowercase(name) CONTAINS $search OR string::lowercase(email) CONTAINS $search"
		vars["search"] = strings.ToLower(opts.Search)
	}

	total, err := surrealCount(ctx, r.db,
		fmt.Sprintf("SELECT count() AS total FROM users %s GROUP ALL", whereClause), vars)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	sortField, ok := surrealUserSortFields[opts.Sort]
	if !ok {
		sortField = "id"
	}
	order := "DESC"
	if opts.Order == "ASC" {
		order = "ASC"
	}

	query := fmt.Sprintf("SELECT * FROM users %s ORDER BY %s %s LIMIT $limit START $start",
		whereClause, sortField, order)
	records, err := surrealQueryRows[surrealUserRecord](ctx, r.db, query, vars)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}
	return surrealUsersToModels(records), total, nil
}

func (r *SurrealUserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	record, err := surrealdb.Select[surrealUserRecord](ctx, r.db, parseRecordID(tableUsers, id))
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if record == nil || record.ID == nil {
		return nil, nil
	}

	user := record.toModel()
	return &user, nil
}

func (r *SurrealUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	records, err := surrealQueryRows[surrealUserRecord](ctx, r.db,
		"SELECT * FROM users WHERE email = $email LIMIT 1", map[string]any{"email": email})
	if err != nil {
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	user := records[0].toModel()
	return &user, nil
}

func (r *SurrealUserRepository) Update(ctx context.Context, id string, input *models.UpdateUserInput) (*models.User, error) {
	current, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, nil
	}

	if input.Email != nil && *input.Email != current.Email {
		existing, err := r.FindByEmail(ctx, *input.Email)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, apperrors.NewFieldConflict("email", "email already exists")
		}
	}

	patch := map[string]any{"updated_at": time.Now().UTC()}
	if input.Name != nil {
		patch["name"] = *input.Name
	}
	if input.Email != nil {
		patch["email"] = *input.Email
	}
	if input.Age != nil {
		patch["age"] = *input.Age
	}

	records, err := surrealQueryRows[surrealUserRecord](ctx, r.db,
		"UPDATE $user MERGE $patch", map[string]any{
			"user":  parseRecordID(tableUsers, id),
			"patch": patch,
		})
	if err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	user := records[0].toModel()
	return &user, nil
}

func (r *SurrealUserRepository) Delete(ctx context.Context, id string) (*models.User, error) {
	current, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, nil
	}

	if _, err := surrealdb.Query[any](ctx, r.db, "DELETE $user", map[string]any{
		"user": parseRecordID(tableUsers, id),
	}); err != nil {
		return nil, fmt.Errorf("failed to delete user: %w", err)
	}
	return current, nil
}

func surrealUsersToModels(records []surrealUserRecord) []models.User {
	users := make([]models.User, 0, len(records))
	for _, rec := range records {
		users = append(users, rec.toModel())
	}
	return users
}

// surrealQueryRows runs a single-statement query and returns its rows.
func surrealQueryRows[T any](ctx context.Context, db *surrealdb.DB, query string, vars map[string]any) ([]T, error) {
	res, err := surrealdb.Query[[]T](ctx, db, query, vars)
	if err != nil {
		return nil, err
	}
	if res == nil || len(*res) == 0 {
		return nil, nil
	}
	return (*res)[0].Result, nil
}

// surrealCount runs a "SELECT count() AS total ... GROUP ALL" query. With no
// matching rows GROUP ALL yields no result row, which counts as zero.
func surrealCount(ctx context.Context, db *surrealdb.DB, query string, vars map[string]any) (int, error) {
	rows, err := surrealQueryRows[surrealCountRow](ctx, db, query, vars)
	if err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0, nil
	}
	return rows[0].Total, nil
}
