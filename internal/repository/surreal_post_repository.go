package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"fees-api/internal/models"
	"fees-api/internal/utils"

	surrealdb "github.com/surrealdb/surrealdb.go"
	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"
)

const tablePosts = "posts"

type surrealPostRecord struct {
	ID        *surrealmodels.RecordID `json:"id,omitempty"`
	UserID    int                     `json:"user_id"`
	Title     string                  `json:"title"`
	Content   string                  `json:"content"`
	IsActive  bool                    `json:"is_active"`
	CreatedAt time.Time               `json:"created_at"`
	UpdatedAt time.Time               `json:"updated_at"`
}

func (rec surrealPostRecord) toModel() models.Post {
	post := models.Post{
		UserID:    rec.UserID,
		Title:     rec.Title,
		Content:   rec.Content,
		IsActive:  rec.IsActive,
		CreatedAt: rec.CreatedAt,
		UpdatedAt: rec.UpdatedAt,
	}
	if rec.ID != nil {
		post.ID = rec.ID.String()
	}
	return post
}

var surrealPostSortFields = map[string]string{
	"id":        "id",
	"userId":    "user_id",
	"title":     "title",
	"isActive":  "is_active",
	"createdAt": "created_at",
	"updatedAt": "updated_at",
}

type SurrealPostRepository struct {
	db *surrealdb.DB
}

func NewSurrealPostRepository(db *surrealdb.DB) *SurrealPostRepository {
	return &SurrealPostRepository{db: db}
}

func (r *SurrealPostRepository) Create(ctx context.Context, input *models.CreatePostInput) (*models.Post, error) {
	isActive := true
	if input.IsActive != nil {
		isActive = *input.IsActive
	}

	now := time.Now().UTC()
	created, err := surrealdb.Create[surrealPostRecord](ctx, r.db, tablePosts, surrealPostRecord{
		UserID:    input.UserID,
		Title:     input.Title,
		Content:   input.Content,
		IsActive:  isActive,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	post := created.toModel()
	return &post, nil
}

func (r *SurrealPostRepository) FindAll(ctx context.Context) ([]models.Post, error) {
	records, err := surrealQueryRows[surrealPostRecord](ctx, r.db,
		"SELECT * FROM posts ORDER BY id DESC", map[string]any{})
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	return surrealPostsToModels(records), nil
}

func (r *SurrealPostRepository) FindAllPaginated(ctx context.Context, opts utils.PaginationOptions) ([]models.Post, int, error) {
	whereClause := ""
	vars := map[string]any{
		"limit": opts.Limit,
		"start": utils.GetSkip(opts.Page, opts.Limit),
	}
	if opts.Search != "" {
		whereClause = "WHERE string::lowercase(title) CONTAINS $search OR string::lowercase(content) CONTAINS $search"
		vars["search"] = strings.ToLower(opts.Search)
	}

	total, err := surrealCount(ctx, r.db,
		fmt.Sprintf("SELECT count() AS total FROM posts %s GROUP ALL", whereClause), vars)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count posts: %w", err)
	}

	sortField, ok := surrealPostSortFields[opts.Sort]
	if !ok {
		sortField = "id"
	}
	order := "DESC"
	if opts.Order == "ASC" {
		order = "ASC"
	}

	query := fmt.Sprintf("SELECT * FROM posts %s ORDER BY %s %s LIMIT $limit START $start",
		whereClause, sortField, order)
	records, err := surrealQueryRows[surrealPostRecord](ctx, r.db, query, vars)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list posts: %w", err)
	}
	return surrealPostsToModels(records), total, nil
}

func (r *SurrealPostRepository) FindByID(ctx context.Context, id string) (*models.Post, error) {
	record, err := surrealdb.Select[surrealPostRecord](ctx, r.db, parseRecordID(tablePosts, id))
	if err != nil {
		return nil, fmt.Errorf("failed to find post: %w", err)
	}
	if record == nil || record.ID == nil {
		return nil, nil
	}

	post := record.toModel()
	return &post, nil
}

func (r *SurrealPostRepository) FindByUserID(ctx context.Context, userID int) ([]models.Post, error) {
	records, err := surrealQueryRows[surrealPostRecord](ctx, r.db,
		"SELECT * FROM posts WHERE user_id = $user_id ORDER BY id DESC",
		map[string]any{"user_id": userID})
	if err != nil {
		return nil, fmt.Errorf("failed to list posts by user: %w", err)
	}
	return surrealPostsToModels(records), nil
}

func (r *SurrealPostRepository) FindActive(ctx context.Context) ([]models.Post, error) {
	records, err := surrealQueryRows[surrealPostRecord](ctx, r.db,
		"SELECT * FROM posts WHERE is_active = true ORDER BY id DESC", map[string]any{})
	if err != nil {
		return nil, fmt.Errorf("failed to list active posts: %w", err)
	}
	return surrealPostsToModels(records), nil
}

func (r *SurrealPostRepository) Update(ctx context.Context, id string, input *models.UpdatePostInput) (*models.Post, error) {
	current, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, nil
	}

	patch := map[string]any{"updated_at": time.Now().UTC()}
	if input.UserID != nil {
		patch["user_id"] = *input.UserID
	}
	if input.Title != nil {
		patch["title"] = *input.Title
	}
	if input.Content != nil {
		patch["content"] = *input.Content
	}
	if input.IsActive != nil {
		patch["is_active"] = *input.IsActive
	}

	records, err := surrealQueryRows[surrealPostRecord](ctx, r.db,
		"UPDATE $post MERGE $patch", map[string]any{
			"post":  parseRecordID(tablePosts, id),
			"patch": patch,
		})
	if err != nil {
		return nil, fmt.Errorf("failed to update post: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	post := records[0].toModel()
	return &post, nil
}

func (r *SurrealPostRepository) Delete(ctx context.Context, id string) (*models.Post, error) {
	current, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, nil
	}

	if _, err := surrealdb.Query[any](ctx, r.db, "DELETE $post", map[string]any{
		"post": parseRecordID(tablePosts, id),
	}); err != nil {
		return nil, fmt.Errorf("failed to delete post: %w", err)
	}
	return current, nil
}

func surrealPostsToModels(records []surrealPostRecord) []models.Post {
	posts := make([]models.Post, 0, len(records))
	for _, rec := range records {
		posts = append(posts, rec.toModel())
	}
	return posts
}
