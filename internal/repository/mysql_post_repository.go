package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"fees-api/internal/models"
	"fees-api/internal/utils"

	"github.com/jmoiron/sqlx"
)

type mysqlPostRow struct {
	ID        int64     `db:"id"`
	UserID    int       `db:"user_id"`
	Title     string    `db:"title"`
	Content   string    `db:"content"`
	IsActive  bool      `db:"is_active"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (r mysqlPostRow) toModel() models.Post {
	return models.Post{
		ID:        strconv.FormatInt(r.ID, 10),
		UserID:    r.UserID,
		Title:     r.Title,
		Content:   r.Content,
		IsActive:  r.IsActive,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

var postSortColumns = map[string]string{
	"id":        "id",
	"userId":    "user_id",
	"title":     "title",
	"isActive":  "is_active",
	"createdAt": "created_at",
	"updatedAt": "updated_at",
}

type MySQLPostRepository struct {
	db *sqlx.DB
}

func NewMySQLPostRepository(db *sqlx.DB) *MySQLPostRepository {
	return &MySQLPostRepository{db: db}
}

func (r *MySQLPostRepository) Create(ctx context.Context, input *models.CreatePostInput) (*models.Post, error) {
	isActive := true
	if input.IsActive != nil {
		isActive = *input.IsActive
	}

	query := "INSERT INTO posts (user_id, title, content, is_active) VALUES (?, ?, ?, ?)"
	result, err := r.db.ExecContext(ctx, query, input.UserID, input.Title, input.Content, isActive)
	if err != nil {
		return nil, fmt.Errorf("failed to insert post: %w", err)
	}

	id, _ := result.LastInsertId()
	return r.FindByID(ctx, strconv.FormatInt(id, 10))
}

func (r *MySQLPostRepository) FindAll(ctx context.Context) ([]models.Post, error) {
	var rows []mysqlPostRow
	if err := r.db.SelectContext(ctx, &rows, "SELECT * FROM posts ORDER BY id DESC"); err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	return postRowsToModels(rows), nil
}

func (r *MySQLPostRepository) FindAllPaginated(ctx context.Context, opts utils.PaginationOptions) ([]models.Post, int, error) {
	whereClause := ""
	args := []interface{}{}
	if opts.Search != "" {
		whereClause = "WHERE LOWER(title) LIKE ? OR LOWER(content) LIKE ?"
		pattern := "%" + strings.ToLower(opts.Search) + "%"
		args = append(args, pattern, pattern)
	}

	var total int
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM posts %s", whereClause)
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to count posts: %w", err)
	}

	sortColumn, ok := postSortColumns[opts.Sort]
	if !ok {
		sortColumn = "id"
	}
	order := "DESC"
	if opts.Order == "ASC" {
		order = "ASC"
	}

	query := fmt.Sprintf("SELECT * FROM posts %s ORDER BY %s %s LIMIT ? OFFSET ?",
		whereClause, sortColumn, order)
	args = append(args, opts.Limit, utils.GetSkip(opts.Page, opts.Limit))

	var rows []mysqlPostRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to list posts: %w", err)
	}
	return postRowsToModels(rows), total, nil
}

func (r *MySQLPostRepository) FindByID(ctx context.Context, id string) (*models.Post, error) {
	numericID, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return nil, nil
	}

	var row mysqlPostRow
	err = r.db.GetContext(ctx, &row, "SELECT * FROM posts WHERE id = ? LIMIT 1", numericID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find post: %w", err)
	}

	post := row.toModel()
	return &post, nil
}

func (r *MySQLPostRepository) FindByUserID(ctx context.Context, userID int) ([]models.Post, error) {
	var rows []mysqlPostRow
	query := "SELECT * FROM posts WHERE user_id = ? ORDER BY id DESC"
	if err := r.db.SelectContext(ctx, &rows, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list posts by user: %w", err)
	}
	return postRowsToModels(rows), nil
}

func (r *MySQLPostRepository) FindActive(ctx context.Context) ([]models.Post, error) {
	var rows []mysqlPostRow
	query := "SELECT * FROM posts WHERE is_active = TRUE ORDER BY id DESC"
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("failed to list active posts: %w", err)
	}
	return postRowsToModels(rows), nil
}

func (r *MySQLPostRepository) Update(ctx context.Context, id string, input *models.UpdatePostInput) (*models.Post, error) {
	current, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, nil
	}

	userID, title, content, isActive := current.UserID, current.Title, current.Content, current.IsActive
	if input.UserID != nil {
		userID = *input.UserID
	}
	if input.Title != nil {
		title = *input.Title
	}
	if input.Content != nil {
		content = *input.Content
	}
	if input.IsActive != nil {
		isActive = *input.IsActive
	}

	query := "UPDATE posts SET user_id = ?, title = ?, content = ?, is_active = ? WHERE id = ?"
	if _, err := r.db.ExecContext(ctx, query, userID, title, content, isActive, current.ID); err != nil {
		return nil, fmt.Errorf("failed to update post: %w", err)
	}

	return r.FindByID(ctx, id)
}

func (r *MySQLPostRepository) Delete(ctx context.Context, id string) (*models.Post, error) {
	current, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, nil
	}

	if _, err := r.db.ExecContext(ctx, "DELETE FROM posts WHERE id = ?", current.ID); err != nil {
		return nil, fmt.Errorf("failed to delete post: %w", err)
	}
	return current, nil
}

func postRowsToModels(rows []mysqlPostRow) []models.Post {
	posts := make([]models.Post, 0, len(rows))
	for _, row := range rows {
		posts = append(posts, row.toModel())
	}
	return posts
}
