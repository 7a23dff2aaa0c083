package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"fees-api/internal/apperrors"
	"fees-api/internal/models"
	"fees-api/internal/utils"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
)

const mysqlDuplicateEntry = 1062

type mysqlUserRow struct {
	ID        int64     `db:"id"`
	Name      string    `db:"name"`
	Email     string    `db:"email"`
	Age       int       `db:"age"`
	Password  string    `db:"password"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (r mysqlUserRow) toModel() models.User {
	return models.User{
		ID:        strconv.FormatInt(r.ID, 10),
		Name:      r.Name,
		Email:     r.Email,
		Age:       r.Age,
		Password:  r.Password,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

// Whitelist of client-facing sort keys to real columns. Anything else falls
// back to id.
var userSortColumns = map[string]string{
	"id":        "id",
	"name":      "name",
	"email":     "email",
	"age":       "age",
	"createdAt": "created_at",
	"updatedAt": "updated_at",
}

type MySQLUserRepository struct {
	db *sqlx.DB
}

func NewMySQLUserRepository(db *sqlx.DB) *MySQLUserRepository {
	return &MySQLUserRepository{db: db}
}

func (r *MySQLUserRepository) Create(ctx context.Context, input *models.CreateUserInput) (*models.User, error) {
	existing, err := r.FindByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.NewFieldConflict("email", "email already exists")
	}

	query := "INSERT INTO users (name, email, age, password) VALUES (?, ?, ?, ?)"
	result, err := r.db.ExecContext(ctx, query, input.Name, input.Email, input.Age, input.Password)
	if err != nil {
		if isDuplicateEntry(err) {
			return nil, apperrors.NewFieldConflict("email", "email already exists")
		}
		return nil, fmt.Errorf("failed to insert user: %w", err)
	}

	id, _ := result.LastInsertId()
	return r.FindByID(ctx, strconv.FormatInt(id, 10))
}

func (r *MySQLUserRepository) FindAll(ctx context.Context) ([]models.User, error) {
	var rows []mysqlUserRow
	if err := r.db.SelectContext(ctx, &rows, "SELECT * FROM users ORDER BY id DESC"); err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	users := make([]models.User, 0, len(rows))
	for _, row := range rows {
		users = append(users, row.toModel())
	}
	return users, nil
}

func (r *MySQLUserRepository) FindAllPaginated(ctx context.Context, opts utils.PaginationOptions) ([]models.User, int, error) {
	whereClause := ""
	args := []interface{}{}
	if opts.Search != "" {
		whereClause = "WHERE LOWER(name) LIKE ? OR LOWER(email) LIKE ?"
		pattern := "%" + strings.ToLower(opts.Search) + "%"
		args = append(args, pattern, pattern)
	}

	var total int
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM users %s", whereClause)
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	sortColumn, ok := userSortColumns[opts.Sort]
	if !ok {
		sortColumn = "id"
	}
	order := "DESC"
	if opts.Order == "ASC" {
		order = "ASC"
	}

	query := fmt.Sprintf("SELECT * FROM users %s ORDER BY %s %s LIMIT ? OFFSET ?",
		whereClause, sortColumn, order)
	args = append(args, opts.Limit, utils.GetSkip(opts.Page, opts.Limit))

	var rows []mysqlUserRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}

	users := make([]models.User, 0, len(rows))
	for _, row := range rows {
		users = append(users, row.toModel())
	}
	return users, total, nil
}

func (r *MySQLUserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	numericID, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return nil, nil
	}

	var row mysqlUserRow
	err = r.db.GetContext(ctx, &row, "SELECT * FROM users WHERE id = ? LIMIT 1", numericID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	user := row.toModel()
	return &user, nil
}

func (r *MySQLUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var row mysqlUserRow
	err := r.db.GetContext(ctx, &row, "SELECT * FROM users WHERE email = ? LIMIT 1", email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}

	user := row.toModel()
	return &user, nil
}

func (r *MySQLUserRepository) Update(ctx context.Context, id string, input *models.UpdateUserInput) (*models.User, error) {
	current, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, nil
	}

	name, email, age := current.Name, current.Email, current.Age
	if input.Name != nil {
		name = *input.Name
	}
	if input.Email != nil {
		email = *input.Email
	}
	if input.Age != nil {
		age = *input.Age
	}

	if email != current.Email {
		existing, err := r.FindByEmail(ctx, email)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, apperrors.NewFieldConflict("email", "email already exists")
		}
	}

	query := "UPDATE users SET name = ?, email = ?, age = ? WHERE id = ?"
	if _, err := r.db.ExecContext(ctx, query, name, email, age, current.ID); err != nil {
		if isDuplicateEntry(err) {
			return nil, apperrors.NewFieldConflict("email", "email already exists")
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return r.FindByID(ctx, id)
}

func (r *MySQLUserRepository) Delete(ctx context.Context, id string) (*models.User, error) {
	current, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, nil
	}

	if _, err := r.db.ExecContext(ctx, "DELETE FROM users WHERE id = ?", current.ID); err != nil {
		return nil, fmt.Errorf("failed to delete user: %w", err)
	}
	return current, nil
}

func isDuplicateEntry(err error) bool {
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry
}
