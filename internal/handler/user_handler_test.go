package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"strconv"
	"testing"

	"fees-api/internal/apperrors"
	"fees-api/internal/models"
	"fees-api/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUserRepo struct {
	users []models.User
}

func newFakeUserRepo(count int) *fakeUserRepo {
	repo := &fakeUserRepo{}
	for i := 1; i <= count; i++ {
		repo.users = append(repo.users, models.User{
			ID:    strconv.Itoa(i),
			Name:  fmt.Sprintf("User %d", i),
			Email: fmt.Sprintf("user%d@example.com", i),
			Age:   20 + i,
		})
	}
	return repo
}

func (r *fakeUserRepo) Create(ctx context.Context, input *models.CreateUserInput) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == input.Email {
			return nil, apperrors.NewFieldConflict("email", "email already exists")
		}
	}
	user := models.User{
		ID:    strconv.Itoa(len(r.users) + 1),
		Name:  input.Name,
		Email: input.Email,
		Age:   input.Age,
	}
	r.users = append(r.users, user)
	return &user, nil
}

func (r *fakeUserRepo) FindAll(ctx context.Context) ([]models.User, error) {
	return r.users, nil
}

func (r *fakeUserRepo) FindAllPaginated(ctx context.Context, opts utils.PaginationOptions) ([]models.User, int, error) {
	start := utils.GetSkip(opts.Page, opts.Limit)
	if start >= len(r.users) {
		return []models.User{}, len(r.users), nil
	}
	end := start + opts.Limit
	if end > len(r.users) {
		end = len(r.users)
	}
	return r.users[start:end], len(r.users), nil
}

func (r *fakeUserRepo) FindByID(ctx context.Context, id string) (*models.User, error) {
	for i := range r.users {
		if r.users[i].ID == id {
			return &r.users[i], nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	for i := range r.users {
		if r.users[i].Email == email {
			return &r.users[i], nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) Update(ctx context.Context, id string, input *models.UpdateUserInput) (*models.User, error) {
	for i := range r.users {
		if r.users[i].ID == id {
			if input.Name != nil {
				r.users[i].Name = *input.Name
			}
			if input.Email != nil {
				r.users[i].Email = *input.Email
			}
			if input.Age != nil {
				r.users[i].Age = *input.Age
			}
			return &r.users[i], nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) Delete(ctx context.Context, id string) (*models.User, error) {
	for i := range r.users {
		if r.users[i].ID == id {
			removed := r.users[i]
			r.users = append(r.users[:i], r.users[i+1:]...)
			return &removed, nil
		}
	}
	return nil, nil
}

func newUserTestApp(repo *fakeUserRepo) *fiber.App {
	app := fiber.New()
	h := NewUserHandler(repo)
	app.Post("/users", h.CreateUser)
	app.Get("/users", h.GetUsers)
	app.Get("/users/:id", h.GetUser)
	app.Put("/users/:id", h.UpdateUser)
	app.Delete("/users/:id", h.DeleteUser)
	return app
}

func TestGetUsersPaginated(t *testing.T) {
	app := newUserTestApp(newFakeUserRepo(25))

	resp, err := app.Test(httptest.NewRequest("GET", "/users?page=2&limit=10", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body struct {
		Message string `json:"message"`
		Data    struct {
			Meta    utils.PaginationMeta `json:"meta"`
			Records []models.User        `json:"records"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))

	assert.Equal(t, 3, body.Data.Meta.TotalPages)
	assert.Equal(t, 2, body.Data.Meta.CurrentPage)
	assert.Equal(t, 25, body.Data.Meta.TotalRecords)
	assert.Equal(t, 10, body.Data.Meta.RecordsOnCurrentPage)
	assert.Equal(t, 11, body.Data.Meta.RecordFrom)
	assert.Equal(t, 20, body.Data.Meta.RecordTo)

	require.Len(t, body.Data.Records, 10)
	assert.Equal(t, "11", body.Data.Records[0].ID)
}

func TestGetUsersPlainList(t *testing.T) {
	app := newUserTestApp(newFakeUserRepo(3))

	resp, err := app.Test(httptest.NewRequest("GET", "/users", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body struct {
		Message string        `json:"message"`
		Data    []models.User `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Len(t, body.Data, 3)
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	app := newUserTestApp(newFakeUserRepo(1))

	payload, _ := json.Marshal(models.CreateUserInput{
		Name:     "Dup",
		Email:    "user1@example.com",
		Age:      30,
		Password: "secret123",
	})
	req := httptest.NewRequest("POST", "/users", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusConflict, resp.StatusCode)

	var body struct {
		Message string              `json:"message"`
		Errors  map[string][]string `json:"errors"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "Validation failed", body.Message)
	assert.Equal(t, []string{"email already exists"}, body.Errors["email"])
}

func TestCreateUser(t *testing.T) {
	repo := newFakeUserRepo(0)
	app := newUserTestApp(repo)

	payload, _ := json.Marshal(models.CreateUserInput{
		Name:     "Ada",
		Email:    "ada@example.com",
		Age:      36,
		Password: "secret123",
	})
	req := httptest.NewRequest("POST", "/users", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
	require.Len(t, repo.users, 1)
}

func TestCreateUserMissingFields(t *testing.T) {
	app := newUserTestApp(newFakeUserRepo(0))

	req := httptest.NewRequest("POST", "/users", bytes.NewReader([]byte(`{"name":"NoEmail"}`)))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestGetUserNotFound(t *testing.T) {
	app := newUserTestApp(newFakeUserRepo(2))

	resp, err := app.Test(httptest.NewRequest("GET", "/users/99", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestDeleteUserReturnsEntity(t *testing.T) {
	repo := newFakeUserRepo(2)
	app := newUserTestApp(repo)

	resp, err := app.Test(httptest.NewRequest("DELETE", "/users/1", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body struct {
		Data models.User `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "1", body.Data.ID)
	assert.Len(t, repo.users, 1)
}
