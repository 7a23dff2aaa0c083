package models

import "time"

// User is the logical user entity shared by both persistence backends.
// ID is an opaque string: a decimal integer on MySQL, a record id on
// SurrealDB.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Age       int       `json:"age"`
	Password  string    `json:"-"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CreateUserInput is the payload accepted by user creation.
type CreateUserInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Age      int    `json:"age"`
	Password string `json:"password"`
}

// UpdateUserInput is a merge patch: nil fields are left untouched.
type UpdateUserInput struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
	Age   *int    `json:"age"`
}
