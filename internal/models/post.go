package models

import "time"

type Post struct {
	ID        string    `json:"id"`
	UserID    int       `json:"userId"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type CreatePostInput struct {
	UserID   int    `json:"userId"`
	Title    string `json:"title"`
	Content  string `json:"content"`
	IsActive *bool  `json:"isActive"`
}

// UpdatePostInput is a merge patch: nil fields are left untouched.
type UpdatePostInput struct {
	UserID   *int    `json:"userId"`
	Title    *string `json:"title"`
	Content  *string `json:"content"`
	IsActive *bool   `json:"isActive"`
}
