// README: User record created or refreshed on every authenticated sign-in.
package user

import (
	"errors"
	"time"
)

var (
	ErrBadRequest = errors.New("invalid user request")
	ErrNotFound   = errors.New("user not found")
)

type Record struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	ImageURL  string    `json:"imageUrl"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UpsertInput mirrors the sign-in payload {email, imageUrl, name}.
type UpsertInput struct {
	Email    string `json:"email"`
	ImageURL string `json:"imageUrl"`
	Name     string `json:"name"`
}
