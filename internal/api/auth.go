package api

import (
	"context"
	"net/http"

	"github.com/go-faster/errors"
)

// ErrInvalidEmail is returned before any network call when the supplied
// address fails local validation.
var ErrInvalidEmail = errors.New("invalid email address")

// User is the account shape returned by the auth endpoints.
type User struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	IsAdmin   bool   `json:"is_admin"`
	CreatedAt string `json:"created_at"`
}

// LoginResponse carries the issued token. Storing it is the caller's job:
// the client itself never writes to the credential store.
type LoginResponse struct {
	Token   string `json:"token"`
	User    *User  `json:"user"`
	IsAdmin bool   `json:"is_admin"`
}

// Login authenticates with the service and returns the issued token.
func (c *Client) Login(ctx context.Context, email, password string) (LoginResponse, error) {
	email = sanitizeEmail(email)
	if email == "" {
		return LoginResponse{}, ErrInvalidEmail
	}

	var resp LoginResponse
	body := map[string]string{"email": email, "password": password}
	if err := c.doJSON(ctx, http.MethodPost, "/auth/login", body, &resp); err != nil {
		return LoginResponse{}, err
	}
	return resp, nil
}

// RegisterResponse is the result of creating an account.
type RegisterResponse struct {
	Message string `json:"message"`
	User    User   `json:"user"`
}

// Register creates a new account.
func (c *Client) Register(ctx context.Context, email, password string) (RegisterResponse, error) {
	email = sanitizeEmail(email)
	if email == "" {
		return RegisterResponse{}, ErrInvalidEmail
	}

	var resp RegisterResponse
	body := map[string]string{"email": email, "password": password}
	if err := c.doJSON(ctx, http.MethodPost, "/auth/register", body, &resp); err != nil {
		return RegisterResponse{}, err
	}
	return resp, nil
}
