package client

import (
	"context"
	"net/http"

	"github.com/iamasit07/photoshare/internal/domain"
)

type RegisterRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (c *Client) Register(ctx context.Context, req RegisterRequest) (*domain.AuthResult, error) {
	var out domain.AuthResult
	if _, err := c.doJSON(ctx, c.public, http.MethodPost, "/api/auth/register", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Login(ctx context.Context, req LoginRequest) (*domain.AuthResult, error) {
	var out domain.AuthResult
	if _, err := c.doJSON(ctx, c.public, http.MethodPost, "/api/auth/login", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Me(ctx context.Context) (*domain.User, error) {
	var out domain.User
	if _, err := c.doJSON(ctx, c.authed, http.MethodGet, "/api/users/me", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
