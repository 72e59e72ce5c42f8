package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/lingbao-market/client/internal/model"
)

// GetCaptcha requests a captcha challenge for login or registration.
func (c *Client) GetCaptcha(ctx context.Context) (*CaptchaResponse, error) {
	var resp CaptchaResponse
	if err := c.get(ctx, "/auth/captcha", nil, &resp); err != nil {
		return nil, fmt.Errorf("get captcha: %w", err)
	}
	return &resp, nil
}

// Login exchanges credentials and a solved captcha for a bearer token.
func (c *Client) Login(ctx context.Context, req model.AuthRequest) (*model.AuthResponse, error) {
	var resp model.AuthResponse
	if err := c.send(ctx, http.MethodPost, "/auth/login", req, &resp); err != nil {
		return nil, fmt.Errorf("login %s: %w", req.Username, err)
	}
	return &resp, nil
}

// Register creates a new account.
func (c *Client) Register(ctx context.Context, req model.AuthRequest) (*RegisterResponse, error) {
	var resp RegisterResponse
	if err := c.send(ctx, http.MethodPost, "/auth/register", req, &resp); err != nil {
		return nil, fmt.Errorf("register %s: %w", req.Username, err)
	}
	return &resp, nil
}
