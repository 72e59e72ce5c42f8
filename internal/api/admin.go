package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/lingbao-market/client/internal/model"
)

// ListUsers returns every account.
func (c *Client) ListUsers(ctx context.Context) ([]model.UserPublic, error) {
	var users []model.UserPublic
	if err := c.get(ctx, "/admin/users", nil, &users); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// CreateUser creates an account, optionally with admin rights.
func (c *Client) CreateUser(ctx context.Context, req model.CreateUserRequest) (*model.UserPublic, error) {
	var user model.UserPublic
	if err := c.send(ctx, http.MethodPost, "/admin/users", req, &user); err != nil {
		return nil, fmt.Errorf("create user %s: %w", req.Username, err)
	}
	return &user, nil
}

// SetUserBan bans or unbans an account.
func (c *Client) SetUserBan(ctx context.Context, username string, banned bool) (*model.UserPublic, error) {
	var user model.UserPublic
	path := "/admin/users/" + url.PathEscape(username) + "/ban"
	if err := c.send(ctx, http.MethodPatch, path, model.BanRequest{Banned: banned}, &user); err != nil {
		return nil, fmt.Errorf("set ban %s: %w", username, err)
	}
	return &user, nil
}

// DeleteUser removes an account.
func (c *Client) DeleteUser(ctx context.Context, username string) error {
	var resp StatusResponse
	if err := c.send(ctx, http.MethodDelete, "/admin/users/"+url.PathEscape(username), nil, &resp); err != nil {
		return fmt.Errorf("delete user %s: %w", username, err)
	}
	return nil
}

// DeletePrice removes a code from the feed.
func (c *Client) DeletePrice(ctx context.Context, code string) (*DeletePriceResponse, error) {
	var resp DeletePriceResponse
	if err := c.send(ctx, http.MethodDelete, "/admin/prices/"+url.PathEscape(code), nil, &resp); err != nil {
		return nil, fmt.Errorf("delete price %s: %w", code, err)
	}
	return &resp, nil
}

// ListFeedback returns feedback reports, newest first.
func (c *Client) ListFeedback(ctx context.Context, includeResolved bool) ([]model.FeedbackMessage, error) {
	query := url.Values{}
	query.Set("includeResolved", strconv.FormatBool(includeResolved))

	var feedback []model.FeedbackMessage
	if err := c.get(ctx, "/admin/feedback", query, &feedback); err != nil {
		return nil, fmt.Errorf("list feedback: %w", err)
	}
	return feedback, nil
}

// ResolveFeedback closes a report. action is model.ActionKeep or
// model.ActionDelete; delete also removes the reported code from the feed.
func (c *Client) ResolveFeedback(ctx context.Context, id, action string) (*model.FeedbackMessage, error) {
	action, err := model.NormalizeAction(action)
	if err != nil {
		return nil, err
	}

	var resp model.FeedbackMessage
	path := "/admin/feedback/" + url.PathEscape(id) + "/resolve"
	if err := c.send(ctx, http.MethodPost, path, model.ResolveFeedbackRequest{Action: action}, &resp); err != nil {
		return nil, fmt.Errorf("resolve feedback %s: %w", id, err)
	}
	return &resp, nil
}

// ListLogs returns the moderation log.
func (c *Client) ListLogs(ctx context.Context) ([]model.AdminLogEntry, error) {
	var logs []model.AdminLogEntry
	if err := c.get(ctx, "/admin/logs", nil, &logs); err != nil {
		return nil, fmt.Errorf("list logs: %w", err)
	}
	return logs, nil
}
