package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/lingbao-market/client/internal/model"
)

// Submit publishes a listing to the feed.
func (c *Client) Submit(ctx context.Context, req model.SubmitRequest) error {
	var resp StatusResponse
	if err := c.send(ctx, http.MethodPost, "/submit", req, &resp); err != nil {
		return fmt.Errorf("submit %s: %w", req.Code, err)
	}
	return nil
}

// SubmitFeedback reports a listing for moderation.
func (c *Client) SubmitFeedback(ctx context.Context, req model.FeedbackRequest) (*model.FeedbackMessage, error) {
	var resp model.FeedbackMessage
	if err := c.send(ctx, http.MethodPost, "/feedback", req, &resp); err != nil {
		return nil, fmt.Errorf("submit feedback %s: %w", req.Code, err)
	}
	return &resp, nil
}
