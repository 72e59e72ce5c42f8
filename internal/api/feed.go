package api

import (
	"context"
	"fmt"
	"net/url"

	"github.com/lingbao-market/client/internal/model"
)

// GetFeed fetches the latest listings. sort is model.SortByTime or
// model.SortByPrice; empty leaves the choice to the API.
func (c *Client) GetFeed(ctx context.Context, sort string) ([]model.PriceItem, error) {
	query := url.Values{}
	if sort != "" {
		query.Set("sort", sort)
	}

	var items []model.PriceItem
	if err := c.get(ctx, "/feed", query, &items); err != nil {
		return nil, fmt.Errorf("get feed: %w", err)
	}

	return items, nil
}
