// Package firecrawl wraps the Firecrawl scraping API for pulling payer
// policy pages into markdown.
package firecrawl

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
)

type ScrapeResult struct {
	Markdown string            `json:"markdown"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

type Client struct {
	http   *resty.Client
	logger zerolog.Logger
}

func NewClient(baseURL, apiKey string, logger zerolog.Logger) *Client {
	http := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(60 * time.Second). // scrapes can be slow
		SetAuthToken(apiKey).
		SetHeader("Content-Type", "application/json")

	return &Client{http: http, logger: logger}
}

func (c *Client) Scrape(ctx context.Context, url string) (*ScrapeResult, error) {
	var result struct {
		Success bool         `json:"success"`
		Data    ScrapeResult `json:"data"`
		Error   string       `json:"error"`
	}
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]interface{}{
			"url":     url,
			"formats": []string{"markdown"},
		}).
		SetResult(&result).
		Post("/v1/scrape")
	if err != nil {
		return nil, fmt.Errorf("scrape: %w", err)
	}
	if resp.IsError() || !result.Success {
		msg := result.Error
		if msg == "" {
			msg = fmt.Sprintf("unexpected status %d", resp.StatusCode())
		}
		return nil, fmt.Errorf("scrape: %s", msg)
	}
	c.logger.Debug().Str("url", url).Msg("firecrawl scrape complete")
	return &result.Data, nil
}
