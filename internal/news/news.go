// Package news reads finance headlines from a NewsAPI compatible feed.
package news

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"moneta/internal/models"
)

const (
	// DefaultBaseURL is the public NewsAPI endpoint.
	DefaultBaseURL = "https://newsapi.org/v2"
	// Query is the fixed search term of the feed.
	Query = "finance"
)

// ErrNoAPIKey is returned when the client has no key configured.
var ErrNoAPIKey = errors.New("news api key is not configured")

type response struct {
	Status   string           `json:"status"`
	Code     string           `json:"code"`
	Message  string           `json:"message"`
	Articles []models.Article `json:"articles"`
}

// Client is a NewsAPI client.
type Client struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewClient creates a Client. An empty baseURL means DefaultBaseURL.
func NewClient(baseURL, apiKey string, client *http.Client) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), apiKey: apiKey, client: client}
}

// Articles returns the articles matching query.
func (c *Client) Articles(ctx context.Context, query string) ([]models.Article, error) {
	if c.apiKey == "" {
		return nil, ErrNoAPIKey
	}

	q := url.Values{}
	q.Set("q", query)
	q.Set("apiKey", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/everything?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("news request: %w", err)
	}
	defer resp.Body.Close()

	var r response
	if err := json.NewDecoder(resp.Body).Decode(&r); err != nil {
		return nil, fmt.Errorf("news response (status %d): %w", resp.StatusCode, err)
	}
	if resp.StatusCode != http.StatusOK || r.Status == "error" {
		return nil, fmt.Errorf("news api returned %d: %s %s", resp.StatusCode, r.Code, r.Message)
	}

	if r.Articles == nil {
		r.Articles = []models.Article{}
	}
	return r.Articles, nil
}

// Finance returns the articles of the fixed finance query.
func (c *Client) Finance(ctx context.Context) ([]models.Article, error) {
	return c.Articles(ctx, Query)
}
