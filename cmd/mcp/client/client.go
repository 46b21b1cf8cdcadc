// Package client provides an HTTP client for the liked tweets feed API.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Tweet is a single liked tweet as served by the API.
type Tweet struct {
	URL           string   `json:"url"`
	Text          string   `json:"text"`
	AuthorHandle  string   `json:"author_handle"`
	AuthorName    string   `json:"author_name"`
	AuthorAvatar  string   `json:"author_avatar,omitempty"`
	Date          string   `json:"date"`
	Lang          string   `json:"lang,omitempty"`
	MediaType     string   `json:"media_type"`
	ImagesURLs    []string `json:"images_urls,omitempty"`
	MediaURLs     []string `json:"media_urls,omitempty"`
	MentionedURLs []string `json:"mentioned_urls,omitempty"`
	IsRetweet     bool     `json:"is_retweet,omitempty"`
	NumLike       int64    `json:"num_like"`
	NumRetweet    int64    `json:"num_retweet"`
	NumReply      int64    `json:"num_reply"`
	NumViews      int64    `json:"num_views"`
}

// TweetsResponse is one page of the filtered view.
type TweetsResponse struct {
	Data     []Tweet `json:"data"`
	Metadata struct {
		TotalRows  int `json:"total_rows"`
		TotalPages int `json:"total_pages"`
		Page       int `json:"page"`
		PageSize   int `json:"page_size"`
	} `json:"metadata"`
}

// Author is an entry in the top authors ranking.
type Author struct {
	Handle string `json:"handle"`
	Name   string `json:"name"`
	Count  int    `json:"count"`
}

// SearchFilters mirrors the view query parameters accepted by /v1/tweets.
type SearchFilters struct {
	Search      string
	SortBy      string
	SortOrder   string
	MinLikes    *int64
	MinRetweets *int64
	DateStart   string
	DateEnd     string
	MediaType   string
	Author      string
	Page        int
	PageSize    int
}

// Client is an HTTP client for the feed API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new API client.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (c *Client) doRequest(ctx context.Context, method, path string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}

	return resp, nil
}

func (c *Client) handleResponse(resp *http.Response, result interface{}) error {
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(body))
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}

	return nil
}

func (f SearchFilters) queryParams() url.Values {
	params := url.Values{}

	setIfPresent := func(key, value string) {
		if value != "" {
			params.Set(key, value)
		}
	}

	setIfPresent("search", f.Search)
	setIfPresent("sort_by", f.SortBy)
	setIfPresent("sort_order", f.SortOrder)
	setIfPresent("date_start", f.DateStart)
	setIfPresent("date_end", f.DateEnd)
	setIfPresent("media_type", f.MediaType)
	setIfPresent("author", f.Author)

	if f.MinLikes != nil {
		params.Set("min_likes", strconv.FormatInt(*f.MinLikes, 10))
	}
	if f.MinRetweets != nil {
		params.Set("min_retweets", strconv.FormatInt(*f.MinRetweets, 10))
	}
	if f.Page > 0 {
		params.Set("page", strconv.Itoa(f.Page))
	}
	if f.PageSize > 0 {
		params.Set("page_size", strconv.Itoa(f.PageSize))
	}

	return params
}

// SearchTweets returns one page of tweets matching filters.
func (c *Client) SearchTweets(ctx context.Context, filters SearchFilters) (*TweetsResponse, error) {
	path := "/v1/tweets"
	if params := filters.queryParams(); len(params) > 0 {
		path += "?" + params.Encode()
	}

	resp, err := c.doRequest(ctx, http.MethodGet, path)
	if err != nil {
		return nil, err
	}

	var result TweetsResponse
	if err := c.handleResponse(resp, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

// GetTweet retrieves a single tweet by its URL.
func (c *Client) GetTweet(ctx context.Context, tweetURL string) (*Tweet, error) {
	params := url.Values{}
	params.Set("url", tweetURL)

	resp, err := c.doRequest(ctx, http.MethodGet, "/v1/tweets/lookup?"+params.Encode())
	if err != nil {
		return nil, err
	}

	var tweet Tweet
	if err := c.handleResponse(resp, &tweet); err != nil {
		return nil, err
	}

	return &tweet, nil
}

// TopAuthors lists the most frequent authors across the whole dataset.
func (c *Client) TopAuthors(ctx context.Context, limit int) ([]Author, error) {
	path := "/v1/authors/top"
	if limit > 0 {
		path += "?limit=" + strconv.Itoa(limit)
	}

	resp, err := c.doRequest(ctx, http.MethodGet, path)
	if err != nil {
		return nil, err
	}

	var result struct {
		Data []Author `json:"data"`
	}
	if err := c.handleResponse(resp, &result); err != nil {
		return nil, err
	}

	return result.Data, nil
}
