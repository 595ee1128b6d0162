package itunes

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"
)

const (
	searchURL = "https://itunes.apple.com/search"
	lookupURL = "https://itunes.apple.com/lookup"
)

// Item is one raw result record from the iTunes Search API. Records are
// heterogeneous (podcasts, episodes, collection headers), so they stay
// untyped until formatting.
type Item map[string]interface{}

// Response is the raw iTunes Search API response envelope
type Response struct {
	ResultCount int    `json:"resultCount"`
	Results     []Item `json:"results"`
}

// Client queries the iTunes Search API. Requests are throttled to stay
// under Apple's documented ~20 calls/minute limit.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	searchURL  string
	lookupURL  string
}

func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		limiter:    rate.NewLimiter(rate.Every(3*time.Second), 5),
		searchURL:  searchURL,
		lookupURL:  lookupURL,
	}
}

// SearchPodcasts queries the search API for podcast collections
func (c *Client) SearchPodcasts(ctx context.Context, term string, limit int, country string) (*Response, error) {
	params := url.Values{}
	params.Set("term", term)
	params.Set("media", "podcast")
	params.Set("entity", "podcast")
	params.Set("limit", strconv.Itoa(limit))
	params.Set("country", country)
	return c.get(ctx, c.searchURL, params)
}

// SearchEpisodes queries the search API for episodes matching a term
func (c *Client) SearchEpisodes(ctx context.Context, term string, limit int, country string) (*Response, error) {
	params := url.Values{}
	params.Set("term", term)
	params.Set("media", "podcast")
	params.Set("entity", "podcastEpisode")
	params.Set("limit", strconv.Itoa(limit))
	params.Set("country", country)
	return c.get(ctx, c.searchURL, params)
}

// LookupEpisodes fetches episodes of one podcast by collection ID. The
// first record of a lookup response is the podcast itself; formatting
// skips it.
func (c *Client) LookupEpisodes(ctx context.Context, podcastID int64, limit int, country string) (*Response, error) {
	params := url.Values{}
	params.Set("id", strconv.FormatInt(podcastID, 10))
	params.Set("entity", "podcastEpisode")
	params.Set("limit", strconv.Itoa(limit))
	params.Set("country", country)
	return c.get(ctx, c.lookupURL, params)
}

func (c *Client) get(ctx context.Context, baseURL string, params url.Values) (*Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, "GET", baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("iTunes request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("iTunes request failed: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("iTunes request failed: status %d", resp.StatusCode)
	}

	var result Response
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to parse iTunes response: %w", err)
	}

	log.Printf("[itunes] %s returned %d results", baseURL, result.ResultCount)
	return &result, nil
}
