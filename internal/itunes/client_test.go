package itunes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"golang.org/x/time/rate"
)

func testClient(serverURL string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 5 * time.Second},
		limiter:    rate.NewLimiter(rate.Inf, 1),
		searchURL:  serverURL + "/search",
		lookupURL:  serverURL + "/lookup",
	}
}

func TestSearchPodcastsParams(t *testing.T) {
	var gotQuery string
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`{"resultCount":1,"results":[{"kind":"podcast","collectionId":1,"collectionName":"A"}]}`))
	}))
	defer server.Close()

	c := testClient(server.URL)
	resp, err := c.SearchPodcasts(context.Background(), "tech news", 10, "US")
	if err != nil {
		t.Fatalf("SearchPodcasts failed: %v", err)
	}
	if resp.ResultCount != 1 || len(resp.Results) != 1 {
		t.Fatalf("unexpected response: %+v", resp)
	}

	if gotPath != "/search" {
		t.Errorf("expected /search path, got %s", gotPath)
	}
	for _, want := range []string{"term=tech+news", "media=podcast", "entity=podcast", "limit=10", "country=US"} {
		if !strings.Contains(gotQuery, want) {
			t.Errorf("query missing %q: %s", want, gotQuery)
		}
	}
}

func TestSearchEpisodesParams(t *testing.T) {
	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`{"resultCount":0,"results":[]}`))
	}))
	defer server.Close()

	c := testClient(server.URL)
	if _, err := c.SearchEpisodes(context.Background(), "go", 25, "SE"); err != nil {
		t.Fatalf("SearchEpisodes failed: %v", err)
	}
	if !strings.Contains(gotQuery, "entity=podcastEpisode") {
		t.Errorf("expected episode entity, got %s", gotQuery)
	}
	if !strings.Contains(gotQuery, "country=SE") {
		t.Errorf("expected country=SE, got %s", gotQuery)
	}
}

func TestLookupEpisodesUsesLookupAPI(t *testing.T) {
	var gotPath, gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`{"resultCount":2,"results":[{"collectionId":77},{"kind":"podcast-episode","trackId":1,"collectionId":77,"episodeUrl":"x"}]}`))
	}))
	defer server.Close()

	c := testClient(server.URL)
	resp, err := c.LookupEpisodes(context.Background(), 77, 50, "US")
	if err != nil {
		t.Fatalf("LookupEpisodes failed: %v", err)
	}

	if gotPath != "/lookup" {
		t.Errorf("expected /lookup path, got %s", gotPath)
	}
	if !strings.Contains(gotQuery, "id=77") {
		t.Errorf("expected id=77, got %s", gotQuery)
	}
	if len(resp.Results) != 2 {
		t.Fatalf("expected raw results to keep the collection record, got %d", len(resp.Results))
	}
}

func TestGetUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	c := testClient(server.URL)
	_, err := c.SearchPodcasts(context.Background(), "x", 10, "US")
	if err == nil {
		t.Fatal("expected error on 503")
	}
	if !strings.Contains(err.Error(), "status 503") {
		t.Errorf("expected status in error, got %v", err)
	}
}

func TestGetBadJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer server.Close()

	c := testClient(server.URL)
	_, err := c.SearchPodcasts(context.Background(), "x", 10, "US")
	if err == nil || !strings.Contains(err.Error(), "failed to parse") {
		t.Errorf("expected parse error, got %v", err)
	}
}
