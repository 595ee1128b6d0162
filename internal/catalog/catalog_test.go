package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func staticFeedURL(url string) func() string {
	return func() string { return url }
}

func TestSearchBuiltinEntries(t *testing.T) {
	c := New(staticFeedURL(""))

	all := c.Search(context.Background(), "")
	if len(all) != len(builtinEntries) {
		t.Fatalf("empty query should match all %d entries, got %d", len(builtinEntries), len(all))
	}

	// Case-insensitive match on title
	results := c.Search(context.Background(), "EPISODE 1")
	if len(results) != 1 {
		t.Fatalf("expected 1 match, got %d", len(results))
	}
	if results[0].AudioURL == "" {
		t.Error("expected audio URL on builtin entry")
	}

	// Match on description
	results = c.Search(context.Background(), "february 26")
	if len(results) != 1 {
		t.Fatalf("expected description match, got %d results", len(results))
	}

	// No match
	results = c.Search(context.Background(), "does not exist")
	if results == nil || len(results) != 0 {
		t.Fatalf("expected empty non-nil slice, got %v", results)
	}
}

func TestSearchFeedBacked(t *testing.T) {
	feedXML := `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
	<channel>
		<title>Test Pod</title>
		<item>
			<title>Deep Dive: Go Concurrency</title>
			<description>Channels and goroutines</description>
			<enclosure url="https://example.com/ep1.mp3" type="audio/mpeg" length="1000"/>
		</item>
		<item>
			<title>Interview: Database Internals</title>
			<description>B-trees all the way down</description>
			<enclosure url="https://example.com/ep2.mp3" type="audio/mpeg" length="1000"/>
		</item>
		<item>
			<title>No Audio Here</title>
			<description>Video only</description>
			<enclosure url="https://example.com/ep3.mp4" type="video/mp4" length="1000"/>
		</item>
	</channel>
</rss>`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		w.Write([]byte(feedXML))
	}))
	defer server.Close()

	c := New(staticFeedURL(server.URL))

	all := c.Search(context.Background(), "")
	if len(all) != 2 {
		t.Fatalf("expected 2 audio entries, got %d", len(all))
	}
	// Feed order preserved
	if all[0].Title != "Deep Dive: Go Concurrency" {
		t.Errorf("unexpected first entry: %s", all[0].Title)
	}
	if all[0].AudioURL != "https://example.com/ep1.mp3" {
		t.Errorf("unexpected audio URL: %s", all[0].AudioURL)
	}

	results := c.Search(context.Background(), "database")
	if len(results) != 1 || results[0].Title != "Interview: Database Internals" {
		t.Fatalf("unexpected results: %v", results)
	}
}

func TestSearchFeedErrorFallsBack(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	c := New(staticFeedURL(server.URL))
	results := c.Search(context.Background(), "")
	if len(results) != len(builtinEntries) {
		t.Fatalf("expected builtin fallback on feed error, got %d entries", len(results))
	}
}

func TestSearchFeedCached(t *testing.T) {
	hits := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Write([]byte(`<rss version="2.0"><channel><title>T</title><item><title>One</title><enclosure url="https://example.com/1.mp3" type="audio/mpeg"/></item></channel></rss>`))
	}))
	defer server.Close()

	c := New(staticFeedURL(server.URL))
	c.Search(context.Background(), "")
	c.Search(context.Background(), "one")
	if hits != 1 {
		t.Fatalf("expected feed fetched once, got %d fetches", hits)
	}
}
