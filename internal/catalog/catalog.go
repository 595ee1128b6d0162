package catalog

import (
	"context"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/mmcdole/gofeed"
)

const feedTTL = 15 * time.Minute

// Entry is one searchable episode in the catalog
type Entry struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	AudioURL    string `json:"audio_url"`
}

// builtinEntries back the catalog when no feed is configured
var builtinEntries = []Entry{
	{
		Title:       "Episode 1: Summary from Feb 27, 2025",
		Description: "A podcast episode summary from February 27",
		AudioURL:    "http://wirebrand.se/podcast/2025-02-27_summary.mp3",
	},
	{
		Title:       "Episode 2: Summary from Feb 26, 2025",
		Description: "A podcast episode summary from February 26",
		AudioURL:    "http://wirebrand.se/podcast/2025-02-26_summary.mp3",
	},
}

// Catalog serves the episode list behind the plain search endpoint. With
// a feed URL configured it mirrors that RSS feed, refreshed at most
// every feedTTL; otherwise it serves a small built-in list.
type Catalog struct {
	resolveFeedURL func() string
	parser         *gofeed.Parser

	mu        sync.Mutex
	feedURL   string // URL the cached entries came from
	entries   []Entry
	fetchedAt time.Time
}

// New creates a catalog. resolveFeedURL returns the configured feed URL,
// re-read on every request so settings changes take effect.
func New(resolveFeedURL func() string) *Catalog {
	return &Catalog{
		resolveFeedURL: resolveFeedURL,
		parser:         gofeed.NewParser(),
	}
}

// Search returns entries whose title or description contains the query,
// case-insensitively. An empty query matches everything.
func (c *Catalog) Search(ctx context.Context, query string) []Entry {
	entries := c.load(ctx)

	q := strings.ToLower(query)
	results := []Entry{}
	for _, e := range entries {
		if strings.Contains(strings.ToLower(e.Title), q) || strings.Contains(strings.ToLower(e.Description), q) {
			results = append(results, e)
		}
	}
	return results
}

func (c *Catalog) load(ctx context.Context) []Entry {
	feedURL := c.resolveFeedURL()
	if feedURL == "" {
		return builtinEntries
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.entries != nil && c.feedURL == feedURL && time.Since(c.fetchedAt) < feedTTL {
		return c.entries
	}

	feed, err := c.parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		log.Printf("[catalog] feed fetch failed: %v", err)
		if c.entries != nil && c.feedURL == feedURL {
			return c.entries
		}
		return builtinEntries
	}

	entries := make([]Entry, 0, len(feed.Items))
	for _, item := range feed.Items {
		audioURL := ""
		for _, enc := range item.Enclosures {
			if strings.Contains(enc.Type, "audio") || strings.HasSuffix(enc.URL, ".mp3") {
				audioURL = enc.URL
				break
			}
		}
		if audioURL == "" {
			continue
		}
		entries = append(entries, Entry{
			Title:       item.Title,
			Description: item.Description,
			AudioURL:    audioURL,
		})
	}

	c.feedURL = feedURL
	c.entries = entries
	c.fetchedAt = time.Now()
	log.Printf("[catalog] loaded %d entries from feed", len(entries))
	return c.entries
}
