package itunes

// Podcast is a formatted podcast collection record
type Podcast struct {
	ID           int64  `json:"id"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	ArtworkURL   string `json:"artwork_url"`
	Artist       string `json:"artist"`
	FeedURL      string `json:"feed_url"`
	Genre        string `json:"genre"`
	ReleaseDate  string `json:"release_date"`
	EpisodeCount int64  `json:"episode_count"`
	Country      string `json:"country"`
	Type         string `json:"type"`
}

// Episode is a formatted podcast episode record
type Episode struct {
	ID            int64  `json:"id"`
	PodcastID     int64  `json:"podcast_id"`
	PodcastTitle  string `json:"podcast_title"`
	Title         string `json:"title"`
	Description   string `json:"description"`
	ArtworkURL    string `json:"artwork_url"`
	AudioURL      string `json:"audio_url"`
	Duration      int64  `json:"duration"`
	ReleaseDate   string `json:"release_date"`
	EpisodeNumber int64  `json:"episode_number"`
	Season        int64  `json:"season"`
	Type          string `json:"type"`
}

// Unknown covers result kinds the API may return that we do not model
type Unknown struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	ArtworkURL  string `json:"artwork_url"`
	Type        string `json:"type"`
}

func (i Item) str(keys ...string) string {
	for _, k := range keys {
		if v, ok := i[k].(string); ok && v != "" {
			return v
		}
	}
	return ""
}

func (i Item) num(keys ...string) int64 {
	for _, k := range keys {
		if v, ok := i[k].(float64); ok {
			return int64(v)
		}
	}
	return 0
}

func (i Item) has(key string) bool {
	_, ok := i[key]
	return ok
}

func (i Item) isEpisode() bool {
	if i.str("kind") == "podcast-episode" {
		return true
	}
	return i.has("episodeUrl") && i.has("collectionId") && i.has("trackId")
}

// FormatResults converts raw iTunes records into our API shapes. Lookup
// responses lead with the podcast collection itself (no "kind" field);
// that record is dropped so episode lists contain only episodes.
func FormatResults(results []Item) []interface{} {
	if len(results) > 0 && !results[0].has("kind") && results[0].has("collectionId") {
		results = results[1:]
	}

	formatted := make([]interface{}, 0, len(results))
	for _, item := range results {
		switch {
		case item.str("kind") == "podcast":
			formatted = append(formatted, formatPodcast(item))
		case item.isEpisode():
			formatted = append(formatted, formatEpisode(item))
		default:
			formatted = append(formatted, Unknown{
				ID:          item.num("trackId", "collectionId"),
				Title:       item.str("trackName", "collectionName"),
				Description: item.str("description"),
				ArtworkURL:  item.str("artworkUrl100"),
				Type:        "unknown",
			})
		}
	}
	return formatted
}

func formatPodcast(item Item) Podcast {
	return Podcast{
		ID:           item.num("collectionId"),
		Title:        item.str("collectionName"),
		Description:  item.str("description", "collectionCensoredName"),
		ArtworkURL:   item.str("artworkUrl600", "artworkUrl100"),
		Artist:       item.str("artistName"),
		FeedURL:      item.str("feedUrl"),
		Genre:        item.str("primaryGenreName"),
		ReleaseDate:  item.str("releaseDate"),
		EpisodeCount: item.num("trackCount"),
		Country:      item.str("country"),
		Type:         "podcast",
	}
}

func formatEpisode(item Item) Episode {
	return Episode{
		ID:            item.num("trackId"),
		PodcastID:     item.num("collectionId"),
		PodcastTitle:  item.str("collectionName"),
		Title:         item.str("trackName"),
		Description:   item.str("description"),
		ArtworkURL:    item.str("artworkUrl600", "artworkUrl100"),
		AudioURL:      item.str("episodeUrl", "previewUrl"),
		Duration:      item.num("trackTimeMillis"),
		ReleaseDate:   item.str("releaseDate"),
		EpisodeNumber: item.num("episodeNumber"),
		Season:        item.num("seasonNumber"),
		Type:          "episode",
	}
}
