package models

import "time"

// Transcript is a cached transcription of one episode audio URL
type Transcript struct {
	ID           int64     `json:"id"`
	AudioURL     string    `json:"audio_url"`
	Transcript   string    `json:"transcript"`
	Summary      *string   `json:"summary,omitempty"`
	Engine       string    `json:"engine"`
	DurationSecs float64   `json:"duration_secs"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
