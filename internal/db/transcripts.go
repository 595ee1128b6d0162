package db

import (
	"database/sql"

	"github.com/Eriw/podcast-transcriber/internal/db/models"
)

const transcriptColumns = "id, audio_url, transcript, summary, engine, duration_secs, created_at, updated_at"

func scanTranscript(row interface{ Scan(...interface{}) error }) (*models.Transcript, error) {
	t := &models.Transcript{}
	var summary sql.NullString
	err := row.Scan(&t.ID, &t.AudioURL, &t.Transcript, &summary, &t.Engine, &t.DurationSecs, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if summary.Valid {
		t.Summary = &summary.String
	}
	return t, nil
}

// GetTranscriptByURL returns the cached transcript for an audio URL, or nil when absent
func (d *Database) GetTranscriptByURL(audioURL string) (*models.Transcript, error) {
	t, err := scanTranscript(d.db.QueryRow(
		"SELECT "+transcriptColumns+" FROM transcripts WHERE audio_url = ?", audioURL,
	))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return t, err
}

// GetTranscript returns a cached transcript by ID
func (d *Database) GetTranscript(id int64) (*models.Transcript, error) {
	return scanTranscript(d.db.QueryRow(
		"SELECT "+transcriptColumns+" FROM transcripts WHERE id = ?", id,
	))
}

// SaveTranscript upserts the transcript for an audio URL and returns the row ID
func (d *Database) SaveTranscript(audioURL, transcript, engine string, durationSecs float64) (int64, error) {
	_, err := d.db.Exec(`
		INSERT INTO transcripts (audio_url, transcript, engine, duration_secs, updated_at)
		VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(audio_url) DO UPDATE SET
			transcript = ?, engine = ?, duration_secs = ?, summary = NULL, updated_at = CURRENT_TIMESTAMP`,
		audioURL, transcript, engine, durationSecs,
		transcript, engine, durationSecs,
	)
	if err != nil {
		return 0, err
	}
	var id int64
	err = d.db.QueryRow("SELECT id FROM transcripts WHERE audio_url = ?", audioURL).Scan(&id)
	return id, err
}

// SetTranscriptSummary stores a summary on an existing transcript row
func (d *Database) SetTranscriptSummary(id int64, summary string) error {
	_, err := d.db.Exec(
		"UPDATE transcripts SET summary = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		summary, id,
	)
	return err
}

// ListTranscripts returns cached transcripts, newest first
func (d *Database) ListTranscripts() ([]models.Transcript, error) {
	rows, err := d.db.Query("SELECT " + transcriptColumns + " FROM transcripts ORDER BY updated_at DESC, id DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	transcripts := []models.Transcript{}
	for rows.Next() {
		t, err := scanTranscript(rows)
		if err != nil {
			return nil, err
		}
		transcripts = append(transcripts, *t)
	}
	return transcripts, rows.Err()
}

// DeleteTranscript removes a cached transcript by ID
func (d *Database) DeleteTranscript(id int64) error {
	_, err := d.db.Exec("DELETE FROM transcripts WHERE id = ?", id)
	return err
}
