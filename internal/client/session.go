package client

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
)

// Mode selects which search endpoint a session query goes to
type Mode string

const (
	ModeDefault        Mode = "default"
	ModeITunesPodcasts Mode = "itunes_podcasts"
	ModeITunesEpisodes Mode = "itunes_episodes"
)

// TranscriptState tracks the session transcript lifecycle
type TranscriptState string

const (
	TranscriptNone    TranscriptState = "none"
	TranscriptLoading TranscriptState = "loading"
	TranscriptReady   TranscriptState = "ready"
	TranscriptError   TranscriptState = "error"
)

var (
	ErrEmptyQuery        = errors.New("search query is empty")
	ErrNoAudioURL        = errors.New("no audio URL available for this episode")
	ErrTranscriptLoading = errors.New("transcription is still in progress")
	ErrTranscriptFailed  = errors.New("cannot summarize a failed transcription")
	ErrNoTranscript      = errors.New("no transcript to summarize")
)

// Session drives the search / transcribe / summarize flow against a
// backend. It remembers the active search mode, the last results, and
// the transcript state, and keeps the last user-facing failure message.
type Session struct {
	client *Client
	limit  int

	mu              sync.Mutex
	mode            Mode
	podcastID       int64
	results         []Record
	transcriptState TranscriptState
	transcript      string
	summary         string
	lastMessage     string
}

// NewSession creates a session in the default search mode
func NewSession(c *Client) *Session {
	return &Session{
		client:          c,
		limit:           10,
		mode:            ModeDefault,
		transcriptState: TranscriptNone,
	}
}

// SetLimit caps iTunes result counts for subsequent searches
func (s *Session) SetLimit(limit int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.limit = limit
}

// Mode returns the active search mode
func (s *Session) Mode() Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// SetMode switches the search mode. Leaving episode mode forgets the
// remembered podcast.
func (s *Session) SetMode(mode Mode) error {
	switch mode {
	case ModeDefault, ModeITunesPodcasts, ModeITunesEpisodes:
	default:
		return fmt.Errorf("unknown search mode: %s", mode)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if mode != ModeITunesEpisodes {
		s.podcastID = 0
	}
	s.mode = mode
	return nil
}

// Results returns the records from the last successful search
func (s *Session) Results() []Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.results
}

// Result returns one record from the last search by index
func (s *Session) Result(i int) (Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i < 0 || i >= len(s.results) {
		return Record{}, fmt.Errorf("no result at index %d", i)
	}
	return s.results[i], nil
}

// Transcript returns the completed transcript, if any
func (s *Session) Transcript() (string, TranscriptState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.transcript, s.transcriptState
}

// Summary returns the last summary
func (s *Session) Summary() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.summary
}

// LastMessage returns the most recent user-facing failure message
func (s *Session) LastMessage() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastMessage
}

// Search runs a query against the endpoint for the active mode. Empty
// queries are refused without a request.
func (s *Session) Search(ctx context.Context, query string) ([]Record, error) {
	if strings.TrimSpace(query) == "" {
		s.fail(ErrEmptyQuery)
		return nil, ErrEmptyQuery
	}

	s.mu.Lock()
	mode := s.mode
	podcastID := s.podcastID
	limit := s.limit
	s.mu.Unlock()

	var results []Record
	var err error
	switch mode {
	case ModeITunesPodcasts:
		results, err = s.client.SearchPodcasts(ctx, query, limit)
	case ModeITunesEpisodes:
		results, err = s.client.SearchEpisodes(ctx, query, podcastID, limit)
	default:
		results, err = s.client.Search(ctx, query)
	}
	if err != nil {
		s.fail(err)
		return nil, err
	}

	s.mu.Lock()
	s.results = results
	s.mu.Unlock()
	return results, nil
}

// FindEpisodes switches to episode mode and lists the episodes of one
// podcast result. When the combined title+id search comes back empty it
// retries once as a plain lookup.
func (s *Session) FindEpisodes(ctx context.Context, podcast Record) ([]Record, error) {
	s.mu.Lock()
	s.mode = ModeITunesEpisodes
	s.podcastID = podcast.ID
	limit := s.limit
	s.mu.Unlock()

	results, err := s.client.SearchEpisodes(ctx, podcast.Title, podcast.ID, limit)
	if err != nil {
		s.fail(err)
		return nil, err
	}
	if len(results) == 0 {
		results, err = s.client.SearchEpisodes(ctx, "", podcast.ID, limit)
		if err != nil {
			s.fail(err)
			return nil, err
		}
	}

	s.mu.Lock()
	s.results = results
	s.mu.Unlock()
	return results, nil
}

// Transcribe requests a transcript for one result. Records without an
// audio URL are refused without a request.
func (s *Session) Transcribe(ctx context.Context, rec Record) (string, error) {
	if strings.TrimSpace(rec.AudioURL) == "" {
		s.fail(ErrNoAudioURL)
		return "", ErrNoAudioURL
	}

	s.mu.Lock()
	s.transcriptState = TranscriptLoading
	s.transcript = ""
	s.summary = ""
	s.mu.Unlock()

	text, err := s.client.Transcribe(ctx, rec.AudioURL)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.transcriptState = TranscriptError
		s.lastMessage = Message(err)
		return "", err
	}
	s.transcriptState = TranscriptReady
	s.transcript = text
	return text, nil
}

// Summarize condenses the completed transcript. It is refused while a
// transcript is loading, missing, or failed.
func (s *Session) Summarize(ctx context.Context) (string, error) {
	s.mu.Lock()
	state := s.transcriptState
	transcript := s.transcript
	s.mu.Unlock()

	switch state {
	case TranscriptLoading:
		s.fail(ErrTranscriptLoading)
		return "", ErrTranscriptLoading
	case TranscriptError:
		s.fail(ErrTranscriptFailed)
		return "", ErrTranscriptFailed
	case TranscriptNone:
		s.fail(ErrNoTranscript)
		return "", ErrNoTranscript
	}

	summary, err := s.client.Summarize(ctx, transcript)
	if err != nil {
		s.fail(err)
		return "", err
	}

	s.mu.Lock()
	s.summary = summary
	s.mu.Unlock()
	return summary, nil
}

func (s *Session) fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastMessage = Message(err)
}
