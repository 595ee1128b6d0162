package transcribe

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Eriw/podcast-transcriber/internal/ffmpeg"
)

const chunkSeconds = 300 // 5 minutes per chunk

// fallbackChunkSize is 95% of the 20MB chunk target, used when splitting
// by bytes because FFmpeg is unavailable
var fallbackChunkSize = int64(19 * 1024 * 1024)

// Result is a completed transcription
type Result struct {
	Transcript   string  `json:"transcript"`
	Engine       string  `json:"engine"`
	Chunks       int     `json:"chunks"`
	DurationSecs float64 `json:"duration_secs"`
}

// Service downloads episode audio and runs it through the selected
// transcription engine, splitting into chunks when the file exceeds the
// engine's upload limit.
type Service struct {
	engines       map[string]Engine
	resolveEngine func() string
	httpClient    *http.Client
}

// NewService creates the transcription service. resolveEngine returns
// the engine name to use, re-read on every request.
func NewService(resolveEngine func() string) *Service {
	return &Service{
		engines:       make(map[string]Engine),
		resolveEngine: resolveEngine,
		httpClient: &http.Client{
			Timeout: 10 * time.Minute,
		},
	}
}

// Register adds an engine to the service
func (s *Service) Register(e Engine) {
	s.engines[e.Name()] = e
}

// Engines lists registered engine names
func (s *Service) Engines() []string {
	names := make([]string, 0, len(s.engines))
	for name := range s.engines {
		names = append(names, name)
	}
	return names
}

// Engine resolves the currently selected engine
func (s *Service) Engine() (Engine, error) {
	return s.engineByName("")
}

func (s *Service) engineByName(name string) (Engine, error) {
	if name == "" {
		name = s.resolveEngine()
	}
	if name == "" {
		name = "openai"
	}
	eng, ok := s.engines[name]
	if !ok {
		return nil, fmt.Errorf("unknown transcription engine: %s", name)
	}
	return eng, nil
}

// Transcribe downloads the audio at audioURL and returns its transcript.
// Failures carry the HTTP status they should surface as; use Classify to
// map arbitrary errors onto the contract.
func (s *Service) Transcribe(ctx context.Context, audioURL string) (*Result, error) {
	return s.TranscribeWith(ctx, "", audioURL)
}

// TranscribeWith is Transcribe with an explicit engine, used by queued
// jobs that pin the engine at enqueue time
func (s *Service) TranscribeWith(ctx context.Context, engineName, audioURL string) (*Result, error) {
	eng, err := s.engineByName(engineName)
	if err != nil {
		return nil, internalError("%v", err)
	}
	if err := eng.Ready(); err != nil {
		return nil, internalError("%v", err)
	}

	log.Printf("[transcribe] downloading audio from %s", audioURL)
	audioPath, size, err := s.download(ctx, audioURL)
	if err != nil {
		return nil, err
	}
	defer os.Remove(audioPath)

	var duration float64
	if ffmpeg.Available() {
		if info, err := ffmpeg.Probe(audioPath); err == nil {
			duration = info.DurationSecs
		}
	}

	sizeMB := float64(size) / (1024 * 1024)
	if maxBytes := eng.MaxFileBytes(); maxBytes > 0 && size > maxBytes {
		log.Printf("[transcribe] audio is %.2f MB, splitting into chunks", sizeMB)
		return s.transcribeChunked(ctx, eng, audioPath, duration)
	}

	log.Printf("[transcribe] audio is %.2f MB, transcribing directly", sizeMB)
	text, err := eng.TranscribeFile(ctx, audioPath)
	if err != nil {
		return nil, err
	}

	return &Result{
		Transcript:   strings.TrimSpace(text),
		Engine:       eng.Name(),
		Chunks:       1,
		DurationSecs: duration,
	}, nil
}

func (s *Service) transcribeChunked(ctx context.Context, eng Engine, audioPath string, duration float64) (*Result, error) {
	chunkDir, err := os.MkdirTemp("", "audio-chunks-")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(chunkDir)

	var chunks []string
	if ffmpeg.Available() {
		chunks, err = ffmpeg.SplitAudio(ctx, audioPath, chunkDir, chunkSeconds)
	} else {
		log.Printf("[transcribe] ffmpeg not found, splitting by bytes")
		chunks, err = splitByBytes(audioPath, chunkDir, fallbackChunkSize)
	}
	if err != nil {
		return nil, err
	}

	log.Printf("[transcribe] split audio into %d chunks", len(chunks))

	parts := make([]string, 0, len(chunks))
	for i, chunk := range chunks {
		log.Printf("[transcribe] transcribing chunk %d/%d", i+1, len(chunks))
		text, err := eng.TranscribeFile(ctx, chunk)
		if err != nil {
			return nil, fmt.Errorf("chunk %d: %w", i, err)
		}
		parts = append(parts, strings.TrimSpace(text))
	}

	return &Result{
		Transcript:   strings.Join(parts, " "),
		Engine:       eng.Name(),
		Chunks:       len(chunks),
		DurationSecs: duration,
	}, nil
}

// splitByBytes cuts the file into fixed-size pieces with no re-encoding.
// Whisper copes with headerless MPEG data, so this keeps oversized files
// usable on hosts without FFmpeg.
func splitByBytes(inputPath, destDir string, chunkSize int64) ([]string, error) {
	in, err := os.Open(inputPath)
	if err != nil {
		return nil, err
	}
	defer in.Close()

	var chunks []string
	for i := 0; ; i++ {
		chunkPath := filepath.Join(destDir, fmt.Sprintf("chunk_%03d.mp3", i))
		out, err := os.Create(chunkPath)
		if err != nil {
			return nil, err
		}

		written, err := io.CopyN(out, in, chunkSize)
		out.Close()
		if written == 0 {
			os.Remove(chunkPath)
			if err == io.EOF {
				break
			}
			if err != nil {
				return nil, err
			}
			break
		}
		chunks = append(chunks, chunkPath)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
	}

	if len(chunks) == 0 {
		return nil, fmt.Errorf("no audio chunks generated")
	}
	return chunks, nil
}
