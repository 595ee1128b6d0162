package transcribe

import (
	"bytes"
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Eriw/podcast-transcriber/internal/ffmpeg"
)

type fakeEngine struct {
	name       string
	maxBytes   int64
	readyErr   error
	transcribe func(path string) (string, error)
}

func (f *fakeEngine) Name() string {
	if f.name == "" {
		return "fake"
	}
	return f.name
}

func (f *fakeEngine) Ready() error        { return f.readyErr }
func (f *fakeEngine) MaxFileBytes() int64 { return f.maxBytes }

func (f *fakeEngine) TranscribeFile(ctx context.Context, path string) (string, error) {
	return f.transcribe(path)
}

func newTestService(eng Engine) *Service {
	s := NewService(func() string { return eng.Name() })
	s.Register(eng)
	return s
}

func audioServer(t *testing.T, payload []byte) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "audio/mpeg")
		w.Write(payload)
	}))
}

func TestTranscribeDirect(t *testing.T) {
	server := audioServer(t, []byte("tiny audio payload"))
	defer server.Close()

	var gotSize int64
	eng := &fakeEngine{
		transcribe: func(path string) (string, error) {
			info, err := os.Stat(path)
			if err != nil {
				return "", err
			}
			gotSize = info.Size()
			return "  hello world  ", nil
		},
	}

	result, err := newTestService(eng).Transcribe(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Transcribe failed: %v", err)
	}
	if result.Transcript != "hello world" {
		t.Errorf("transcript = %q, want trimmed text", result.Transcript)
	}
	if result.Engine != "fake" || result.Chunks != 1 {
		t.Errorf("unexpected result metadata: %+v", result)
	}
	if gotSize != int64(len("tiny audio payload")) {
		t.Errorf("engine saw %d bytes, want full download", gotSize)
	}
}

func TestTranscribeEngineNotReady(t *testing.T) {
	eng := &fakeEngine{readyErr: errors.New("OpenAI API key not configured")}
	_, err := newTestService(eng).Transcribe(context.Background(), "http://unused")

	var se *StatusError
	if !errors.As(err, &se) || se.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 StatusError, got %v", err)
	}
	if !strings.Contains(se.Message, "not configured") {
		t.Errorf("unexpected detail: %q", se.Message)
	}
}

func TestTranscribeUnknownEngine(t *testing.T) {
	s := NewService(func() string { return "nope" })
	_, err := s.Transcribe(context.Background(), "http://unused")
	if err == nil || !strings.Contains(err.Error(), "unknown transcription engine") {
		t.Fatalf("expected unknown engine error, got %v", err)
	}
}

func TestTranscribeDownloadFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	eng := &fakeEngine{transcribe: func(string) (string, error) { return "", nil }}
	_, err := newTestService(eng).Transcribe(context.Background(), server.URL)

	var se *StatusError
	if !errors.As(err, &se) || se.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 StatusError, got %v", err)
	}
	if !strings.HasPrefix(se.Message, "Error accessing audio URL:") {
		t.Errorf("unexpected detail: %q", se.Message)
	}
}

func TestTranscribeEmptyDownload(t *testing.T) {
	server := audioServer(t, nil)
	defer server.Close()

	eng := &fakeEngine{transcribe: func(string) (string, error) { return "", nil }}
	_, err := newTestService(eng).Transcribe(context.Background(), server.URL)

	var se *StatusError
	if !errors.As(err, &se) || se.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 StatusError, got %v", err)
	}
	if se.Message != "Downloaded audio file is empty" {
		t.Errorf("unexpected detail: %q", se.Message)
	}
}

func TestSplitByBytes(t *testing.T) {
	dir := t.TempDir()
	payload := make([]byte, 45*1024)
	if _, err := rand.Read(payload); err != nil {
		t.Fatal(err)
	}
	inputPath := filepath.Join(dir, "input.mp3")
	if err := os.WriteFile(inputPath, payload, 0644); err != nil {
		t.Fatal(err)
	}

	chunkDir := t.TempDir()
	chunks, err := splitByBytes(inputPath, chunkDir, 10*1024)
	if err != nil {
		t.Fatalf("splitByBytes failed: %v", err)
	}
	if len(chunks) != 5 {
		t.Fatalf("expected 5 chunks, got %d", len(chunks))
	}

	var rejoined bytes.Buffer
	for i, chunk := range chunks {
		if want := fmt.Sprintf("chunk_%03d.mp3", i); filepath.Base(chunk) != want {
			t.Errorf("chunk %d named %s, want %s", i, filepath.Base(chunk), want)
		}
		data, err := os.ReadFile(chunk)
		if err != nil {
			t.Fatal(err)
		}
		if len(data) > 10*1024 {
			t.Errorf("chunk %d is %d bytes, over the chunk size", i, len(data))
		}
		rejoined.Write(data)
	}

	if !bytes.Equal(rejoined.Bytes(), payload) {
		t.Error("concatenated chunks do not equal the input")
	}
}

func TestSplitByBytesExactMultiple(t *testing.T) {
	dir := t.TempDir()
	payload := bytes.Repeat([]byte("a"), 20*1024)
	inputPath := filepath.Join(dir, "input.mp3")
	if err := os.WriteFile(inputPath, payload, 0644); err != nil {
		t.Fatal(err)
	}

	chunks, err := splitByBytes(inputPath, t.TempDir(), 10*1024)
	if err != nil {
		t.Fatalf("splitByBytes failed: %v", err)
	}
	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks for an exact multiple, got %d", len(chunks))
	}
}

func TestTranscribeChunkedByteFallback(t *testing.T) {
	if ffmpeg.Available() {
		t.Skip("ffmpeg present, byte-split fallback not reachable")
	}

	orig := fallbackChunkSize
	fallbackChunkSize = 1000
	defer func() { fallbackChunkSize = orig }()

	server := audioServer(t, bytes.Repeat([]byte("x"), 3000))
	defer server.Close()

	var paths []string
	eng := &fakeEngine{
		maxBytes: 1000,
		transcribe: func(path string) (string, error) {
			paths = append(paths, path)
			return "part", nil
		},
	}

	result, err := newTestService(eng).Transcribe(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Transcribe failed: %v", err)
	}
	if result.Chunks != 3 {
		t.Fatalf("expected 3 chunks, got %d", result.Chunks)
	}
	if result.Transcript != "part part part" {
		t.Errorf("chunk texts not joined with single spaces: %q", result.Transcript)
	}
	if len(paths) != result.Chunks {
		t.Errorf("engine called %d times for %d chunks", len(paths), result.Chunks)
	}
}
