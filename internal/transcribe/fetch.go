package transcribe

import (
	"context"
	"io"
	"net/http"
	"os"
)

// download fetches the episode audio into a temp file and returns its
// path and size. The caller removes the file.
func (s *Service) download(ctx context.Context, audioURL string) (string, int64, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", audioURL, nil)
	if err != nil {
		return "", 0, badRequest("Error accessing audio URL: %v", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", 0, badRequest("Error accessing audio URL: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", 0, badRequest("Error accessing audio URL: server returned status %d", resp.StatusCode)
	}

	tmpFile, err := os.CreateTemp("", "podcast-audio-*.mp3")
	if err != nil {
		return "", 0, internalError("Error saving audio file: %v", err)
	}

	size, err := io.Copy(tmpFile, resp.Body)
	tmpFile.Close()
	if err != nil {
		os.Remove(tmpFile.Name())
		return "", 0, internalError("Error saving audio file: %v", err)
	}

	if size == 0 {
		os.Remove(tmpFile.Name())
		return "", 0, internalError("Downloaded audio file is empty")
	}

	return tmpFile.Name(), size, nil
}
