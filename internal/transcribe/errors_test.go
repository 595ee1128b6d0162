package transcribe

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantCode   int
		wantDetail string
	}{
		{
			name:       "explicit status error passes through",
			err:        badRequest("Error accessing audio URL: no such host"),
			wantCode:   http.StatusBadRequest,
			wantDetail: "Error accessing audio URL: no such host",
		},
		{
			name:       "wrapped status error passes through",
			err:        fmt.Errorf("chunk 2: %w", internalError("Downloaded audio file is empty")),
			wantCode:   http.StatusInternalServerError,
			wantDetail: "Downloaded audio file is empty",
		},
		{
			name:       "upstream 413",
			err:        errors.New("OpenAI API error (status 413): request body too big"),
			wantCode:   http.StatusBadRequest,
			wantDetail: tooLargeDetail,
		},
		{
			name:       "entity too large",
			err:        errors.New("request entity too large"),
			wantCode:   http.StatusBadRequest,
			wantDetail: tooLargeDetail,
		},
		{
			name:       "size limit",
			err:        errors.New("audio file chunk_001.mp3 exceeds the 25MB size limit"),
			wantCode:   http.StatusBadRequest,
			wantDetail: tooLargeDetail,
		},
		{
			name:       "exceeded quota wording",
			err:        errors.New("maximum content size exceeded"),
			wantCode:   http.StatusBadRequest,
			wantDetail: tooLargeDetail,
		},
		{
			name:     "ffmpeg failure",
			err:      errors.New(`ffmpeg split: exec: "ffmpeg": executable file not found in $PATH`),
			wantCode: http.StatusInternalServerError,
		},
		{
			name:       "generic failure",
			err:        errors.New("connection reset by peer"),
			wantCode:   http.StatusInternalServerError,
			wantDetail: "Error processing request: connection reset by peer",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			se := Classify(tt.err)
			if se.Code != tt.wantCode {
				t.Errorf("code = %d, want %d", se.Code, tt.wantCode)
			}
			if tt.wantDetail != "" && se.Message != tt.wantDetail {
				t.Errorf("detail = %q, want %q", se.Message, tt.wantDetail)
			}
		})
	}
}

func TestClassifyFFmpegDetailNamesFFmpeg(t *testing.T) {
	se := Classify(errors.New("ffmpeg split: no chunks produced"))
	if se.Code != http.StatusInternalServerError {
		t.Fatalf("code = %d, want 500", se.Code)
	}
	if !strings.Contains(se.Message, "FFmpeg") {
		t.Errorf("detail should name FFmpeg, got %q", se.Message)
	}
}

func TestTooLargeDetailMentionsLimit(t *testing.T) {
	if !strings.Contains(tooLargeDetail, "too large") || !strings.Contains(tooLargeDetail, "(under 25MB)") {
		t.Errorf("size detail missing required wording: %q", tooLargeDetail)
	}
}
