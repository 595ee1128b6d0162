package transcribe

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// StatusError is an error that maps to a specific HTTP status and
// user-facing detail message
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	return e.Message
}

func badRequest(format string, args ...interface{}) *StatusError {
	return &StatusError{Code: http.StatusBadRequest, Message: fmt.Sprintf(format, args...)}
}

func internalError(format string, args ...interface{}) *StatusError {
	return &StatusError{Code: http.StatusInternalServerError, Message: fmt.Sprintf(format, args...)}
}

const (
	tooLargeDetail = "Audio file is too large for the OpenAI API. Please use a shorter audio clip (under 25MB)."
	ffmpegDetail   = "FFmpeg failed while processing the audio file. Ensure FFmpeg is installed and available on PATH."
)

// Classify maps a transcription failure onto the HTTP contract. Errors
// raised with an explicit status keep it; everything else is bucketed by
// message text: provider size rejections become a 400, FFmpeg trouble a
// 500 naming FFmpeg, and the rest a generic 500.
func Classify(err error) *StatusError {
	var se *StatusError
	if errors.As(err, &se) {
		return se
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "413") ||
		strings.Contains(msg, "entity too large") ||
		strings.Contains(msg, "size limit") ||
		strings.Contains(msg, "exceeded"):
		return badRequest("%s", tooLargeDetail)
	case strings.Contains(msg, "ffmpeg"):
		return internalError("%s", ffmpegDetail)
	default:
		return internalError("Error processing request: %v", err)
	}
}
