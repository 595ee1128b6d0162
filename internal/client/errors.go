package client

import (
	"errors"
	"net/http"
	"strings"
)

// APIError is a non-2xx response from the backend. Detail carries the
// server's detail field verbatim and may be empty.
type APIError struct {
	Status int
	Detail string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return http.StatusText(e.Status)
}

// Hint returns provider guidance for known failure classes, matched by
// substring on the error text. Unknown failures get no hint.
func Hint(err error) string {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return ""
	}
	detail := strings.ToLower(apiErr.Error())
	switch {
	case strings.Contains(detail, "size limit"),
		strings.Contains(detail, "too large"),
		strings.Contains(detail, "exceeds"):
		return "Try a shorter clip: the transcription provider rejects audio over 25MB."
	case strings.Contains(detail, "ffmpeg"):
		return "Install FFmpeg on the server so large audio can be split into chunks."
	}
	return ""
}

// Message renders an error for display, appending the provider hint
// when one applies
func Message(err error) string {
	msg := err.Error()
	if hint := Hint(err); hint != "" {
		return msg + " " + hint
	}
	return msg
}
