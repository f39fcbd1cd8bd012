// Package transcriber wraps the external speech-to-text HTTP service.
// One call per session, no retries; whether a failed job is worth
// resubmitting is the caller's decision.
package transcriber

import (
	"errors"
	"fmt"
)

// ErrMissingCredential is returned before any network I/O when no API key
// could be resolved from the environment or the config file.
var ErrMissingCredential = errors.New("transcription API key not configured")

// GatewayError describes a failed transcription call. Status is the HTTP
// status code, or 0 for transport-level failures.
type GatewayError struct {
	Status  int
	Message string
}

func (e *GatewayError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("transcription request failed: %s", e.Message)
	}
	return fmt.Sprintf("transcription API error %d: %s", e.Status, e.Message)
}

// Transcriber converts an encoded audio payload into text.
type Transcriber interface {
	Name() string
	// Transcribe submits one payload and returns the recognized text.
	// format is the container name ("wav" or "flac") used for the upload
	// filename and content type.
	Transcribe(payload []byte, format string) (string, error)
}
