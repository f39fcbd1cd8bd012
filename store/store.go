// Package store persists usage statistics and transcription history.
package store

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// historyCap bounds the retained history; oldest records are evicted first.
const historyCap = 1000

// RecordingSession is one finished recording, successful or not.
type RecordingSession struct {
	ID               string    `json:"id"`
	Timestamp        time.Time `json:"timestamp"`
	AudioLengthMs    int64     `json:"audio_length_ms"`
	ProcessingTimeMs int64     `json:"processing_time_ms"`
	TranscribedText  string    `json:"transcribed_text"`
	CharacterCount   int       `json:"character_count"`
	WordCount        int       `json:"word_count"`
	Success          bool      `json:"success"`
	ErrorMessage     string    `json:"error_message,omitempty"`
}

// NewSession builds a session record from a transcription outcome.
func NewSession(text string, audioMs, processingMs int64, success bool, errMsg string) RecordingSession {
	return RecordingSession{
		ID:               uuid.NewString(),
		Timestamp:        time.Now(),
		AudioLengthMs:    audioMs,
		ProcessingTimeMs: processingMs,
		TranscribedText:  text,
		CharacterCount:   len([]rune(text)),
		WordCount:        countWords(text),
		Success:          success,
		ErrorMessage:     errMsg,
	}
}

func countWords(text string) int {
	return len(strings.Fields(text))
}

// UsageStats aggregates totals across all sessions ever recorded.
type UsageStats struct {
	TotalSessions      int64     `json:"total_sessions"`
	SuccessfulSessions int64     `json:"successful_sessions"`
	FailedSessions     int64     `json:"failed_sessions"`
	TotalAudioMs       int64     `json:"total_audio_ms"`
	TotalProcessingMs  int64     `json:"total_processing_ms"`
	TotalCharacters    int64     `json:"total_characters"`
	TotalWords         int64     `json:"total_words"`
	LastSessionAt      time.Time `json:"last_session_at"`
}

func (s *UsageStats) apply(rec RecordingSession) {
	s.TotalSessions++
	if rec.Success {
		s.SuccessfulSessions++
		s.TotalCharacters += int64(rec.CharacterCount)
		s.TotalWords += int64(rec.WordCount)
	} else {
		s.FailedSessions++
	}
	s.TotalAudioMs += rec.AudioLengthMs
	s.TotalProcessingMs += rec.ProcessingTimeMs
	s.LastSessionAt = rec.Timestamp
}

// Store records finished sessions and serves them back for inspection.
type Store interface {
	Record(rec RecordingSession) error
	Stats() (UsageStats, error)
	History() ([]RecordingSession, error)
	ClearHistory() error
}
