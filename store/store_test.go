package store

import (
	"fmt"
	"testing"
)

func TestNewSessionCounts(t *testing.T) {
	rec := NewSession("hello world again", 1500, 320, true, "")
	if rec.ID == "" {
		t.Error("missing ID")
	}
	if rec.CharacterCount != 17 {
		t.Errorf("character count = %d, want 17", rec.CharacterCount)
	}
	if rec.WordCount != 3 {
		t.Errorf("word count = %d, want 3", rec.WordCount)
	}
	if rec.Timestamp.IsZero() {
		t.Error("timestamp not set")
	}
}

func TestStatsAggregation(t *testing.T) {
	m := NewMemory()
	m.Record(NewSession("one two", 1000, 200, true, ""))
	m.Record(NewSession("", 500, 100, false, "unauthorized"))
	m.Record(NewSession("three", 2000, 300, true, ""))

	stats, err := m.Stats()
	if err != nil {
		t.Fatal(err)
	}
	if stats.TotalSessions != 3 || stats.SuccessfulSessions != 2 || stats.FailedSessions != 1 {
		t.Errorf("session counts = %d/%d/%d", stats.TotalSessions, stats.SuccessfulSessions, stats.FailedSessions)
	}
	if stats.TotalAudioMs != 3500 {
		t.Errorf("total audio = %d, want 3500", stats.TotalAudioMs)
	}
	if stats.TotalWords != 3 {
		t.Errorf("total words = %d, want 3", stats.TotalWords)
	}
}

func TestHistoryCap(t *testing.T) {
	m := NewMemory()
	for i := 0; i < historyCap+25; i++ {
		m.Record(NewSession(fmt.Sprintf("entry %d", i), 100, 10, true, ""))
	}
	hist, _ := m.History()
	if len(hist) != historyCap {
		t.Fatalf("history length = %d, want %d", len(hist), historyCap)
	}
	// Oldest entries were evicted.
	if hist[0].TranscribedText != "entry 25" {
		t.Errorf("oldest retained = %q, want entry 25", hist[0].TranscribedText)
	}
}

func TestFileStorePersistence(t *testing.T) {
	dir := t.TempDir()

	fs, err := OpenFileStore(dir, true)
	if err != nil {
		t.Fatal(err)
	}
	if err := fs.Record(NewSession("persisted text", 800, 150, true, "")); err != nil {
		t.Fatal(err)
	}

	// Reopen and confirm both files survived.
	fs2, err := OpenFileStore(dir, true)
	if err != nil {
		t.Fatal(err)
	}
	stats, _ := fs2.Stats()
	if stats.TotalSessions != 1 {
		t.Errorf("reloaded sessions = %d, want 1", stats.TotalSessions)
	}
	hist, _ := fs2.History()
	if len(hist) != 1 || hist[0].TranscribedText != "persisted text" {
		t.Errorf("reloaded history = %+v", hist)
	}
}

func TestFileStoreHistoryDisabled(t *testing.T) {
	dir := t.TempDir()

	fs, err := OpenFileStore(dir, false)
	if err != nil {
		t.Fatal(err)
	}
	fs.Record(NewSession("not kept", 800, 150, true, ""))

	stats, _ := fs.Stats()
	if stats.TotalSessions != 1 {
		t.Error("stats must be recorded even with history off")
	}
	hist, _ := fs.History()
	if len(hist) != 0 {
		t.Errorf("history should stay empty, got %d entries", len(hist))
	}
}

func TestClearHistoryKeepsStats(t *testing.T) {
	m := NewMemory()
	m.Record(NewSession("a b", 100, 10, true, ""))
	if err := m.ClearHistory(); err != nil {
		t.Fatal(err)
	}
	hist, _ := m.History()
	if len(hist) != 0 {
		t.Error("history not cleared")
	}
	stats, _ := m.Stats()
	if stats.TotalSessions != 1 {
		t.Error("stats must survive a history clear")
	}
}
