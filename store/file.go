package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
)

const (
	statsFile   = "usage_stats.json"
	historyFile = "transcription_history.json"
)

// FileStore keeps stats and history as JSON files under a data directory.
// Stats are always written; history writes are gated by saveHistory.
type FileStore struct {
	mu          sync.Mutex
	dir         string
	saveHistory bool
	stats       UsageStats
	history     []RecordingSession
}

// DataDir returns the default data directory for persisted records.
func DataDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "vwisper", "data"), nil
}

// OpenFileStore loads existing records from dir, creating it if needed.
func OpenFileStore(dir string, saveHistory bool) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	fs := &FileStore{dir: dir, saveHistory: saveHistory}
	if err := readJSON(filepath.Join(dir, statsFile), &fs.stats); err != nil {
		return nil, err
	}
	if err := readJSON(filepath.Join(dir, historyFile), &fs.history); err != nil {
		return nil, err
	}
	return fs, nil
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	// A corrupt file starts the record over rather than blocking startup.
	if err := json.Unmarshal(data, v); err != nil {
		return nil
	}
	return nil
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

func (fs *FileStore) Record(rec RecordingSession) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	fs.stats.apply(rec)
	if err := writeJSON(filepath.Join(fs.dir, statsFile), &fs.stats); err != nil {
		return err
	}

	if !fs.saveHistory {
		return nil
	}
	fs.history = append(fs.history, rec)
	if len(fs.history) > historyCap {
		fs.history = fs.history[len(fs.history)-historyCap:]
	}
	return writeJSON(filepath.Join(fs.dir, historyFile), fs.history)
}

func (fs *FileStore) Stats() (UsageStats, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	return fs.stats, nil
}

func (fs *FileStore) History() ([]RecordingSession, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	out := make([]RecordingSession, len(fs.history))
	copy(out, fs.history)
	return out, nil
}

func (fs *FileStore) ClearHistory() error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.history = nil
	return writeJSON(filepath.Join(fs.dir, historyFile), []RecordingSession{})
}
