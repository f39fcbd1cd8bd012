package store

import "sync"

// Memory is an in-process Store used when persistence is disabled and in
// tests.
type Memory struct {
	mu      sync.Mutex
	stats   UsageStats
	history []RecordingSession
}

func NewMemory() *Memory { return &Memory{} }

func (m *Memory) Record(rec RecordingSession) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stats.apply(rec)
	m.history = append(m.history, rec)
	if len(m.history) > historyCap {
		m.history = m.history[len(m.history)-historyCap:]
	}
	return nil
}

func (m *Memory) Stats() (UsageStats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stats, nil
}

func (m *Memory) History() ([]RecordingSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]RecordingSession, len(m.history))
	copy(out, m.history)
	return out, nil
}

func (m *Memory) ClearHistory() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.history = nil
	return nil
}
