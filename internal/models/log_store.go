package models

import "sync"

// DefaultLogCap bounds the diagnostic log collection. Oldest entries are
// dropped first.
const DefaultLogCap = 1000

type LogStore struct {
	mu      sync.RWMutex
	entries []LogEntry
	cap     int
}

func NewLogStore(cap int) *LogStore {
	if cap <= 0 {
		cap = DefaultLogCap
	}
	return &LogStore{cap: cap}
}

func (s *LogStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

func (s *LogStore) Append(e LogEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, e)
	if len(s.entries) > s.cap {
		s.entries = append([]LogEntry(nil), s.entries[len(s.entries)-s.cap:]...)
	}
}

func (s *LogStore) All() []LogEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]LogEntry, len(s.entries))
	copy(result, s.entries)
	return result
}

// Truncate keeps the n most recent entries in their original relative order.
func (s *LogStore) Truncate(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n >= 0 && len(s.entries) > n {
		s.entries = append([]LogEntry(nil), s.entries[len(s.entries)-n:]...)
	}
}

func (s *LogStore) Replace(entries []LogEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(entries) > s.cap {
		entries = entries[len(entries)-s.cap:]
	}
	s.entries = make([]LogEntry, len(entries))
	copy(s.entries, entries)
}
