package models

import "sync"

// ConnectionStore maps client ids to their latest connectivity state.
type ConnectionStore struct {
	mu   sync.RWMutex
	data map[string]Connection
}

func NewConnectionStore() *ConnectionStore {
	return &ConnectionStore{data: make(map[string]Connection)}
}

func (s *ConnectionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}

func (s *ConnectionStore) Get(clientID string) (Connection, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.data[clientID]
	return c, ok
}

func (s *ConnectionStore) Set(clientID string, c Connection) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[clientID] = c
}

func (s *ConnectionStore) Delete(clientID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, clientID)
}

func (s *ConnectionStore) All() map[string]Connection {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make(map[string]Connection, len(s.data))
	for id, c := range s.data {
		result[id] = c
	}
	return result
}

func (s *ConnectionStore) ConnectedCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	count := 0
	for _, c := range s.data {
		if c.Connected {
			count++
		}
	}
	return count
}

func (s *ConnectionStore) Replace(connections map[string]Connection) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = make(map[string]Connection, len(connections))
	for id, c := range connections {
		s.data[id] = c
	}
}
