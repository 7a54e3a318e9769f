package models

import "sync"

// ClientStore holds clients indexed by id and by code, preserving insertion
// order for listings and persistence. All accessors return copies.
type ClientStore struct {
	mu     sync.RWMutex
	byID   map[string]*Client
	byCode map[string]string
	order  []string
}

func NewClientStore() *ClientStore {
	return &ClientStore{
		byID:   make(map[string]*Client),
		byCode: make(map[string]string),
	}
}

func (s *ClientStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byID)
}

func (s *ClientStore) All() []Client {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]Client, 0, len(s.order))
	for _, id := range s.order {
		result = append(result, *s.byID[id])
	}
	return result
}

func (s *ClientStore) ByStatus(status string) []Client {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]Client, 0)
	for _, id := range s.order {
		if s.byID[id].Status == status {
			result = append(result, *s.byID[id])
		}
	}
	return result
}

func (s *ClientStore) ByID(id string) (Client, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.byID[id]
	if !ok {
		return Client{}, false
	}
	return *c, true
}

// ByCode is a case-sensitive lookup of the client access code.
func (s *ClientStore) ByCode(code string) (Client, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.byCode[code]
	if !ok {
		return Client{}, false
	}
	return *s.byID[id], true
}

func (s *ClientStore) HasCode(code string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.byCode[code]
	return ok
}

// Put inserts a new client or replaces an existing one, keeping both indexes
// and the insertion order consistent.
func (s *ClientStore) Put(c Client) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if old, ok := s.byID[c.ID]; ok {
		if old.Code != c.Code {
			delete(s.byCode, old.Code)
		}
	} else {
		s.order = append(s.order, c.ID)
	}
	stored := c
	s.byID[c.ID] = &stored
	s.byCode[c.Code] = c.ID
}

func (s *ClientStore) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.byID[id]
	if !ok {
		return false
	}
	delete(s.byID, id)
	delete(s.byCode, c.Code)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true
}

// Replace swaps the whole collection, used by restore, import and reset.
func (s *ClientStore) Replace(clients []Client) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byID = make(map[string]*Client, len(clients))
	s.byCode = make(map[string]string, len(clients))
	s.order = make([]string, 0, len(clients))
	for _, c := range clients {
		stored := c
		s.byID[c.ID] = &stored
		s.byCode[c.Code] = c.ID
		s.order = append(s.order, c.ID)
	}
}
