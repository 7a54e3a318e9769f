package models

import "sync"

// PredictionStore holds predictions indexed by id in insertion order.
type PredictionStore struct {
	mu    sync.RWMutex
	byID  map[string]*Prediction
	order []string
}

func NewPredictionStore() *PredictionStore {
	return &PredictionStore{byID: make(map[string]*Prediction)}
}

func (s *PredictionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byID)
}

func (s *PredictionStore) All() []Prediction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]Prediction, 0, len(s.order))
	for _, id := range s.order {
		result = append(result, *s.byID[id])
	}
	return result
}

func (s *PredictionStore) ByStatus(status string) []Prediction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]Prediction, 0)
	for _, id := range s.order {
		if s.byID[id].Status == status {
			result = append(result, *s.byID[id])
		}
	}
	return result
}

func (s *PredictionStore) ByID(id string) (Prediction, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.byID[id]
	if !ok {
		return Prediction{}, false
	}
	return *p, true
}

// Recent returns the n most recently inserted predictions, oldest first.
func (s *PredictionStore) Recent(n int) []Prediction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	start := len(s.order) - n
	if start < 0 {
		start = 0
	}
	result := make([]Prediction, 0, len(s.order)-start)
	for _, id := range s.order[start:] {
		result = append(result, *s.byID[id])
	}
	return result
}

func (s *PredictionStore) Put(p Prediction) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byID[p.ID]; !ok {
		s.order = append(s.order, p.ID)
	}
	stored := p
	s.byID[p.ID] = &stored
}

func (s *PredictionStore) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byID[id]; !ok {
		return false
	}
	delete(s.byID, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true
}

func (s *PredictionStore) Replace(predictions []Prediction) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byID = make(map[string]*Prediction, len(predictions))
	s.order = make([]string, 0, len(predictions))
	for _, p := range predictions {
		stored := p
		s.byID[p.ID] = &stored
		s.order = append(s.order, p.ID)
	}
}

// Filter keeps only predictions the callback approves of and reports how many
// were dropped. Used by the retention sweep.
func (s *PredictionStore) Filter(keep func(Prediction) bool) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	dropped := 0
	order := s.order[:0]
	for _, id := range s.order {
		if keep(*s.byID[id]) {
			order = append(order, id)
		} else {
			delete(s.byID, id)
			dropped++
		}
	}
	s.order = order
	return dropped
}
