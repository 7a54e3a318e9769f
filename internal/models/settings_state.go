package models

import (
	"sync"
	"time"
)

// SettingsState guards the mutable settings singleton. Updates are shallow
// merges with no range validation; unknown fields are ignored.
type SettingsState struct {
	mu       sync.RWMutex
	settings Settings
}

func NewSettingsState() *SettingsState {
	return &SettingsState{settings: DefaultSettings()}
}

func (s *SettingsState) Get() Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

// Merge applies the known fields present in the patch and stamps UpdatedAt.
func (s *SettingsState) Merge(patch map[string]interface{}, now time.Time) Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	if v, ok := patch["algorithm"].(string); ok {
		s.settings.Algorithm = v
	}
	if v, ok := toInt(patch["updateFrequency"]); ok {
		s.settings.UpdateFrequency = v
	}
	if v, ok := toInt(patch["successThreshold"]); ok {
		s.settings.SuccessThreshold = v
	}
	s.settings.UpdatedAt = now
	return s.settings
}

func (s *SettingsState) Replace(settings Settings) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = settings
}

// toInt accepts the numeric shapes a decoded JSON body can produce.
func toInt(v interface{}) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	}
	return 0, false
}
