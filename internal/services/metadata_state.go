package services

import (
	"sync"
	"time"

	"avd/internal/models"
)

// metadataState guards the derived metadata view. It is recomputed after
// every mutation and never authoritative on its own.
type metadataState struct {
	mu   sync.RWMutex
	meta models.Metadata
}

func newMetadataState() *metadataState {
	return &metadataState{
		meta: models.Metadata{
			LastUpdated: time.Now(),
			Version:     models.SchemaVersion,
		},
	}
}

func (m *metadataState) get() models.Metadata {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.meta
}

func (m *metadataState) update(counts models.RecordCounts) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.meta.LastUpdated = time.Now()
	m.meta.Version = models.SchemaVersion
	m.meta.RecordCounts = counts
}
