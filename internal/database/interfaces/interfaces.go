package interfaces

import "avd/internal/models"

// AdapterInterface is the key-value persistence boundary. Reads fill the
// caller-supplied destination and report false on a missing or corrupt entry,
// leaving whatever default the caller prepared. Writes report failure as a
// boolean instead of propagating. Keys are written independently of each
// other; there is no cross-key transaction.
type AdapterInterface interface {
	Get(key string, out interface{}) bool
	Set(key string, value interface{}) bool
	Remove(key string)
	Keys(prefix string) []string
}

type CompressorInterface interface {
	Compress(val []byte) ([]byte, error)
	Decompress(val []byte) ([]byte, error)
	Close()
}

type BackupManagerInterface interface {
	CreateSnapshot() (string, error)
	ListSnapshots() []models.SnapshotInfo
	Restore(key string) error
}

type CodecInterface interface {
	Export() (*models.Snapshot, error)
	Import(raw []byte) error
}

type SchedulerInterface interface {
	Init()
	Stop()
	Restore() error
	Persist() error
}
