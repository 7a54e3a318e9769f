package database

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	json "github.com/goccy/go-json"

	"avd/internal/database/interfaces"
	"avd/internal/providers"
	"avd/internal/structures"
)

const fileSuffix = ".json.zst"

// FileAdapter persists one compressed JSON document per key inside the data
// directory. Writes go through a temp file and rename so a crash never leaves
// a half-written entry behind.
type FileAdapter struct {
	dir        string
	compressor interfaces.CompressorInterface
	logger     providers.Logger
	metrics    providers.MetricsProviderInterface
}

func NewFileAdapter(conf *structures.Config, compressor interfaces.CompressorInterface, logger providers.Logger, metrics providers.MetricsProviderInterface) (interfaces.AdapterInterface, error) {
	if err := os.MkdirAll(conf.Persistence.DataDir, 0755); err != nil {
		return nil, err
	}
	return &FileAdapter{
		dir:        conf.Persistence.DataDir,
		compressor: compressor,
		logger:     logger,
		metrics:    metrics,
	}, nil
}

func (a *FileAdapter) Get(key string, out interface{}) bool {
	data, err := os.ReadFile(a.path(key))
	if err != nil {
		if !os.IsNotExist(err) {
			a.logger.Errorf(providers.TypeApp, "Failed to read %s: %s", key, err)
		}
		return false
	}

	decompressed, err := a.compressor.Decompress(data)
	if err != nil {
		a.logger.Errorf(providers.TypeApp, "Failed to decompress %s: %s", key, err)
		return false
	}

	if err := json.Unmarshal(decompressed, out); err != nil {
		a.logger.Errorf(providers.TypeApp, "Corrupt entry %s: %s", key, err)
		return false
	}
	return true
}

func (a *FileAdapter) Set(key string, value interface{}) bool {
	start := time.Now()

	jsonData, err := json.Marshal(value)
	if err != nil {
		a.logger.Errorf(providers.TypeApp, "Failed to serialize %s: %s", key, err)
		return false
	}
	compressed, err := a.compressor.Compress(jsonData)
	if err != nil {
		a.logger.Errorf(providers.TypeApp, "Failed to compress %s: %s", key, err)
		return false
	}

	path := a.path(key)
	tmpFile := path + ".tmp"
	file, err := os.Create(tmpFile)
	if err != nil {
		a.logger.Errorf(providers.TypeApp, "Failed to create %s: %s", key, err)
		return false
	}

	if _, err = file.Write(compressed); err != nil {
		file.Close()
		os.Remove(tmpFile)
		a.logger.Errorf(providers.TypeApp, "Failed to write %s: %s", key, err)
		return false
	}
	if err = file.Sync(); err != nil {
		file.Close()
		os.Remove(tmpFile)
		a.logger.Errorf(providers.TypeApp, "Failed to sync %s: %s", key, err)
		return false
	}
	if err = file.Close(); err != nil {
		os.Remove(tmpFile)
		a.logger.Errorf(providers.TypeApp, "Failed to close %s: %s", key, err)
		return false
	}
	if err = os.Rename(tmpFile, path); err != nil {
		os.Remove(tmpFile)
		a.logger.Errorf(providers.TypeApp, "Failed to commit %s: %s", key, err)
		return false
	}

	a.metrics.ObservePersistenceDuration(time.Since(start))
	return true
}

func (a *FileAdapter) Remove(key string) {
	if err := os.Remove(a.path(key)); err != nil && !os.IsNotExist(err) {
		a.logger.Errorf(providers.TypeApp, "Failed to remove %s: %s", key, err)
	}
}

func (a *FileAdapter) Keys(prefix string) []string {
	files, err := filepath.Glob(filepath.Join(a.dir, prefix+"*"+fileSuffix))
	if err != nil {
		a.logger.Errorf(providers.TypeApp, "Failed to scan keys for %s: %s", prefix, err)
		return nil
	}
	keys := make([]string, 0, len(files))
	for _, f := range files {
		keys = append(keys, strings.TrimSuffix(filepath.Base(f), fileSuffix))
	}
	return keys
}

func (a *FileAdapter) path(key string) string {
	return filepath.Join(a.dir, key+fileSuffix)
}
