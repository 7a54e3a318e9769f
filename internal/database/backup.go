package database

import (
	"sort"
	"strconv"

	"avd/internal/database/interfaces"
	"avd/internal/models"
	"avd/internal/providers"
	"avd/internal/services"
	"avd/internal/structures"
)

// BackupManager stores point-in-time snapshots of the whole store under
// timestamped keys and keeps only the most recent ones.
type BackupManager struct {
	adapter interfaces.AdapterInterface
	service services.DatabaseServiceInterface
	logger  providers.Logger
	retain  int
}

func NewBackupManager(conf *structures.Config, adapter interfaces.AdapterInterface, service services.DatabaseServiceInterface, logger providers.Logger) interfaces.BackupManagerInterface {
	retain := conf.Backup.Retain
	if retain <= 0 {
		retain = 5
	}
	return &BackupManager{
		adapter: adapter,
		service: service,
		logger:  logger,
		retain:  retain,
	}
}

func (bm *BackupManager) CreateSnapshot() (string, error) {
	snap := bm.service.Snapshot()
	key := models.BackupKeyPrefix + strconv.FormatInt(snap.Timestamp.UnixMilli(), 10)

	if !bm.adapter.Set(key, snap) {
		err := &models.PersistenceError{Key: key}
		bm.logger.Errorf(providers.TypeApp, "Failed to create backup: %s", err)
		return "", err
	}

	bm.cleanupOldBackups()
	bm.logger.Infof(providers.TypeApp, "Backup created: %s", key)
	return key, nil
}

func (bm *BackupManager) ListSnapshots() []models.SnapshotInfo {
	keys := bm.adapter.Keys(models.BackupKeyPrefix)
	infos := make([]models.SnapshotInfo, 0, len(keys))
	for _, key := range keys {
		var snap models.Snapshot
		if !bm.adapter.Get(key, &snap) {
			continue
		}
		infos = append(infos, models.SnapshotInfo{
			Key:          key,
			Timestamp:    snap.Timestamp,
			Version:      snap.Version,
			RecordCounts: snap.Metadata.RecordCounts,
		})
	}
	sort.Slice(infos, func(i, j int) bool {
		return infos[i].Timestamp.After(infos[j].Timestamp)
	})
	return infos
}

// Restore replaces the entire store state with the named snapshot and
// flushes every collection. There is no merge.
func (bm *BackupManager) Restore(key string) error {
	var snap models.Snapshot
	if !bm.adapter.Get(key, &snap) {
		err := &models.NotFoundError{Kind: "backup", ID: key}
		bm.logger.Errorf(providers.TypeApp, "Failed to restore backup: %s", err)
		return err
	}

	bm.service.ReplaceAll(snap.Data)
	err := bm.service.SaveAll()
	bm.logger.Infof(providers.TypeApp, "Restored from backup: %s", key)
	return err
}

func (bm *BackupManager) cleanupOldBackups() {
	infos := bm.ListSnapshots()
	for _, info := range infos[min(bm.retain, len(infos)):] {
		bm.adapter.Remove(info.Key)
	}
}
