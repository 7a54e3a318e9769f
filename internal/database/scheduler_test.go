package database

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"avd/internal/models"
	"avd/internal/services"
	"avd/internal/structures"
	"avd/internal/testutil"
)

func schedulerConfig() *structures.Config {
	conf := &structures.Config{}
	conf.Persistence.SaveInterval = time.Hour
	conf.Backup.Interval = time.Hour
	conf.Backup.Retain = 5
	conf.Maintenance.Interval = time.Hour
	conf.Maintenance.PredictionTTL = 30 * 24 * time.Hour
	conf.Maintenance.MaxLogEntries = 1000
	return conf
}

func newTestScheduler(conf *structures.Config) (*Scheduler, services.DatabaseServiceInterface, *testutil.MockAdapter) {
	adapter := testutil.NewMockAdapter()
	logger := &testutil.MockLogger{}
	svc := services.NewDatabaseService(adapter, logger, testutil.NewMockMetrics())
	bm := NewBackupManager(conf, adapter, svc, logger)
	gen := services.NewGeneratorService(svc, logger)
	sched := NewScheduler(conf, logger, svc, bm, gen).(*Scheduler)
	return sched, svc, adapter
}

func TestScheduler_RestoreLoadsState(t *testing.T) {
	conf := schedulerConfig()
	sched, svc, adapter := newTestScheduler(conf)

	adapter.Set(models.KeyClients, []models.Client{
		{ID: "1", Code: "CODE1", Name: "N", Phone: "+1", Country: "US", Status: models.ClientStatusActive},
	})

	require.NoError(t, sched.Restore())

	_, ok := svc.GetClientByID("1")
	assert.True(t, ok)
}

func TestScheduler_RestoreTakesBootSnapshot(t *testing.T) {
	sched, _, adapter := newTestScheduler(schedulerConfig())

	require.NoError(t, sched.Restore())

	assert.Len(t, adapter.Keys(models.BackupKeyPrefix), 1)
}

func TestScheduler_RestoreSurvivesFailedBootSnapshot(t *testing.T) {
	sched, _, adapter := newTestScheduler(schedulerConfig())
	adapter.FailAll = true

	assert.NoError(t, sched.Restore())
}

func TestScheduler_PersistFlushesAllCollections(t *testing.T) {
	sched, svc, adapter := newTestScheduler(schedulerConfig())
	seedClient(t, svc, "CODE1")

	require.NoError(t, sched.Persist())

	for _, key := range []string{
		models.KeyClients,
		models.KeyPredictions,
		models.KeySettings,
		models.KeyConnections,
		models.KeyLogs,
	} {
		assert.Contains(t, adapter.Data, key)
	}
}

func TestScheduler_PersistSurfacesFailure(t *testing.T) {
	sched, _, adapter := newTestScheduler(schedulerConfig())
	adapter.FailAll = true

	assert.Error(t, sched.Persist())
}

func TestScheduler_InitAndStop(t *testing.T) {
	conf := schedulerConfig()
	conf.Generator.Enabled = true
	sched, _, _ := newTestScheduler(conf)

	sched.Init()
	sched.Stop()
}

func TestScheduler_StopWithoutInit(t *testing.T) {
	sched, _, _ := newTestScheduler(schedulerConfig())
	sched.Stop()
}

func TestScheduler_AutosaveFires(t *testing.T) {
	conf := schedulerConfig()
	conf.Persistence.SaveInterval = time.Second
	sched, _, adapter := newTestScheduler(conf)

	sched.Init()
	defer sched.Stop()

	assert.Eventually(t, func() bool {
		var settings models.Settings
		return adapter.Get(models.KeySettings, &settings)
	}, 3*time.Second, 50*time.Millisecond)
}
