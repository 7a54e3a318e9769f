package database

import (
	"sync"
	"time"

	"github.com/roylee0704/gron"

	"avd/internal/database/interfaces"
	"avd/internal/providers"
	"avd/internal/services"
	"avd/internal/structures"
)

// Scheduler owns the periodic maintenance jobs: autosave, snapshotting,
// retention sweep and the prediction generator tick. Jobs are serialized
// under opsMu and individually failure-isolated.
type Scheduler struct {
	config    *structures.Config
	logger    providers.Logger
	service   services.DatabaseServiceInterface
	backup    interfaces.BackupManagerInterface
	generator services.GeneratorServiceInterface
	cron      *gron.Cron
	opsMu     sync.Mutex
}

func NewScheduler(config *structures.Config, logger providers.Logger, service services.DatabaseServiceInterface, backup interfaces.BackupManagerInterface, generator services.GeneratorServiceInterface) interfaces.SchedulerInterface {
	return &Scheduler{
		config:    config,
		logger:    logger,
		service:   service,
		backup:    backup,
		generator: generator,
	}
}

func (s *Scheduler) Init() {
	s.cron = gron.New()

	s.cron.AddFunc(gron.Every(s.config.Persistence.SaveInterval), func() {
		s.opsMu.Lock()
		defer s.opsMu.Unlock()

		if err := s.service.SaveAll(); err != nil {
			s.logger.Errorf(providers.TypeApp, "Autosave failed: %s", err)
			return
		}
		s.logger.Debugf(providers.TypeApp, "Autosave completed")
	})

	s.cron.AddFunc(gron.Every(s.config.Backup.Interval), func() {
		s.opsMu.Lock()
		defer s.opsMu.Unlock()

		if _, err := s.backup.CreateSnapshot(); err != nil {
			s.logger.Errorf(providers.TypeApp, "Scheduled backup failed: %s", err)
		}
	})

	s.cron.AddFunc(gron.Every(s.config.Maintenance.Interval), func() {
		s.opsMu.Lock()
		defer s.opsMu.Unlock()

		if err := s.service.Cleanup(s.config.Maintenance.PredictionTTL, s.config.Maintenance.MaxLogEntries); err != nil {
			s.logger.Errorf(providers.TypeApp, "Retention sweep failed: %s", err)
		}
	})

	if s.config.Generator.Enabled {
		// The generator interval follows the settings singleton as armed
		// at startup; frequency changes apply on the next restart.
		freq := s.service.GetSettings().UpdateFrequency
		if freq <= 0 {
			freq = 5
		}
		s.cron.AddFunc(gron.Every(time.Duration(freq)*time.Minute), func() {
			s.opsMu.Lock()
			defer s.opsMu.Unlock()

			s.generator.Tick()
		})
	}

	s.cron.Start()
}

func (s *Scheduler) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

// Restore loads all collections from the adapter and takes the boot
// snapshot. A failed boot snapshot is logged but does not block startup.
func (s *Scheduler) Restore() error {
	if err := s.service.Load(); err != nil {
		return err
	}
	if _, err := s.backup.CreateSnapshot(); err != nil {
		s.logger.Errorf(providers.TypeApp, "Boot snapshot failed: %s", err)
	}
	return nil
}

func (s *Scheduler) Persist() error {
	s.opsMu.Lock()
	defer s.opsMu.Unlock()

	s.logger.Infof(providers.TypeApp, "Persisting store to disk...")
	if err := s.service.SaveAll(); err != nil {
		s.logger.Errorf(providers.TypeApp, "Error while persisting data: %s", err)
		return err
	}
	return nil
}
