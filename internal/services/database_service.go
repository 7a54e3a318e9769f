package services

import (
	"fmt"
	"math"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"

	"avd/internal/database/interfaces"
	"avd/internal/models"
	"avd/internal/providers"
)

type DatabaseServiceInterface interface {
	CreateClient(c models.Client) (models.Client, error)
	GetAllClients() []models.Client
	GetClientsByStatus(status string) []models.Client
	GetClientByID(id string) (models.Client, bool)
	GetClientByCode(code string) (models.Client, bool)
	UpdateClient(id string, fields map[string]interface{}) (models.Client, error)
	DeleteClient(id string) error

	CreatePrediction(p models.Prediction) (models.Prediction, error)
	GetAllPredictions() []models.Prediction
	GetPredictionsByStatus(status string) []models.Prediction
	GetPredictionByID(id string) (models.Prediction, bool)
	GetRecentPredictions(n int) []models.Prediction
	UpdatePrediction(id string, fields map[string]interface{}) (models.Prediction, error)
	DeletePrediction(id string) error

	GetSettings() models.Settings
	UpdateSettings(patch map[string]interface{}) (models.Settings, error)

	SetConnection(clientID string, connected bool, ts time.Time) (models.Connection, error)
	GetConnection(clientID string) (models.Connection, bool)
	GetAllConnections() map[string]models.Connection

	GetLogs() []models.LogEntry
	GetStatistics() models.Statistics
	Metadata() models.Metadata

	Snapshot() *models.Snapshot
	ReplaceAll(data models.DataSet) error
	SaveAll() error
	Load() error
	Cleanup(predictionTTL time.Duration, maxLogEntries int) error
	Reset() error
}

// DatabaseService owns the five in-memory collections and mirrors every
// mutation to the persistence adapter for the affected collection. A failed
// adapter write does not roll the in-memory change back; the divergence is
// surfaced as a PersistenceError and healed by the next autosave flush.
type DatabaseService struct {
	clients     *models.ClientStore
	predictions *models.PredictionStore
	connections *models.ConnectionStore
	logs        *models.LogStore
	settings    *models.SettingsState
	metadata    *metadataState

	adapter interfaces.AdapterInterface
	logger  providers.Logger
	metrics providers.MetricsProviderInterface
}

func NewDatabaseService(adapter interfaces.AdapterInterface, logger providers.Logger, metrics providers.MetricsProviderInterface) DatabaseServiceInterface {
	return &DatabaseService{
		clients:     models.NewClientStore(),
		predictions: models.NewPredictionStore(),
		connections: models.NewConnectionStore(),
		logs:        models.NewLogStore(models.DefaultLogCap),
		settings:    models.NewSettingsState(),
		metadata:    newMetadataState(),
		adapter:     adapter,
		logger:      logger,
		metrics:     metrics,
	}
}

/*
 * Client operations
 */

// CreateClient validates, assigns a unique id (random 128-bit token) when
// absent, and rejects duplicate access codes.
func (ds *DatabaseService) CreateClient(c models.Client) (models.Client, error) {
	op := "client_create"
	if err := validateClient(&c); err != nil {
		return models.Client{}, ds.fail(op, "Failed to create client", err)
	}
	if ds.clients.HasCode(c.Code) {
		return models.Client{}, ds.fail(op, "Failed to create client", &models.DuplicateError{Code: c.Code})
	}

	now := time.Now()
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.Status == "" {
		c.Status = models.ClientStatusActive
	}
	c.CreatedAt = now
	c.UpdatedAt = now

	ds.clients.Put(c)
	err := ds.persist(models.KeyClients, op)
	ds.updateMetadata()
	ds.log(models.LogLevelInfo, "Client created: %s (%s)", c.Name, c.Code)
	return c, err
}

func (ds *DatabaseService) GetAllClients() []models.Client {
	return ds.clients.All()
}

func (ds *DatabaseService) GetClientsByStatus(status string) []models.Client {
	return ds.clients.ByStatus(status)
}

func (ds *DatabaseService) GetClientByID(id string) (models.Client, bool) {
	return ds.clients.ByID(id)
}

func (ds *DatabaseService) GetClientByCode(code string) (models.Client, bool) {
	return ds.clients.ByCode(code)
}

// UpdateClient shallow-merges the given fields over the stored record. Field
// names outside the allow-list reject the whole update.
func (ds *DatabaseService) UpdateClient(id string, fields map[string]interface{}) (models.Client, error) {
	op := "client_update"
	c, ok := ds.clients.ByID(id)
	if !ok {
		return models.Client{}, ds.fail(op, "Failed to update client", &models.NotFoundError{Kind: "client", ID: id})
	}

	for name := range fields {
		if _, allowed := models.ClientUpdateFields[name]; !allowed {
			return models.Client{}, ds.fail(op, "Failed to update client",
				models.NewValidationError("field not allowed in update: %s", name))
		}
	}
	if err := applyClientFields(&c, fields); err != nil {
		return models.Client{}, ds.fail(op, "Failed to update client", err)
	}
	c.UpdatedAt = time.Now()

	ds.clients.Put(c)
	err := ds.persist(models.KeyClients, op)
	ds.updateMetadata()
	ds.log(models.LogLevelInfo, "Client updated: %s", c.Name)
	return c, err
}

// DeleteClient removes the client and cascades to its connection entry.
func (ds *DatabaseService) DeleteClient(id string) error {
	op := "client_delete"
	c, ok := ds.clients.ByID(id)
	if !ok {
		return ds.fail(op, "Failed to delete client", &models.NotFoundError{Kind: "client", ID: id})
	}

	ds.clients.Delete(id)
	ds.connections.Delete(id)

	err := ds.persist(models.KeyClients, op)
	if cerr := ds.persist(models.KeyConnections, op); err == nil {
		err = cerr
	}
	ds.updateMetadata()
	ds.log(models.LogLevelWarning, "Client deleted: %s (%s)", c.Name, c.Code)
	return err
}

/*
 * Prediction operations
 */

func (ds *DatabaseService) CreatePrediction(p models.Prediction) (models.Prediction, error) {
	op := "prediction_create"
	if p.Status == "" {
		p.Status = models.PredictionStatusActive
	}
	if err := validatePrediction(&p); err != nil {
		return models.Prediction{}, ds.fail(op, "Failed to create prediction", err)
	}

	now := time.Now()
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	p.CreatedAt = now
	p.UpdatedAt = now

	ds.predictions.Put(p)
	err := ds.persist(models.KeyPredictions, op)
	ds.updateMetadata()
	ds.log(models.LogLevelInfo, "Prediction created: %.2fx", p.Multiplier)
	return p, err
}

func (ds *DatabaseService) GetAllPredictions() []models.Prediction {
	return ds.predictions.All()
}

func (ds *DatabaseService) GetPredictionsByStatus(status string) []models.Prediction {
	return ds.predictions.ByStatus(status)
}

func (ds *DatabaseService) GetPredictionByID(id string) (models.Prediction, bool) {
	return ds.predictions.ByID(id)
}

func (ds *DatabaseService) GetRecentPredictions(n int) []models.Prediction {
	return ds.predictions.Recent(n)
}

func (ds *DatabaseService) UpdatePrediction(id string, fields map[string]interface{}) (models.Prediction, error) {
	op := "prediction_update"
	p, ok := ds.predictions.ByID(id)
	if !ok {
		return models.Prediction{}, ds.fail(op, "Failed to update prediction", &models.NotFoundError{Kind: "prediction", ID: id})
	}

	if err := applyPredictionFields(&p, fields); err != nil {
		return models.Prediction{}, ds.fail(op, "Failed to update prediction", err)
	}
	if err := validatePrediction(&p); err != nil {
		return models.Prediction{}, ds.fail(op, "Failed to update prediction", err)
	}
	p.UpdatedAt = time.Now()

	ds.predictions.Put(p)
	err := ds.persist(models.KeyPredictions, op)
	ds.updateMetadata()
	ds.log(models.LogLevelInfo, "Prediction updated: %.2fx", p.Multiplier)
	return p, err
}

func (ds *DatabaseService) DeletePrediction(id string) error {
	op := "prediction_delete"
	p, ok := ds.predictions.ByID(id)
	if !ok {
		return ds.fail(op, "Failed to delete prediction", &models.NotFoundError{Kind: "prediction", ID: id})
	}

	ds.predictions.Delete(id)
	err := ds.persist(models.KeyPredictions, op)
	ds.updateMetadata()
	ds.log(models.LogLevelWarning, "Prediction deleted: %.2fx", p.Multiplier)
	return err
}

/*
 * Settings and connections
 */

func (ds *DatabaseService) GetSettings() models.Settings {
	return ds.settings.Get()
}

func (ds *DatabaseService) UpdateSettings(patch map[string]interface{}) (models.Settings, error) {
	merged := ds.settings.Merge(patch, time.Now())
	err := ds.persist(models.KeySettings, "settings_update")
	ds.log(models.LogLevelInfo, "Settings updated")
	return merged, err
}

func (ds *DatabaseService) SetConnection(clientID string, connected bool, ts time.Time) (models.Connection, error) {
	conn := models.Connection{
		Connected: connected,
		Timestamp: ts,
		UpdatedAt: time.Now(),
	}
	ds.connections.Set(clientID, conn)
	err := ds.persist(models.KeyConnections, "connection_set")
	ds.updateMetadata()
	ds.log(models.LogLevelInfo, "Client connection updated: %s", clientID)
	return conn, err
}

func (ds *DatabaseService) GetConnection(clientID string) (models.Connection, bool) {
	return ds.connections.Get(clientID)
}

func (ds *DatabaseService) GetAllConnections() map[string]models.Connection {
	return ds.connections.All()
}

/*
 * Derived views
 */

func (ds *DatabaseService) GetLogs() []models.LogEntry {
	return ds.logs.All()
}

func (ds *DatabaseService) GetStatistics() models.Statistics {
	clients := ds.clients.All()
	active := 0
	for _, c := range clients {
		if c.Status == models.ClientStatusActive {
			active++
		}
	}

	completed := ds.predictions.ByStatus(models.PredictionStatusCompleted)
	successful := 0
	for _, p := range completed {
		if p.Result == models.ResultSuccess {
			successful++
		}
	}
	successRate := 0
	if len(completed) > 0 {
		successRate = int(math.Round(float64(successful) / float64(len(completed)) * 100))
	}

	return models.Statistics{
		TotalClients:         len(clients),
		ActiveClients:        active,
		TotalPredictions:     ds.predictions.Len(),
		ActivePredictions:    len(ds.predictions.ByStatus(models.PredictionStatusActive)),
		CompletedPredictions: len(completed),
		ConnectedClients:     ds.connections.ConnectedCount(),
		SuccessRate:          successRate,
		LastBackup:           "Never",
		DatabaseSizeKB:       ds.databaseSizeKB(),
	}
}

func (ds *DatabaseService) Metadata() models.Metadata {
	return ds.metadata.get()
}

/*
 * Whole-store operations
 */

// Snapshot captures a full deep copy of all collections. The result never
// aliases live store state.
func (ds *DatabaseService) Snapshot() *models.Snapshot {
	return &models.Snapshot{
		Timestamp: time.Now(),
		Version:   models.SchemaVersion,
		Data:      ds.dataSet(),
		Metadata:  ds.metadata.get(),
	}
}

// ReplaceAll swaps the entire in-memory state. Used by restore, import and
// reset; validation is the caller's concern.
func (ds *DatabaseService) ReplaceAll(data models.DataSet) error {
	settings := data.Settings
	if settings.Algorithm == "" {
		settings = models.DefaultSettings()
	}
	ds.clients.Replace(data.Clients)
	ds.predictions.Replace(data.Predictions)
	ds.connections.Replace(data.Connections)
	ds.logs.Replace(data.Logs)
	ds.settings.Replace(settings)
	ds.updateMetadata()
	return nil
}

// SaveAll flushes every collection. Collections are written independently;
// the first failure is reported after all writes were attempted.
func (ds *DatabaseService) SaveAll() error {
	var err error
	for _, key := range []string{
		models.KeyClients,
		models.KeyPredictions,
		models.KeySettings,
		models.KeyConnections,
		models.KeyLogs,
	} {
		if perr := ds.persist(key, "save_all"); err == nil {
			err = perr
		}
	}
	ds.updateMetadata()
	if err == nil {
		ds.log(models.LogLevelInfo, "All data saved successfully")
	}
	return err
}

// Load pulls all collections from the adapter, falling back to empty
// collections and default settings for missing or corrupt entries.
func (ds *DatabaseService) Load() error {
	var (
		clients     []models.Client
		predictions []models.Prediction
		connections = make(map[string]models.Connection)
		logs        []models.LogEntry
		settings    = models.DefaultSettings()
	)
	ds.adapter.Get(models.KeyClients, &clients)
	ds.adapter.Get(models.KeyPredictions, &predictions)
	ds.adapter.Get(models.KeyConnections, &connections)
	ds.adapter.Get(models.KeyLogs, &logs)
	ds.adapter.Get(models.KeySettings, &settings)

	ds.clients.Replace(clients)
	ds.predictions.Replace(predictions)
	ds.connections.Replace(connections)
	ds.logs.Replace(logs)
	ds.settings.Replace(settings)
	ds.updateMetadata()
	ds.log(models.LogLevelInfo, "Database loaded from storage")
	return nil
}

// Cleanup drops completed predictions older than predictionTTL and truncates
// the log collection, then flushes.
func (ds *DatabaseService) Cleanup(predictionTTL time.Duration, maxLogEntries int) error {
	if predictionTTL <= 0 {
		predictionTTL = 30 * 24 * time.Hour
	}
	if maxLogEntries <= 0 {
		maxLogEntries = models.DefaultLogCap
	}
	cutoff := time.Now().Add(-predictionTTL)

	dropped := ds.predictions.Filter(func(p models.Prediction) bool {
		return p.Status != models.PredictionStatusCompleted || p.CreatedAt.After(cutoff)
	})
	ds.logs.Truncate(maxLogEntries)

	err := ds.SaveAll()
	ds.log(models.LogLevelInfo, "Database cleanup completed, %d predictions removed", dropped)
	return err
}

// Reset reinstates empty collections and default settings. Callers snapshot
// first.
func (ds *DatabaseService) Reset() error {
	ds.ReplaceAll(models.DataSet{Settings: models.DefaultSettings()})
	err := ds.SaveAll()
	ds.log(models.LogLevelWarning, "Database reset completed")
	return err
}

/*
 * Internals
 */

func (ds *DatabaseService) dataSet() models.DataSet {
	return models.DataSet{
		Clients:     ds.clients.All(),
		Predictions: ds.predictions.All(),
		Settings:    ds.settings.Get(),
		Connections: ds.connections.All(),
		Logs:        ds.logs.All(),
	}
}

// persist mirrors one collection to the adapter. The in-memory state stays
// authoritative when the write fails; the error is logged and surfaced.
func (ds *DatabaseService) persist(key, op string) error {
	var value interface{}
	switch key {
	case models.KeyClients:
		value = ds.clients.All()
	case models.KeyPredictions:
		value = ds.predictions.All()
	case models.KeySettings:
		value = ds.settings.Get()
	case models.KeyConnections:
		value = ds.connections.All()
	case models.KeyLogs:
		value = ds.logs.All()
	}

	if !ds.adapter.Set(key, value) {
		perr := &models.PersistenceError{Key: key}
		ds.metrics.IncStoreOperation(op, false)
		ds.log(models.LogLevelError, "Failed to save %s", key)
		return perr
	}
	ds.metrics.IncStoreOperation(op, true)
	return nil
}

// fail records the error in the log collection before surfacing it.
func (ds *DatabaseService) fail(op, msg string, err error) error {
	ds.metrics.IncStoreOperation(op, false)
	ds.log(models.LogLevelError, "%s: %s", msg, err)
	return err
}

// log appends to the capped log collection, persists it best-effort and
// mirrors the entry to the process logger. Log persistence failures are not
// surfaced to avoid recursing through fail.
func (ds *DatabaseService) log(level, format string, args ...interface{}) {
	entry := models.LogEntry{Timestamp: time.Now(), Level: level}
	switch level {
	case models.LogLevelError:
		ds.logger.Errorf(providers.TypeApp, format, args...)
	case models.LogLevelWarning:
		ds.logger.Warnf(providers.TypeApp, format, args...)
	default:
		ds.logger.Infof(providers.TypeApp, format, args...)
	}
	entry.Message = fmt.Sprintf(format, args...)
	ds.logs.Append(entry)
	ds.adapter.Set(models.KeyLogs, ds.logs.All())
}

func (ds *DatabaseService) updateMetadata() {
	counts := models.RecordCounts{
		Clients:     ds.clients.Len(),
		Predictions: ds.predictions.Len(),
		Connections: ds.connections.Len(),
		Logs:        ds.logs.Len(),
	}
	ds.metadata.update(counts)
	ds.metrics.SetRecordsTotal(models.KeyClients, counts.Clients)
	ds.metrics.SetRecordsTotal(models.KeyPredictions, counts.Predictions)
	ds.metrics.SetRecordsTotal(models.KeyConnections, counts.Connections)
	ds.metrics.SetRecordsTotal(models.KeyLogs, counts.Logs)
}

func (ds *DatabaseService) databaseSizeKB() int {
	data, err := json.Marshal(ds.dataSet())
	if err != nil {
		return 0
	}
	return int(math.Round(float64(len(data)) / 1024))
}

func validateClient(c *models.Client) error {
	if strings.TrimSpace(c.Name) == "" ||
		strings.TrimSpace(c.Code) == "" ||
		strings.TrimSpace(c.Phone) == "" ||
		strings.TrimSpace(c.Country) == "" {
		return models.NewValidationError("invalid client data: name, code, phone and country are required")
	}
	return nil
}

func validatePrediction(p *models.Prediction) error {
	if p.Multiplier <= 0 || math.IsNaN(p.Multiplier) || math.IsInf(p.Multiplier, 0) {
		return models.NewValidationError("invalid prediction data: multiplier must be a positive number")
	}
	switch p.Result {
	case models.ResultNone, models.ResultSuccess, models.ResultFailed:
	default:
		return models.NewValidationError("invalid prediction result: %s", p.Result)
	}
	completed := p.Status == models.PredictionStatusCompleted
	if completed && p.Result == models.ResultNone {
		return models.NewValidationError("completed prediction requires a result")
	}
	if !completed && p.Result != models.ResultNone {
		return models.NewValidationError("result is only valid for completed predictions")
	}
	return nil
}

func applyClientFields(c *models.Client, fields map[string]interface{}) error {
	for name, raw := range fields {
		switch name {
		case "name", "phone", "country", "subscription", "status", "receiptName":
			v, ok := raw.(string)
			if !ok {
				return models.NewValidationError("field %s must be a string", name)
			}
			switch name {
			case "name":
				c.Name = v
			case "phone":
				c.Phone = v
			case "country":
				c.Country = v
			case "subscription":
				c.Subscription = v
			case "status":
				c.Status = v
			case "receiptName":
				c.ReceiptName = v
			}
		case "receiptUploaded":
			v, ok := raw.(bool)
			if !ok {
				return models.NewValidationError("field receiptUploaded must be a boolean")
			}
			c.ReceiptUploaded = v
		}
	}
	return nil
}

func applyPredictionFields(p *models.Prediction, fields map[string]interface{}) error {
	for name, raw := range fields {
		switch name {
		case "multiplier":
			v, ok := raw.(float64)
			if !ok {
				return models.NewValidationError("field multiplier must be a number")
			}
			p.Multiplier = v
		case "status":
			v, ok := raw.(string)
			if !ok {
				return models.NewValidationError("field status must be a string")
			}
			p.Status = v
		case "result":
			if raw == nil {
				p.Result = models.ResultNone
				continue
			}
			v, ok := raw.(string)
			if !ok {
				return models.NewValidationError("field result must be a string")
			}
			p.Result = v
		}
	}
	return nil
}
