package database

import (
	"bytes"

	json "github.com/goccy/go-json"

	"avd/internal/database/interfaces"
	"avd/internal/models"
	"avd/internal/providers"
	"avd/internal/services"
)

// Codec translates the whole store to and from the portable export document.
type Codec struct {
	service services.DatabaseServiceInterface
	backup  interfaces.BackupManagerInterface
	logger  providers.Logger
}

func NewCodec(service services.DatabaseServiceInterface, backup interfaces.BackupManagerInterface, logger providers.Logger) interfaces.CodecInterface {
	return &Codec{
		service: service,
		backup:  backup,
		logger:  logger,
	}
}

func (c *Codec) Export() (*models.Snapshot, error) {
	snap := c.service.Snapshot()
	c.logger.Infof(providers.TypeApp, "Data exported successfully")
	return snap, nil
}

// importProbe checks the minimum document shape without committing to a full
// decode: data.clients and data.predictions must be present and array-typed.
type importProbe struct {
	Data *struct {
		Clients     json.RawMessage `json:"clients"`
		Predictions json.RawMessage `json:"predictions"`
	} `json:"data"`
}

// Import replaces the whole store with the document's data. A safety
// snapshot is taken before anything is applied, never after.
func (c *Codec) Import(raw []byte) error {
	var probe importProbe
	if err := json.Unmarshal(raw, &probe); err != nil {
		return c.reject(models.NewValidationError("invalid import document: %s", err))
	}
	if probe.Data == nil || !isJSONArray(probe.Data.Clients) || !isJSONArray(probe.Data.Predictions) {
		return c.reject(models.NewValidationError("invalid import document: data.clients and data.predictions must be arrays"))
	}

	var doc models.Snapshot
	if err := json.Unmarshal(raw, &doc); err != nil {
		return c.reject(models.NewValidationError("invalid import document: %s", err))
	}

	if _, err := c.backup.CreateSnapshot(); err != nil {
		c.logger.Warnf(providers.TypeApp, "Safety backup before import failed: %s", err)
	}

	c.service.ReplaceAll(doc.Data)
	err := c.service.SaveAll()
	c.logger.Infof(providers.TypeApp, "Data imported successfully")
	return err
}

func (c *Codec) reject(err error) error {
	c.logger.Errorf(providers.TypeApp, "Failed to import data: %s", err)
	return err
}

func isJSONArray(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '['
}
