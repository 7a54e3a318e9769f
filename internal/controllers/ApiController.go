package controllers

import (
	"errors"
	"io"
	"net/http"
	"time"

	json "github.com/goccy/go-json"

	"avd/internal/database/interfaces"
	"avd/internal/models"
	"avd/internal/providers"
	"avd/internal/services"
)

const maxRequestBodySize = 1 << 20 // 1 MB

type ApiController struct {
	logger    providers.Logger
	service   services.DatabaseServiceInterface
	generator services.GeneratorServiceInterface
	backup    interfaces.BackupManagerInterface
	codec     interfaces.CodecInterface
	cache     providers.CacheProviderInterface
}

func NewApiController(logger providers.Logger, service services.DatabaseServiceInterface, generator services.GeneratorServiceInterface, backup interfaces.BackupManagerInterface, codec interfaces.CodecInterface, cache providers.CacheProviderInterface) *ApiController {
	return &ApiController{
		logger:    logger,
		service:   service,
		generator: generator,
		backup:    backup,
		codec:     codec,
		cache:     cache,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	gson, err := json.Marshal(v)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(gson)
}

func writeError(w http.ResponseWriter, err error) {
	var (
		validationErr  *models.ValidationError
		duplicateErr   *models.DuplicateError
		notFoundErr    *models.NotFoundError
		persistenceErr *models.PersistenceError
	)
	status := http.StatusInternalServerError
	switch {
	case errors.As(err, &validationErr):
		status = http.StatusBadRequest
	case errors.As(err, &duplicateErr):
		status = http.StatusConflict
	case errors.As(err, &notFoundErr):
		status = http.StatusNotFound
	case errors.As(err, &persistenceErr):
		status = http.StatusInternalServerError
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func decodeBody(w http.ResponseWriter, r *http.Request, out any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	if err := json.NewDecoder(r.Body).Decode(out); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return false
	}
	return true
}

func (ac *ApiController) serveFromCacheOrCompute(w http.ResponseWriter, cacheKey string, compute func() (any, error)) {
	if data, ok := ac.cache.Get(cacheKey); ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
		return
	}

	result, err := compute()
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	gson, err := json.Marshal(result)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	ac.cache.Set(cacheKey, gson)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(gson)
}

/*
 * Clients
 */

func (ac *ApiController) CreateClient(w http.ResponseWriter, r *http.Request) {
	var payload models.Client
	if !decodeBody(w, r, &payload) {
		return
	}
	created, err := ac.service.CreateClient(payload)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (ac *ApiController) ListClients(w http.ResponseWriter, r *http.Request) {
	if status := r.URL.Query().Get("status"); status != "" {
		writeJSON(w, http.StatusOK, ac.service.GetClientsByStatus(status))
		return
	}
	writeJSON(w, http.StatusOK, ac.service.GetAllClients())
}

// GetClient resolves a single client by id or by access code.
func (ac *ApiController) GetClient(w http.ResponseWriter, r *http.Request) {
	var (
		client models.Client
		ok     bool
	)
	if id := r.URL.Query().Get("id"); id != "" {
		client, ok = ac.service.GetClientByID(id)
	} else if code := r.URL.Query().Get("code"); code != "" {
		client, ok = ac.service.GetClientByCode(code)
	} else {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "client not found"})
		return
	}
	writeJSON(w, http.StatusOK, client)
}

func (ac *ApiController) UpdateClient(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	var fields map[string]interface{}
	if !decodeBody(w, r, &fields) {
		return
	}
	updated, err := ac.service.UpdateClient(id, fields)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (ac *ApiController) DeleteClient(w http.ResponseWriter, r *http.Request) {
	if err := ac.service.DeleteClient(r.URL.Query().Get("id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (ac *ApiController) SuggestClientCode(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"code": ac.generator.SuggestClientCode()})
}

/*
 * Predictions
 */

func (ac *ApiController) CreatePrediction(w http.ResponseWriter, r *http.Request) {
	var payload models.Prediction
	if !decodeBody(w, r, &payload) {
		return
	}
	created, err := ac.service.CreatePrediction(payload)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// GeneratePrediction creates a new prediction with a multiplier from the
// configured algorithm.
func (ac *ApiController) GeneratePrediction(w http.ResponseWriter, r *http.Request) {
	created, err := ac.service.CreatePrediction(models.Prediction{
		Multiplier: ac.generator.GenerateMultiplier(),
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (ac *ApiController) ListPredictions(w http.ResponseWriter, r *http.Request) {
	if status := r.URL.Query().Get("status"); status != "" {
		writeJSON(w, http.StatusOK, ac.service.GetPredictionsByStatus(status))
		return
	}
	writeJSON(w, http.StatusOK, ac.service.GetAllPredictions())
}

func (ac *ApiController) UpdatePrediction(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	var fields map[string]interface{}
	if !decodeBody(w, r, &fields) {
		return
	}
	updated, err := ac.service.UpdatePrediction(id, fields)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (ac *ApiController) DeletePrediction(w http.ResponseWriter, r *http.Request) {
	if err := ac.service.DeletePrediction(r.URL.Query().Get("id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

/*
 * Settings and connections
 */

func (ac *ApiController) GetSettings(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, ac.service.GetSettings())
}

func (ac *ApiController) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var patch map[string]interface{}
	if !decodeBody(w, r, &patch) {
		return
	}
	updated, err := ac.service.UpdateSettings(patch)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (ac *ApiController) ListConnections(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, ac.service.GetAllConnections())
}

type connectionPayload struct {
	Connected bool       `json:"connected"`
	Timestamp *time.Time `json:"timestamp"`
}

func (ac *ApiController) SetConnection(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	var payload connectionPayload
	if !decodeBody(w, r, &payload) {
		return
	}
	ts := time.Now()
	if payload.Timestamp != nil {
		ts = *payload.Timestamp
	}
	conn, err := ac.service.SetConnection(id, payload.Connected, ts)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, conn)
}

/*
 * Diagnostics
 */

func (ac *ApiController) GetStatistics(w http.ResponseWriter, r *http.Request) {
	ac.serveFromCacheOrCompute(w, "statistics", func() (any, error) {
		stats := ac.service.GetStatistics()
		if infos := ac.backup.ListSnapshots(); len(infos) > 0 {
			stats.LastBackup = infos[0].Timestamp.Format(time.RFC3339)
		}
		return stats, nil
	})
}

func (ac *ApiController) GetLogs(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, ac.service.GetLogs())
}

/*
 * Backups, export and import
 */

func (ac *ApiController) ListBackups(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, ac.backup.ListSnapshots())
}

func (ac *ApiController) CreateBackup(w http.ResponseWriter, r *http.Request) {
	key, err := ac.backup.CreateSnapshot()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"key": key})
}

func (ac *ApiController) RestoreBackup(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("key")
	if err := ac.backup.Restore(key); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"restored": key})
}

func (ac *ApiController) Export(w http.ResponseWriter, r *http.Request) {
	doc, err := ac.codec.Export()
	if err != nil {
		writeError(w, err)
		return
	}
	filename := "aviator_data_" + doc.Timestamp.Format("2006-01-02") + ".json"
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	writeJSON(w, http.StatusOK, doc)
}

func (ac *ApiController) Import(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	raw, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	if err := ac.codec.Import(raw); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"imported": true})
}

// Reset snapshots the current state and reinstates an empty store with
// default settings.
func (ac *ApiController) Reset(w http.ResponseWriter, r *http.Request) {
	if _, err := ac.backup.CreateSnapshot(); err != nil {
		ac.logger.Warnf(providers.TypeApp, "Backup before reset failed: %s", err)
	}
	if err := ac.service.Reset(); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"reset": true})
}
