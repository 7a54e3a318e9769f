package models

// Persisted keyspace. One key per collection plus timestamped backup keys.
const (
	KeyClients     = "clients"
	KeyPredictions = "predictions"
	KeySettings    = "settings"
	KeyConnections = "connections"
	KeyLogs        = "logs"

	BackupKeyPrefix = "backup_"
)
