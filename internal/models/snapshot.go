package models

import "time"

// SchemaVersion tags every persisted snapshot and export document.
const SchemaVersion = "1.0"

type RecordCounts struct {
	Clients     int `json:"clients"`
	Predictions int `json:"predictions"`
	Connections int `json:"connections"`
	Logs        int `json:"logs"`
}

// Metadata is derived state, recomputed after every mutation. It is never
// authoritative on its own.
type Metadata struct {
	LastUpdated  time.Time    `json:"lastUpdated"`
	Version      string       `json:"version"`
	RecordCounts RecordCounts `json:"recordCounts"`
}

// DataSet carries full copies of all five collections. Instances handed out
// by the store never alias live store state.
type DataSet struct {
	Clients     []Client              `json:"clients"`
	Predictions []Prediction          `json:"predictions"`
	Settings    Settings              `json:"settings"`
	Connections map[string]Connection `json:"connections"`
	Logs        []LogEntry            `json:"logs"`
}

// Snapshot is the envelope for both on-disk backups and export documents.
type Snapshot struct {
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
	Data      DataSet   `json:"data"`
	Metadata  Metadata  `json:"metadata"`
}

// SnapshotInfo is the listing view of a stored backup.
type SnapshotInfo struct {
	Key          string       `json:"key"`
	Timestamp    time.Time    `json:"timestamp"`
	Version      string       `json:"version"`
	RecordCounts RecordCounts `json:"recordCounts"`
}

type Statistics struct {
	TotalClients         int    `json:"totalClients"`
	ActiveClients        int    `json:"activeClients"`
	TotalPredictions     int    `json:"totalPredictions"`
	ActivePredictions    int    `json:"activePredictions"`
	CompletedPredictions int    `json:"completedPredictions"`
	ConnectedClients     int    `json:"connectedClients"`
	SuccessRate          int    `json:"successRate"`
	LastBackup           string `json:"lastBackup"`
	DatabaseSizeKB       int    `json:"databaseSize"`
}
