package models

import "time"

// Connection is the last known connectivity flag for a client, not a live
// session. It is upserted on login/logout/admin toggles and removed together
// with its client.
type Connection struct {
	Connected bool      `json:"connected"`
	Timestamp time.Time `json:"timestamp"`
	UpdatedAt time.Time `json:"updatedAt"`
}
