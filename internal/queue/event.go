// Package queue defines message payloads exchanged over the message broker.
package queue

// CatalogSyncedEvent is published after a bulk product synchronization run.
// It carries enough information for downstream consumers to log or alert on
// failing listings without querying the primary database.
type CatalogSyncedEvent struct {
	Total      int      `json:"total"`
	Updated    int      `json:"updated"`
	Failed     int      `json:"failed"`
	FailedIDs  []string `json:"failed_ids,omitempty"`
	DurationMS int64    `json:"duration_ms"`
	SyncedAt   string   `json:"synced_at"`
}
