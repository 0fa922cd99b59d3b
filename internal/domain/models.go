package domain

import (
	"encoding/json"
	"time"
)

// Snapshot is one successful response captured for a watch target.
type Snapshot struct {
	ID          string          `json:"id"`
	TargetID    string          `json:"target_id"`
	Kind        string          `json:"kind"`
	Payload     json.RawMessage `json:"payload"`
	CollectedAt time.Time       `json:"collected_at"`
}
