package publishers

import (
	"time"

	"github.com/Adda-Baaj/simple-uber/internal/domain"
)

// Event is the message published downstream for each new snapshot.
type Event struct {
	TargetID    string          `json:"target_id"`
	TargetName  string          `json:"target_name"`
	Kind        string          `json:"kind"`
	Snapshot    domain.Snapshot `json:"snapshot"`
	PublishedAt time.Time       `json:"published_at"`
}

// NewEvent wraps a snapshot of the named target.
func NewEvent(targetName string, snap domain.Snapshot) Event {
	return Event{
		TargetID:    snap.TargetID,
		TargetName:  targetName,
		Kind:        snap.Kind,
		Snapshot:    snap,
		PublishedAt: time.Now().UTC(),
	}
}

// attributes are attached as message attributes by the queue and topic sinks.
func (e Event) attributes() map[string]string {
	return map[string]string{
		"target_id": e.TargetID,
		"kind":      e.Kind,
	}
}
