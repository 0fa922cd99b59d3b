package watcher

import (
	"context"

	"github.com/Adda-Baaj/simple-uber/pkg/publishers"
	"github.com/Adda-Baaj/simple-uber/pkg/uber"
)

// EstimatesAPI is the subset of uber.Client the watcher polls.
type EstimatesAPI interface {
	GetProducts(ctx context.Context, lat, lon float64) (*uber.Payload, error)
	GetPriceEstimates(ctx context.Context, startLat, startLon, endLat, endLon float64) (*uber.Payload, error)
	GetTimeEstimates(ctx context.Context, startLat, startLon float64, opts ...uber.TimeEstimateOption) (*uber.Payload, error)
}

// EventPublisher publishes snapshots downstream and reports how many sinks accepted them.
type EventPublisher interface {
	Publish(ctx context.Context, evt publishers.Event) (int, error)
}

// Deduper remembers snapshots that were already delivered.
type Deduper interface {
	SeenSnapshot(id string) (bool, error)
	MarkSnapshot(id string) error
}

// Logger is the logging surface the watcher uses.
type Logger interface {
	InfoObj(msg, key string, obj interface{})
	WarnObj(msg, key string, obj interface{})
	ErrorObj(msg, key string, obj interface{})
}
