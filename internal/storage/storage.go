// Package storage remembers which snapshots have already been published.
package storage

import (
	"fmt"
	"strings"
	"time"
)

// Store tracks published snapshot IDs.
type Store interface {
	Close() error
	SeenSnapshot(id string) (bool, error)
	MarkSnapshot(id string) error
}

// Options controls retention characteristics for concrete store implementations.
type Options struct {
	SnapshotTTL     time.Duration
	CleanupInterval time.Duration
}

const (
	TypeNone  = "none"
	TypeBBolt = "bbolt"

	defaultSnapshotTTL     = time.Hour
	defaultCleanupInterval = 15 * time.Minute
)

// NewStore creates the configured storage backend.
func NewStore(typ, path string, opts Options) (Store, error) {
	typ = strings.TrimSpace(strings.ToLower(typ))
	opts = normalizeOptions(opts)

	switch typ {
	case "", TypeNone, "disabled":
		return noopStore{}, nil
	case TypeBBolt:
		if strings.TrimSpace(path) == "" {
			return nil, fmt.Errorf("bbolt storage requires a path")
		}
		store, err := openBolt(path, opts)
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unsupported storage type %q", typ)
	}
}

func normalizeOptions(opts Options) Options {
	if opts.SnapshotTTL <= 0 {
		opts.SnapshotTTL = defaultSnapshotTTL
	}
	if opts.CleanupInterval <= 0 {
		opts.CleanupInterval = defaultCleanupInterval
	}
	return opts
}

type noopStore struct{}

func (noopStore) Close() error                      { return nil }
func (noopStore) SeenSnapshot(string) (bool, error) { return false, nil }
func (noopStore) MarkSnapshot(string) error         { return nil }
