package storage

import (
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	bolt "go.etcd.io/bbolt"
)

const (
	snapshotBucket   = "snapshots"
	expiryValueBytes = 8
)

var errBucketMissing = errors.New("snapshot bucket missing")

// boltStore keeps snapshot ids in a single bucket, each value being the
// big-endian unix expiry. Expired ids read as unseen and are swept on the
// next write after cleanupInterval has passed.
type boltStore struct {
	db              *bolt.DB
	ttl             time.Duration
	cleanupInterval time.Duration
	now             func() time.Time

	mu        sync.Mutex
	nextSweep time.Time
}

func openBolt(path string, opts Options) (*boltStore, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create storage directory: %w", err)
		}
	}

	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open bbolt db: %w", err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(snapshotBucket))
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("init bucket: %w", err)
	}

	s := &boltStore{
		db:              db,
		ttl:             opts.SnapshotTTL,
		cleanupInterval: opts.CleanupInterval,
		now:             time.Now,
	}
	s.nextSweep = s.now().Add(s.cleanupInterval)
	return s, nil
}

func (b *boltStore) Close() error {
	if b == nil || b.db == nil {
		return nil
	}
	return b.db.Close()
}

// SeenSnapshot reports whether id was marked and has not expired yet.
func (b *boltStore) SeenSnapshot(id string) (bool, error) {
	if b == nil || b.db == nil {
		return false, nil
	}

	now := b.now()
	var seen bool
	err := b.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(snapshotBucket))
		if bucket == nil {
			return errBucketMissing
		}
		expiry, ok := decodeExpiry(bucket.Get([]byte(id)))
		seen = ok && expiry.After(now)
		return nil
	})
	return seen, err
}

// MarkSnapshot records id as published until the TTL elapses.
func (b *boltStore) MarkSnapshot(id string) error {
	if b == nil || b.db == nil {
		return nil
	}

	now := b.now()
	sweep := b.sweepDue(now)

	return b.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(snapshotBucket))
		if bucket == nil {
			return errBucketMissing
		}
		if sweep {
			if err := deleteExpired(bucket, now); err != nil {
				return fmt.Errorf("sweep expired snapshots: %w", err)
			}
		}
		return bucket.Put([]byte(id), encodeExpiry(now.Add(b.ttl)))
	})
}

func (b *boltStore) sweepDue(now time.Time) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if now.Before(b.nextSweep) {
		return false
	}
	b.nextSweep = now.Add(b.cleanupInterval)
	return true
}

func deleteExpired(bucket *bolt.Bucket, now time.Time) error {
	cursor := bucket.Cursor()
	for k, v := cursor.First(); k != nil; k, v = cursor.Next() {
		if expiry, ok := decodeExpiry(v); !ok || !expiry.After(now) {
			if err := cursor.Delete(); err != nil {
				return err
			}
		}
	}
	return nil
}

func (b *boltStore) count() (int, error) {
	var n int
	err := b.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(snapshotBucket))
		if bucket == nil {
			return errBucketMissing
		}
		n = bucket.Stats().KeyN
		return nil
	})
	return n, err
}

func encodeExpiry(t time.Time) []byte {
	buf := make([]byte, expiryValueBytes)
	binary.BigEndian.PutUint64(buf, uint64(t.Unix()))
	return buf
}

func decodeExpiry(value []byte) (time.Time, bool) {
	if len(value) != expiryValueBytes {
		return time.Time{}, false
	}
	unix := int64(binary.BigEndian.Uint64(value))
	if unix <= 0 {
		return time.Time{}, false
	}
	return time.Unix(unix, 0), true
}
