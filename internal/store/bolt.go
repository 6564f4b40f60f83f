package store

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"go.etcd.io/bbolt"
)

const boltBucketRecords = "records"

// Bolt is a bbolt-backed Store. Values are stored as raw text under their
// key in a single bucket.
type Bolt struct {
	storage *bbolt.DB
	logger  zerolog.Logger
}

// NewBolt opens or creates a bolt database at path.
func NewBolt(path string, logger zerolog.Logger) (*Bolt, error) {
	instance, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt database: %w", err)
	}

	if err := instance.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(boltBucketRecords))
		return err
	}); err != nil {
		_ = instance.Close()
		return nil, fmt.Errorf("failed to create bolt bucket: %w", err)
	}

	logger.Debug().Str("path", path).Msg("bolt store opened")

	return &Bolt{storage: instance, logger: logger}, nil
}

// Get returns the value for key, with ok=false when the key is absent.
func (b *Bolt) Get(ctx context.Context, key string) (string, bool, error) {
	var (
		value string
		ok    bool
	)

	err := b.storage.View(func(tx *bbolt.Tx) error {
		if raw := tx.Bucket([]byte(boltBucketRecords)).Get([]byte(key)); raw != nil {
			value = string(raw)
			ok = true
		}
		return nil
	})
	if err != nil {
		return "", false, fmt.Errorf("failed to read key %q: %w", key, err)
	}

	return value, ok, nil
}

// Set writes value under key, replacing any previous value.
func (b *Bolt) Set(ctx context.Context, key, value string) error {
	err := b.storage.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(boltBucketRecords)).Put([]byte(key), []byte(value))
	})
	if err != nil {
		return fmt.Errorf("failed to write key %q: %w", key, err)
	}
	return nil
}

// Remove deletes the given keys. Absent keys are not an error.
func (b *Bolt) Remove(ctx context.Context, keys ...string) error {
	err := b.storage.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(boltBucketRecords))
		for _, key := range keys {
			if err := bucket.Delete([]byte(key)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to remove keys: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (b *Bolt) Close() error {
	return b.storage.Close()
}
