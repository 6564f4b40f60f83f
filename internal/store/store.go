// Package store provides the persistent key-value boundary the template
// library runs on. Backends guarantee atomic get/set/remove per key but no
// cross-key atomicity.
package store

import "context"

// Store is the key-value contract consumed by the library. Get reports
// ok=false for an absent key instead of an error.
type Store interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, keys ...string) error
	Close() error
}

// Backend names accepted in configuration.
const (
	BackendBolt   = "bolt"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)
