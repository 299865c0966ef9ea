// Package storage defines the key-value persistence port for jobtrack and
// its adapters. All user state (preferences, statuses, saved jobs, digests,
// checklist) lives behind KV so the engines stay pure and tests can swap in
// the in-memory adapter.
package storage

import "errors"

// ErrNotFound is returned when a requested key does not exist.
var ErrNotFound = errors.New("not found")

// KV is the persistence port: string keys to self-describing serialized
// values (JSON throughout jobtrack). Implemented by Store (SQLite) and
// MemKV (in-memory).
type KV interface {
	Get(key string) (string, error)
	Set(key, value string) error
	Delete(key string) error
	Keys(prefix string) ([]string, error)
}
