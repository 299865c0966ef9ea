package storage

import (
	"errors"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open(:memory:) failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// TestMigrationsIdempotent runs Open twice on the same database and verifies
// the schema_version count stays correct (migration not re-applied).
func TestMigrationsIdempotent(t *testing.T) {
	dir := t.TempDir()

	s1, err := Open(dir)
	if err != nil {
		t.Fatalf("first Open failed: %v", err)
	}

	v1, err := s1.AppliedMigrations()
	if err != nil {
		t.Fatalf("AppliedMigrations: %v", err)
	}
	s1.Close()

	s2, err := Open(dir)
	if err != nil {
		t.Fatalf("second Open failed: %v", err)
	}
	defer s2.Close()

	v2, err := s2.AppliedMigrations()
	if err != nil {
		t.Fatalf("AppliedMigrations: %v", err)
	}

	if len(v1) != len(v2) {
		t.Errorf("migration count changed: %d -> %d", len(v1), len(v2))
	}
}

func TestSetGetRoundTrip(t *testing.T) {
	s := openTestStore(t)

	if err := s.Set("preferences", `{"minMatchScore":40}`); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, err := s.Get("preferences")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != `{"minMatchScore":40}` {
		t.Errorf("round-trip mismatch: got %q", got)
	}
}

func TestSetOverwrites(t *testing.T) {
	s := openTestStore(t)

	if err := s.Set("jobStatus", `{"1":"Applied"}`); err != nil {
		t.Fatalf("first Set: %v", err)
	}
	if err := s.Set("jobStatus", `{"1":"Rejected"}`); err != nil {
		t.Fatalf("second Set: %v", err)
	}

	got, err := s.Get("jobStatus")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != `{"1":"Rejected"}` {
		t.Errorf("expected overwritten value, got %q", got)
	}
}

func TestGetMissingKey(t *testing.T) {
	s := openTestStore(t)

	_, err := s.Get("no-such-key")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteIsIdempotent(t *testing.T) {
	s := openTestStore(t)

	if err := s.Set("savedJobs", "[3,7]"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := s.Delete("savedJobs"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := s.Delete("savedJobs"); err != nil {
		t.Fatalf("second Delete: %v", err)
	}
	if _, err := s.Get("savedJobs"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestKeysPrefix(t *testing.T) {
	s := openTestStore(t)

	for _, k := range []string{"digest:2026-08-30", "digest:2026-08-31", "preferences"} {
		if err := s.Set(k, "[]"); err != nil {
			t.Fatalf("Set(%q): %v", k, err)
		}
	}

	keys, err := s.Keys("digest:")
	if err != nil {
		t.Fatalf("Keys: %v", err)
	}
	if len(keys) != 2 {
		t.Fatalf("expected 2 digest keys, got %v", keys)
	}
	if keys[0] != "digest:2026-08-30" || keys[1] != "digest:2026-08-31" {
		t.Errorf("keys not sorted ascending: %v", keys)
	}
}

// TestMemKVMatchesStore exercises the in-memory adapter against the same
// contract the SQLite adapter satisfies.
func TestMemKVMatchesStore(t *testing.T) {
	m := NewMemKV()

	if _, err := m.Get("x"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound on empty store, got %v", err)
	}
	if err := m.Set("x", "1"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if v, err := m.Get("x"); err != nil || v != "1" {
		t.Errorf("Get = %q, %v; want %q, nil", v, err, "1")
	}
	if err := m.Delete("x"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := m.Get("x"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
}
