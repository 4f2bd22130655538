package ledger

import (
	"bytes"
	"testing"
)

// TestSQLiteStoreRoundTrip verifies set/get/overwrite against a real on-disk
// database.
func TestSQLiteStoreRoundTrip(t *testing.T) {
	store, err := OpenSQLiteStore(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer store.Close()

	_, ok, err := store.Get("missing")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Error("found = true for missing key")
	}

	if err := store.Set("k", []byte("v1")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	v, ok, err := store.Get("k")
	if err != nil || !ok {
		t.Fatalf("get after set: found=%v err=%v", ok, err)
	}
	if !bytes.Equal(v, []byte("v1")) {
		t.Errorf("value = %q, want %q", v, "v1")
	}

	if err := store.Set("k", []byte("v2")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	v, _, _ = store.Get("k")
	if !bytes.Equal(v, []byte("v2")) {
		t.Errorf("value after overwrite = %q, want %q", v, "v2")
	}
}

// TestSQLiteStorePersistsAcrossOpens verifies data survives reopening the
// same state directory.
func TestSQLiteStorePersistsAcrossOpens(t *testing.T) {
	dir := t.TempDir()

	store, err := OpenSQLiteStore(dir)
	if err != nil {
		t.Fatal(err)
	}
	if err := store.Set("k", []byte("persisted")); err != nil {
		t.Fatal(err)
	}
	store.Close()

	reopened, err := OpenSQLiteStore(dir)
	if err != nil {
		t.Fatal(err)
	}
	defer reopened.Close()

	v, ok, err := reopened.Get("k")
	if err != nil || !ok {
		t.Fatalf("get after reopen: found=%v err=%v", ok, err)
	}
	if !bytes.Equal(v, []byte("persisted")) {
		t.Errorf("value = %q, want %q", v, "persisted")
	}
}
