package database

import (
	"path/filepath"
	"testing"
)

func TestMigrateCreatesSchema(t *testing.T) {
	db, err := New(filepath.Join(t.TempDir(), "data", "filehub.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer db.Close()

	version, err := db.Migrate()
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if version != 1 {
		t.Fatalf("expected schema version 1, got %d", version)
	}

	for _, table := range []string{"users", "sessions"} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&name)
		if err != nil {
			t.Fatalf("table %s missing: %v", table, err)
		}
	}
}

func TestMigrateIsRepeatable(t *testing.T) {
	db, err := New(filepath.Join(t.TempDir(), "filehub.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer db.Close()

	if _, err := db.Migrate(); err != nil {
		t.Fatalf("first migrate: %v", err)
	}
	if _, err := db.Migrate(); err != nil {
		t.Fatalf("second migrate: %v", err)
	}
}
