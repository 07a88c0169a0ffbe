package posturedb

import (
	"path/filepath"
	"testing"
)

// openTestDB opens a fresh file-backed database under t.TempDir and runs
// all migrations. File-backed rather than :memory: because database/sql
// pools connections and each in-memory connection is its own database.
func openTestDB(t *testing.T) *PostureDB {
	t.Helper()

	db, err := Open(filepath.Join(t.TempDir(), "posture.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := db.MigrateUp(); err != nil {
		t.Fatalf("MigrateUp failed: %v", err)
	}

	return db
}

func TestMigrateUp(t *testing.T) {
	db := openTestDB(t)

	version, dirty, err := db.Version()
	if err != nil {
		t.Fatalf("Version failed: %v", err)
	}
	if version != 1 {
		t.Errorf("expected version 1, got %d", version)
	}
	if dirty {
		t.Error("database should not be dirty after successful migration")
	}

	for _, table := range []string{"posture_runs", "posture_frames"} {
		var exists bool
		err := db.QueryRow(`
			SELECT COUNT(*) > 0
			FROM sqlite_master
			WHERE type='table' AND name=?
		`, table).Scan(&exists)
		if err != nil {
			t.Fatalf("failed to check %s: %v", table, err)
		}
		if !exists {
			t.Errorf("table %s should exist after migration", table)
		}
	}
}

func TestMigrateUpIdempotent(t *testing.T) {
	db := openTestDB(t)

	// A second up must be a no-op, not an error.
	if err := db.MigrateUp(); err != nil {
		t.Fatalf("second MigrateUp failed: %v", err)
	}

	version, _, err := db.Version()
	if err != nil {
		t.Fatalf("Version failed: %v", err)
	}
	if version != 1 {
		t.Errorf("expected version 1 after idempotent up, got %d", version)
	}
}

func TestMigrateDown(t *testing.T) {
	db := openTestDB(t)

	if err := db.MigrateDown(); err != nil {
		t.Fatalf("MigrateDown failed: %v", err)
	}

	var exists bool
	err := db.QueryRow(`
		SELECT COUNT(*) > 0
		FROM sqlite_master
		WHERE type='table' AND name='posture_runs'
	`).Scan(&exists)
	if err != nil {
		t.Fatalf("failed to check posture_runs: %v", err)
	}
	if exists {
		t.Error("posture_runs should not exist after rolling back")
	}
}

func TestVersionBeforeMigrations(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "fresh.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer db.Close()

	version, dirty, err := db.Version()
	if err != nil {
		t.Fatalf("Version failed: %v", err)
	}
	if version != 0 {
		t.Errorf("expected version 0 before migrations, got %d", version)
	}
	if dirty {
		t.Error("fresh database should not be dirty")
	}
}
