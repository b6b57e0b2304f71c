package localstore

import (
	"testing"
)

func newTestDB(t *testing.T) *KV {
	t.Helper()

	db, err := NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to create database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := RunMigrations(db); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	return NewKV(db)
}

func TestMigrationRunner(t *testing.T) {
	t.Run("loadMigrations", func(t *testing.T) {
		migrations, err := loadMigrations()
		if err != nil {
			t.Fatalf("failed to load migrations: %v", err)
		}

		if len(migrations) == 0 {
			t.Fatal("expected at least one migration")
		}

		for i := 1; i < len(migrations); i++ {
			if migrations[i].Version <= migrations[i-1].Version {
				t.Errorf("migrations not sorted: version %d comes after %d", migrations[i].Version, migrations[i-1].Version)
			}
		}

		for _, m := range migrations {
			if m.Up == "" {
				t.Errorf("migration version %d missing up SQL", m.Version)
			}
			if m.Down == "" {
				t.Errorf("migration version %d missing down SQL", m.Version)
			}
		}
	})

	t.Run("RunMigrations And Rollback", func(t *testing.T) {
		db, err := NewDatabase(":memory:")
		if err != nil {
			t.Fatalf("failed to create database: %v", err)
		}
		defer db.Close()

		if err := RunMigrations(db); err != nil {
			t.Fatalf("failed to run migrations: %v", err)
		}

		var count int
		err = db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&count)
		if err != nil {
			t.Fatalf("failed to query schema_migrations: %v", err)
		}
		if count == 0 {
			t.Error("expected at least one migration to be applied")
		}

		if _, err = db.Exec("SELECT 1 FROM kv LIMIT 1"); err != nil {
			t.Errorf("kv table should exist after migrations: %v", err)
		}
		if _, err = db.Exec("SELECT 1 FROM artworks LIMIT 1"); err != nil {
			t.Errorf("artworks table should exist after migrations: %v", err)
		}

		if err := RollbackMigration(db); err != nil {
			t.Fatalf("failed to rollback migration: %v", err)
		}

		var newCount int
		err = db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&newCount)
		if err != nil {
			t.Fatalf("failed to query schema_migrations after rollback: %v", err)
		}
		if newCount >= count {
			t.Errorf("expected migration count to decrease after rollback, got %d (was %d)", newCount, count)
		}

		if _, err = db.Exec("SELECT 1 FROM kv LIMIT 1"); err == nil {
			t.Error("kv table should not exist after rollback")
		}
	})

	t.Run("RunMigrations Is Idempotent", func(t *testing.T) {
		db, err := NewDatabase(":memory:")
		if err != nil {
			t.Fatalf("failed to create database: %v", err)
		}
		defer db.Close()

		if err := RunMigrations(db); err != nil {
			t.Fatalf("first run failed: %v", err)
		}
		if err := RunMigrations(db); err != nil {
			t.Fatalf("second run failed: %v", err)
		}
	})
}

func TestKV(t *testing.T) {
	t.Run("Get Missing Key", func(t *testing.T) {
		kv := newTestDB(t)

		value, ok, err := kv.Get("user")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if ok {
			t.Errorf("expected missing key, got value %q", value)
		}
	})

	t.Run("Set Then Get", func(t *testing.T) {
		kv := newTestDB(t)

		if err := kv.Set("user", `{"name":"Ada"}`); err != nil {
			t.Fatalf("set failed: %v", err)
		}

		value, ok, err := kv.Get("user")
		if err != nil {
			t.Fatalf("get failed: %v", err)
		}
		if !ok || value != `{"name":"Ada"}` {
			t.Errorf("unexpected value: ok=%v value=%q", ok, value)
		}
	})

	t.Run("Set Replaces Previous Value", func(t *testing.T) {
		kv := newTestDB(t)

		kv.Set("user", "old")
		if err := kv.Set("user", "new"); err != nil {
			t.Fatalf("overwrite failed: %v", err)
		}

		value, _, _ := kv.Get("user")
		if value != "new" {
			t.Errorf("expected new, got %q", value)
		}
	})

	t.Run("Delete", func(t *testing.T) {
		kv := newTestDB(t)

		kv.Set("user", "value")
		if err := kv.Delete("user"); err != nil {
			t.Fatalf("delete failed: %v", err)
		}

		if _, ok, _ := kv.Get("user"); ok {
			t.Error("expected key to be gone after delete")
		}

		if err := kv.Delete("user"); err != nil {
			t.Errorf("deleting absent key should succeed, got %v", err)
		}
	})
}
