package device

import (
	"context"
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
)

// setupTestDB creates an in-memory SQLite database with the kv_store table.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	// Each :memory: connection is its own database.
	db.SetMaxOpenConns(1)

	schema := `
		CREATE TABLE kv_store (
			key        TEXT PRIMARY KEY,
			value      TEXT NOT NULL,
			updated_at TEXT NOT NULL
		) STRICT;
	`
	if _, err := db.Exec(schema); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	t.Cleanup(func() { db.Close() })
	return db
}

func putRaw(t *testing.T, db *sql.DB, value string) {
	t.Helper()
	if _, err := db.Exec(
		"INSERT INTO kv_store (key, value, updated_at) VALUES (?, ?, 'x')", StorageKey, value,
	); err != nil {
		t.Fatalf("insert raw payload: %v", err)
	}
}

func TestSQLiteRepository_LoadMissingKey(t *testing.T) {
	repo := NewSQLiteRepository(setupTestDB(t))

	devices, err := repo.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if devices == nil || len(devices) != 0 {
		t.Errorf("Load() = %v, want empty non-nil slice", devices)
	}
}

func TestSQLiteRepository_SaveLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewSQLiteRepository(setupTestDB(t))

	want := []Device{
		{ID: "a", Name: "Nokia 3310", Category: CategorySmartphone, StartYear: 2000, EndYear: year(2003),
			ImageURL: "https://example.com/n.jpg", Description: "Phone", Notes: "Tough", WikiURL: "https://w/n"},
		{ID: "b", Name: "PlayStation 5", Category: CategoryGaming, StartYear: 2020},
	}
	if err := repo.Save(ctx, want); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("Load() returned %d devices, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].ID != want[i].ID || got[i].Name != want[i].Name || got[i].Period() != want[i].Period() {
			t.Errorf("device %d = %+v, want %+v", i, got[i], want[i])
		}
	}
	if got[0].Notes != "Tough" || got[0].WikiURL != "https://w/n" {
		t.Errorf("optional fields lost: %+v", got[0])
	}
	if got[1].EndYear != nil {
		t.Errorf("nil end year round-tripped as %v", *got[1].EndYear)
	}
}

func TestSQLiteRepository_SaveOverwrites(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repo := NewSQLiteRepository(db)

	if err := repo.Save(ctx, []Device{{ID: "a", Name: "One", Category: CategoryOther, StartYear: 2000}}); err != nil {
		t.Fatalf("first Save() error = %v", err)
	}
	if err := repo.Save(ctx, nil); err != nil {
		t.Fatalf("second Save() error = %v", err)
	}

	var rows int
	if err := db.QueryRow("SELECT COUNT(*) FROM kv_store").Scan(&rows); err != nil {
		t.Fatalf("count rows: %v", err)
	}
	if rows != 1 {
		t.Errorf("kv_store has %d rows, want 1", rows)
	}

	got, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Load() after saving nil = %v, want empty", got)
	}
}

func TestSQLiteRepository_LoadCorruptPayload(t *testing.T) {
	tests := map[string]string{
		"invalid json": "{not json",
		"object":       `{"name":"x"}`,
		"null":         "null",
		"wrong types":  `[{"startYear":"nineteen"}]`,
	}

	for name, payload := range tests {
		t.Run(name, func(t *testing.T) {
			db := setupTestDB(t)
			putRaw(t, db, payload)
			repo := NewSQLiteRepository(db)

			devices, err := repo.Load(context.Background())
			if err != nil {
				t.Fatalf("Load() error = %v, want nil", err)
			}
			if len(devices) != 0 {
				t.Errorf("Load() = %v, want empty", devices)
			}
		})
	}
}

func TestSQLiteRepository_Clear(t *testing.T) {
	ctx := context.Background()
	repo := NewSQLiteRepository(setupTestDB(t))

	if err := repo.Save(ctx, []Device{{ID: "a", Name: "One", Category: CategoryOther, StartYear: 2000}}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := repo.Clear(ctx); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	got, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Load() after Clear() = %v, want empty", got)
	}
}

func TestSQLiteRepository_EngineErrorReturned(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSQLiteRepository(db)
	db.Close()

	if _, err := repo.Load(context.Background()); err == nil {
		t.Error("Load() on closed database should return an error")
	}
	if err := repo.Save(context.Background(), nil); err == nil {
		t.Error("Save() on closed database should return an error")
	}
}
