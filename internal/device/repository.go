package device

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	jsoniter "github.com/json-iterator/go"
)

// StorageKey is the kv_store key holding the collection.
const StorageKey = "device-timeline-data"

// json is the codec for persisted payloads.
var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Repository defines the interface for collection persistence.
// The collection is stored and loaded as a whole snapshot.
type Repository interface {
	// Load returns the persisted collection.
	// A missing or unreadable payload yields an empty collection, not an error.
	Load(ctx context.Context) ([]Device, error)

	// Save persists the full snapshot, replacing whatever was stored.
	Save(ctx context.Context, devices []Device) error

	// Clear removes the persisted collection.
	Clear(ctx context.Context) error
}

// SQLiteRepository implements Repository on the kv_store table.
type SQLiteRepository struct {
	db     *sql.DB
	logger Logger
}

// NewSQLiteRepository creates a new SQLite-backed repository.
// The kv_store table must already exist (see migrations).
func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db, logger: noopLogger{}}
}

// SetLogger sets the logger used for payload warnings.
func (r *SQLiteRepository) SetLogger(logger Logger) {
	r.logger = logger
}

// Load reads the collection row and decodes it.
func (r *SQLiteRepository) Load(ctx context.Context) ([]Device, error) {
	var value string
	err := r.db.QueryRowContext(ctx,
		"SELECT value FROM kv_store WHERE key = ?", StorageKey,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return []Device{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading collection: %w", err)
	}

	devices, err := decodeCollection([]byte(value))
	if err != nil {
		r.logger.Warn("stored collection unreadable, starting empty", "error", err)
		return []Device{}, nil
	}
	return devices, nil
}

// Save upserts the collection row.
func (r *SQLiteRepository) Save(ctx context.Context, devices []Device) error {
	if devices == nil {
		devices = []Device{}
	}
	payload, err := json.Marshal(devices)
	if err != nil {
		return fmt.Errorf("encoding collection: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO kv_store (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, StorageKey, string(payload), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		r.logger.Error("saving collection failed", "error", err)
		return fmt.Errorf("saving collection: %w", err)
	}
	return nil
}

// Clear deletes the collection row.
func (r *SQLiteRepository) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM kv_store WHERE key = ?", StorageKey); err != nil {
		return fmt.Errorf("clearing collection: %w", err)
	}
	return nil
}

// decodeCollection parses a stored payload. Anything other than a JSON array
// of device objects is rejected.
func decodeCollection(data []byte) ([]Device, error) {
	var devices []Device
	if err := json.Unmarshal(data, &devices); err != nil {
		return nil, fmt.Errorf("decoding collection: %w", err)
	}
	if devices == nil {
		return nil, errors.New("payload is not an array")
	}
	return devices, nil
}
