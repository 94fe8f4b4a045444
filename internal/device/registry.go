package device

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"
)

// Logger defines the logging interface used by the Registry.
// This allows different logging implementations to be used.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// noopLogger is a logger that does nothing.
type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

// Notifier receives committed changes. It is called after the lock is
// released, so it may call back into the Registry.
type Notifier interface {
	CollectionChanged(ctx context.Context, ev ChangeEvent)
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(ctx context.Context, ev ChangeEvent)

// CollectionChanged calls f(ctx, ev).
func (f NotifierFunc) CollectionChanged(ctx context.Context, ev ChangeEvent) {
	f(ctx, ev)
}

// Registry is the single owner of the in-memory device collection.
//
// Devices are held in insertion order. Every mutation takes the write lock,
// applies the change, and saves the whole snapshot to the repository before
// releasing it, so saves are serialized and the last write wins. A failed
// save is logged; the in-memory collection stays authoritative.
//
// All public methods are thread-safe.
type Registry struct {
	repo     Repository
	mu       sync.RWMutex
	devices  []Device
	logger   Logger
	notifier Notifier
	now      func() time.Time
}

// NewRegistry creates a registry over repo. Call Load before use.
func NewRegistry(repo Repository) *Registry {
	return &Registry{
		repo:   repo,
		logger: noopLogger{},
		now:    time.Now,
	}
}

// SetLogger sets the logger for the registry.
func (r *Registry) SetLogger(logger Logger) {
	r.logger = logger
}

// SetNotifier registers a receiver for change events. Pass nil to disable.
func (r *Registry) SetNotifier(n Notifier) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notifier = n
}

// SetClock overrides the time source used for year validation.
func (r *Registry) SetClock(now func() time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.now = now
}

// Load replaces the in-memory collection with the persisted one.
// This should be called on application startup.
func (r *Registry) Load(ctx context.Context) error {
	devices, err := r.repo.Load(ctx)
	if err != nil {
		return fmt.Errorf("loading devices: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.devices = make([]Device, 0, len(devices))
	for i := range devices {
		r.devices = append(r.devices, *devices[i].DeepCopy())
	}

	r.logger.Info("device collection loaded", "count", len(r.devices))
	return nil
}

// List returns copies of all devices in insertion order.
func (r *Registry) List() []Device {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.snapshotLocked()
}

// Count returns the number of devices.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.devices)
}

// Get returns a copy of the device with the given ID.
// Returns ErrDeviceNotFound if the device does not exist.
func (r *Registry) Get(id string) (*Device, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	idx := r.indexLocked(id)
	if idx < 0 {
		return nil, ErrDeviceNotFound
	}
	return r.devices[idx].DeepCopy(), nil
}

// Add creates a device with a fresh ID.
// Any ID on the input is ignored. The name is trimmed before validation.
func (r *Registry) Add(ctx context.Context, d Device) (*Device, error) {
	nd := d.DeepCopy()
	nd.ID = GenerateID()
	nd.Name = strings.TrimSpace(nd.Name)

	r.mu.Lock()
	if err := ValidateDevice(nd, r.now()); err != nil {
		r.mu.Unlock()
		return nil, err
	}
	r.devices = append(r.devices, *nd)
	ev := r.commitLocked(ctx, ActionAdded, nd.ID)
	r.mu.Unlock()

	r.logger.Info("device added", "id", nd.ID, "name", nd.Name)
	r.notify(ctx, ev)
	return nd.DeepCopy(), nil
}

// AddFromLookup creates a device from a lookup result and a chosen image.
func (r *Registry) AddFromLookup(ctx context.Context, res LookupResult, imageURL string) (*Device, error) {
	r.mu.RLock()
	now := r.now()
	r.mu.RUnlock()

	return r.Add(ctx, NewFromLookup(res, imageURL, now))
}

// Update replaces the device with the same ID.
// Returns ErrDeviceNotFound if the device does not exist.
func (r *Registry) Update(ctx context.Context, d Device) (*Device, error) {
	nd := d.DeepCopy()
	nd.Name = strings.TrimSpace(nd.Name)

	r.mu.Lock()
	idx := r.indexLocked(nd.ID)
	if idx < 0 {
		r.mu.Unlock()
		return nil, ErrDeviceNotFound
	}
	if err := ValidateDevice(nd, r.now()); err != nil {
		r.mu.Unlock()
		return nil, err
	}
	r.devices[idx] = *nd
	ev := r.commitLocked(ctx, ActionUpdated, nd.ID)
	r.mu.Unlock()

	r.logger.Info("device updated", "id", nd.ID, "name", nd.Name)
	r.notify(ctx, ev)
	return nd.DeepCopy(), nil
}

// Delete removes a device.
// Returns ErrDeviceNotFound if the device does not exist.
func (r *Registry) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	idx := r.indexLocked(id)
	if idx < 0 {
		r.mu.Unlock()
		return ErrDeviceNotFound
	}
	r.devices = append(r.devices[:idx], r.devices[idx+1:]...)
	ev := r.commitLocked(ctx, ActionDeleted, id)
	r.mu.Unlock()

	r.logger.Info("device deleted", "id", id)
	r.notify(ctx, ev)
	return nil
}

// Import appends devices with fresh IDs and returns the new snapshot.
// Input is expected to come from ParseImport; it is appended as given.
func (r *Registry) Import(ctx context.Context, devices []Device) ([]Device, error) {
	r.mu.Lock()
	for i := range devices {
		nd := devices[i].DeepCopy()
		nd.ID = GenerateID()
		r.devices = append(r.devices, *nd)
	}
	ev := r.commitLocked(ctx, ActionImported, "")
	snapshot := r.snapshotLocked()
	r.mu.Unlock()

	r.logger.Info("devices imported", "imported", len(devices), "total", len(snapshot))
	r.notify(ctx, ev)
	return snapshot, nil
}

// Reset empties the collection and clears persisted data.
// A failure to clear storage is logged, as with saves.
func (r *Registry) Reset(ctx context.Context) error {
	r.mu.Lock()
	r.devices = nil
	if err := r.repo.Clear(ctx); err != nil {
		r.logger.Error("clearing persisted collection failed", "error", err)
	}
	r.mu.Unlock()

	r.logger.Info("device collection reset")
	r.notify(ctx, ChangeEvent{Action: ActionReset})
	return nil
}

// commitLocked saves the snapshot and builds the change event.
// Caller must hold the write lock.
func (r *Registry) commitLocked(ctx context.Context, action ChangeAction, id string) ChangeEvent {
	if err := r.repo.Save(ctx, r.snapshotLocked()); err != nil {
		r.logger.Error("saving device collection failed", "action", string(action), "error", err)
	}
	return ChangeEvent{Action: action, DeviceID: id, Count: len(r.devices)}
}

func (r *Registry) notify(ctx context.Context, ev ChangeEvent) {
	r.mu.RLock()
	n := r.notifier
	r.mu.RUnlock()

	if n != nil {
		n.CollectionChanged(ctx, ev)
	}
}

// snapshotLocked deep-copies the collection. Caller must hold a lock.
func (r *Registry) snapshotLocked() []Device {
	out := make([]Device, len(r.devices))
	for i := range r.devices {
		out[i] = *r.devices[i].DeepCopy()
	}
	return out
}

func (r *Registry) indexLocked(id string) int {
	for i := range r.devices {
		if r.devices[i].ID == id {
			return i
		}
	}
	return -1
}
