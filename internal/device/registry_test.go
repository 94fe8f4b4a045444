package device

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

// MockRepository is a test implementation of Repository.
type MockRepository struct {
	mu      sync.Mutex
	stored  []Device
	saves   int
	cleared int
	// For testing error paths
	loadErr  error
	saveErr  error
	clearErr error
}

func NewMockRepository(initial ...Device) *MockRepository {
	return &MockRepository{stored: initial}
}

func (m *MockRepository) Load(_ context.Context) ([]Device, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.loadErr != nil {
		return nil, m.loadErr
	}
	out := make([]Device, len(m.stored))
	copy(out, m.stored)
	return out, nil
}

func (m *MockRepository) Save(_ context.Context, devices []Device) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.saves++
	if m.saveErr != nil {
		return m.saveErr
	}
	m.stored = devices
	return nil
}

func (m *MockRepository) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.cleared++
	if m.clearErr != nil {
		return m.clearErr
	}
	m.stored = nil
	return nil
}

func (m *MockRepository) snapshot() []Device {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stored
}

// eventRecorder collects change events.
type eventRecorder struct {
	mu     sync.Mutex
	events []ChangeEvent
}

func (e *eventRecorder) CollectionChanged(_ context.Context, ev ChangeEvent) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.events = append(e.events, ev)
}

func (e *eventRecorder) last() ChangeEvent {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.events[len(e.events)-1]
}

var fixedNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func newTestRegistry(t *testing.T, repo Repository) *Registry {
	t.Helper()

	r := NewRegistry(repo)
	r.SetClock(func() time.Time { return fixedNow })
	if err := r.Load(context.Background()); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	return r
}

func validDevice(name string, start int) Device {
	return Device{Name: name, Category: CategoryLaptop, StartYear: start}
}

func TestRegistry_Load(t *testing.T) {
	repo := NewMockRepository(
		Device{ID: "1", Name: "A", Category: CategoryOther, StartYear: 2001},
		Device{ID: "2", Name: "B", Category: CategoryOther, StartYear: 1999},
	)
	r := newTestRegistry(t, repo)

	if r.Count() != 2 {
		t.Fatalf("Count() = %d, want 2", r.Count())
	}
	list := r.List()
	if list[0].ID != "1" || list[1].ID != "2" {
		t.Errorf("List() order = %s,%s, want insertion order 1,2", list[0].ID, list[1].ID)
	}
}

func TestRegistry_LoadError(t *testing.T) {
	repo := NewMockRepository()
	repo.loadErr = errors.New("disk gone")

	if err := NewRegistry(repo).Load(context.Background()); err == nil {
		t.Error("Load() should propagate engine errors")
	}
}

func TestRegistry_Add(t *testing.T) {
	ctx := context.Background()
	repo := NewMockRepository()
	r := newTestRegistry(t, repo)
	events := &eventRecorder{}
	r.SetNotifier(events)

	in := validDevice("  MacBook Pro  ", 2020)
	in.ID = "caller-chosen"
	d, err := r.Add(ctx, in)
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	if d.ID == "" || d.ID == "caller-chosen" {
		t.Errorf("Add() ID = %q, want a fresh generated ID", d.ID)
	}
	if d.Name != "MacBook Pro" {
		t.Errorf("Add() Name = %q, want trimmed", d.Name)
	}
	if got := repo.snapshot(); len(got) != 1 || got[0].ID != d.ID {
		t.Errorf("repository snapshot = %+v, want the new device", got)
	}
	if ev := events.last(); ev.Action != ActionAdded || ev.DeviceID != d.ID || ev.Count != 1 {
		t.Errorf("event = %+v", ev)
	}
}

func TestRegistry_AddRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		dev  Device
		want error
	}{
		{"blank name", validDevice("   ", 2020), ErrInvalidName},
		{"bad category", Device{Name: "X", Category: "toaster", StartYear: 2020}, ErrInvalidCategory},
		{"before 1970", validDevice("X", 1969), ErrInvalidYear},
		{"future year", validDevice("X", 2025), ErrInvalidYear},
		{"end before start", Device{Name: "X", Category: CategoryAudio, StartYear: 2010, EndYear: year(2009)}, ErrInvalidPeriod},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := NewMockRepository()
			r := newTestRegistry(t, repo)

			_, err := r.Add(context.Background(), tt.dev)
			if !errors.Is(err, tt.want) {
				t.Fatalf("Add() error = %v, want %v", err, tt.want)
			}
			if !errors.Is(err, ErrInvalidDevice) {
				t.Errorf("error %v should match ErrInvalidDevice", err)
			}
			if r.Count() != 0 || repo.saves != 0 {
				t.Errorf("failed validation mutated state: count=%d saves=%d", r.Count(), repo.saves)
			}
		})
	}
}

func TestRegistry_SaveFailureKeepsMemory(t *testing.T) {
	repo := NewMockRepository()
	repo.saveErr = errors.New("quota exceeded")
	r := newTestRegistry(t, repo)

	d, err := r.Add(context.Background(), validDevice("Kept", 2010))
	if err != nil {
		t.Fatalf("Add() error = %v, want nil when only the save fails", err)
	}
	if _, err := r.Get(d.ID); err != nil {
		t.Errorf("Get() after failed save error = %v", err)
	}
}

func TestRegistry_GetReturnsCopy(t *testing.T) {
	r := newTestRegistry(t, NewMockRepository())
	d, err := r.Add(context.Background(), Device{Name: "A", Category: CategoryAudio, StartYear: 2001, EndYear: year(2003)})
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	got, _ := r.Get(d.ID)
	got.Name = "mutated"
	*got.EndYear = 1900

	again, _ := r.Get(d.ID)
	if again.Name != "A" || *again.EndYear != 2003 {
		t.Errorf("registry state changed through a returned copy: %+v", again)
	}

	if _, err := r.Get("missing"); !errors.Is(err, ErrDeviceNotFound) {
		t.Errorf("Get(missing) error = %v, want ErrDeviceNotFound", err)
	}
}

func TestRegistry_Update(t *testing.T) {
	ctx := context.Background()
	r := newTestRegistry(t, NewMockRepository())
	d, _ := r.Add(ctx, validDevice("Old", 2010))

	d.Name = "New"
	d.EndYear = year(2015)
	updated, err := r.Update(ctx, *d)
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated.ID != d.ID || updated.Name != "New" || updated.Period() != "2010 - 2015" {
		t.Errorf("Update() = %+v", updated)
	}

	t.Run("unknown id", func(t *testing.T) {
		if _, err := r.Update(ctx, Device{ID: "nope", Name: "X", Category: CategoryOther, StartYear: 2000}); !errors.Is(err, ErrDeviceNotFound) {
			t.Errorf("Update() error = %v, want ErrDeviceNotFound", err)
		}
	})

	t.Run("invalid leaves state", func(t *testing.T) {
		bad := *updated
		bad.StartYear = 1950
		if _, err := r.Update(ctx, bad); !errors.Is(err, ErrInvalidYear) {
			t.Fatalf("Update() error = %v, want ErrInvalidYear", err)
		}
		got, _ := r.Get(d.ID)
		if got.StartYear != 2010 {
			t.Errorf("StartYear = %d after rejected update, want 2010", got.StartYear)
		}
	})
}

func TestRegistry_Delete(t *testing.T) {
	ctx := context.Background()
	r := newTestRegistry(t, NewMockRepository())
	a, _ := r.Add(ctx, validDevice("A", 2001))
	b, _ := r.Add(ctx, validDevice("B", 2002))

	if err := r.Delete(ctx, a.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if list := r.List(); len(list) != 1 || list[0].ID != b.ID {
		t.Errorf("List() after delete = %+v", list)
	}
	if err := r.Delete(ctx, a.ID); !errors.Is(err, ErrDeviceNotFound) {
		t.Errorf("second Delete() error = %v, want ErrDeviceNotFound", err)
	}
}

func TestRegistry_ImportAssignsFreshIDs(t *testing.T) {
	ctx := context.Background()
	repo := NewMockRepository()
	r := newTestRegistry(t, repo)
	existing, _ := r.Add(ctx, validDevice("Existing", 2000))

	snapshot, err := r.Import(ctx, []Device{
		{ID: existing.ID, Name: "Dup", Category: CategoryOther, StartYear: 1990},
		{Name: "Fresh", Category: CategoryCamera, StartYear: 2005},
	})
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}
	if len(snapshot) != 3 {
		t.Fatalf("Import() snapshot len = %d, want 3", len(snapshot))
	}

	seen := map[string]bool{}
	for _, d := range snapshot {
		if d.ID == "" || seen[d.ID] {
			t.Errorf("duplicate or empty ID %q in %+v", d.ID, snapshot)
		}
		seen[d.ID] = true
	}
	if len(repo.snapshot()) != 3 {
		t.Errorf("repository not saved after import")
	}
}

func TestRegistry_Reset(t *testing.T) {
	ctx := context.Background()
	repo := NewMockRepository()
	r := newTestRegistry(t, repo)
	events := &eventRecorder{}
	r.SetNotifier(events)
	_, _ = r.Add(ctx, validDevice("A", 2001))

	if err := r.Reset(ctx); err != nil {
		t.Fatalf("Reset() error = %v", err)
	}
	if r.Count() != 0 || repo.cleared != 1 {
		t.Errorf("Reset() count=%d cleared=%d", r.Count(), repo.cleared)
	}
	if ev := events.last(); ev.Action != ActionReset || ev.Count != 0 {
		t.Errorf("event = %+v", ev)
	}
}

func TestRegistry_AddFromLookup(t *testing.T) {
	r := newTestRegistry(t, NewMockRepository())

	d, err := r.AddFromLookup(context.Background(), LookupResult{
		Title:       "Game Boy",
		Description: "Handheld console",
		ImageURL:    "https://img/primary.jpg",
		Category:    CategoryGaming,
	}, "https://img/alt.jpg")
	if err != nil {
		t.Fatalf("AddFromLookup() error = %v", err)
	}
	if d.StartYear != fixedNow.Year() {
		t.Errorf("StartYear = %d, want current year %d", d.StartYear, fixedNow.Year())
	}
	if d.ImageURL != "https://img/alt.jpg" || d.EndYear != nil || d.Notes != "" {
		t.Errorf("AddFromLookup() = %+v", d)
	}
}

func TestRegistry_ConcurrentAdds(t *testing.T) {
	r := newTestRegistry(t, NewMockRepository())

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = r.Add(context.Background(), validDevice("Concurrent", 2015))
		}()
	}
	wg.Wait()

	if r.Count() != 20 {
		t.Errorf("Count() = %d, want 20", r.Count())
	}
}
