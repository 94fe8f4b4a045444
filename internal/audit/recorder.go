package audit

import (
	"context"
	"time"

	"github.com/nerrad567/device-timeline/internal/device"
)

// Logger defines the logging interface used by the Recorder.
type Logger interface {
	Error(msg string, args ...any)
}

type noopLogger struct{}

func (noopLogger) Error(string, ...any) {}

// Recorder appends one AuditLog per collection change.
type Recorder struct {
	repo   Repository
	logger Logger
	now    func() time.Time
}

// NewRecorder creates a Recorder writing to repo.
func NewRecorder(repo Repository) *Recorder {
	return &Recorder{repo: repo, logger: noopLogger{}, now: time.Now}
}

// SetLogger sets the logger for insert failures.
func (r *Recorder) SetLogger(logger Logger) {
	r.logger = logger
}

// CollectionChanged implements device.Notifier.
func (r *Recorder) CollectionChanged(ctx context.Context, ev device.ChangeEvent) {
	entry := &AuditLog{
		Action:    string(ev.Action),
		DeviceID:  ev.DeviceID,
		Count:     ev.Count,
		CreatedAt: r.now().UTC(),
	}
	if err := r.repo.Create(ctx, entry); err != nil {
		r.logger.Error("recording collection change failed", "action", entry.Action, "error", err)
	}
}
