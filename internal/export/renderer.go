package export

import (
	"time"

	"github.com/nerrad567/device-timeline/internal/timeline"
)

// Logger defines the logging interface used by the Renderer.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

// Format names an export format.
type Format string

// Export formats.
const (
	FormatJSON        Format = "json"
	FormatText        Format = "text"
	FormatImage       Format = "image"
	FormatDocument    Format = "document"
	FormatSpreadsheet Format = "spreadsheet"
)

// Formats returns every export format.
func Formats() []Format {
	return []Format{FormatJSON, FormatText, FormatImage, FormatDocument, FormatSpreadsheet}
}

// ProgressFunc receives document progress as a percentage in (0, 100].
type ProgressFunc func(percent float64)

// Recorder observes finished exports (metrics, telemetry).
type Recorder interface {
	ObserveExport(format Format, devices int, elapsed time.Duration, err error)
}

// Recorders fans one observation out to several recorders. Nil entries are skipped.
func Recorders(rs ...Recorder) Recorder {
	return multiRecorder(rs)
}

type multiRecorder []Recorder

func (m multiRecorder) ObserveExport(format Format, devices int, elapsed time.Duration, err error) {
	for _, r := range m {
		if r != nil {
			r.ObserveExport(format, devices, elapsed, err)
		}
	}
}

// Options configures a Renderer.
type Options struct {
	TextOrder        timeline.Direction
	ImageOrder       timeline.Direction
	DocumentOrder    timeline.Direction
	SpreadsheetOrder timeline.Direction

	// ImageConcurrency bounds parallel image downloads per export.
	ImageConcurrency int

	// QRCodes adds a QR code of the wiki link to document pages.
	QRCodes bool
}

// DefaultOptions returns ascending orders, four downloads and QR codes on.
func DefaultOptions() Options {
	return Options{
		TextOrder:        timeline.Ascending,
		ImageOrder:       timeline.Ascending,
		DocumentOrder:    timeline.Ascending,
		SpreadsheetOrder: timeline.Ascending,
		ImageConcurrency: 4,
		QRCodes:          true,
	}
}

// Renderer produces image, document and spreadsheet exports.
type Renderer struct {
	opts     Options
	images   ImageLoader
	logger   Logger
	recorder Recorder
}

// NewRenderer creates a renderer. A nil loader renders every image slot blank.
func NewRenderer(opts Options, loader ImageLoader) *Renderer {
	return &Renderer{
		opts:     opts,
		images:   loader,
		logger:   noopLogger{},
		recorder: multiRecorder(nil),
	}
}

// SetLogger sets the logger for the renderer.
func (r *Renderer) SetLogger(logger Logger) {
	r.logger = logger
}

// SetRecorder sets the observer of finished exports.
func (r *Renderer) SetRecorder(rec Recorder) {
	if rec == nil {
		rec = multiRecorder(nil)
	}
	r.recorder = rec
}

// Observe reports a finished export to the recorder. The API calls it for
// formats rendered outside the Renderer (JSON).
func (r *Renderer) Observe(format Format, devices int, start time.Time, err error) {
	r.recorder.ObserveExport(format, devices, time.Since(start), err)
}
