package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/nerrad567/device-timeline/internal/device"
	"github.com/nerrad567/device-timeline/internal/export"
)

// ChannelExportProgress carries {format, percent} while a document renders.
const ChannelExportProgress = "export.progress"

// artifact describes how one export format is served.
type artifact struct {
	filename    string
	contentType string
}

var artifacts = map[export.Format]artifact{
	export.FormatJSON:        {"device-timeline.json", "application/json"},
	export.FormatText:        {"tech-journey.txt", "text/plain; charset=utf-8"},
	export.FormatImage:       {"device-timeline.png", "image/png"},
	export.FormatDocument:    {"device-timeline.pdf", "application/pdf"},
	export.FormatSpreadsheet: {"device-timeline.xlsx", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"},
}

// ExportProgress is broadcast on ChannelExportProgress.
type ExportProgress struct {
	Format  export.Format `json:"format"`
	Percent float64       `json:"percent"`
}

// handleExport renders the current collection in the format named by the
// path and serves it as an attachment.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	format := export.Format(chi.URLParam(r, "format"))
	art, ok := artifacts[format]
	if !ok {
		writeNotFound(w, fmt.Sprintf("unknown export format %q", format))
		return
	}

	devices := s.registry.List()
	ctx := r.Context()

	var (
		body []byte
		err  error
	)
	switch format {
	case export.FormatJSON:
		start := time.Now()
		body, err = device.ExportJSON(devices)
		s.renderer.Observe(export.FormatJSON, len(devices), start, err)
	case export.FormatText:
		body = []byte(s.renderer.RenderText(devices))
	case export.FormatImage:
		if len(devices) == 0 {
			writeError(w, http.StatusConflict, ErrCodeConflict, "add devices before exporting an image")
			return
		}
		body, err = s.renderer.RenderImage(ctx, devices)
	case export.FormatDocument:
		if len(devices) == 0 {
			writeError(w, http.StatusConflict, ErrCodeConflict, "add devices before exporting a document")
			return
		}
		body, err = s.renderer.RenderDocument(ctx, devices, func(percent float64) {
			s.hub.Broadcast(ChannelExportProgress, ExportProgress{Format: format, Percent: percent})
		})
	case export.FormatSpreadsheet:
		body, err = s.renderer.RenderSpreadsheet(devices)
	}

	if err != nil {
		if errors.Is(err, export.ErrNoDevices) {
			writeError(w, http.StatusConflict, ErrCodeConflict, err.Error())
			return
		}
		if ctx.Err() != nil {
			s.logger.Debug("export abandoned by client", "format", string(format))
			return
		}
		s.logger.Error("export failed", "format", string(format), "error", err)
		writeInternalError(w, "export failed")
		return
	}

	w.Header().Set("Content-Type", art.contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", art.filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.WriteHeader(http.StatusOK)
	//nolint:errcheck // Best-effort write to response; connection may be closed
	w.Write(body)
}
