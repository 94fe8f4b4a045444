package export

import (
	"bytes"
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/fogleman/gg"

	"github.com/nerrad567/device-timeline/internal/device"
	"github.com/nerrad567/device-timeline/internal/timeline"
)

// Decoration constants for the image export.
const (
	backgroundTop    = "#2c3e50"
	backgroundBottom = "#3498db"
	cableFrom        = "#4facfe"
	cableTo          = "#00f2fe"
	sparkleCount     = 60
)

// RenderImage draws the collection as a PNG grid of cards.
//
// Devices are ordered chronologically (Options.ImageOrder). Unloadable
// images leave a blank slot. Zero devices give a background-only canvas.
func (r *Renderer) RenderImage(ctx context.Context, devices []device.Device) (out []byte, err error) {
	start := time.Now()
	defer func() { r.recorder.ObserveExport(FormatImage, len(devices), time.Since(start), err) }()

	ordered := timeline.Sorted(devices, r.opts.ImageOrder)

	images, err := r.prefetchImages(ctx, ordered)
	if err != nil {
		return nil, err
	}

	faces, err := newFaceCache()
	if err != nil {
		return nil, err
	}

	layout := ComputeGridLayout(len(ordered))
	dc := gg.NewContext(layout.Width, layout.Height)

	paintBackground(dc, layout, int64(len(ordered)))
	for _, c := range layout.Connectors {
		paintCable(dc, c)
	}
	for i, slot := range layout.Cards {
		paintCard(dc, faces, slot, ordered[i], images[i], gridCardStyle)
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encoding image: %w", err)
	}
	r.logger.Debug("image export rendered", "devices", len(ordered), "width", layout.Width, "height", layout.Height)
	return buf.Bytes(), nil
}

func paintBackground(dc *gg.Context, layout GridLayout, seed int64) {
	w, h := float64(layout.Width), float64(layout.Height)

	grad := gg.NewLinearGradient(0, 0, w, h)
	grad.AddColorStop(0, hexColor(backgroundTop))
	grad.AddColorStop(1, hexColor(backgroundBottom))
	dc.SetFillStyle(grad)
	dc.DrawRectangle(0, 0, w, h)
	dc.Fill()

	// Sparkles are seeded so the same collection renders identically.
	rng := rand.New(rand.NewSource(seed*7919 + 1)) //nolint:gosec // Decoration only
	for i := 0; i < sparkleCount; i++ {
		x, y := rng.Float64()*w, rng.Float64()*h
		radius := 0.6 + rng.Float64()*1.8
		dc.SetRGBA(1, 1, 1, 0.15+rng.Float64()*0.45)
		dc.DrawCircle(x, y, radius)
		dc.Fill()
	}
}

func paintCable(dc *gg.Context, c Connector) {
	// Glow underneath.
	dc.SetRGBA(1, 1, 1, 0.35)
	dc.SetLineWidth(10)
	dc.SetLineCapRound()
	dc.DrawLine(c.From.X, c.From.Y, c.To.X, c.To.Y)
	dc.Stroke()

	grad := gg.NewLinearGradient(c.From.X, c.From.Y, c.To.X, c.To.Y)
	grad.AddColorStop(0, hexColor(cableFrom))
	grad.AddColorStop(1, hexColor(cableTo))
	dc.SetStrokeStyle(grad)
	dc.SetLineWidth(4)
	dc.DrawLine(c.From.X, c.From.Y, c.To.X, c.To.Y)
	dc.Stroke()

	dc.SetRGB(1, 1, 1)
	for _, p := range []Point{c.From, c.To} {
		dc.DrawCircle(p.X, p.Y, 4)
		dc.Fill()
	}
}
