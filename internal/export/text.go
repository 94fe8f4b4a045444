package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/nerrad567/device-timeline/internal/device"
	"github.com/nerrad567/device-timeline/internal/timeline"
)

const (
	shareIntro = "📱 My Technology Journey 💻\n\n"
	shareOutro = "#TechJourney #Technology #ProfessionalDevelopment"
)

// FormatShareText renders the collection as social-media text, oldest year
// first. Within a year devices keep their input order.
func FormatShareText(devices []device.Device) string {
	return formatShareText(devices, timeline.Ascending)
}

// RenderText is FormatShareText in the configured text order.
func (r *Renderer) RenderText(devices []device.Device) string {
	start := time.Now()
	out := formatShareText(devices, r.opts.TextOrder)
	r.recorder.ObserveExport(FormatText, len(devices), time.Since(start), nil)
	return out
}

func formatShareText(devices []device.Device, dir timeline.Direction) string {
	var b strings.Builder
	b.WriteString(shareIntro)

	for _, g := range timeline.Project(devices, dir) {
		fmt.Fprintf(&b, "📅 %d\n", g.Year)
		for _, e := range g.Entries {
			fmt.Fprintf(&b, "🔹 %s\n", e.Device.Name)
			if e.Device.Notes != "" {
				fmt.Fprintf(&b, "   %s\n", e.Device.Notes)
			}
		}
		b.WriteString("\n")
	}

	b.WriteString(shareOutro)
	return b.String()
}
