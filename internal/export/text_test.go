package export

import (
	"strings"
	"testing"

	"github.com/nerrad567/device-timeline/internal/device"
	"github.com/nerrad567/device-timeline/internal/timeline"
)

func TestFormatShareText(t *testing.T) {
	end := 2003
	devices := []device.Device{
		{Name: "iPhone 13", Category: device.CategorySmartphone, StartYear: 2021},
		{Name: "Nokia 3310", Category: device.CategorySmartphone, StartYear: 2000, EndYear: &end, Notes: "Indestructible"},
		{Name: "Switch", Category: device.CategoryGaming, StartYear: 2021, Notes: "Portable"},
	}

	want := "📱 My Technology Journey 💻\n\n" +
		"📅 2000\n" +
		"🔹 Nokia 3310\n" +
		"   Indestructible\n" +
		"\n" +
		"📅 2021\n" +
		"🔹 iPhone 13\n" +
		"🔹 Switch\n" +
		"   Portable\n" +
		"\n" +
		"#TechJourney #Technology #ProfessionalDevelopment"

	if got := FormatShareText(devices); got != want {
		t.Errorf("FormatShareText() =\n%q\nwant\n%q", got, want)
	}
}

func TestFormatShareText_Empty(t *testing.T) {
	want := "📱 My Technology Journey 💻\n\n#TechJourney #Technology #ProfessionalDevelopment"
	if got := FormatShareText(nil); got != want {
		t.Errorf("FormatShareText(nil) = %q, want %q", got, want)
	}
}

func TestFormatShareText_NoEndYearLine(t *testing.T) {
	end := 2015
	got := FormatShareText([]device.Device{{Name: "X", Category: device.CategoryOther, StartYear: 2010, EndYear: &end}})
	if strings.Contains(got, "2015") {
		t.Errorf("end year should not be printed: %q", got)
	}
}

func TestRenderText_ConfiguredOrder(t *testing.T) {
	devices := []device.Device{
		{Name: "Old", Category: device.CategoryOther, StartYear: 1999},
		{Name: "New", Category: device.CategoryOther, StartYear: 2020},
	}

	opts := DefaultOptions()
	opts.TextOrder = timeline.Descending
	r, rec := newTestRenderer(nil)
	r.opts = opts

	got := r.RenderText(devices)
	if strings.Index(got, "New") > strings.Index(got, "Old") {
		t.Errorf("descending text should list 2020 first:\n%s", got)
	}
	if len(rec.seen) != 1 || rec.seen[0].format != FormatText {
		t.Errorf("recorder calls = %+v", rec.seen)
	}
}
