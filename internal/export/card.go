package export

import (
	"image"
	"strconv"
	"strings"

	"github.com/fogleman/gg"

	"github.com/nerrad567/device-timeline/internal/device"
)

// cardStyle holds the size-dependent parameters of the card painter.
type cardStyle struct {
	Radius         float64
	Border         float64
	Padding        float64
	TitleBand      float64
	WatermarkSize  float64
	NameSize       float64
	PeriodSize     float64
	NotesSize      float64
	NotesLines     int
	ImageWithNotes float64
	// ImageNoNotes of zero lets the image box fill the remaining height.
	ImageNoNotes float64
	Shadow       bool
}

// gridCardStyle is used for the 220x280 cards of the image export.
var gridCardStyle = cardStyle{
	Radius:         16,
	Border:         4,
	Padding:        13,
	TitleBand:      60,
	WatermarkSize:  48,
	NameSize:       16,
	PeriodSize:     12,
	NotesSize:      12,
	NotesLines:     4,
	ImageWithNotes: 100,
	Shadow:         true,
}

// pageCardStyle is used for the 900x1000 card of a document page.
var pageCardStyle = cardStyle{
	Radius:         40,
	Border:         4,
	Padding:        54,
	TitleBand:      200,
	WatermarkSize:  140,
	NameSize:       42,
	PeriodSize:     28,
	NotesSize:      28,
	NotesLines:     5,
	ImageWithNotes: 450,
	ImageNoNotes:   650,
}

// paintCard draws one device card into r. A nil img leaves a blank slot.
func paintCard(dc *gg.Context, faces *faceCache, r Rect, d device.Device, img image.Image, st cardStyle) {
	accent := AccentColors(d)

	if st.Shadow {
		dc.SetRGBA(0, 0, 0, 0.25)
		dc.DrawRoundedRectangle(r.X+4, r.Y+6, r.W, r.H, st.Radius)
		dc.Fill()
	}

	grad := gg.NewLinearGradient(r.X, r.Y, r.X+r.W, r.Y+r.H)
	grad.AddColorStop(0, hexColor(accent.From))
	grad.AddColorStop(1, hexColor(accent.To))
	dc.SetFillStyle(grad)
	dc.DrawRoundedRectangle(r.X, r.Y, r.W, r.H, st.Radius)
	dc.Fill()

	dc.SetRGB(1, 1, 1)
	dc.SetLineWidth(st.Border)
	dc.DrawRoundedRectangle(r.X, r.Y, r.W, r.H, st.Radius)
	dc.Stroke()

	cx := r.X + r.W/2
	inner := r.W - 2*st.Padding

	// Title band: faint year behind the name.
	dc.SetFontFace(faces.face(true, st.WatermarkSize))
	dc.SetRGBA(1, 1, 1, 0.22)
	dc.DrawStringAnchored(strconv.Itoa(d.StartYear), cx, r.Y+st.TitleBand/2, 0.5, 0.5)

	dc.SetFontFace(faces.face(true, st.NameSize))
	dc.SetRGB(1, 1, 1)
	name := fitLines(dc, d.Name, inner, 2)
	dc.DrawStringWrapped(strings.Join(name, "\n"), cx, r.Y+st.TitleBand/2, 0.5, 0.5, inner, 1.1, gg.AlignCenter)

	dc.SetFontFace(faces.face(false, st.PeriodSize))
	dc.SetRGBA(1, 1, 1, 0.9)
	periodY := r.Y + st.TitleBand + st.PeriodSize*0.6
	dc.DrawStringAnchored(d.Period(), cx, periodY, 0.5, 0.5)

	imageTop := r.Y + st.TitleBand + st.PeriodSize*1.6
	bottom := r.Y + r.H - st.Padding
	hasNotes := d.Notes != ""

	imageH := bottom - imageTop
	switch {
	case hasNotes:
		imageH = st.ImageWithNotes
	case st.ImageNoNotes > 0:
		imageH = min(st.ImageNoNotes, imageH)
	}
	box := Rect{X: r.X + st.Padding, Y: imageTop, W: inner, H: imageH}
	drawImageBox(dc, box, img, st.Radius/2)

	if !hasNotes {
		return
	}

	notesTop := box.Y + box.H + st.Padding*0.6
	notes := Rect{X: box.X, Y: notesTop, W: inner, H: bottom - notesTop}
	if notes.H <= 0 {
		return
	}
	dc.SetRGBA(1, 1, 1, 0.7)
	dc.DrawRoundedRectangle(notes.X, notes.Y, notes.W, notes.H, st.Radius/2)
	dc.Fill()

	dc.SetFontFace(faces.face(false, st.NotesSize))
	dc.SetHexColor("#2c3e50")
	textW := notes.W - st.Padding
	lines := fitLines(dc, d.Notes, textW, st.NotesLines)
	dc.DrawStringWrapped(strings.Join(lines, "\n"), notes.X+notes.W/2, notes.Y+notes.H/2, 0.5, 0.5, textW, 1.25, gg.AlignCenter)
}

// drawImageBox fills box with a light panel and fits img inside it.
func drawImageBox(dc *gg.Context, box Rect, img image.Image, radius float64) {
	dc.SetRGBA(1, 1, 1, 0.85)
	dc.DrawRoundedRectangle(box.X, box.Y, box.W, box.H, radius)
	dc.Fill()

	if img == nil {
		return
	}
	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return
	}

	scale := min(box.W/float64(b.Dx()), box.H/float64(b.Dy()))
	w, h := float64(b.Dx())*scale, float64(b.Dy())*scale

	dc.Push()
	dc.DrawRoundedRectangle(box.X, box.Y, box.W, box.H, radius)
	dc.Clip()
	dc.Translate(box.X+(box.W-w)/2, box.Y+(box.H-h)/2)
	dc.Scale(scale, scale)
	dc.DrawImage(img, -b.Min.X, -b.Min.Y)
	dc.Pop()
}

// fitLines wraps s to width and keeps at most maxLines, ellipsizing the last
// kept line when text was dropped.
func fitLines(dc *gg.Context, s string, width float64, maxLines int) []string {
	lines := dc.WordWrap(s, width)
	if len(lines) <= maxLines {
		return lines
	}
	lines = lines[:maxLines]
	last := []rune(lines[maxLines-1])
	for len(last) > 0 {
		if w, _ := dc.MeasureString(string(last) + "…"); w <= width {
			break
		}
		last = last[:len(last)-1]
	}
	lines[maxLines-1] = string(last) + "…"
	return lines
}
