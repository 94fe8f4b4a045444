package export

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/nerrad567/device-timeline/internal/device"
)

// Accent is the gradient pair of a card.
type Accent struct {
	From string
	To   string
}

// palette is the fixed set of card gradients.
var palette = [...]Accent{
	{"#ffb347", "#ffcc33"},
	{"#6dd5ed", "#2193b0"},
	{"#f7971e", "#ffd200"},
	{"#f953c6", "#b91d73"},
	{"#43cea2", "#185a9d"},
	{"#ff6e7f", "#bfe9ff"},
	{"#f7797d", "#FBD786"},
	{"#c471f5", "#fa71cd"},
	{"#30cfd0", "#330867"},
	{"#f857a6", "#ff5858"},
}

// AccentColors picks a palette entry from the device's start year and name.
// The same device always gets the same pair.
func AccentColors(d device.Device) Accent {
	seed := fmt.Sprint(d.StartYear) + d.Name
	h := 0
	for _, r := range seed {
		h = (h*31 + int(r)) % len(palette)
	}
	return palette[h]
}

// hexColor parses "#rrggbb" (case-insensitive). Malformed input yields black.
func hexColor(s string) color.RGBA {
	s = strings.TrimPrefix(s, "#")
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil || len(s) != 6 {
		return color.RGBA{A: 0xff}
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}
}
