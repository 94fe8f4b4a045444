package timeline

import (
	"fmt"
	"sort"

	"github.com/nerrad567/device-timeline/internal/device"
)

// Direction is the chronological order of year groups.
type Direction int

// Directions.
const (
	Ascending Direction = iota
	Descending
)

// ParseDirection maps "asc"/"ascending" and "desc"/"descending" to a Direction.
// ok is false for anything else.
func ParseDirection(s string) (dir Direction, ok bool) {
	switch s {
	case "asc", "ascending":
		return Ascending, true
	case "desc", "descending":
		return Descending, true
	default:
		return Ascending, false
	}
}

func (d Direction) String() string {
	if d == Descending {
		return "descending"
	}
	return "ascending"
}

// Side is the placement of an entry on the timeline.
type Side int

// Sides alternate with the flattened index.
const (
	Left Side = iota
	Right
)

func (s Side) String() string {
	if s == Right {
		return "right"
	}
	return "left"
}

// MarshalText renders the side as "left" or "right".
func (s Side) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Entry is one device placed on the timeline.
// Index is the position in the flattened sequence.
type Entry struct {
	Device device.Device `json:"device"`
	Index  int           `json:"index"`
	Side   Side          `json:"side"`
}

// YearGroup holds the entries that started in Year.
type YearGroup struct {
	Year    int     `json:"year"`
	Entries []Entry `json:"entries"`
}

// Project groups devices by start year and orders the groups by dir.
// Devices within a group keep their input order.
func Project(devices []device.Device, dir Direction) []YearGroup {
	byYear := make(map[int][]device.Device)
	years := make([]int, 0)
	for _, d := range devices {
		if _, seen := byYear[d.StartYear]; !seen {
			years = append(years, d.StartYear)
		}
		byYear[d.StartYear] = append(byYear[d.StartYear], d)
	}

	sort.Ints(years)
	if dir == Descending {
		sort.Sort(sort.Reverse(sort.IntSlice(years)))
	}

	groups := make([]YearGroup, 0, len(years))
	k := 0
	for _, y := range years {
		g := YearGroup{Year: y, Entries: make([]Entry, 0, len(byYear[y]))}
		for _, d := range byYear[y] {
			g.Entries = append(g.Entries, Entry{Device: d, Index: k, Side: Side(k % 2)})
			k++
		}
		groups = append(groups, g)
	}
	return groups
}

// Flatten returns the entries of groups in order.
func Flatten(groups []YearGroup) []Entry {
	var n int
	for _, g := range groups {
		n += len(g.Entries)
	}
	out := make([]Entry, 0, n)
	for _, g := range groups {
		out = append(out, g.Entries...)
	}
	return out
}

// Sorted returns a copy of devices stably sorted by start year.
func Sorted(devices []device.Device, dir Direction) []device.Device {
	out := make([]device.Device, len(devices))
	copy(out, devices)
	sort.SliceStable(out, func(i, j int) bool {
		if dir == Descending {
			return out[i].StartYear > out[j].StartYear
		}
		return out[i].StartYear < out[j].StartYear
	})
	return out
}

// Stats summarizes a collection.
type Stats struct {
	Total      int                     `json:"total"`
	FirstYear  int                     `json:"firstYear,omitempty"`
	LatestYear int                     `json:"latestYear,omitempty"`
	InUse      int                     `json:"inUse"`
	ByCategory map[device.Category]int `json:"byCategory"`
}

// Summary computes Stats over devices. Years are zero for an empty input.
func Summary(devices []device.Device) Stats {
	s := Stats{Total: len(devices), ByCategory: make(map[device.Category]int)}
	for i, d := range devices {
		if i == 0 || d.StartYear < s.FirstYear {
			s.FirstYear = d.StartYear
		}
		if i == 0 || d.StartYear > s.LatestYear {
			s.LatestYear = d.StartYear
		}
		if d.InUse() {
			s.InUse++
		}
		s.ByCategory[d.Category]++
	}
	return s
}

// CountLabel renders the collection size as shown in the header.
func CountLabel(n int) string {
	if n == 1 {
		return "1 Device in your Timeline"
	}
	return fmt.Sprintf("%d Devices in your Timeline", n)
}
