package device

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Validation constants.
const (
	// MinYear is the earliest accepted start year.
	MinYear = 1970

	// maxNameLength is the maximum length of a device name in characters.
	maxNameLength = 200
)

// stockImageBase is the host for the per-category fallback images.
const stockImageBase = "https://images.pexels.com/photos/"

var fallbackImages = map[Category]string{
	CategorySmartphone: "47261/pexels-photo-47261.jpeg",
	CategoryLaptop:     "18105/pexels-photo.jpg",
	CategoryDesktop:    "1779487/pexels-photo-1779487.jpeg",
	CategoryTablet:     "1334597/pexels-photo-1334597.jpeg",
	CategorySmartwatch: "437037/pexels-photo-437037.jpeg",
	CategoryGaming:     "275033/pexels-photo-275033.jpeg",
	CategoryAudio:      "3394650/pexels-photo-3394650.jpeg",
	CategoryCamera:     "51383/photo-camera-subject-photographer-51383.jpeg",
}

const defaultFallbackImage = "1476321/pexels-photo-1476321.jpeg"

// ValidateDevice checks a device against the model rules.
// now supplies the current year so the check is deterministic.
//
// Returns an error wrapping ErrInvalidName, ErrInvalidCategory,
// ErrInvalidYear or ErrInvalidPeriod; all of them match ErrInvalidDevice.
func ValidateDevice(d *Device, now time.Time) error {
	if d == nil {
		return fmt.Errorf("%w: device is nil", ErrInvalidDevice)
	}
	if err := ValidateName(d.Name); err != nil {
		return err
	}
	if err := ValidateCategory(d.Category); err != nil {
		return err
	}
	if d.StartYear < MinYear || d.StartYear > now.Year() {
		return fmt.Errorf("%w: start year %d must be between %d and %d",
			ErrInvalidYear, d.StartYear, MinYear, now.Year())
	}
	if d.EndYear != nil && *d.EndYear < d.StartYear {
		return fmt.Errorf("%w: end year %d is before start year %d",
			ErrInvalidPeriod, *d.EndYear, d.StartYear)
	}
	return nil
}

// ValidateName checks that a name is non-blank and not too long.
func ValidateName(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidName)
	}
	if utf8.RuneCountInString(trimmed) > maxNameLength {
		return fmt.Errorf("%w: name exceeds %d characters", ErrInvalidName, maxNameLength)
	}
	return nil
}

// ValidateCategory checks that c is in the closed category set.
func ValidateCategory(c Category) error {
	if !c.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidCategory, c)
	}
	return nil
}

// GenerateID creates a new unique device ID.
func GenerateID() string {
	return uuid.NewString()
}

// FallbackImageURL returns the stock image used when a lookup result has none.
func FallbackImageURL(c Category) string {
	if p, ok := fallbackImages[c]; ok {
		return stockImageBase + p
	}
	return stockImageBase + defaultFallbackImage
}

// NewFromLookup builds a device from a lookup result.
//
// The start year is the detected release year, or now's year when none was
// found. imageURL selects one of the result's candidate images; empty means
// the primary one. The returned device has no ID yet.
func NewFromLookup(r LookupResult, imageURL string, now time.Time) Device {
	category := r.Category
	if !category.Valid() {
		category = CategoryOther
	}

	start := now.Year()
	if r.ReleaseYear != nil {
		start = *r.ReleaseYear
	}

	img := imageURL
	if img == "" {
		img = r.ImageURL
	}
	if img == "" {
		img = FallbackImageURL(category)
	}

	return Device{
		Name:        strings.TrimSpace(r.Title),
		Category:    category,
		StartYear:   start,
		ImageURL:    img,
		Description: r.Description,
		WikiURL:     r.WikiURL,
	}
}
