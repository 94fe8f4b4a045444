package device

import "fmt"

// Device is one entry on the user's timeline.
// The JSON form is also the persisted and import/export form.
type Device struct {
	// Identity
	ID   string `json:"id"`
	Name string `json:"name"`

	Category Category `json:"category"`

	// Usage period. A nil EndYear means the device is still in use.
	StartYear int  `json:"startYear"`
	EndYear   *int `json:"endYear"`

	// Presentation
	ImageURL    string `json:"imageUrl"`
	Description string `json:"description"`
	Notes       string `json:"notes"`
	WikiURL     string `json:"wikiUrl"`
}

// DeepCopy creates an independent copy of the Device.
// EndYear is re-allocated so the copy never aliases the original.
func (d *Device) DeepCopy() *Device {
	if d == nil {
		return nil
	}
	cp := *d
	if d.EndYear != nil {
		end := *d.EndYear
		cp.EndYear = &end
	}
	return &cp
}

// InUse reports whether the device has no end year.
func (d *Device) InUse() bool {
	return d.EndYear == nil
}

// Period renders the usage range, e.g. "2000 - 2003" or "2020 - ongoing".
func (d *Device) Period() string {
	if d.EndYear == nil {
		return fmt.Sprintf("%d - ongoing", d.StartYear)
	}
	return fmt.Sprintf("%d - %d", d.StartYear, *d.EndYear)
}

// Category classifies a device. The set is closed.
type Category string

// Category constants, in display order.
const (
	CategorySmartphone Category = "smartphone"
	CategoryLaptop     Category = "laptop"
	CategoryDesktop    Category = "desktop"
	CategoryTablet     Category = "tablet"
	CategorySmartwatch Category = "smartwatch"
	CategoryGaming     Category = "gaming"
	CategoryAudio      Category = "audio"
	CategoryCamera     Category = "camera"
	CategoryOther      Category = "other"
)

var categoryLabels = map[Category]string{
	CategorySmartphone: "Smartphone",
	CategoryLaptop:     "Laptop",
	CategoryDesktop:    "Desktop",
	CategoryTablet:     "Tablet",
	CategorySmartwatch: "Smartwatch",
	CategoryGaming:     "Gaming",
	CategoryAudio:      "Audio",
	CategoryCamera:     "Camera",
	CategoryOther:      "Other",
}

// Categories returns all valid categories in declaration order.
func Categories() []Category {
	return []Category{
		CategorySmartphone,
		CategoryLaptop,
		CategoryDesktop,
		CategoryTablet,
		CategorySmartwatch,
		CategoryGaming,
		CategoryAudio,
		CategoryCamera,
		CategoryOther,
	}
}

// Label returns the display label, or the raw value for unknown categories.
func (c Category) Label() string {
	if l, ok := categoryLabels[c]; ok {
		return l
	}
	return string(c)
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	_, ok := categoryLabels[c]
	return ok
}

// LookupResult is a candidate device returned by the encyclopedia lookup.
// It is read-only input to NewFromLookup.
type LookupResult struct {
	Title            string   `json:"title"`
	Description      string   `json:"description"`
	ImageURL         string   `json:"imageUrl"`
	AdditionalImages []string `json:"additionalImages,omitempty"`
	WikiURL          string   `json:"wikiUrl"`
	ReleaseYear      *int     `json:"releaseYear"`
	Category         Category `json:"category"`
}

// ChangeAction names the kind of mutation in a ChangeEvent.
type ChangeAction string

// Change actions emitted by the Registry.
const (
	ActionAdded    ChangeAction = "added"
	ActionUpdated  ChangeAction = "updated"
	ActionDeleted  ChangeAction = "deleted"
	ActionImported ChangeAction = "imported"
	ActionReset    ChangeAction = "reset"
)

// ChangeEvent describes a committed mutation of the collection.
// DeviceID is empty for bulk actions.
type ChangeEvent struct {
	Action   ChangeAction `json:"action"`
	DeviceID string       `json:"deviceId,omitempty"`
	Count    int          `json:"count"`
}
