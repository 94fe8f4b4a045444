package device

import (
	"fmt"
	"strings"

	jsoniter "github.com/json-iterator/go"
)

// importRecord mirrors Device with pointers so absent fields can be told
// apart from zero values. Foreign IDs are not read.
type importRecord struct {
	Name        *string `json:"name"`
	Category    *string `json:"category"`
	StartYear   *int    `json:"startYear"`
	EndYear     *int    `json:"endYear"`
	ImageURL    *string `json:"imageUrl"`
	Description *string `json:"description"`
	Notes       *string `json:"notes"`
	WikiURL     *string `json:"wikiUrl"`
}

// ParseImport validates an import payload and returns the devices it holds.
//
// The payload must be a JSON array of objects. Each object needs a
// non-empty name, category, imageUrl and description, plus a startYear.
// A non-null endYear must not precede startYear. Returned devices have no
// ID; the registry assigns fresh ones.
//
// Any problem rejects the whole payload with an *ImportError.
func ParseImport(data []byte) ([]Device, error) {
	if !jsoniter.ConfigFastest.Valid(data) {
		return nil, &ImportError{Index: -1, Reason: "payload is not valid JSON"}
	}
	if jsoniter.Get(data).ValueType() != jsoniter.ArrayValue {
		return nil, &ImportError{Index: -1, Reason: "payload must be an array of devices"}
	}

	var raws []jsoniter.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, &ImportError{Index: -1, Reason: err.Error()}
	}

	devices := make([]Device, 0, len(raws))
	for i, raw := range raws {
		if jsoniter.Get(raw).ValueType() != jsoniter.ObjectValue {
			return nil, &ImportError{Index: i, Reason: "entry is not an object"}
		}
		var rec importRecord
		if err := json.Unmarshal(raw, &rec); err != nil {
			return nil, &ImportError{Index: i, Reason: fmt.Sprintf("malformed entry: %v", err)}
		}
		d, err := rec.toDevice(i)
		if err != nil {
			return nil, err
		}
		devices = append(devices, d)
	}
	return devices, nil
}

func (rec importRecord) toDevice(i int) (Device, error) {
	required := []struct {
		field string
		value *string
	}{
		{"name", rec.Name},
		{"category", rec.Category},
		{"imageUrl", rec.ImageURL},
		{"description", rec.Description},
	}
	for _, r := range required {
		if r.value == nil || strings.TrimSpace(*r.value) == "" {
			return Device{}, &ImportError{Index: i, Field: r.field, Reason: "is required"}
		}
	}
	if rec.StartYear == nil {
		return Device{}, &ImportError{Index: i, Field: "startYear", Reason: "is required"}
	}

	category := Category(*rec.Category)
	if !category.Valid() {
		return Device{}, &ImportError{Index: i, Field: "category", Reason: fmt.Sprintf("%q is not a known category", *rec.Category)}
	}
	if rec.EndYear != nil && *rec.EndYear < *rec.StartYear {
		return Device{}, &ImportError{Index: i, Field: "endYear", Reason: "is before startYear"}
	}

	d := Device{
		Name:        strings.TrimSpace(*rec.Name),
		Category:    category,
		StartYear:   *rec.StartYear,
		EndYear:     rec.EndYear,
		ImageURL:    *rec.ImageURL,
		Description: *rec.Description,
	}
	if rec.Notes != nil {
		d.Notes = *rec.Notes
	}
	if rec.WikiURL != nil {
		d.WikiURL = *rec.WikiURL
	}
	return d, nil
}

// ExportJSON serializes the collection with two-space indentation.
func ExportJSON(devices []Device) ([]byte, error) {
	if devices == nil {
		devices = []Device{}
	}
	out, err := json.MarshalIndent(devices, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding export: %w", err)
	}
	return out, nil
}
