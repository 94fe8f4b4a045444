package device

import (
	"errors"
	"strings"
	"testing"
)

func TestParseImport_Valid(t *testing.T) {
	payload := `[
		{"id":"foreign","name":" Nokia 3310 ","category":"smartphone","startYear":2000,"endYear":2003,
		 "imageUrl":"https://img/n.jpg","description":"Phone","notes":"Tough","wikiUrl":"https://w/n"},
		{"name":"PS5","category":"gaming","startYear":2020,"endYear":null,
		 "imageUrl":"https://img/p.jpg","description":"Console"}
	]`

	devices, err := ParseImport([]byte(payload))
	if err != nil {
		t.Fatalf("ParseImport() error = %v", err)
	}
	if len(devices) != 2 {
		t.Fatalf("ParseImport() len = %d, want 2", len(devices))
	}
	if devices[0].ID != "" {
		t.Errorf("foreign ID should be ignored, got %q", devices[0].ID)
	}
	if devices[0].Name != "Nokia 3310" || devices[0].Period() != "2000 - 2003" || devices[0].Notes != "Tough" {
		t.Errorf("devices[0] = %+v", devices[0])
	}
	if devices[1].EndYear != nil {
		t.Errorf("null endYear should stay nil")
	}
}

func TestParseImport_EmptyArray(t *testing.T) {
	devices, err := ParseImport([]byte("[]"))
	if err != nil || len(devices) != 0 {
		t.Errorf("ParseImport([]) = %v, %v; want empty, nil", devices, err)
	}
}

func TestParseImport_Rejections(t *testing.T) {
	const ok = `"name":"X","category":"audio","startYear":2001,"imageUrl":"u","description":"d"`

	tests := []struct {
		name      string
		payload   string
		wantIndex int
		wantField string
	}{
		{"not json", `[{`, -1, ""},
		{"object not array", `{"name":"X"}`, -1, ""},
		{"scalar entry", `[{` + ok + `}, 5]`, 1, ""},
		{"missing name", `[{"category":"audio","startYear":2001,"imageUrl":"u","description":"d"}]`, 0, "name"},
		{"blank name", `[{"name":"  ","category":"audio","startYear":2001,"imageUrl":"u","description":"d"}]`, 0, "name"},
		{"missing image", `[{"name":"X","category":"audio","startYear":2001,"description":"d"}]`, 0, "imageUrl"},
		{"missing description", `[{"name":"X","category":"audio","startYear":2001,"imageUrl":"u"}]`, 0, "description"},
		{"missing start year", `[{"name":"X","category":"audio","imageUrl":"u","description":"d"}]`, 0, "startYear"},
		{"unknown category", `[{"name":"X","category":"fridge","startYear":2001,"imageUrl":"u","description":"d"}]`, 0, "category"},
		{"end before start", `[{` + ok + `,"endYear":1999}]`, 0, "endYear"},
		{"second entry bad", `[{` + ok + `},{"name":"Y"}]`, 1, "category"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			devices, err := ParseImport([]byte(tt.payload))
			if err == nil {
				t.Fatalf("ParseImport() = %v, want error", devices)
			}
			if !errors.Is(err, ErrInvalidImport) {
				t.Errorf("error %v should match ErrInvalidImport", err)
			}
			var ie *ImportError
			if !errors.As(err, &ie) {
				t.Fatalf("error %T is not *ImportError", err)
			}
			if ie.Index != tt.wantIndex || ie.Field != tt.wantField {
				t.Errorf("ImportError = %+v, want index %d field %q", ie, tt.wantIndex, tt.wantField)
			}
			if devices != nil {
				t.Error("rejected import must not return devices")
			}
		})
	}
}

func TestExportJSON(t *testing.T) {
	out, err := ExportJSON([]Device{{ID: "1", Name: "A", Category: CategoryOther, StartYear: 2001}})
	if err != nil {
		t.Fatalf("ExportJSON() error = %v", err)
	}
	s := string(out)
	if !strings.HasPrefix(s, "[\n  {\n    \"id\": \"1\"") {
		t.Errorf("ExportJSON() not two-space indented:\n%s", s)
	}
	if !strings.Contains(s, `"endYear": null`) {
		t.Errorf("ExportJSON() should write null end year:\n%s", s)
	}

	empty, _ := ExportJSON(nil)
	if string(empty) != "[]" {
		t.Errorf("ExportJSON(nil) = %q, want []", empty)
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	orig := SampleDevices()
	data, err := ExportJSON(orig)
	if err != nil {
		t.Fatalf("ExportJSON() error = %v", err)
	}
	back, err := ParseImport(data)
	if err != nil {
		t.Fatalf("ParseImport() error = %v", err)
	}
	if len(back) != len(orig) {
		t.Fatalf("round trip len = %d, want %d", len(back), len(orig))
	}
	for i := range orig {
		a, b := orig[i], back[i]
		if a.Name != b.Name || a.Category != b.Category || a.StartYear != b.StartYear ||
			a.Period() != b.Period() || a.Description != b.Description {
			t.Errorf("device %d changed: %+v -> %+v", i, a, b)
		}
		if b.ID != "" {
			t.Errorf("imported device %d kept ID %q", i, b.ID)
		}
	}
}
