package device

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestValidateDevice(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		dev     *Device
		wantErr error
	}{
		{"valid ongoing", &Device{Name: "iPhone", Category: CategorySmartphone, StartYear: 2021}, nil},
		{"valid closed", &Device{Name: "C64", Category: CategoryDesktop, StartYear: 1982, EndYear: year(1989)}, nil},
		{"same start and end", &Device{Name: "X", Category: CategoryOther, StartYear: 2000, EndYear: year(2000)}, nil},
		{"min year", &Device{Name: "X", Category: CategoryOther, StartYear: MinYear}, nil},
		{"current year", &Device{Name: "X", Category: CategoryOther, StartYear: 2024}, nil},
		{"nil device", nil, ErrInvalidDevice},
		{"empty name", &Device{Category: CategoryOther, StartYear: 2000}, ErrInvalidName},
		{"long name", &Device{Name: strings.Repeat("a", 201), Category: CategoryOther, StartYear: 2000}, ErrInvalidName},
		{"unknown category", &Device{Name: "X", Category: "fridge", StartYear: 2000}, ErrInvalidCategory},
		{"year too early", &Device{Name: "X", Category: CategoryOther, StartYear: 1969}, ErrInvalidYear},
		{"year in future", &Device{Name: "X", Category: CategoryOther, StartYear: 2025}, ErrInvalidYear},
		{"end before start", &Device{Name: "X", Category: CategoryOther, StartYear: 2005, EndYear: year(2004)}, ErrInvalidPeriod},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDevice(tt.dev, now)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateDevice() error = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateDevice() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestCategories(t *testing.T) {
	cats := Categories()
	if len(cats) != 9 {
		t.Fatalf("Categories() len = %d, want 9", len(cats))
	}
	if cats[0] != CategorySmartphone || cats[len(cats)-1] != CategoryOther {
		t.Errorf("Categories() order = %v", cats)
	}
	for _, c := range cats {
		if !c.Valid() || c.Label() == string(c) {
			t.Errorf("category %q has no label", c)
		}
	}
	if Category("toaster").Label() != "toaster" {
		t.Error("unknown category label should fall back to its value")
	}
}

func TestPeriod(t *testing.T) {
	if got := (&Device{StartYear: 2000, EndYear: year(2003)}).Period(); got != "2000 - 2003" {
		t.Errorf("Period() = %q", got)
	}
	if got := (&Device{StartYear: 2020}).Period(); got != "2020 - ongoing" {
		t.Errorf("Period() = %q", got)
	}
}

func TestDeepCopy(t *testing.T) {
	orig := &Device{ID: "1", Name: "A", EndYear: year(2001)}
	cp := orig.DeepCopy()
	*cp.EndYear = 1999
	cp.Name = "B"

	if *orig.EndYear != 2001 || orig.Name != "A" {
		t.Errorf("DeepCopy shares state with original: %+v", orig)
	}
	var nilDev *Device
	if nilDev.DeepCopy() != nil {
		t.Error("DeepCopy of nil should be nil")
	}
}

func TestGenerateID(t *testing.T) {
	a, b := GenerateID(), GenerateID()
	if a == b || len(a) != 36 {
		t.Errorf("GenerateID() = %q, %q", a, b)
	}
}

func TestFallbackImageURL(t *testing.T) {
	if got := FallbackImageURL(CategoryLaptop); got != "https://images.pexels.com/photos/18105/pexels-photo.jpg" {
		t.Errorf("FallbackImageURL(laptop) = %q", got)
	}
	if got := FallbackImageURL(CategoryOther); got != "https://images.pexels.com/photos/1476321/pexels-photo-1476321.jpeg" {
		t.Errorf("FallbackImageURL(other) = %q", got)
	}
}

func TestNewFromLookup(t *testing.T) {
	now := time.Date(2023, 3, 3, 0, 0, 0, 0, time.UTC)

	t.Run("uses release year and primary image", func(t *testing.T) {
		d := NewFromLookup(LookupResult{
			Title: " Walkman ", Description: "Cassette player", ImageURL: "https://img/w.jpg",
			WikiURL: "https://w/Walkman", ReleaseYear: year(1979), Category: CategoryAudio,
		}, "", now)

		if d.Name != "Walkman" || d.StartYear != 1979 || d.ImageURL != "https://img/w.jpg" {
			t.Errorf("NewFromLookup() = %+v", d)
		}
		if d.ID != "" || d.EndYear != nil || d.Notes != "" {
			t.Errorf("NewFromLookup() should leave ID, end year and notes empty: %+v", d)
		}
	})

	t.Run("defaults", func(t *testing.T) {
		d := NewFromLookup(LookupResult{Title: "Thing", Category: "bogus"}, "", now)
		if d.StartYear != 2023 {
			t.Errorf("StartYear = %d, want 2023", d.StartYear)
		}
		if d.Category != CategoryOther || d.ImageURL != FallbackImageURL(CategoryOther) {
			t.Errorf("NewFromLookup() = %+v", d)
		}
	})
}

func TestSampleDevices(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	a, b := SampleDevices(), SampleDevices()

	if len(a) != 20 {
		t.Fatalf("SampleDevices() len = %d, want 20", len(a))
	}
	for i := range a {
		if err := ValidateDevice(&a[i], now); err != nil {
			t.Errorf("sample %q invalid: %v", a[i].Name, err)
		}
		if a[i].ID == b[i].ID {
			t.Errorf("sample %q reused ID across calls", a[i].Name)
		}
	}
}
