package common

import (
	"errors"
	"testing"
)

func TestRegionsOrder(t *testing.T) {
	regions := Regions()
	if len(regions) != len(RegionNames()) {
		t.Fatalf("Regions() returned %d entries, want %d", len(regions), len(RegionNames()))
	}
	for i := 1; i < len(regions); i++ {
		if regions[i-1] >= regions[i] {
			t.Errorf("regions out of document order at %d: %s >= %s", i, regions[i-1], regions[i])
		}
	}
	if regions[0] != RegionMetadata || regions[len(regions)-1] != RegionAcknowledgments {
		t.Errorf("unexpected first/last region: %s/%s", regions[0], regions[len(regions)-1])
	}
}

func TestParseRegion(t *testing.T) {
	tests := []struct {
		in      string
		want    Region
		wantErr bool
	}{
		{"metadata", RegionMetadata, false},
		{"body", RegionBody, false},
		{"changes", RegionChanges, false},
		{"acknowledgments", RegionAcknowledgments, false},
		{"Body", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseRegion(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseRegion(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if err != nil {
				if !errors.Is(err, ErrInvalidRegion) {
					t.Errorf("error %v does not wrap ErrInvalidRegion", err)
				}
				return
			}
			if got != tt.want {
				t.Errorf("ParseRegion(%q) = %s, want %s", tt.in, got, tt.want)
			}
		})
	}
}

func TestRegionInvalid(t *testing.T) {
	if Region(42).IsValid() {
		t.Error("Region(42) reported as valid")
	}
	if got := Region(42).String(); got != "Region(42)" {
		t.Errorf("String() of invalid region = %q", got)
	}
	var r Region
	if err := r.UnmarshalText([]byte("preface")); !errors.Is(err, ErrInvalidRegion) {
		t.Errorf("UnmarshalText(preface) error = %v, want ErrInvalidRegion", err)
	}
}
