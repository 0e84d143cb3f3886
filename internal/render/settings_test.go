package render

import (
	"testing"

	"github.com/mariinkys/cedilla/internal/markdown"
)

func TestNewSettingsRatios(t *testing.T) {
	s := NewSettings(16, markdown.DefaultStyle())

	tests := []struct {
		name string
		got  float64
		want float64
	}{
		{"TextSize", s.TextSize, 16},
		{"H1Size", s.H1Size, 32},
		{"H2Size", s.H2Size, 28},
		{"H3Size", s.H3Size, 24},
		{"H4Size", s.H4Size, 20},
		{"H5Size", s.H5Size, 16},
		{"H6Size", s.H6Size, 16},
		{"CodeSize", s.CodeSize, 12},
		{"Spacing", s.Spacing, 14},
	}

	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
		}
	}
}

func TestHeadingSize(t *testing.T) {
	s := NewSettings(16, markdown.DefaultStyle())

	want := map[int]float64{1: 32, 2: 28, 3: 24, 4: 20, 5: 16, 6: 16}
	for level, size := range want {
		if got := s.HeadingSize(level); got != size {
			t.Errorf("HeadingSize(%d) = %v, want %v", level, got, size)
		}
	}
}

func TestWithSpacingIsACopy(t *testing.T) {
	s := NewSettings(16, markdown.DefaultStyle())
	nested := s.WithSpacing(s.Spacing * 0.6)

	if nested.Spacing != 8.4 {
		t.Errorf("Nested spacing = %v, want 8.4", nested.Spacing)
	}
	if s.Spacing != 14 {
		t.Errorf("Original settings mutated: spacing = %v", s.Spacing)
	}
	if nested.TextSize != s.TextSize {
		t.Errorf("Other fields should carry over")
	}
}

func TestBlankLines(t *testing.T) {
	tests := []struct {
		spacing float64
		want    int
	}{
		{14, 1},
		{8.4, 1},
		{8, 1},
		{5.04, 0},
		{0, 0},
	}
	for _, tt := range tests {
		if got := blankLines(tt.spacing); got != tt.want {
			t.Errorf("blankLines(%v) = %d, want %d", tt.spacing, got, tt.want)
		}
	}
}
