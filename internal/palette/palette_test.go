package palette

import (
	"math/rand"
	"strings"
	"testing"
)

func TestHueDistance(t *testing.T) {
	tests := []struct {
		a, b, want float64
	}{
		{10, 20, 10},
		{350, 10, 20},
		{0, 180, 180},
		{90, 90, 0},
		{720, 30, 30},
	}
	for _, tt := range tests {
		if got := HueDistance(tt.a, tt.b); got != tt.want {
			t.Errorf("HueDistance(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestFromHue(t *testing.T) {
	p := FromHue(200)
	if !strings.HasPrefix(p.Color, "#") || len(p.Color) != 7 {
		t.Errorf("accent should be a hex color, got %q", p.Color)
	}
	if p.Color == p.BgColor {
		t.Error("accent and fill should differ in lightness")
	}
	h, ok := Hue(p.Color)
	if !ok || HueDistance(h, 200) > 2 {
		t.Errorf("hue round trip = %v, %v", h, ok)
	}
}

func TestGenerateKeepsDistance(t *testing.T) {
	rnd := rand.New(rand.NewSource(7))
	var existing []string
	for i := 0; i < 6; i++ {
		p := Generate(existing, rnd)
		h, ok := Hue(p.Color)
		if !ok {
			t.Fatalf("generated unparseable color %q", p.Color)
		}
		for _, c := range existing {
			other, _ := Hue(c)
			// Hex rounding shifts pastel hues by a degree or so.
			if d := HueDistance(h, other); d < MinHueDistance-2 {
				t.Errorf("color %s is only %.1f degrees from %s", p.Color, d, c)
			}
		}
		existing = append(existing, p.Color)
	}
}

func TestGenerateCrowdedWheel(t *testing.T) {
	var existing []string
	for hue := 0.0; hue < 360; hue += 15 {
		existing = append(existing, FromHue(hue).Color)
	}
	p := Generate(existing, rand.New(rand.NewSource(1)))
	if p.Color == "" || p.BgColor == "" {
		t.Error("crowded wheel should still yield a color")
	}
}

func TestGenerateIgnoresInvalid(t *testing.T) {
	p := Generate([]string{"not-a-color", ""}, rand.New(rand.NewSource(3)))
	if _, ok := Hue(p.Color); !ok {
		t.Errorf("expected a valid color, got %q", p.Color)
	}
}
