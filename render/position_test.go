package render

import (
	"image"
	"testing"
)

func TestClamp(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{"in range", 42.5, 42.5},
		{"lower bound", 0, 0},
		{"upper bound", 100, 100},
		{"above range", 150, 100},
		{"below range", -5, 0},
		{"far above", 1e9, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Position{}
			p.SetAnchor(AnchorName, tt.in, tt.in)
			if p.NameX != tt.want || p.NameY != tt.want {
				t.Errorf("SetAnchor(%v) = (%v, %v), want %v", tt.in, p.NameX, p.NameY, tt.want)
			}
		})
	}
}

func TestPositionClampAllFields(t *testing.T) {
	p := Position{
		NameX: -10, NameY: 110,
		QRX: 150, QRY: 50,
		CardClassX: 100.0001, CardClassY: -0.0001,
	}.Clamp()

	want := Position{
		NameX: 0, NameY: 100,
		QRX: 100, QRY: 50,
		CardClassX: 100, CardClassY: 0,
	}
	if p != want {
		t.Errorf("Clamp() = %+v, want %+v", p, want)
	}
}

func TestToPixel(t *testing.T) {
	tests := []struct {
		name    string
		percent float64
		dim     int
		want    int
	}{
		{"zero", 0, 3000, 0},
		{"full", 100, 3000, 3000},
		{"half width", 50, 3000, 1500},
		{"half height", 50, 4200, 2100},
		{"third rounds to nearest", 33.333, 3000, 1000},       // 999.99 -> 1000
		{"half pixel rounds away from zero", 0.05, 3000, 2},   // 1.5 -> 2
		{"just below half pixel rounds down", 0.04, 3000, 1},  // 1.2 -> 1
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToPixel(tt.percent, tt.dim); got != tt.want {
				t.Errorf("ToPixel(%v, %d) = %d, want %d", tt.percent, tt.dim, got, tt.want)
			}
		})
	}
}

func TestToPixelNeverOutOfBounds(t *testing.T) {
	for percent := 0.0; percent <= 100; percent += 0.37 {
		got := ToPixel(percent, SurfaceWidth)
		if got < 0 || got > SurfaceWidth {
			t.Fatalf("ToPixel(%v, %d) = %d, out of [0, %d]", percent, SurfaceWidth, got, SurfaceWidth)
		}
	}
}

func TestPixelAnchor(t *testing.T) {
	p := DefaultPosition()
	p.SetAnchor(AnchorQR, 25, 75)

	got := p.PixelAnchor(AnchorQR, SurfaceWidth, SurfaceHeight)
	want := image.Pt(750, 3150)
	if got != want {
		t.Errorf("PixelAnchor(AnchorQR) = %v, want %v", got, want)
	}
}

func TestVisibilityDoesNotBlockEditing(t *testing.T) {
	p := DefaultPosition()
	p.ShowGuestName = false
	p.SetAnchor(AnchorName, 10, 20)
	if p.NameX != 10 || p.NameY != 20 {
		t.Errorf("hidden layer's anchor should still be editable, got (%v, %v)", p.NameX, p.NameY)
	}
}
