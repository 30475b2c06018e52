package render

import (
	"bytes"
	"image"
	"image/color"
	"testing"

	"github.com/disintegration/imaging"
)

func solidImage(w, h int, c color.NRGBA) image.Image {
	return imaging.New(w, h, c)
}

var (
	testBG = color.NRGBA{10, 40, 200, 255}
	testQR = color.NRGBA{0, 180, 0, 255}
)

// countColor counts pixels within rect that match c within a small tolerance
func countColor(img *image.NRGBA, rect image.Rectangle, c color.NRGBA) int {
	count := 0
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			got := img.NRGBAAt(x, y)
			if diff8(got.R, c.R) <= 2 && diff8(got.G, c.G) <= 2 && diff8(got.B, c.B) <= 2 {
				count++
			}
		}
	}
	return count
}

func diff8(a, b uint8) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}

func qrRegion(pos Position) image.Rectangle {
	center := pos.PixelAnchor(AnchorQR, SurfaceWidth, SurfaceHeight)
	return image.Rect(center.X-qrSide/2, center.Y-qrSide/2, center.X+qrSide/2, center.Y+qrSide/2)
}

func TestComposeIdempotent(t *testing.T) {
	bg := solidImage(1500, 2100, testBG)
	pos := DefaultPosition()

	a := NewSurface()
	b := NewSurface()
	for _, dst := range []*image.NRGBA{a, b} {
		if err := Compose(dst, bg, "Ada Lovelace", "VIP", pos, nil, NotRequested); err != nil {
			t.Fatalf("Compose: %v", err)
		}
	}
	if !bytes.Equal(a.Pix, b.Pix) {
		t.Error("two composites with identical inputs are not byte-identical")
	}

	// a third pass on a reused surface must match too: no state accumulates
	if err := Compose(a, bg, "Ada Lovelace", "VIP", pos, nil, NotRequested); err != nil {
		t.Fatalf("Compose: %v", err)
	}
	if !bytes.Equal(a.Pix, b.Pix) {
		t.Error("re-rendering onto a used surface changed the output")
	}
}

func TestComposeBackgroundStretchedToFill(t *testing.T) {
	// lower-tier template is upscaled to the full canonical surface
	bg := solidImage(600, 840, testBG)
	pos := DefaultPosition()
	pos.ShowGuestName = false
	pos.ShowCardClass = false

	dst := NewSurface()
	if err := Compose(dst, bg, "", "", pos, nil, NotRequested); err != nil {
		t.Fatalf("Compose: %v", err)
	}

	corners := []image.Point{
		{5, 5}, {SurfaceWidth - 5, 5}, {5, SurfaceHeight - 5}, {SurfaceWidth - 5, SurfaceHeight - 5},
	}
	for _, pt := range corners {
		got := dst.NRGBAAt(pt.X, pt.Y)
		if diff8(got.R, testBG.R) > 2 || diff8(got.G, testBG.G) > 2 || diff8(got.B, testBG.B) > 2 {
			t.Errorf("corner %v = %v, want background color %v (no letterboxing)", pt, got, testBG)
		}
	}
}

func TestComposeQRStates(t *testing.T) {
	bg := solidImage(1500, 2100, testBG)
	qr := solidImage(400, 400, testQR)
	pos := DefaultPosition()
	region := qrRegion(pos)

	tests := []struct {
		name      string
		qrImg     image.Image
		qrState   Readiness
		wantColor color.NRGBA
	}{
		{"ready draws the QR image", qr, Ready, testQR},
		{"failed draws the error placeholder", nil, Failed, qrErrorColor},
		{"absent draws the informational placeholder", nil, NotRequested, qrErrorColor},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dst := NewSurface()
			if err := Compose(dst, bg, "Ada Lovelace", "", pos, tt.qrImg, tt.qrState); err != nil {
				t.Fatalf("Compose: %v", err)
			}
			// most of the square must carry the expected fill; the white
			// label takes up some of the placeholder
			if got := countColor(dst, region, tt.wantColor); got < region.Dx()*region.Dy()/2 {
				t.Errorf("QR region carries %d pixels of %v, want at least half of %d",
					got, tt.wantColor, region.Dx()*region.Dy())
			}
			// and the area outside the square is untouched background
			outside := image.Rect(region.Min.X-60, region.Min.Y-60, region.Min.X-10, region.Min.Y-10)
			if got := countColor(dst, outside, testBG); got != outside.Dx()*outside.Dy() {
				t.Errorf("area outside the QR square was touched: %d of %d background pixels",
					got, outside.Dx()*outside.Dy())
			}
		})
	}
}

func TestComposePlaceholderLabels(t *testing.T) {
	bg := solidImage(1500, 2100, testBG)
	pos := DefaultPosition()
	region := qrRegion(pos)

	// absent and failed placeholders differ: "NO QR" paints more white
	// label pixels than "QR"
	failed := NewSurface()
	if err := Compose(failed, bg, "", "", pos, nil, Failed); err != nil {
		t.Fatalf("Compose: %v", err)
	}
	absent := NewSurface()
	if err := Compose(absent, bg, "", "", pos, nil, NotRequested); err != nil {
		t.Fatalf("Compose: %v", err)
	}

	white := color.NRGBA{255, 255, 255, 255}
	failedLabel := countColor(failed, region, white)
	absentLabel := countColor(absent, region, white)
	if failedLabel == 0 || absentLabel == 0 {
		t.Fatalf("placeholder labels not drawn: failed=%d absent=%d white pixels", failedLabel, absentLabel)
	}
	if absentLabel <= failedLabel {
		t.Errorf("\"NO QR\" label (%d px) should paint more than \"QR\" (%d px)", absentLabel, failedLabel)
	}
}

func TestComposeNameToggle(t *testing.T) {
	bg := solidImage(1500, 2100, testBG)
	qr := solidImage(400, 400, testQR)

	withName := DefaultPosition()
	withoutName := withName
	withoutName.ShowGuestName = false

	a := NewSurface()
	if err := Compose(a, bg, "Grace Hopper", "VIP", withName, qr, Ready); err != nil {
		t.Fatalf("Compose: %v", err)
	}
	b := NewSurface()
	if err := Compose(b, bg, "Grace Hopper", "VIP", withoutName, qr, Ready); err != nil {
		t.Fatalf("Compose: %v", err)
	}

	if bytes.Equal(a.Pix, b.Pix) {
		t.Fatal("disabling the name layer changed nothing")
	}

	// every other layer must be pixel-identical outside the name's region.
	// Name anchor is (50%, 20%) -> (1500, 840); compare rows well away from it.
	nameCenter := withName.PixelAnchor(AnchorName, SurfaceWidth, SurfaceHeight)
	for _, y := range []int{5, nameCenter.Y + 400, SurfaceHeight - 5} {
		rowA := a.Pix[a.PixOffset(0, y):a.PixOffset(SurfaceWidth, y)]
		rowB := b.Pix[b.PixOffset(0, y):b.PixOffset(SurfaceWidth, y)]
		if !bytes.Equal(rowA, rowB) {
			t.Errorf("row y=%d differs outside the name region", y)
		}
	}
}

func TestComposeCardClassDrawnOverQR(t *testing.T) {
	bg := solidImage(1500, 2100, testBG)
	qr := solidImage(400, 400, testQR)

	// place the card-class label in the middle of the QR square: it is drawn
	// last, so its glyphs must appear on top
	pos := DefaultPosition()
	pos.SetAnchor(AnchorCardClass, pos.QRX, pos.QRY)

	dst := NewSurface()
	if err := Compose(dst, bg, "", "VIP", pos, qr, Ready); err != nil {
		t.Fatalf("Compose: %v", err)
	}

	if got := countColor(dst, qrRegion(pos), classColor); got == 0 {
		t.Error("card-class label is occluded by the QR layer")
	}
}

func TestComposeRejectsWrongSurface(t *testing.T) {
	bg := solidImage(1500, 2100, testBG)
	dst := image.NewNRGBA(image.Rect(0, 0, 100, 100))
	if err := Compose(dst, bg, "", "", DefaultPosition(), nil, NotRequested); err == nil {
		t.Error("Compose accepted a surface of the wrong size")
	}
}
