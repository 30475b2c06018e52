package render

import (
	"bytes"
	"context"
	"errors"
	"image/color"
	"testing"
	"time"
)

func newTestSession(fetch Fetcher) *Session {
	s := NewSession(fetch)
	s.loader.graceDelay = time.Millisecond
	s.loader.pollInterval = 2 * time.Millisecond
	s.trigger.delay = time.Millisecond
	return s
}

func TestSessionRendersGuestWithoutQR(t *testing.T) {
	s := newTestSession(nil)
	defer s.Close()

	s.SetTemplate(pngBytes(t, 1500, 2100, testBG))
	s.SetGuest("Ada Lovelace", "", ImageSource{})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	surface, err := s.AwaitRender(ctx)
	if err != nil {
		t.Fatalf("AwaitRender: %v", err)
	}

	// background fills the surface, and the "NO QR" placeholder sits at the
	// QR anchor
	region := qrRegion(s.Position())
	if got := countColor(surface, region, qrErrorColor); got == 0 {
		t.Error("missing QR placeholder for a guest without a QR source")
	}
	corner := surface.NRGBAAt(5, 5)
	if diff8(corner.R, testBG.R) > 2 || diff8(corner.B, testBG.B) > 2 {
		t.Errorf("corner = %v, want background %v", corner, testBG)
	}
}

func TestSessionRendersInlineQR(t *testing.T) {
	s := newTestSession(nil)
	defer s.Close()

	s.SetTemplate(pngBytes(t, 1500, 2100, testBG))
	s.SetGuest("Ada Lovelace", "", ImageSource{Inline: pngBytes(t, 200, 200, testQR)})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	surface, err := s.AwaitRender(ctx)
	if err != nil {
		t.Fatalf("AwaitRender: %v", err)
	}

	region := qrRegion(s.Position())
	if got := countColor(surface, region, testQR); got < region.Dx()*region.Dy()/2 {
		t.Errorf("QR image not drawn: %d matching pixels", got)
	}
}

func TestSessionBackgroundDecodeFailure(t *testing.T) {
	s := newTestSession(nil)
	defer s.Close()

	s.SetTemplate([]byte("not an image"))
	s.SetGuest("Ada Lovelace", "", ImageSource{})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := s.AwaitRender(ctx); err == nil {
		t.Fatal("AwaitRender succeeded with an undecodable template")
	}

	// the surface is cleared, not partially composited
	snap := s.Snapshot()
	white := color.NRGBA{255, 255, 255, 255}
	for _, pt := range []struct{ x, y int }{{5, 5}, {SurfaceWidth / 2, SurfaceHeight / 2}} {
		if got := snap.NRGBAAt(pt.x, pt.y); got != white {
			t.Errorf("pixel (%d,%d) = %v, want cleared surface", pt.x, pt.y, got)
		}
	}
}

func TestSessionPositionChangeTriggersRecomposite(t *testing.T) {
	s := newTestSession(nil)
	defer s.Close()

	s.SetTemplate(pngBytes(t, 1500, 2100, testBG))
	s.SetGuest("Ada Lovelace", "", ImageSource{})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	before, err := s.AwaitRender(ctx)
	if err != nil {
		t.Fatalf("AwaitRender: %v", err)
	}

	s.SetAnchor(AnchorQR, 10, 10)
	after, err := s.AwaitRender(ctx)
	if err != nil {
		t.Fatalf("AwaitRender after move: %v", err)
	}

	if bytes.Equal(before.Pix, after.Pix) {
		t.Error("moving the QR anchor did not re-composite")
	}
	region := qrRegion(s.Position())
	if got := countColor(after, region, qrErrorColor); got == 0 {
		t.Error("placeholder did not follow the moved anchor")
	}
}

func TestSessionQRFetchFailureRendersErrorPlaceholder(t *testing.T) {
	fetch := func(ctx context.Context, url string) ([]byte, error) {
		return nil, errors.New("connection refused")
	}
	s := newTestSession(fetch)
	defer s.Close()

	s.SetTemplate(pngBytes(t, 1500, 2100, testBG))
	s.SetGuest("Ada Lovelace", "", ImageSource{URL: "http://cards.test/qr/7.png"})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	surface, err := s.AwaitRender(ctx)
	if err != nil {
		t.Fatalf("a QR failure must not abort the render: %v", err)
	}

	region := qrRegion(s.Position())
	if got := countColor(surface, region, qrErrorColor); got == 0 {
		t.Error("missing error placeholder after QR fetch failure")
	}
}

func TestSessionVisibilityChange(t *testing.T) {
	s := newTestSession(nil)
	defer s.Close()

	s.SetTemplate(pngBytes(t, 1500, 2100, testBG))
	s.SetGuest("Ada Lovelace", "VIP", ImageSource{})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	shown, err := s.AwaitRender(ctx)
	if err != nil {
		t.Fatalf("AwaitRender: %v", err)
	}

	s.SetVisibility(false, false)
	hidden, err := s.AwaitRender(ctx)
	if err != nil {
		t.Fatalf("AwaitRender after hide: %v", err)
	}

	if bytes.Equal(shown.Pix, hidden.Pix) {
		t.Error("visibility change did not re-composite")
	}
	if got := countColor(hidden, hidden.Bounds(), color.NRGBA{0, 0, 0, 255}); got != 0 {
		t.Errorf("hidden name still drawn: %d black pixels", got)
	}
}
