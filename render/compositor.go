package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"sync"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// Fixed sizes relative to the canonical surface. The name text height is
// ~3.27% of the surface width; the QR square is 20% of it.
const (
	nameFontSize    = 98
	classFontSize   = 64
	qrLabelFontSize = 120
	qrSide          = SurfaceWidth / 5
)

var (
	backgroundClear = color.NRGBA{255, 255, 255, 255}
	nameColor       = color.NRGBA{0, 0, 0, 255}
	classColor      = color.NRGBA{128, 128, 128, 255}
	qrErrorColor    = color.NRGBA{220, 38, 38, 255}
	qrLabelColor    = color.NRGBA{255, 255, 255, 255}
)

var (
	fontOnce sync.Once
	fontErr  error
	boldFont *opentype.Font
	regFont  *opentype.Font
)

func loadFonts() error {
	fontOnce.Do(func() {
		boldFont, fontErr = opentype.Parse(gobold.TTF)
		if fontErr != nil {
			fontErr = fmt.Errorf("failed to parse bold font: %w", fontErr)
			return
		}
		regFont, fontErr = opentype.Parse(goregular.TTF)
		if fontErr != nil {
			fontErr = fmt.Errorf("failed to parse regular font: %w", fontErr)
		}
	})
	return fontErr
}

func newFace(f *opentype.Font, size float64) (font.Face, error) {
	return opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}

// NewSurface allocates a render surface at the canonical resolution. The
// surface is an explicit buffer owned by the caller; Compose never allocates
// its own output.
func NewSurface() *image.NRGBA {
	return image.NewNRGBA(image.Rect(0, 0, SurfaceWidth, SurfaceHeight))
}

// drawCenteredString draws s with its glyph bounding box centered on center.
// Measuring via font.BoundString gives visual centering on both axes.
func drawCenteredString(dst draw.Image, face font.Face, s string, center image.Point, c color.Color) {
	bounds, _ := font.BoundString(face, s)
	glyphW := (bounds.Max.X - bounds.Min.X).Ceil()
	glyphH := (bounds.Max.Y - bounds.Min.Y).Ceil()

	originX := center.X - glyphW/2 - bounds.Min.X.Floor()
	originY := center.Y - glyphH/2 - bounds.Min.Y.Floor()

	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.P(originX, originY),
	}
	d.DrawString(s)
}

// Compose executes one full composite pass onto dst, which must be a surface
// from NewSurface. bg must be a decoded, Ready background. qrImg is only read
// when qrState is Ready.
//
// Draw order is fixed; later layers occlude earlier ones:
//  1. clear the surface
//  2. background stretched to exactly fill the surface (no letterboxing)
//  3. guest name, if enabled
//  4. QR layer: the decoded image, or an error placeholder ("QR" on red)
//     when a present source failed, or an informational placeholder
//     ("NO QR" on red) when the guest has no source at all
//  5. card-class label, if enabled, drawn last so the QR never occludes it
//
// The pass is idempotent: identical inputs produce a byte-identical surface
// because the clear repaints every pixel.
func Compose(dst *image.NRGBA, bg image.Image, guestName, cardClass string, pos Position, qrImg image.Image, qrState Readiness) error {
	if err := loadFonts(); err != nil {
		return err
	}
	if dst.Bounds().Dx() != SurfaceWidth || dst.Bounds().Dy() != SurfaceHeight {
		return fmt.Errorf("render surface must be %dx%d, got %dx%d",
			SurfaceWidth, SurfaceHeight, dst.Bounds().Dx(), dst.Bounds().Dy())
	}

	// 1. clear
	draw.Draw(dst, dst.Bounds(), image.NewUniform(backgroundClear), image.Point{}, draw.Src)

	// 2. background, stretched to fill. Lanczos keeps the upscale of
	// lower-tier templates deterministic.
	scaled := imaging.Resize(bg, SurfaceWidth, SurfaceHeight, imaging.Lanczos)
	draw.Draw(dst, dst.Bounds(), scaled, image.Point{}, draw.Over)

	// 3. guest name
	if pos.ShowGuestName && guestName != "" {
		face, err := newFace(boldFont, nameFontSize)
		if err != nil {
			return fmt.Errorf("failed to create name font face: %w", err)
		}
		defer face.Close()
		drawCenteredString(dst, face, guestName, pos.PixelAnchor(AnchorName, SurfaceWidth, SurfaceHeight), nameColor)
	}

	// 4. QR layer
	qrCenter := pos.PixelAnchor(AnchorQR, SurfaceWidth, SurfaceHeight)
	qrRect := image.Rect(qrCenter.X-qrSide/2, qrCenter.Y-qrSide/2, qrCenter.X+qrSide/2, qrCenter.Y+qrSide/2)
	switch qrState {
	case Ready:
		q := imaging.Resize(qrImg, qrSide, qrSide, imaging.Lanczos)
		draw.Draw(dst, qrRect, q, image.Point{}, draw.Over)
	case Failed:
		if err := drawQRPlaceholder(dst, qrRect, qrCenter, "QR"); err != nil {
			return err
		}
	default:
		// no source at all: informational, not an error
		if err := drawQRPlaceholder(dst, qrRect, qrCenter, "NO QR"); err != nil {
			return err
		}
	}

	// 5. card-class label, always on top of the QR layer
	if pos.ShowCardClass && cardClass != "" {
		face, err := newFace(regFont, classFontSize)
		if err != nil {
			return fmt.Errorf("failed to create card-class font face: %w", err)
		}
		defer face.Close()
		drawCenteredString(dst, face, cardClass, pos.PixelAnchor(AnchorCardClass, SurfaceWidth, SurfaceHeight), classColor)
	}

	return nil
}

func drawQRPlaceholder(dst *image.NRGBA, rect image.Rectangle, center image.Point, label string) error {
	draw.Draw(dst, rect, image.NewUniform(qrErrorColor), image.Point{}, draw.Src)
	face, err := newFace(boldFont, qrLabelFontSize)
	if err != nil {
		return fmt.Errorf("failed to create placeholder font face: %w", err)
	}
	defer face.Close()
	drawCenteredString(dst, face, label, center, qrLabelColor)
	return nil
}
