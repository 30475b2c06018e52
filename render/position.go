package render

import (
	"image"
	"math"
)

// Anchor identifies one of the three overlay elements placed on the card
type Anchor int

const (
	AnchorName Anchor = iota
	AnchorQR
	AnchorCardClass
)

// Position holds the normalized anchor coordinates for the three overlay
// elements, each as a percentage in [0,100] of the render surface, plus the
// visibility flags. The flags gate composition only; the underlying
// percentages stay editable and saveable while hidden.
type Position struct {
	NameX      float64 `json:"nameX"`
	NameY      float64 `json:"nameY"`
	QRX        float64 `json:"qrX"`
	QRY        float64 `json:"qrY"`
	CardClassX float64 `json:"cardClassX"`
	CardClassY float64 `json:"cardClassY"`

	ShowGuestName bool `json:"showGuestName"`
	ShowCardClass bool `json:"showCardClass"`
}

// DefaultPosition places the name near the top, the QR in the middle and the
// card class below it
func DefaultPosition() Position {
	return Position{
		NameX: 50, NameY: 20,
		QRX: 50, QRY: 55,
		CardClassX: 50, CardClassY: 80,
		ShowGuestName: true,
		ShowCardClass: true,
	}
}

// clampPercent coerces a value into [0,100]. Out-of-range writes are not an
// error; they are silently clamped to the nearest bound.
func clampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// Clamp returns a copy with every coordinate coerced into [0,100]
func (p Position) Clamp() Position {
	p.NameX = clampPercent(p.NameX)
	p.NameY = clampPercent(p.NameY)
	p.QRX = clampPercent(p.QRX)
	p.QRY = clampPercent(p.QRY)
	p.CardClassX = clampPercent(p.CardClassX)
	p.CardClassY = clampPercent(p.CardClassY)
	return p
}

// SetAnchor updates one anchor pair, clamping both values
func (p *Position) SetAnchor(a Anchor, x, y float64) {
	x, y = clampPercent(x), clampPercent(y)
	switch a {
	case AnchorName:
		p.NameX, p.NameY = x, y
	case AnchorQR:
		p.QRX, p.QRY = x, y
	case AnchorCardClass:
		p.CardClassX, p.CardClassY = x, y
	}
}

// ToPixel converts a percentage to an absolute pixel coordinate against one
// surface dimension. Rounding is math.Round: nearest integer, halves away
// from zero. With percent already clamped to [0,100] the result is always
// within [0, dim].
func ToPixel(percent float64, dim int) int {
	return int(math.Round(percent / 100 * float64(dim)))
}

// PixelAnchor resolves one anchor to surface-pixel space
func (p Position) PixelAnchor(a Anchor, width, height int) image.Point {
	switch a {
	case AnchorName:
		return image.Pt(ToPixel(p.NameX, width), ToPixel(p.NameY, height))
	case AnchorQR:
		return image.Pt(ToPixel(p.QRX, width), ToPixel(p.QRY, height))
	default:
		return image.Pt(ToPixel(p.CardClassX, width), ToPixel(p.CardClassY, height))
	}
}
