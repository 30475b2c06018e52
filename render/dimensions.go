package render

import (
	"fmt"
	"math"
	"strings"
)

// Dimension is a width/height pair in pixels
type Dimension struct {
	Width  int
	Height int
}

func (d Dimension) String() string {
	return fmt.Sprintf("%dx%d", d.Width, d.Height)
}

// AllowedDimensions lists the accepted template resolutions, largest first.
// All tiers share the 5:7 aspect ratio of the canonical render surface.
var AllowedDimensions = []Dimension{
	{3000, 4200},
	{1500, 2100},
	{1000, 1400},
	{750, 1050},
	{600, 840},
}

const (
	// SurfaceWidth and SurfaceHeight are the canonical render surface size.
	// Composition always happens at this resolution; lower-tier templates
	// are upscaled to fill it.
	SurfaceWidth  = 3000
	SurfaceHeight = 4200

	// requiredRatio is width/height of every allowed tier (3000/4200)
	requiredRatio  = float64(SurfaceWidth) / float64(SurfaceHeight)
	ratioTolerance = 0.01
)

// DimensionError describes a rejected template resolution
type DimensionError struct {
	Actual  Dimension
	Allowed []Dimension
}

// Error builds the full diagnostic: the allowed list, the actual dimensions,
// the aspect-ratio comparison and remediation guidance.
func (e *DimensionError) Error() string {
	allowed := make([]string, len(e.Allowed))
	for i, d := range e.Allowed {
		allowed[i] = d.String()
	}

	var b strings.Builder
	fmt.Fprintf(&b, "invalid template dimensions %s: allowed dimensions are %s",
		e.Actual, strings.Join(allowed, ", "))

	actualRatio := float64(e.Actual.Width) / float64(e.Actual.Height)
	diff := math.Abs(actualRatio - requiredRatio)
	if diff > ratioTolerance {
		fmt.Fprintf(&b, "; aspect ratio %.3f does not match required %.3f (off by %.3f)",
			actualRatio, requiredRatio, diff)
	}

	b.WriteString(". Resize the image to one of the allowed sizes: 3000x4200 for print, 1500x2100 for web, 600x840 for quick tests")
	return b.String()
}

// ValidateDimensions checks a decoded template resolution against the allowed
// set. The match must be exact; no interpolation or cropping is performed.
// Width and height come from the decoded image itself, never from the upload
// request. Returns nil on success and a *DimensionError otherwise.
func ValidateDimensions(width, height int) error {
	for _, d := range AllowedDimensions {
		if width == d.Width && height == d.Height {
			return nil
		}
	}
	return &DimensionError{
		Actual:  Dimension{Width: width, Height: height},
		Allowed: AllowedDimensions,
	}
}
