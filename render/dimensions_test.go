package render

import (
	"strings"
	"testing"
)

func TestValidateDimensions_AllowedTiers(t *testing.T) {
	for _, d := range AllowedDimensions {
		if err := ValidateDimensions(d.Width, d.Height); err != nil {
			t.Errorf("ValidateDimensions(%d, %d) = %v, want nil", d.Width, d.Height, err)
		}
	}
}

func TestValidateDimensions_Rejections(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		wantContains  []string
	}{
		{
			name:  "right ratio wrong tier",
			width: 1600, height: 2240,
			wantContains: []string{"1600x2240", "3000x4200", "1500x2100", "1000x1400", "750x1050", "600x840"},
		},
		{
			name:  "wrong ratio",
			width: 1600, height: 2200,
			wantContains: []string{"1600x2200", "3000x4200", "aspect ratio", "0.714"},
		},
		{
			name:  "square",
			width: 1000, height: 1000,
			wantContains: []string{"1000x1000", "aspect ratio"},
		},
		{
			name:  "one off",
			width: 3000, height: 4201,
			wantContains: []string{"3000x4201", "3000x4200"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDimensions(tt.width, tt.height)
			if err == nil {
				t.Fatalf("ValidateDimensions(%d, %d) = nil, want error", tt.width, tt.height)
			}
			msg := err.Error()
			for _, want := range tt.wantContains {
				if !strings.Contains(msg, want) {
					t.Errorf("error message missing %q:\n%s", want, msg)
				}
			}
		})
	}
}

func TestValidateDimensions_RatioWithinTolerance(t *testing.T) {
	// 1600x2240 is exactly 5:7, so the diagnostic must not complain about
	// the aspect ratio, only about the tier mismatch
	err := ValidateDimensions(1600, 2240)
	if err == nil {
		t.Fatal("expected error for non-tier dimensions")
	}
	if strings.Contains(err.Error(), "aspect ratio") {
		t.Errorf("ratio within tolerance should not be reported: %s", err.Error())
	}
}

func TestDimensionString(t *testing.T) {
	d := Dimension{Width: 750, Height: 1050}
	if got := d.String(); got != "750x1050" {
		t.Errorf("String() = %q, want %q", got, "750x1050")
	}
}
