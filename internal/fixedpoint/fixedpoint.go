// Package fixedpoint converts geographic coordinates between their decimal
// form and the scaled integer representation used on the ledger. A coordinate
// x is transmitted as round(x * 1e6), which preserves six decimal places over
// the whole latitude/longitude range.
package fixedpoint

import (
	"fmt"
	"math"

	"github.com/dmitrijs2005/locshare/internal/common"
)

// Scale is the fixed-point multiplier applied before transmission.
const Scale = 1_000_000

// Encode converts a decimal coordinate to its fixed-point integer form.
func Encode(coord float64) int64 {
	return int64(math.Round(coord * Scale))
}

// Decode converts a fixed-point integer back to a decimal coordinate.
func Decode(v int64) float64 {
	return float64(v) / Scale
}

// ValidateLatitude returns ErrValidation if lat is outside [-90, 90].
func ValidateLatitude(lat float64) error {
	if math.IsNaN(lat) || lat < -90 || lat > 90 {
		return fmt.Errorf("%w: latitude %v out of range", common.ErrValidation, lat)
	}
	return nil
}

// ValidateLongitude returns ErrValidation if lng is outside [-180, 180].
func ValidateLongitude(lng float64) error {
	if math.IsNaN(lng) || lng < -180 || lng > 180 {
		return fmt.Errorf("%w: longitude %v out of range", common.ErrValidation, lng)
	}
	return nil
}
