package uber

import (
	"fmt"
	"math"
	"strings"

	"github.com/spf13/cast"
)

// ParseCoordinate coerces a latitude or longitude given as a number or a
// numeric string (as it arrives from flags and config files) to float64.
func ParseCoordinate(v any) (float64, error) {
	if s, ok := v.(string); ok {
		v = strings.TrimSpace(s)
		if v == "" {
			return 0, fmt.Errorf("coordinate is empty")
		}
	}
	f, err := cast.ToFloat64E(v)
	if err != nil {
		return 0, fmt.Errorf("coordinate %v: %w", v, err)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("coordinate %v is not finite", v)
	}
	return f, nil
}
