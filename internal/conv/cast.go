package conv

import (
	"fmt"
	"math"
)

// IntToUint32 converts v for storage in a uint32 header field.
func IntToUint32(v int) (uint32, error) {
	if v < 0 {
		return 0, fmt.Errorf("conv: %d cannot be stored as uint32 (negative)", v)
	}
	if uint64(v) > math.MaxUint32 {
		return 0, fmt.Errorf("conv: %d cannot be stored as uint32 (too large)", v)
	}
	return uint32(v), nil
}

// Uint32ToInt converts a uint32 header field to int. It only fails on
// platforms where int is 32 bits wide.
func Uint32ToInt(v uint32) (int, error) {
	if uint64(v) > uint64(math.MaxInt) {
		return 0, fmt.Errorf("conv: %d does not fit in int", v)
	}
	return int(v), nil
}
