package encoder

import (
	"math"
	"strings"
)

const (
	// MaxTenths is the longest transition time, 4.0s.
	MaxTenths  = 40
	maxSeconds = 4.0
)

const hexDigits = "0123456789ABCDEF"

// Hex renders each byte as two uppercase hex digits with no separators.
func Hex(b ...byte) string {
	var sb strings.Builder
	sb.Grow(len(b) * 2)
	for _, v := range b {
		sb.WriteByte(hexDigits[v>>4])
		sb.WriteByte(hexDigits[v&0x0F])
	}
	return sb.String()
}

// Byte clamps v into [lo, hi] and rounds it to the nearest integer.
// The bounds themselves are limited to [0, 255]. NaN becomes lo.
func Byte(v float64, lo, hi int) byte {
	if lo < 0 {
		lo = 0
	}
	if hi > 0xFF {
		hi = 0xFF
	}
	if hi < lo {
		hi = lo
	}
	if math.IsNaN(v) {
		return byte(lo)
	}
	r := math.Round(clamp(v, float64(lo), float64(hi)))
	return byte(r)
}

// Tenths quantizes a duration in seconds to tenths, 0..40.
func Tenths(seconds float64) byte {
	if math.IsNaN(seconds) {
		return 0
	}
	return Byte(clamp(seconds, 0, maxSeconds)*10, 0, MaxTenths)
}

// Bool keeps the low bit of an on/off state.
func Bool(v float64) byte {
	return Byte(v, 0, 0xFF) & 0x01
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
