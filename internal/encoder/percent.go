package encoder

import "math"

const (
	mask14    = 0x3FFF
	wrap14    = 0x4000
	mask7     = 0x7F
	maxTenths = 1000
)

// UnsignedPercent encodes p in [0, 100] as tenths of a percent split over
// two 7 bit bytes, MSB first.
func UnsignedPercent(p float64) [2]byte {
	return Split14(percentTenths(p, 0))
}

// SignedPercent encodes p in [-100, 100]. Negative values are stored as
// the 14 bit two's complement of their magnitude.
func SignedPercent(p float64) [2]byte {
	tenths := percentTenths(math.Abs(p), 0)
	if p >= 0 || tenths == 0 {
		return Split14(tenths)
	}
	return Split14((wrap14 - tenths) & mask14)
}

// Split14 spreads a 14 bit value over two bytes holding 7 bits each. The
// high bit of both bytes is always clear.
func Split14(raw uint16) [2]byte {
	raw &= mask14
	return [2]byte{byte(raw>>7) & mask7, byte(raw) & mask7}
}

// Join14 is the inverse of Split14.
func Join14(b [2]byte) uint16 {
	return uint16(b[0]&mask7)<<7 | uint16(b[1]&mask7)
}

// SignedTenths reads a Join14 value back as signed tenths of a percent.
func SignedTenths(raw uint16) int {
	raw &= mask14
	if raw&0x2000 != 0 {
		return int(raw) - wrap14
	}
	return int(raw)
}

func percentTenths(p, lo float64) uint16 {
	if math.IsNaN(p) {
		return 0
	}
	t := math.Round(clamp(p, lo, 100) * 10)
	if t > maxTenths {
		t = maxTenths
	}
	return uint16(t)
}
