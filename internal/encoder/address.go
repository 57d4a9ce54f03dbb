// Package encoder converts control values into the register addresses and
// hex payloads understood by the switcher.
package encoder

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// Address is a 3 byte register address: [category/fixed][channel][offset].
type Address [3]byte

// Literal addresses used by the device.
var (
	MacroTrigger = Address{0x50, 0x05, 0x04}

	MemoryLoad       = Address{0x0A, 0x00, 0x00}
	MemorySave       = Address{0x0A, 0x00, 0x01}
	MemoryInitialize = Address{0x0A, 0x00, 0x02}

	TransitionType = Address{0x00, 0x14, 0x00}
	MixType        = Address{0x00, 0x14, 0x01}
	WipeType       = Address{0x00, 0x14, 0x03}
	WipeDirection  = Address{0x00, 0x14, 0x05}
	ProgramSelect  = Address{0x00, 0x1B, 0x00}
	PreviewSelect  = Address{0x00, 0x1B, 0x01}
)

// Compose builds a channel scoped address 00 <channel> <offset>.
func Compose(channel, offset byte) Address {
	return Address{0x00, channel, offset}
}

// Literal builds an address from its three bytes.
func Literal(hi, mid, lo byte) Address {
	return Address{hi, mid, lo}
}

// AddressFromUint takes the low 24 bits of v, e.g. 0x02015D.
func AddressFromUint(v uint32) Address {
	return Address{byte(v >> 16), byte(v >> 8), byte(v)}
}

// ParseAddress reads 6 hex digits with an optional 0x prefix.
func ParseAddress(s string) (Address, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	if len(s) != 6 {
		return Address{}, fmt.Errorf("address %q: want 6 hex digits", s)
	}
	var a Address
	if _, err := hex.Decode(a[:], []byte(s)); err != nil {
		return Address{}, fmt.Errorf("address %q: %w", s, err)
	}
	return a, nil
}

// Uint returns the address as a 24 bit integer.
func (a Address) Uint() uint32 {
	return uint32(a[0])<<16 | uint32(a[1])<<8 | uint32(a[2])
}

func (a Address) String() string {
	return Hex(a[:]...)
}
