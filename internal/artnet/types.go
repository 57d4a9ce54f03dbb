package artnet

import "switchctl/internal/encoder"

// ChannelValue defines an ArtNet Universe and the value of the DMX channel.
type ChannelValue struct {
	Universe uint16 // Universe: старший байт - SubUni, младший байт - Net.
	Channel  uint16 // Channel: номер байта (канал).
	Value    uint8  // Value: значение для канала.
}

// Universe wraps the 512 byte array for convenience.
type Universe [512]byte

func (u Universe) toByteSlice() [512]byte {
	return u
}

// UniverseStateMap holds the state of all used universes.
type UniverseStateMap map[uint16]Universe

// Mapping mirrors one switcher register onto one DMX channel.
type Mapping struct {
	Address  encoder.Address // Address - адрес регистра.
	Universe uint16          // Universe - вселенная DMX.
	Channel  uint16          // Channel - канал (0-511).
}

// Conf настройки зеркала.
type Conf struct {
	CIDR     string    // CIDR - сеть Art-Net.
	FPS      int       // FPS - ограничение частоты отправки.
	Mappings []Mapping // Mappings - таблица регистр -> канал.
}

// NodeInfo is what debugDevices reports about a discovered node.
type NodeInfo struct {
	Name    string
	Outputs []string
}
