package command

import (
	"encoding/json"
	"fmt"

	"switchctl/internal/encoder"
)

// Sink receives register writes. Delivery is fire-and-forget.
type Sink interface {
	SendCommand(address, value string)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(address, value string)

func (f SinkFunc) SendCommand(address, value string) { f(address, value) }

// Write is one register write: a 3 byte address and 1..N value bytes.
type Write struct {
	Address encoder.Address
	Value   []byte
}

func (w Write) String() string {
	return fmt.Sprintf("%s,%s", w.Address, encoder.Hex(w.Value...))
}

// MarshalJSON renders the write in its wire form.
func (w Write) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Address string `json:"address"`
		Value   string `json:"value"`
	}{w.Address.String(), encoder.Hex(w.Value...)})
}

func write(a encoder.Address, value ...byte) Write {
	return Write{Address: a, Value: value}
}

// Params holds raw option values keyed by option id, as decoded from a request.
type Params map[string]interface{}

// Values holds option values after they have been checked against the schema.
type Values map[string]float64

func (v Values) byteOf(id string) byte {
	return encoder.Byte(v[id], 0, 0xFF)
}
