package clientmqtt

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"

	"switchctl/internal/command"
)

// codec reads request payloads and writes echo payloads.
type codec interface {
	Decode(data []byte) (command.Params, error)
	Encode(v interface{}) ([]byte, error)
}

func newCodec(name string) (codec, error) {
	switch name {
	case "", "json":
		return jsonCodec{}, nil
	case "msgpack":
		return msgpackCodec{}, nil
	default:
		return nil, fmt.Errorf("unknown payload encoding %q", name)
	}
}

type jsonCodec struct{}

func (jsonCodec) Decode(data []byte) (command.Params, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return command.Params{}, nil
	}
	var m map[string]interface{}
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return command.Params(m), nil
}

func (jsonCodec) Encode(v interface{}) ([]byte, error) {
	return json.Marshal(v)
}

type msgpackCodec struct{}

func (msgpackCodec) Decode(data []byte) (command.Params, error) {
	if len(data) == 0 {
		return command.Params{}, nil
	}
	var m map[string]interface{}
	if err := msgpack.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("msgpack unmarshaling: %w", err)
	}
	return command.Params(m), nil
}

func (msgpackCodec) Encode(v interface{}) ([]byte, error) {
	data, err := msgpack.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("msgpack marshaling: %w", err)
	}
	return data, nil
}
