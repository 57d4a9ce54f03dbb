package config

import (
	"fmt"
	"net"

	"switchctl/internal/encoder"
)

// Validate проверяет конфигурацию. Не изменяет её.
func (c *Config) Validate() error {
	switch c.Device.Transport {
	case "tcp":
		if c.Device.Host == "" {
			return fmt.Errorf("device: host is required for tcp transport")
		}
		if c.Device.Port <= 0 || c.Device.Port > 65535 {
			return fmt.Errorf("device: port %d out of range", c.Device.Port)
		}
	case "serial":
		if c.Device.Serial == "" {
			return fmt.Errorf("device: serial port is required for serial transport")
		}
		if c.Device.Baud <= 0 {
			return fmt.Errorf("device: baud must be > 0")
		}
	case "none":
	default:
		return fmt.Errorf("device: unknown transport %q", c.Device.Transport)
	}

	if c.MQTT.Enabled {
		if c.MQTT.Host == "" {
			return fmt.Errorf("mqtt: server is required")
		}
		if c.MQTT.Qos > 2 {
			return fmt.Errorf("mqtt: qos %d out of range", c.MQTT.Qos)
		}
		switch c.MQTT.Encoding {
		case "json", "msgpack":
		default:
			return fmt.Errorf("mqtt: unknown encoding %q", c.MQTT.Encoding)
		}
	}

	if c.Tally.Enabled {
		if _, _, err := net.ParseCIDR(c.Tally.CIDR); err != nil {
			return fmt.Errorf("tally: %w", err)
		}
		seen := make(map[string]bool)
		for i, m := range c.Tally.Map {
			a, err := encoder.ParseAddress(m.Address)
			if err != nil {
				return fmt.Errorf("tally map %d: %w", i, err)
			}
			if m.Channel > 511 {
				return fmt.Errorf("tally map %d: channel %d out of range", i, m.Channel)
			}
			if seen[a.String()] {
				return fmt.Errorf("tally map %d: address %s mapped twice", i, a)
			}
			seen[a.String()] = true
		}
	}

	return nil
}
