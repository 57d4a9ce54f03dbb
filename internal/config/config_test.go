package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestNewConfig_TOML(t *testing.T) {
	path := writeFile(t, "conf.toml", `
[logger]
log-level = "debug"

[device]
transport = "tcp"
host = "192.168.1.20"

[mqtt]
enabled = true
server = "broker.local"
encoding = "msgpack"

[tally]
enabled = true

[[tally.map]]
address = "001B00"
universe = 1
channel = 0
`)

	cfg, err := NewConfig(path)
	if err != nil {
		t.Fatalf("NewConfig err=%v", err)
	}
	if cfg.Logger.Level != "debug" {
		t.Fatalf("log level: got=%q", cfg.Logger.Level)
	}
	// defaults survive a partial file
	if cfg.Device.Port != 8023 || cfg.MQTT.Port != "1883" || cfg.MQTT.Prefix != "switchctl" {
		t.Fatalf("defaults lost: %+v %+v", cfg.Device, cfg.MQTT)
	}
	if cfg.MQTT.Encoding != "msgpack" {
		t.Fatalf("encoding: got=%q", cfg.MQTT.Encoding)
	}
	if len(cfg.Tally.Map) != 1 || cfg.Tally.Map[0].Universe != 1 {
		t.Fatalf("tally map: got=%+v", cfg.Tally.Map)
	}
}

func TestNewConfig_YAML(t *testing.T) {
	path := writeFile(t, "conf.yaml", `
logger:
  log-level: warn
device:
  transport: serial
  serial: /dev/ttyUSB0
  baud: 115200
`)

	cfg, err := NewConfig(path)
	if err != nil {
		t.Fatalf("NewConfig err=%v", err)
	}
	if cfg.Device.Transport != "serial" || cfg.Device.Serial != "/dev/ttyUSB0" || cfg.Device.Baud != 115200 {
		t.Fatalf("device: got=%+v", cfg.Device)
	}
	if cfg.Logger.Level != "warn" {
		t.Fatalf("log level: got=%q", cfg.Logger.Level)
	}
}

func TestNewConfig_MissingFile(t *testing.T) {
	if _, err := NewConfig(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name string
		mut  func(c *Config)
		ok   bool
	}{
		{"tcp ok", func(c *Config) { c.Device.Host = "10.0.0.1" }, true},
		{"tcp without host", func(c *Config) {}, false},
		{"bad port", func(c *Config) { c.Device.Host = "h"; c.Device.Port = 70000 }, false},
		{"none transport", func(c *Config) { c.Device.Transport = "none" }, true},
		{"unknown transport", func(c *Config) { c.Device.Transport = "udp" }, false},
		{"serial without port", func(c *Config) { c.Device.Transport = "serial" }, false},
		{"mqtt without server", func(c *Config) {
			c.Device.Transport = "none"
			c.MQTT.Enabled = true
		}, false},
		{"mqtt bad encoding", func(c *Config) {
			c.Device.Transport = "none"
			c.MQTT.Enabled = true
			c.MQTT.Host = "b"
			c.MQTT.Encoding = "xml"
		}, false},
		{"tally bad address", func(c *Config) {
			c.Device.Transport = "none"
			c.Tally.Enabled = true
			c.Tally.Map = []TallyEntry{{Address: "1B00"}}
		}, false},
		{"tally duplicate address", func(c *Config) {
			c.Device.Transport = "none"
			c.Tally.Enabled = true
			c.Tally.Map = []TallyEntry{{Address: "001B00"}, {Address: "001b00", Channel: 1}}
		}, false},
		{"tally channel out of range", func(c *Config) {
			c.Device.Transport = "none"
			c.Tally.Enabled = true
			c.Tally.Map = []TallyEntry{{Address: "001B00", Channel: 512}}
		}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mut(&cfg)
			err := cfg.Validate()
			if tc.ok && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !tc.ok && err == nil {
				t.Fatalf("expected error, got nil")
			}
		})
	}
}
