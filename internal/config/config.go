package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Config структура конфигурации.
type Config struct {
	Logger LogConf    `toml:"logger" yaml:"logger"` // Logger - конфигурация регистратора.
	Device DeviceConf `toml:"device" yaml:"device"` // Device - подключение к микшеру.
	MQTT   MQTTConf   `toml:"mqtt" yaml:"mqtt"`     // MQTT - конфигурация MQTT клиента.
	Tally  TallyConf  `toml:"tally" yaml:"tally"`   // Tally - зеркалирование регистров в DMX.
}

// LogConf структура конфигурации.
type LogConf struct {
	Level      string `toml:"log-level" yaml:"log-level"`       // Level - уровень логирования.
	File       string `toml:"file" yaml:"file"`                 // File - файл журнала, пусто = stdout.
	MaxSizeMB  int    `toml:"max-size-mb" yaml:"max-size-mb"`   // MaxSizeMB - размер файла до ротации.
	MaxBackups int    `toml:"max-backups" yaml:"max-backups"`   // MaxBackups - число старых файлов.
	MaxAgeDays int    `toml:"max-age-days" yaml:"max-age-days"` // MaxAgeDays - срок хранения.
}

// DeviceConf структура конфигурации.
type DeviceConf struct {
	Transport string `toml:"transport" yaml:"transport"` // Transport - tcp, serial или none.
	Host      string `toml:"host" yaml:"host"`           // Host - адрес микшера.
	Port      int    `toml:"port" yaml:"port"`           // Port - TCP порт микшера.
	TimeoutMs int    `toml:"timeout-ms" yaml:"timeout-ms"`
	Serial    string `toml:"serial" yaml:"serial"` // Serial - имя последовательного порта.
	Baud      int    `toml:"baud" yaml:"baud"`
	Verbose   bool   `toml:"verbose" yaml:"verbose"` // Verbose - журналировать каждую запись.
}

// MQTTConf структура конфигурации.
type MQTTConf struct {
	Enabled  bool   `toml:"enabled" yaml:"enabled"`
	ClientID string `toml:"clientID" yaml:"clientID"` // ClientID - имя клиента.
	Host     string `toml:"server" yaml:"server"`     // Host - адрес MQTT сервера.
	Port     string `toml:"port" yaml:"port"`         // Port - порт MQTT сервера.
	User     string `toml:"user" yaml:"user"`         // User - логин для подключения к MQTT серверу.
	Password string `toml:"password" yaml:"password"` // Password - пароль для подключения к MQTT серверу.
	Qos      byte   `toml:"qos" yaml:"qos"`           // Qos - качество обслуживания.
	Prefix   string `toml:"prefix" yaml:"prefix"`     // Prefix - корень топиков.
	Encoding string `toml:"encoding" yaml:"encoding"` // Encoding - json или msgpack.
}

// TallyConf структура конфигурации.
type TallyConf struct {
	Enabled bool         `toml:"enabled" yaml:"enabled"`
	CIDR    string       `toml:"cidr" yaml:"cidr"` // CIDR - сеть Art-Net.
	FPS     int          `toml:"fps" yaml:"fps"`
	Map     []TallyEntry `toml:"map" yaml:"map"`
}

// TallyEntry связывает адрес регистра с каналом DMX.
type TallyEntry struct {
	Address  string `toml:"address" yaml:"address"`
	Universe uint16 `toml:"universe" yaml:"universe"`
	Channel  uint16 `toml:"channel" yaml:"channel"`
}

// Default возвращает значения по умолчанию.
func Default() Config {
	return Config{
		Logger: LogConf{Level: "info", MaxSizeMB: 10, MaxBackups: 3, MaxAgeDays: 28},
		Device: DeviceConf{Transport: "tcp", Port: 8023, TimeoutMs: 2000, Baud: 9600},
		MQTT: MQTTConf{
			ClientID: "switchctl",
			Port:     "1883",
			Prefix:   "switchctl",
			Encoding: "json",
		},
		Tally: TallyConf{CIDR: "192.168.6.0/24", FPS: 10},
	}
}

// NewConfig конструктор.
func NewConfig(path string) (*Config, error) {
	// default values
	cfg := Default()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err := os.ReadFile(path)
		if err != nil {
			return &cfg, err
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return &cfg, fmt.Errorf("yaml: %w", err)
		}
	default:
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return &cfg, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return &cfg, err
	}
	return &cfg, nil
}
