package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"switchctl/internal/config"
)

func TestNewLogger_BadLevel(t *testing.T) {
	if _, err := NewLogger(config.LogConf{Level: "loud"}); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}

func TestNewLogger_FileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "switchctl.log")
	log, err := NewLogger(config.LogConf{Level: "debug", File: path, MaxSizeMB: 1})
	if err != nil {
		t.Fatalf("NewLogger err=%v", err)
	}
	if log.GetLevel() != "debug" {
		t.Fatalf("level: got=%s", log.GetLevel())
	}

	log.With(Fields{"module": "test"}).Info("hello")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "hello") || !strings.Contains(string(data), "module=test") {
		t.Fatalf("unexpected log content: %s", data)
	}
}
