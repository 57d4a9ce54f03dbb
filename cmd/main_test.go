package main

import (
	"errors"
	"testing"

	"switchctl/internal/command"
	"switchctl/internal/logger"
)

func TestRunOnce(t *testing.T) {
	tests := []struct {
		name   string
		action string
		params string
		devErr error
		code   int
		writes int
	}{
		{name: "ok", action: "run_macro", params: `{"macro": 3}`, code: 0, writes: 1},
		{name: "switcher down", action: "run_macro", params: `{}`, devErr: errors.New("connection refused"), code: 3},
		{name: "unknown action", action: "nope", params: `{}`, code: 1},
		{name: "bad params", action: "run_macro", params: `{"macro":`, code: 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runAction, runParams = tt.action, tt.params
			defer func() { runAction, runParams = "", "{}" }()

			var calls []string
			sink := command.SinkFunc(func(address, value string) { calls = append(calls, address+","+value) })

			code := runOnce(logger.Discard(), command.NewRegistry(command.DefaultChoices()), sink, nil, tt.devErr)
			if code != tt.code {
				t.Fatalf("exit code=%d want %d", code, tt.code)
			}
			if len(calls) != tt.writes {
				t.Fatalf("writes=%v want %d", calls, tt.writes)
			}
		})
	}
}
