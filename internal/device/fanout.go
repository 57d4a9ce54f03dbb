package device

import (
	"switchctl/internal/command"
	"switchctl/internal/logger"
)

// Fanout forwards each write to every sink in order.
type Fanout []command.Sink

func (f Fanout) SendCommand(address, value string) {
	for _, s := range f {
		s.SendCommand(address, value)
	}
}

// LogSink logs every write at info level.
type LogSink struct {
	Log logger.Logger
}

func (l LogSink) SendCommand(address, value string) {
	l.Log.With(logger.Fields{"module": "device"}).Infof("DTH: %s %s", address, value)
}

// Discard drops writes. Used with transport "none".
type Discard struct{}

func (Discard) SendCommand(string, string) {}
