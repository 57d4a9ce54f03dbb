package device

import (
	"context"
	"fmt"

	"github.com/tarm/serial"

	"switchctl/internal/logger"
)

// SerialConf is the RS-232 transport config.
type SerialConf struct {
	Name string
	Baud int
}

// SerialSink sends DTH frames over RS-232.
type SerialSink struct {
	stream
	cfg SerialConf
}

// NewSerialSink конструктор.
func NewSerialSink(log logger.Logger, cfg SerialConf) *SerialSink {
	if cfg.Baud == 0 {
		cfg.Baud = 9600
	}
	return &SerialSink{
		stream: stream{log: log, module: "device-serial"},
		cfg:    cfg,
	}
}

// Start opens the port. The port is closed when ctx ends.
func (s *SerialSink) Start(ctx context.Context) error {
	port, err := serial.OpenPort(&serial.Config{Name: s.cfg.Name, Baud: s.cfg.Baud})
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", s.cfg.Name, err)
	}
	s.attach(port)
	s.log.With(logger.Fields{"module": s.module}).Infof("opened %s at %d baud", s.cfg.Name, s.cfg.Baud)

	go func() {
		<-ctx.Done()
		_ = s.Stop()
	}()
	return nil
}

// Stop closes the port.
func (s *SerialSink) Stop() error {
	return s.close()
}
