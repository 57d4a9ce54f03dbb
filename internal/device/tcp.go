package device

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"time"

	"switchctl/internal/logger"
)

// DefaultPort is the switcher's LAN control port.
const DefaultPort = 8023

// TCPConf is the LAN transport config.
type TCPConf struct {
	Host    string
	Port    int
	Timeout time.Duration
}

// TCPSink sends DTH frames over one TCP connection opened at Start.
type TCPSink struct {
	stream
	cfg TCPConf
}

// NewTCPSink конструктор.
func NewTCPSink(log logger.Logger, cfg TCPConf) *TCPSink {
	if cfg.Port == 0 {
		cfg.Port = DefaultPort
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 2 * time.Second
	}
	return &TCPSink{
		stream: stream{log: log, module: "device-tcp"},
		cfg:    cfg,
	}
}

// Addr returns host:port.
func (t *TCPSink) Addr() string {
	return net.JoinHostPort(t.cfg.Host, strconv.Itoa(t.cfg.Port))
}

// Start dials the switcher once. The connection is closed when ctx ends.
func (t *TCPSink) Start(ctx context.Context) error {
	d := net.Dialer{Timeout: t.cfg.Timeout}
	conn, err := d.DialContext(ctx, "tcp", t.Addr())
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", t.Addr(), err)
	}
	t.attach(conn)
	t.log.With(logger.Fields{"module": t.module}).Infof("connected to %s", t.Addr())

	go func() {
		<-ctx.Done()
		_ = t.Stop()
	}()
	return nil
}

// Stop closes the connection.
func (t *TCPSink) Stop() error {
	return t.close()
}
