// Package device delivers register writes to the switcher.
//
// Every write is one DTH frame: STX "DTH" <address> "," <value> ";".
// Delivery is fire-and-forget: failures are logged, never retried, and
// replies from the device are drained without being interpreted.
package device

import (
	"errors"
	"io"
	"sync"

	"switchctl/internal/logger"
)

const stx = 0x02

// ErrNotConnected is logged when a write arrives before Start or after Stop.
var ErrNotConnected = errors.New("device: not connected")

// Frame builds one DTH frame.
func Frame(address, value string) []byte {
	b := make([]byte, 0, 1+3+len(address)+1+len(value)+1)
	b = append(b, stx)
	b = append(b, "DTH"...)
	b = append(b, address...)
	b = append(b, ',')
	b = append(b, value...)
	return append(b, ';')
}

// stream writes frames to a byte stream. Frames are written whole under
// the lock, so concurrent actions never interleave inside a frame and each
// SendCommand lands in call order.
type stream struct {
	log    logger.Logger
	module string

	mu sync.Mutex
	rw io.ReadWriteCloser
}

func (s *stream) attach(rw io.ReadWriteCloser) {
	s.mu.Lock()
	s.rw = rw
	s.mu.Unlock()
	go s.drain(rw)
}

func (s *stream) SendCommand(address, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.rw == nil {
		s.log.With(logger.Fields{"module": s.module}).Errorf("DTH%s,%s dropped: %v", address, value, ErrNotConnected)
		return
	}
	if _, err := s.rw.Write(Frame(address, value)); err != nil {
		s.log.With(logger.Fields{"module": s.module}).Errorf("DTH%s,%s write failed: %v", address, value, err)
		return
	}
	s.log.With(logger.Fields{"module": s.module}).Debugf("DTH%s,%s sent", address, value)
}

// drain discards replies (ACK, NAK, ...) so the device never blocks on a full buffer.
func (s *stream) drain(r io.Reader) {
	buf := make([]byte, 256)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			s.log.With(logger.Fields{"module": s.module}).Debugf("device replied %q", buf[:n])
		}
		if err != nil {
			if !errors.Is(err, io.EOF) {
				s.log.With(logger.Fields{"module": s.module}).Debugf("reader stopped: %v", err)
			}
			return
		}
	}
}

func (s *stream) close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.rw == nil {
		return nil
	}
	err := s.rw.Close()
	s.rw = nil
	return err
}
