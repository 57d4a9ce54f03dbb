package device

import (
	"context"
	"io"
	"net"
	"reflect"
	"testing"
	"time"

	"switchctl/internal/command"
	"switchctl/internal/logger"
)

func TestFrame(t *testing.T) {
	got := string(Frame("001604", "0A"))
	if got != "\x02DTH001604,0A;" {
		t.Fatalf("Frame: got=%q", got)
	}
}

func TestTCPSink_SendsFramesInOrder(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer ln.Close()

	received := make(chan []byte, 1)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			received <- nil
			return
		}
		defer conn.Close()
		_, _ = conn.Write([]byte("\x06"))
		data, _ := io.ReadAll(conn)
		received <- data
	}()

	addr := ln.Addr().(*net.TCPAddr)
	sink := NewTCPSink(logger.Discard(), TCPConf{Host: "127.0.0.1", Port: addr.Port, Timeout: time.Second})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := sink.Start(ctx); err != nil {
		t.Fatalf("Start err=%v", err)
	}

	reg := command.NewRegistry(command.DefaultChoices())
	if _, err := reg.Run("dsk_on_off", command.Params{"dsk": 0x19, "pgm_state": 1, "pvw_state": 0}, sink); err != nil {
		t.Fatalf("Run err=%v", err)
	}
	if err := sink.Stop(); err != nil {
		t.Fatalf("Stop err=%v", err)
	}

	select {
	case data := <-received:
		want := "\x02DTH001901,01;\x02DTH001902,00;"
		if string(data) != want {
			t.Fatalf("received %q want %q", data, want)
		}
	case <-time.After(3 * time.Second):
		t.Fatalf("timed out waiting for frames")
	}
}

func TestTCPSink_DialFailure(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	port := ln.Addr().(*net.TCPAddr).Port
	ln.Close()

	sink := NewTCPSink(logger.Discard(), TCPConf{Host: "127.0.0.1", Port: port, Timeout: 200 * time.Millisecond})
	if err := sink.Start(context.Background()); err == nil {
		t.Fatalf("expected dial error")
	}
	// Writes without a connection are dropped, not panics.
	sink.SendCommand("500504", "00")
}

type recorder struct {
	name  string
	calls *[]string
}

func (r recorder) SendCommand(address, value string) {
	*r.calls = append(*r.calls, r.name+":"+address+","+value)
}

func TestFanout(t *testing.T) {
	var calls []string
	f := Fanout{recorder{"a", &calls}, LogSink{Log: logger.Discard()}, recorder{"b", &calls}, Discard{}}

	command.Send(f, []command.Write{
		{Value: []byte{0x01}},
	})

	want := []string{"a:000000,01", "b:000000,01"}
	if !reflect.DeepEqual(calls, want) {
		t.Fatalf("got=%v want=%v", calls, want)
	}
}
