package artnet

import (
	"testing"

	"switchctl/internal/encoder"
	"switchctl/internal/logger"
)

func TestSendCommand_MirrorsMappedRegisters(t *testing.T) {
	pgm := encoder.Compose(0x19, 0x01)
	c := newMirror(logger.Discard(), []Mapping{
		{Address: pgm, Universe: 0, Channel: 10},
		{Address: pgm, Universe: 0x0102, Channel: 0},
	})

	c.SendCommand("001901", "01")

	select {
	case snap := <-c.sendTrigger:
		if snap[0][10] != 1 {
			t.Fatalf("universe 0 channel 10 = %d", snap[0][10])
		}
		if snap[0x0102][0] != 1 {
			t.Fatalf("universe 0x0102 channel 0 = %d", snap[0x0102][0])
		}
	default:
		t.Fatalf("no snapshot queued")
	}
}

func TestSendCommand_UsesFirstValueByte(t *testing.T) {
	c := newMirror(logger.Discard(), []Mapping{{Address: encoder.Compose(0x16, 0x05), Channel: 3}})

	c.SendCommand("001605", "7C0C")

	snap := <-c.sendTrigger
	if snap[0][3] != 0x7C {
		t.Fatalf("channel 3 = %#x", snap[0][3])
	}
}

func TestSendCommand_Ignored(t *testing.T) {
	c := newMirror(logger.Discard(), []Mapping{{Address: encoder.Compose(0x19, 0x01), Channel: 1}})

	for _, tc := range []struct{ address, value string }{
		{"001902", "01"}, // unmapped
		{"zz", "01"},     // bad address
		{"001901", ""},   // no value
		{"001901", "G1"}, // bad hex
	} {
		c.SendCommand(tc.address, tc.value)
	}

	select {
	case snap := <-c.sendTrigger:
		u := snap[0]
		t.Fatalf("unexpected snapshot %v", u[:4])
	default:
	}
}

func TestTriggerSend_DoesNotBlock(t *testing.T) {
	c := newMirror(logger.Discard(), []Mapping{{Address: encoder.Compose(0x19, 0x01), Channel: 1}})
	for i := 0; i < cap(c.sendTrigger)+10; i++ {
		c.SendCommand("001901", "01")
	}
	if len(c.sendTrigger) != cap(c.sendTrigger) {
		t.Fatalf("queue len=%d", len(c.sendTrigger))
	}
}

func TestState(t *testing.T) {
	s := NewState()
	s.SetChannel(1, 511, 9)
	s.SetChannel(1, 512, 9) // out of range, ignored
	s.SetChannelValues([]ChannelValue{{Universe: 2, Channel: 0, Value: 4}})

	got := s.Get()
	if got[1][511] != 9 || got[2][0] != 4 {
		t.Fatalf("state=%v %v", got[1][511], got[2][0])
	}

	// Get returns a copy.
	u := got[1]
	u[0] = 1
	got[1] = u
	if s.Get()[1][0] != 0 {
		t.Fatalf("Get leaked internal state")
	}
}

func TestUniverseToAddress(t *testing.T) {
	a := universeToAddress(0x0203)
	if a.Net != 0x02 || a.SubUni != 0x03 {
		t.Fatalf("address=%+v", a)
	}
}

func TestFindArtNetIP_BadCIDR(t *testing.T) {
	if _, err := FindArtNetIP("not-a-cidr"); err == nil {
		t.Fatalf("expected error")
	}
}
