// Package artnet mirrors selected switcher registers onto DMX channels over
// Art-Net, so lighting desks and tally boxes can follow PGM/PVW state.
package artnet

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Haba1234/go-artnet"

	"switchctl/internal/encoder"
	"switchctl/internal/logger"
)

// ArtNet is transport for the ArtNet protocol (DMX over UDP/IP).
type ArtNet struct {
	logger      logger.Logger
	sender      *artnet.Controller
	state       *State
	mappings    map[encoder.Address][]Mapping
	sendTrigger chan UniverseStateMap
	ctx         context.Context
}

// Controller is a convenience interface to use within this application.
type Controller interface {
	SendCommand(address, value string)
	Start(ctx context.Context) error
	Stop()
}

// NewController returns an art-net tally mirror.
func NewController(log logger.Logger, cfg Conf) (*ArtNet, error) {
	ip, err := FindArtNetIP(cfg.CIDR)
	if err != nil {
		return nil, fmt.Errorf("failed to find the art-net IP: %w", err)
	}

	if len(ip) == 0 {
		return nil, errors.New("failed to find the art-net IP: No interface found")
	}

	host, err := os.Hostname()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve hostname: %w", err)
	}

	host = strings.ToLower(strings.Split(host, ".")[0])
	log.With(logger.Fields{"module": "art-net"}).Infof("Using ArtNet IP %s and hostname %s", ip.String(), host)

	fps := cfg.FPS
	if fps <= 0 {
		fps = 1
	}
	senderLogger := artnet.NewDefaultLogger(log.GetLevel())

	control := newMirror(log, cfg.Mappings)
	control.sender = artnet.NewController(host, ip, senderLogger, artnet.MaxFPS(fps))
	return control, nil
}

func newMirror(log logger.Logger, mappings []Mapping) *ArtNet {
	m := make(map[encoder.Address][]Mapping, len(mappings))
	for _, mp := range mappings {
		m[mp.Address] = append(m[mp.Address], mp)
	}
	return &ArtNet{
		logger:      log,
		state:       NewState(),
		mappings:    m,
		sendTrigger: make(chan UniverseStateMap, 100),
	}
}

// Start the ArtNet.
func (c *ArtNet) Start(ctx context.Context) error {
	if err := c.sender.Start(); err != nil {
		return fmt.Errorf("failed to start Controller: %w", err)
	}

	c.ctx = ctx
	go c.sendBackground()
	go c.debugDevices()
	return nil
}

// Stop the ArtNet.
func (c *ArtNet) Stop() {
	c.sender.Stop()
}

// SendCommand mirrors the first value byte of a mapped register onto its
// DMX channels. Unmapped registers are ignored.
func (c *ArtNet) SendCommand(address, value string) {
	a, err := encoder.ParseAddress(address)
	if err != nil {
		c.logger.With(logger.Fields{"module": "art-net"}).Errorf("tally. bad address %q: %v", address, err)
		return
	}
	targets, ok := c.mappings[a]
	if !ok {
		return
	}
	if len(value) < 2 {
		c.logger.With(logger.Fields{"module": "art-net"}).Errorf("tally. bad value %q for %s", value, address)
		return
	}
	v, err := strconv.ParseUint(value[:2], 16, 8)
	if err != nil {
		c.logger.With(logger.Fields{"module": "art-net"}).Errorf("tally. bad value %q for %s: %v", value, address, err)
		return
	}

	values := make([]ChannelValue, 0, len(targets))
	for _, t := range targets {
		values = append(values, ChannelValue{Universe: t.Universe, Channel: t.Channel, Value: uint8(v)})
	}
	c.SetDMXChannelValues(values)
}

func (c *ArtNet) SetDMXChannelValues(values []ChannelValue) {
	c.state.SetChannelValues(values)
	c.triggerSend()
}

// triggerSend never blocks the caller; a skipped snapshot is superseded
// by the next one since each carries the full state.
func (c *ArtNet) triggerSend() {
	select {
	case c.sendTrigger <- c.state.Get():
		c.logger.With(logger.Fields{"module": "art-net"}).Debug("DMX. Отправка в канал")
	default:
		c.logger.With(logger.Fields{"module": "art-net"}).Warn("DMX. Очередь отправки переполнена")
	}
}

func (c *ArtNet) sendBackground() {
	for {
		select {
		case <-c.ctx.Done():
			return
		case data := <-c.sendTrigger:
			for u, dmx := range data {
				// u - адрес.
				// dmx - массив данных до 512 байт.
				c.logger.With(logger.Fields{"module": "art-net"}).Debugf("DMX. Отправка в контроллер по адресу %v", u)
				c.sender.SendDMXToAddress(dmx.toByteSlice(), universeToAddress(u))
			}
		}
	}
}

// universeToAddress converts a dmx universe to art-net address
// universe: старший байт - SubUni, младший байт - Net.
func universeToAddress(universe uint16) artnet.Address {
	v := make([]uint8, 2)
	binary.BigEndian.PutUint16(v, universe)

	return artnet.Address{
		Net:    v[0],
		SubUni: v[1],
	}
}

// NodeToString returns a string representation of the given Node.
func NodeToString(n *artnet.ControlledNode) (string, NodeInfo) {
	var inputs, outputs []string
	var outStr []string
	for _, p := range n.Node.InputPorts {
		inputs = append(inputs, fmt.Sprintf("%s: %s", p.Address.String(), p.Type.String()))
	}

	for _, p := range n.Node.OutputPorts {
		outputs = append(outputs, fmt.Sprintf("%s: %s", p.Address.String(), p.Type.String()))
		outStr = append(outStr, p.Address.String())
	}

	return fmt.Sprintf(
			" | IP=%s name=%q type=%q manufacturer=%q desc=%q inputs=%q outputs=%q",
			n.UDPAddress.String(), n.Node.Name, n.Node.Type,
			n.Node.Manufacturer, n.Node.Description,
			strings.Join(inputs, "; "), strings.Join(outputs, "; "),
		), NodeInfo{
			Name:    n.Node.Name,
			Outputs: outStr,
		}
}

func (c *ArtNet) debugDevices() {
	t := time.NewTicker(30 * time.Second)
	defer t.Stop()
	for {
		select {
		case <-c.ctx.Done():
			return
		case <-t.C:
		}
		nodes := c.sender.Nodes
		descr := make([]string, 0, len(nodes))
		for _, n := range nodes {
			s, info := NodeToString(n)
			descr = append(descr, s)
			c.logger.With(logger.Fields{"module": "art-net", "node": info.Name}).Debugf("outputs: %v", info.Outputs)
		}
		c.logger.With(logger.Fields{"module": "art-net"}).Debugf("Currently %d devices are registered: %v", len(nodes), descr)
	}
}
