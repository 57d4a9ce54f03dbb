package clientmqtt

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"switchctl/internal/command"
	"switchctl/internal/encoder"
	"switchctl/internal/logger"
)

// ClientMQTT структура клиента MQTT.
type ClientMQTT struct {
	ctx       context.Context
	log       logger.Logger
	cfgClient MQTTConf
	client    mqtt.Client
	opts      *mqtt.ClientOptions
	registry  *command.Registry
	sink      command.Sink
	codec     codec
	requests  chan request

	// publish is swapped out in tests.
	publish func(topic string, retained bool, payload []byte)
}

// MQTTClient is a convenience interface to use within this application.
type MQTTClient interface {
	Start(ctx context.Context) error
	Stop() error
}

// NewClient конструктор.
func NewClient(log logger.Logger, cfgClient MQTTConf, registry *command.Registry, sink command.Sink) (*ClientMQTT, error) {
	cd, err := newCodec(cfgClient.Encoding)
	if err != nil {
		return nil, err
	}
	if cfgClient.Prefix == "" {
		cfgClient.Prefix = "switchctl"
	}
	c := &ClientMQTT{
		log:       log,
		cfgClient: cfgClient,
		registry:  registry,
		sink:      sink,
		codec:     cd,
		requests:  make(chan request, 64),
	}
	c.publish = c.brokerPublish
	return c, nil
}

func (c *ClientMQTT) actionTopic(id string) string  { return c.cfgClient.Prefix + "/action/" + id }
func (c *ClientMQTT) catalogTopic(id string) string { return c.cfgClient.Prefix + "/actions/" + id }
func (c *ClientMQTT) writesTopic() string           { return c.cfgClient.Prefix + "/writes" }

func (c *ClientMQTT) Start(ctx context.Context) error {
	if c.log.GetLevel() == "debug" {
		mqtt.ERROR = log.New(os.Stdout, "[ERROR] ", 0)
		mqtt.CRITICAL = log.New(os.Stdout, "[CRIT] ", 0)
		mqtt.WARN = log.New(os.Stdout, "[WARN]  ", 0)
	}

	c.ctx = ctx

	c.opts = c.clientOptions()
	c.client = mqtt.NewClient(c.opts)

	go c.worker()

	token := c.client.Connect()
	select {
	case <-token.Done():
		if token.Error() != nil {
			return token.Error()
		}
	case <-c.ctx.Done():
		return errors.New("context canceled")
	}

	c.log.With(logger.Fields{"module": "mqtt"}).Infof("Status: %v", c.client.IsConnected())
	return nil
}

// clientOptions keeps OrderMatters on: paho then calls messageHandler in
// arrival order and the worker sees requests in that same order.
func (c *ClientMQTT) clientOptions() *mqtt.ClientOptions {
	schema := c.cfgClient.Schema
	if schema == "" {
		schema = "tcp"
	}

	return mqtt.NewClientOptions().
		AddBroker(fmt.Sprintf("%s://%s:%s", schema, c.cfgClient.Host, c.cfgClient.Port)).
		SetUsername(c.cfgClient.User).
		SetPassword(c.cfgClient.Password).
		SetDefaultPublishHandler(c.messageHandler).
		SetOnConnectHandler(c.connectHandler).
		SetConnectionLostHandler(c.connectLostHandler).
		SetClientID(c.cfgClient.ClientID).
		SetOrderMatters(true).
		SetCleanSession(false).
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetConnectRetryInterval(5 * time.Second).
		SetMaxReconnectInterval(5 * time.Second).
		SetKeepAlive(30 * time.Second)
}

func (c *ClientMQTT) Stop() error {
	if c.client != nil && c.client.IsConnected() {
		c.client.Disconnect(500)
	}
	return nil
}

func (c *ClientMQTT) connectHandler(_ mqtt.Client) {
	c.log.With(logger.Fields{"module": "mqtt"}).Info("client connected to server")
	c.sub(c.actionTopic("+"))
	c.PubActions()
}

func (c *ClientMQTT) connectLostHandler(_ mqtt.Client, err error) {
	c.log.With(logger.Fields{"module": "mqtt"}).Errorf("server connect lost: %v", err)
}

func (c *ClientMQTT) messageHandler(_ mqtt.Client, msg mqtt.Message) {
	c.log.With(logger.Fields{"module": "mqtt"}).Debugf("received message: %q from topic: %s", msg.Payload(), msg.Topic())
	select {
	case c.requests <- request{topic: msg.Topic(), payload: msg.Payload()}:
	case <-c.ctx.Done():
	}
}

// worker runs requests one at a time so the writes of one action are
// never interleaved with another's.
func (c *ClientMQTT) worker() {
	for {
		select {
		case <-c.ctx.Done():
			return
		case req := <-c.requests:
			if _, err := c.handle(req); err != nil {
				c.log.With(logger.Fields{"module": "mqtt"}).Errorf("request on %s dropped: %v", req.topic, err)
			}
		}
	}
}

// handle dispatches one request and echoes the writes it produced.
func (c *ClientMQTT) handle(req request) ([]command.Write, error) {
	id, ok := c.actionFromTopic(req.topic)
	if !ok {
		return nil, fmt.Errorf("topic %s is not an action topic", req.topic)
	}

	params, err := c.codec.Decode(req.payload)
	if err != nil {
		return nil, fmt.Errorf("message could not be parsed (%q): %w", req.payload, err)
	}

	writes, err := c.registry.Run(id, params, c.sink)
	if err != nil {
		return nil, err
	}
	c.log.With(logger.Fields{"module": "mqtt", "action": id}).Debugf("sent %d writes", len(writes))

	echo := make([]wireWrite, 0, len(writes))
	for _, w := range writes {
		echo = append(echo, wireWrite{Action: id, Address: w.Address.String(), Value: encoder.Hex(w.Value...)})
	}
	msg, err := c.codec.Encode(echo)
	if err != nil {
		c.log.With(logger.Fields{"module": "mqtt"}).Errorf("writes echo: %v", err)
		return writes, nil
	}
	c.publish(c.writesTopic(), false, msg)
	return writes, nil
}

func (c *ClientMQTT) actionFromTopic(topic string) (string, bool) {
	prefix := c.actionTopic("")
	if !strings.HasPrefix(topic, prefix) {
		return "", false
	}
	id := strings.TrimPrefix(topic, prefix)
	if id == "" || strings.Contains(id, "/") {
		return "", false
	}
	return id, true
}

// PubActions publishes the action catalogue, retained, one topic per action.
func (c *ClientMQTT) PubActions() {
	for _, a := range c.registry.Actions() {
		msg, err := json.Marshal(a)
		if err != nil {
			c.log.With(logger.Fields{"module": "mqtt"}).Errorf("public topic. msg: %v", err)
			continue
		}
		c.publish(c.catalogTopic(a.ID), true, msg)
	}
}

func (c *ClientMQTT) sub(topic string) {
	token := c.client.Subscribe(topic, c.cfgClient.Qos, nil)
	go func() {
		select {
		case <-c.ctx.Done():
			return
		case <-token.Done():
			if token.Error() != nil {
				c.log.With(logger.Fields{"module": "mqtt"}).Errorf("topic %s subscription error. %v", topic, token.Error())
				return
			}
		}
		c.log.With(logger.Fields{"module": "mqtt"}).Debugf("topic %s subscribed", topic)
	}()
}

func (c *ClientMQTT) brokerPublish(topic string, retained bool, payload []byte) {
	token := c.client.Publish(topic, c.cfgClient.Qos, retained, payload)
	go func() {
		select {
		case <-c.ctx.Done():
			return
		case <-token.Done():
			if token.Error() != nil {
				c.log.With(logger.Fields{"module": "mqtt"}).Errorf("error publish topic %s. %v", topic, token.Error())
			}
		}
	}()
}
