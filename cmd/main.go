package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"switchctl/internal/artnet"
	"switchctl/internal/clientmqtt"
	"switchctl/internal/command"
	"switchctl/internal/config"
	"switchctl/internal/device"
	"switchctl/internal/encoder"
	"switchctl/internal/logger"
)

var (
	configFile string
	runAction  string
	runParams  string
)

func init() {
	flag.StringVar(&configFile, "config", "configs/conf.toml", "Path to configuration file")
	flag.StringVar(&runAction, "run", "", "Run one action and exit")
	flag.StringVar(&runParams, "params", "{}", "JSON options for -run")
}

// starter is a sink with a connection lifecycle.
type starter interface {
	command.Sink
	Start(ctx context.Context) error
	Stop() error
}

func main() {
	flag.Parse()
	cfg, err := config.NewConfig(configFile)
	if err != nil {
		fmt.Printf("configuration file read error: %v", err)
		os.Exit(1)
	}

	log, err := logger.NewLogger(cfg.Logger)
	if err != nil {
		fmt.Printf("failed to create a logger: %v", err)
		os.Exit(1)
	}

	log.With(logger.Fields{"module": "logger"}).Debug("newLogger created ok")

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	defer cancel()

	registry := command.NewRegistry(command.DefaultChoices())

	dev := newDevice(log, cfg.Device)
	sinks := device.Fanout{}
	var devErr error
	if dev != nil {
		if devErr = dev.Start(ctx); devErr != nil {
			log.With(logger.Fields{"module": "device"}).Errorf("failed to connect to the switcher: %v", devErr)
		}
		sinks = append(sinks, dev)
	}
	if cfg.Device.Verbose {
		sinks = append(sinks, device.LogSink{Log: log})
	}

	var tally *artnet.ArtNet
	if cfg.Tally.Enabled {
		tally, err = artnet.NewController(log, ConvertConfigTally(cfg.Tally))
		if err != nil {
			log.With(logger.Fields{"module": "art-net"}).Errorf("error while creating a new controller art-net. %v", err)
			os.Exit(1)
		}
		if err = tally.Start(ctx); err != nil {
			log.Error("failed to start art-net service:", err.Error())
			cancel()
		}
		sinks = append(sinks, tally)
		log.With(logger.Fields{"module": "art-net"}).Debug("NewController created ok")
	}

	if runAction != "" {
		os.Exit(runOnce(log, registry, sinks, dev, devErr))
	}

	var client *clientmqtt.ClientMQTT
	if cfg.MQTT.Enabled {
		client, err = clientmqtt.NewClient(log, ConvertConfigClientMQTT(cfg.MQTT), registry, sinks)
		if err != nil {
			log.With(logger.Fields{"module": "mqtt"}).Errorf("error while creating MQTT client. %v", err)
			os.Exit(1)
		}
		log.With(logger.Fields{"module": "mqtt"}).Debug("NewClient created ok")

		if err = client.Start(ctx); err != nil {
			log.Error("failed to start MQTT service:", err.Error())
			cancel()
		}
	}

	<-ctx.Done()

	if client != nil {
		if err := client.Stop(); err != nil {
			log.Error("failed to stop MQTT service:", err.Error())
		}
	}

	if tally != nil {
		tally.Stop()
	}

	if dev != nil {
		if err := dev.Stop(); err != nil {
			log.Error("failed to close the switcher connection:", err.Error())
		}
	}

	log.Info("shutdown complete")
}

func newDevice(log *logger.Log, cfg config.DeviceConf) starter {
	switch cfg.Transport {
	case "tcp":
		return device.NewTCPSink(log, device.TCPConf{
			Host:    cfg.Host,
			Port:    cfg.Port,
			Timeout: time.Duration(cfg.TimeoutMs) * time.Millisecond,
		})
	case "serial":
		return device.NewSerialSink(log, device.SerialConf{Name: cfg.Serial, Baud: cfg.Baud})
	default:
		return nil
	}
}

// runOnce dispatches one action. Exit codes: 1 unknown action, 2 bad
// params, 3 switcher not connected (nothing was delivered).
func runOnce(log *logger.Log, registry *command.Registry, sink command.Sink, dev starter, devErr error) int {
	if devErr != nil {
		log.Errorf("run %s: switcher not connected: %v", runAction, devErr)
		return 3
	}
	var params command.Params
	if err := json.Unmarshal([]byte(runParams), &params); err != nil {
		log.Errorf("bad -params: %v", err)
		return 2
	}
	writes, err := registry.Run(runAction, params, sink)
	if err != nil {
		log.Errorf("run %s: %v", runAction, err)
		return 1
	}
	for _, w := range writes {
		fmt.Println(w)
	}
	if dev != nil {
		if err := dev.Stop(); err != nil {
			log.Error("failed to close the switcher connection:", err.Error())
		}
	}
	return 0
}

// ConvertConfigClientMQTT преобразует структуры.
func ConvertConfigClientMQTT(cfg config.MQTTConf) clientmqtt.MQTTConf {
	return clientmqtt.MQTTConf{
		ClientID: cfg.ClientID,
		Schema:   "tcp",
		Host:     cfg.Host,
		Port:     cfg.Port,
		User:     cfg.User,
		Password: cfg.Password,
		Qos:      cfg.Qos,
		Prefix:   cfg.Prefix,
		Encoding: cfg.Encoding,
	}
}

// ConvertConfigTally преобразует структуры. Адреса уже проверены в config.Validate.
func ConvertConfigTally(cfg config.TallyConf) artnet.Conf {
	out := artnet.Conf{CIDR: cfg.CIDR, FPS: cfg.FPS}
	for _, e := range cfg.Map {
		a, err := encoder.ParseAddress(e.Address)
		if err != nil {
			continue
		}
		out.Mappings = append(out.Mappings, artnet.Mapping{Address: a, Universe: e.Universe, Channel: e.Channel})
	}
	return out
}
