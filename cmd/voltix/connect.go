package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/loopholelabs/logging"
	"github.com/loopholelabs/logging/types"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/moffa90/go-voltix/config"
	"github.com/moffa90/go-voltix/internal/simulator"
	"github.com/moffa90/go-voltix/metrics"
	"github.com/moffa90/go-voltix/probe"
	"github.com/moffa90/go-voltix/transport"
	"github.com/moffa90/go-voltix/usb"
)

// env is everything a subcommand needs to reach a device.
type env struct {
	log    types.RootLogger
	schema *config.Schema
	opener  transport.Opener
	opts    []probe.Option
	metrics *metrics.Metrics
}

func loadSchema() (*config.Schema, error) {
	if rootConf == "" {
		return &config.Schema{}, nil
	}
	return config.ReadSchema(rootConf)
}

// setup prepares logging, metrics and the device opener. The metrics
// endpoint is only served when serve is set, for commands that stay
// connected long enough to be scraped.
func setup(serve bool) (*env, error) {
	schema, err := loadSchema()
	if err != nil {
		return nil, err
	}

	log := logging.New(logging.Zerolog, "voltix", os.Stderr)
	log.SetLevel(types.WarnLevel)
	if schema.Log != nil {
		if err := schema.Log.Apply(log); err != nil {
			return nil, err
		}
	}
	if rootDebug {
		log.SetLevel(types.DebugLevel)
	}

	e := &env{
		log:    log,
		schema: schema,
		opts:   []probe.Option{probe.WithLogger(log)},
	}

	if schema.Probe != nil && schema.Probe.PinLimit > 0 {
		e.opts = append(e.opts, probe.WithPinLimit(schema.Probe.PinLimit))
	}

	if addr := metricsAddr(schema); addr != "" {
		if serve {
			e.metrics = startMetrics(addr, schema, log)
			e.opts = append(e.opts, probe.WithObserver(e.metrics))
		} else {
			log.Warn().Str("addr", addr).Msg("metrics are only served by gpio watch")
		}
	}

	if e.opener, err = chooseOpener(schema, log); err != nil {
		return nil, err
	}
	return e, nil
}

// metricsAddr returns the metrics listen address; the flag wins over the file.
func metricsAddr(schema *config.Schema) string {
	if rootMetrics != "" {
		return rootMetrics
	}
	if schema.Metrics != nil {
		return schema.Metrics.Listen
	}
	return ""
}

// startMetrics serves a Prometheus registry on addr.
func startMetrics(addr string, schema *config.Schema, log types.Logger) *metrics.Metrics {
	cfg := metrics.DefaultConfig()
	if schema.Metrics != nil && schema.Metrics.Namespace != "" {
		cfg.Namespace = schema.Metrics.Namespace
	}

	reg := prometheus.NewRegistry()
	m := metrics.NewWithConfig(reg, cfg)

	// Add the default go metrics
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))

	go func() {
		err := http.ListenAndServe(addr, mux)
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Str("addr", addr).Err(err).Msg("metrics server stopped")
		}
	}()
	log.Info().Str("addr", addr).Msg("serving metrics")
	return m
}

func chooseOpener(schema *config.Schema, log types.Logger) (transport.Opener, error) {
	sim := rootSimulate
	if sim == "" && schema.Probe != nil {
		sim = schema.Probe.Simulate
	}
	if sim != "" {
		return simulatedOpener(sim)
	}

	cfg, err := usbConfig(schema.USB, log)
	if err != nil {
		return nil, err
	}
	return usb.Opener(cfg), nil
}

func simulatedOpener(kind string) (transport.Opener, error) {
	var dev *simulator.Device
	switch strings.ToLower(kind) {
	case "board":
		dev = simulator.NewBoard()
	case "probe":
		dev = simulator.NewProbe()
	default:
		return nil, fmt.Errorf("unknown simulated device %q (want board or probe)", kind)
	}
	return func(ctx context.Context) (transport.Session, error) {
		return dev, nil
	}, nil
}

func usbConfig(s *config.USBSchema, log types.Logger) (usb.Config, error) {
	cfg := usb.Config{Logger: log, Serial: rootSerial}
	if s == nil {
		return cfg, nil
	}

	vid, pid, err := s.IDs()
	if err != nil {
		return cfg, err
	}
	timeout, err := s.TimeoutDuration()
	if err != nil {
		return cfg, err
	}

	cfg.VendorID = vid
	cfg.ProductID = pid
	cfg.ProductPrefix = s.Product
	cfg.ConfigNum = s.Config
	cfg.Interface = s.Interface
	cfg.EndpointIn = s.EndpointIn
	cfg.EndpointOut = s.EndpointOut
	cfg.Timeout = timeout
	if cfg.Serial == "" {
		cfg.Serial = s.Serial
	}
	return cfg, nil
}

// withDevice runs fn against the selected device.
func withDevice(ctx context.Context, fn func(dev *probe.Device) error) error {
	return connectDevice(ctx, false, fn)
}

// withServingDevice is withDevice for long-running commands; it also serves
// the metrics endpoint when one is configured.
func withServingDevice(ctx context.Context, fn func(dev *probe.Device) error) error {
	return connectDevice(ctx, true, fn)
}

func connectDevice(ctx context.Context, serve bool, fn func(dev *probe.Device) error) error {
	e, err := setup(serve)
	if err != nil {
		return err
	}
	return probe.Connect(ctx, e.opener, fn, e.opts...)
}
