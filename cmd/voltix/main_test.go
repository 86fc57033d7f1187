package main

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moffa90/go-voltix/config"
	"github.com/moffa90/go-voltix/internal/simulator"
	"github.com/moffa90/go-voltix/probe"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootSimulate, rootConf, rootMetrics, rootSerial, rootDebug = "", "", "", "", false
	})

	err := rootCmd.Execute()
	return out.String(), err
}

func TestParseOnOff(t *testing.T) {
	for _, s := range []string{"on", "ON", "1", "true"} {
		v, err := parseOnOff(s)
		require.NoError(t, err)
		assert.True(t, v, s)
	}
	for _, s := range []string{"off", "Off", "0", "false"} {
		v, err := parseOnOff(s)
		require.NoError(t, err)
		assert.False(t, v, s)
	}
	_, err := parseOnOff("maybe")
	assert.Error(t, err)
}

func TestParsePin(t *testing.T) {
	pin, err := parsePin("7")
	require.NoError(t, err)
	assert.Equal(t, uint8(7), pin)

	pin, err = parsePin("0x1f")
	require.NoError(t, err)
	assert.Equal(t, uint8(31), pin)

	_, err = parsePin("256")
	assert.Error(t, err)
	_, err = parsePin("-1")
	assert.Error(t, err)
}

func TestUSBConfigFromSchema(t *testing.T) {
	cfg, err := usbConfig(nil, nil)
	require.NoError(t, err)
	assert.Zero(t, cfg.VendorID)

	cfg, err = usbConfig(&config.USBSchema{
		VendorID:   "0x1209",
		ProductID:  "0xDA42",
		Serial:     "VX1",
		EndpointIn: 2,
		Timeout:    "250ms",
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, uint16(0x1209), cfg.VendorID)
	assert.Equal(t, uint16(0xDA42), cfg.ProductID)
	assert.Equal(t, "VX1", cfg.Serial)
	assert.Equal(t, 2, cfg.EndpointIn)
	assert.Equal(t, 250*time.Millisecond, cfg.Timeout)

	_, err = usbConfig(&config.USBSchema{VendorID: "nope"}, nil)
	assert.Error(t, err)
}

func TestSimulatedOpener(t *testing.T) {
	_, err := simulatedOpener("toaster")
	assert.Error(t, err)

	open, err := simulatedOpener("Board")
	require.NoError(t, err)
	sess, err := open(context.Background())
	require.NoError(t, err)
	assert.Equal(t, simulator.ProductBoard, sess.ProductName())
}

func TestInfoCommand(t *testing.T) {
	out, err := execute(t, "--simulate", "probe", "info")
	require.NoError(t, err)

	assert.Contains(t, out, "Voltix Probe")
	assert.Contains(t, out, "gpio_get")
	assert.NotContains(t, out, "bypass")
}

func TestGPIOGetCommand(t *testing.T) {
	out, err := execute(t, "--simulate", "probe", "gpio", "get", "3")
	require.NoError(t, err)
	assert.Equal(t, "low\n", out)
}

func TestBypassOnProbeFails(t *testing.T) {
	_, err := execute(t, "--simulate", "probe", "bypass", "on")
	assert.ErrorIs(t, err, probe.ErrNotImplemented)
}

func TestPowerCommand(t *testing.T) {
	out, err := execute(t, "--simulate", "board", "power", "on")
	require.NoError(t, err)
	assert.Equal(t, "power on: 01\n", out)
}

func TestMetricsOnlyServedWhenRequested(t *testing.T) {
	rootSimulate, rootMetrics = "probe", "127.0.0.1:0"
	t.Cleanup(func() {
		rootSimulate, rootMetrics = "", ""
	})

	e, err := setup(false)
	require.NoError(t, err)
	assert.Nil(t, e.metrics)

	e, err = setup(true)
	require.NoError(t, err)
	assert.NotNil(t, e.metrics)
}

func TestMetricsAddr(t *testing.T) {
	t.Cleanup(func() { rootMetrics = "" })

	assert.Empty(t, metricsAddr(&config.Schema{}))

	schema := &config.Schema{Metrics: &config.MetricsSchema{Listen: ":9170"}}
	assert.Equal(t, ":9170", metricsAddr(schema))

	rootMetrics = ":9999"
	assert.Equal(t, ":9999", metricsAddr(schema))
}

func TestWatchPin(t *testing.T) {
	sim := simulator.NewProbe()
	dev, err := probe.Resolve(sim)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var seen []bool
	err = watchPin(ctx, dev, 4, time.Millisecond, func(high bool) {
		seen = append(seen, high)
		if len(seen) == 1 {
			sim.SetInput(4, true)
			return
		}
		cancel()
	})
	require.NoError(t, err)
	assert.Equal(t, []bool{false, true}, seen)
}
