package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/loopholelabs/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigDecode(t *testing.T) {

	schema := `usb {
		vendor_id  = "0x1209"
		product_id = "55874"
		serial     = "VX000123"
		timeout    = "2s"
		endpoint_in = 2
	}

	log {
		level = "debug"
	}

	metrics {
		listen = ":9170"
	}

	probe {
		pin_limit = 32
		simulate  = "probe"
	}
	`

	s := new(Schema)
	err := s.Decode([]byte(schema))
	require.NoError(t, err)

	require.NotNil(t, s.USB)
	vid, pid, err := s.USB.IDs()
	require.NoError(t, err)
	assert.Equal(t, uint16(0x1209), vid)
	assert.Equal(t, uint16(55874), pid)
	assert.Equal(t, "VX000123", s.USB.Serial)
	assert.Equal(t, 2, s.USB.EndpointIn)
	assert.Zero(t, s.USB.EndpointOut)

	timeout, err := s.USB.TimeoutDuration()
	require.NoError(t, err)
	assert.Equal(t, 2*time.Second, timeout)

	assert.Equal(t, "debug", s.Log.Level)
	assert.Equal(t, ":9170", s.Metrics.Listen)
	assert.Equal(t, 32, s.Probe.PinLimit)
	assert.Equal(t, "probe", s.Probe.Simulate)
}

func TestConfigOptionalBlocks(t *testing.T) {
	s := new(Schema)
	require.NoError(t, s.Decode([]byte(`probe {}`)))

	assert.Nil(t, s.USB)
	assert.Nil(t, s.Log)
	assert.Nil(t, s.Metrics)
	require.NotNil(t, s.Probe)
	assert.Zero(t, s.Probe.PinLimit)
}

func TestConfigErrors(t *testing.T) {
	s := new(Schema)
	assert.Error(t, s.Decode([]byte(`usb {`)))
	assert.Error(t, s.Decode([]byte(`metrics {}`)), "listen is required")
	assert.Error(t, s.Decode([]byte(`unknown {}`)))

	_, _, err := (&USBSchema{VendorID: "0x1FFFF"}).IDs()
	assert.ErrorContains(t, err, "vendor_id")

	_, _, err = (&USBSchema{ProductID: "probe"}).IDs()
	assert.ErrorContains(t, err, "product_id")

	_, err = (&USBSchema{Timeout: "soon"}).TimeoutDuration()
	assert.Error(t, err)

	_, err = (&USBSchema{Timeout: "-1s"}).TimeoutDuration()
	assert.Error(t, err)
}

func TestConfigEncodeRoundTrip(t *testing.T) {
	s := &Schema{
		USB:   &USBSchema{VendorID: "0x1209", Serial: "VX1"},
		Probe: &ProbeSchema{PinLimit: 16},
	}

	s2 := new(Schema)
	require.NoError(t, s2.Decode(s.Encode()))
	assert.Equal(t, s.USB, s2.USB)
	assert.Equal(t, s.Probe, s2.Probe)
}

func TestReadSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "voltix.conf")
	require.NoError(t, os.WriteFile(path, []byte(`log { level = "info" }`), 0o600))

	s, err := ReadSchema(path)
	require.NoError(t, err)
	assert.Equal(t, "info", s.Log.Level)

	_, err = ReadSchema(filepath.Join(t.TempDir(), "missing.conf"))
	assert.ErrorContains(t, err, "failed to read config file")
}

func TestLogApply(t *testing.T) {
	var buf bytes.Buffer
	log := logging.New(logging.Zerolog, "voltix", &buf)

	for _, level := range []string{"", "trace", "debug", "INFO", "warn", "error"} {
		assert.NoError(t, (&LogSchema{Level: level}).Apply(log), level)
	}
	assert.Error(t, (&LogSchema{Level: "loud"}).Apply(log))
}
