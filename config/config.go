// Package config reads the voltix HCL configuration file.
//
// Example file:
//
//	usb {
//	  vendor_id  = "0x1209"
//	  product_id = "0xDA42"
//	  serial     = "VX000123"
//	  timeout    = "2s"
//	}
//
//	log {
//	  level = "debug"
//	}
//
//	metrics {
//	  listen = ":9170"
//	}
//
//	probe {
//	  pin_limit = 32
//	}
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/loopholelabs/logging/types"
)

type Schema struct {
	USB     *USBSchema     `hcl:"usb,block"`
	Log     *LogSchema     `hcl:"log,block"`
	Metrics *MetricsSchema `hcl:"metrics,block"`
	Probe   *ProbeSchema   `hcl:"probe,block"`
}

type USBSchema struct {
	VendorID    string `hcl:"vendor_id,optional"`
	ProductID   string `hcl:"product_id,optional"`
	Serial      string `hcl:"serial,optional"`
	Product     string `hcl:"product,optional"`
	Config      int    `hcl:"config,optional"`
	Interface   int    `hcl:"interface,optional"`
	EndpointIn  int    `hcl:"endpoint_in,optional"`
	EndpointOut int    `hcl:"endpoint_out,optional"`
	Timeout     string `hcl:"timeout,optional"`
}

type LogSchema struct {
	Level string `hcl:"level,optional"`
}

type MetricsSchema struct {
	Listen    string `hcl:"listen,attr"`
	Namespace string `hcl:"namespace,optional"`
}

type ProbeSchema struct {
	PinLimit int    `hcl:"pin_limit,optional"`
	Simulate string `hcl:"simulate,optional"`
}

// ReadSchema reads and decodes the file at path.
func ReadSchema(path string) (*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	s := new(Schema)
	return s, s.Decode(data)
}

func (s *Schema) Decode(data []byte) error {
	file, diag := hclsyntax.ParseConfig(data, "", hcl.Pos{Line: 1, Column: 1})
	if diag.HasErrors() {
		return diag.Errs()[0]
	}

	diag = gohcl.DecodeBody(file.Body, nil, s)
	if diag.HasErrors() {
		return diag.Errs()[0]
	}

	return nil
}

func (s *Schema) Encode() []byte {
	f := hclwrite.NewEmptyFile()
	gohcl.EncodeIntoBody(s, f.Body())
	return f.Bytes()
}

// IDs parses the vendor and product IDs. Empty values parse as 0 (match any).
func (u *USBSchema) IDs() (vid uint16, pid uint16, err error) {
	if vid, err = parseID(u.VendorID); err != nil {
		return 0, 0, fmt.Errorf("vendor_id: %w", err)
	}
	if pid, err = parseID(u.ProductID); err != nil {
		return 0, 0, fmt.Errorf("product_id: %w", err)
	}
	return vid, pid, nil
}

// TimeoutDuration parses the timeout. An empty value returns 0.
func (u *USBSchema) TimeoutDuration() (time.Duration, error) {
	if u.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(u.Timeout)
	if err != nil {
		return 0, fmt.Errorf("timeout: %w", err)
	}
	if d < 0 {
		return 0, fmt.Errorf("timeout: negative duration %s", u.Timeout)
	}
	return d, nil
}

func parseID(s string) (uint16, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseUint(s, 0, 16)
	if err != nil {
		return 0, fmt.Errorf("invalid USB ID %q", s)
	}
	return uint16(v), nil
}

// Apply sets the level of log. An empty level leaves it unchanged.
func (l *LogSchema) Apply(log types.RootLogger) error {
	switch strings.ToLower(l.Level) {
	case "":
	case "trace":
		log.SetLevel(types.TraceLevel)
	case "debug":
		log.SetLevel(types.DebugLevel)
	case "info":
		log.SetLevel(types.InfoLevel)
	case "warn", "warning":
		log.SetLevel(types.WarnLevel)
	case "error":
		log.SetLevel(types.ErrorLevel)
	default:
		return fmt.Errorf("unknown log level %q", l.Level)
	}
	return nil
}
