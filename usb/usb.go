// Package usb is the libusb-backed transport for Voltix devices.
//
// Vendor commands travel as DAP frames over the probe's bulk OUT/IN endpoint
// pair: one frame out, one frame back.
package usb

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/gousb"
	"github.com/loopholelabs/logging/types"

	"github.com/moffa90/go-voltix/protocol"
	"github.com/moffa90/go-voltix/transport"
)

// DefaultProductPrefix matches every Voltix product string.
const DefaultProductPrefix = "Voltix"

var (
	// ErrNotFound indicates no matching device is connected
	ErrNotFound = errors.New("no Voltix device found")

	// ErrAmbiguous indicates several devices match and no serial was given
	ErrAmbiguous = errors.New("several Voltix devices found, select one by serial")

	// ErrClosed indicates the session has been closed
	ErrClosed = errors.New("usb session closed")
)

// Config selects and configures the device to open.
type Config struct {
	// VendorID and ProductID restrict matching; zero matches any
	VendorID  uint16
	ProductID uint16

	// Serial selects one device when several are connected (optional)
	Serial string

	// ProductPrefix is matched against the USB product string
	ProductPrefix string

	// ConfigNum, Interface, EndpointIn and EndpointOut locate the DAP endpoints
	ConfigNum   int
	Interface   int
	EndpointIn  int
	EndpointOut int

	// Timeout bounds each vendor command (zero for none)
	Timeout time.Duration

	// Logger is used for structured logging (optional)
	Logger types.Logger
}

func (c Config) withDefaults() Config {
	if c.ProductPrefix == "" {
		c.ProductPrefix = DefaultProductPrefix
	}
	if c.ConfigNum == 0 {
		c.ConfigNum = 1
	}
	if c.EndpointIn == 0 {
		c.EndpointIn = 1
	}
	if c.EndpointOut == 0 {
		c.EndpointOut = 1
	}
	return c
}

// matchIDs filters on the device descriptor before the device is opened.
func (c Config) matchIDs(vid, pid uint16) bool {
	if c.VendorID != 0 && vid != c.VendorID {
		return false
	}
	if c.ProductID != 0 && pid != c.ProductID {
		return false
	}
	return true
}

// matchStrings filters on the string descriptors of an opened device.
func (c Config) matchStrings(product, serial string) bool {
	if !strings.HasPrefix(product, c.ProductPrefix) {
		return false
	}
	return c.Serial == "" || serial == c.Serial
}

// Info describes a connected Voltix device.
type Info struct {
	Bus       int
	Address   int
	VendorID  uint16
	ProductID uint16
	Product   string
	Serial    string
}

func (i Info) String() string {
	return fmt.Sprintf("%03d:%03d %04x:%04x %q serial=%s", i.Bus, i.Address, i.VendorID, i.ProductID, i.Product, i.Serial)
}

type candidate struct {
	dev  *gousb.Device
	info Info
}

// find opens every matching device. The caller closes what it returns.
func find(ctx context.Context, uctx *gousb.Context, c Config) ([]candidate, error) {
	devs, openErr := uctx.OpenDevices(func(desc *gousb.DeviceDesc) bool {
		select {
		case <-ctx.Done():
			return false
		default:
		}
		return c.matchIDs(uint16(desc.Vendor), uint16(desc.Product))
	})
	if err := ctx.Err(); err != nil {
		closeAll(devs)
		return nil, err
	}

	var found []candidate
	for _, dev := range devs {
		product, _ := dev.Product()
		serial, _ := dev.SerialNumber()
		if !c.matchStrings(product, serial) {
			_ = dev.Close()
			continue
		}
		found = append(found, candidate{
			dev: dev,
			info: Info{
				Bus:       dev.Desc.Bus,
				Address:   dev.Desc.Address,
				VendorID:  uint16(dev.Desc.Vendor),
				ProductID: uint16(dev.Desc.Product),
				Product:   product,
				Serial:    serial,
			},
		})
	}

	// Devices we lack permission for surface as openErr; only fail when
	// nothing usable was found.
	if len(found) == 0 && openErr != nil {
		return nil, fmt.Errorf("open devices: %w", openErr)
	}
	return found, nil
}

func closeAll(devs []*gousb.Device) {
	for _, d := range devs {
		_ = d.Close()
	}
}

// Enumerate lists connected devices matching c.
func Enumerate(ctx context.Context, c Config) ([]Info, error) {
	c = c.withDefaults()
	uctx := gousb.NewContext()
	defer func() { _ = uctx.Close() }()

	found, err := find(ctx, uctx, c)
	if err != nil {
		return nil, err
	}

	infos := make([]Info, 0, len(found))
	for _, f := range found {
		infos = append(infos, f.info)
		_ = f.dev.Close()
	}
	return infos, nil
}

// Session is an open connection to one Voltix device.
//
// Session is safe for concurrent use; commands are serialised.
type Session struct {
	info    Info
	timeout time.Duration
	log     types.Logger

	uctx *gousb.Context
	dev  *gousb.Device
	cfg  *gousb.Config
	intf *gousb.Interface
	in   *gousb.InEndpoint
	out  *gousb.OutEndpoint

	mu     sync.Mutex
	closed bool
}

var _ transport.Session = (*Session)(nil)

// Open connects to the single device matching c.
func Open(ctx context.Context, c Config) (_ *Session, err error) {
	c = c.withDefaults()
	uctx := gousb.NewContext()
	defer func() {
		if err != nil {
			_ = uctx.Close()
		}
	}()

	found, err := find(ctx, uctx, c)
	if err != nil {
		return nil, err
	}
	switch len(found) {
	case 0:
		return nil, ErrNotFound
	case 1:
	default:
		for _, f := range found {
			_ = f.dev.Close()
		}
		return nil, ErrAmbiguous
	}

	s := &Session{
		info:    found[0].info,
		timeout: c.Timeout,
		log:     c.Logger,
		uctx:    uctx,
		dev:     found[0].dev,
	}
	defer func() {
		if err != nil {
			s.release()
		}
	}()

	if err := s.dev.SetAutoDetach(true); err != nil && s.log != nil {
		s.log.Debug().Err(err).Msg("kernel driver auto-detach unavailable")
	}

	if s.cfg, err = s.dev.Config(c.ConfigNum); err != nil {
		return nil, fmt.Errorf("select config %d: %w", c.ConfigNum, err)
	}
	if s.intf, err = s.cfg.Interface(c.Interface, 0); err != nil {
		return nil, fmt.Errorf("claim interface %d: %w", c.Interface, err)
	}
	if s.out, err = s.intf.OutEndpoint(c.EndpointOut); err != nil {
		return nil, fmt.Errorf("out endpoint %d: %w", c.EndpointOut, err)
	}
	if s.in, err = s.intf.InEndpoint(c.EndpointIn); err != nil {
		return nil, fmt.Errorf("in endpoint %d: %w", c.EndpointIn, err)
	}

	if s.log != nil {
		s.log.Info().
			Str("product", s.info.Product).
			Str("serial", s.info.Serial).
			Int("bus", s.info.Bus).
			Int("address", s.info.Address).
			Msg("usb session opened")
	}
	return s, nil
}

// Opener returns a transport.Opener for c.
func Opener(c Config) transport.Opener {
	return func(ctx context.Context) (transport.Session, error) {
		return Open(ctx, c)
	}
}

// Info describes the connected device.
func (s *Session) Info() Info {
	return s.info
}

// ProductName implements transport.Transport.
func (s *Session) ProductName() string {
	return s.info.Product
}

// VendorCmd implements transport.Transport.
func (s *Session) VendorCmd(ctx context.Context, req protocol.RequestID, payload []byte) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, ErrClosed
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	frame := protocol.EncodeFrame(protocol.Command{Request: req, Payload: payload})
	if _, err := s.out.WriteContext(ctx, frame); err != nil {
		return nil, fmt.Errorf("write %s: %w", req, err)
	}

	size := s.in.Desc.MaxPacketSize
	if size <= 0 {
		size = protocol.DefaultPacketSize
	}
	buf := make([]byte, size)
	n, err := s.in.ReadContext(ctx, buf)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", req, err)
	}

	return protocol.DecodeFrame(req, buf[:n])
}

// Close implements transport.Session.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}
	s.closed = true

	err := s.release()
	if s.log != nil {
		s.log.Info().Str("serial", s.info.Serial).Err(err).Msg("usb session closed")
	}
	return err
}

// release frees libusb resources in reverse order of acquisition.
func (s *Session) release() error {
	var errs []error
	if s.intf != nil {
		s.intf.Close()
	}
	if s.cfg != nil {
		errs = append(errs, s.cfg.Close())
	}
	if s.dev != nil {
		errs = append(errs, s.dev.Close())
	}
	if s.uctx != nil {
		errs = append(errs, s.uctx.Close())
	}
	return errors.Join(errs...)
}
