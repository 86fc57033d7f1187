// Package simulator provides an in-process Voltix device.
//
// A Device behaves like Board or Probe firmware at the frame level: requests
// are encoded with protocol.EncodeFrame, handled, and answered with a frame
// that goes through protocol.DecodeFrame, exactly as the usb transport does.
package simulator

import (
	"context"
	"errors"
	"sync"

	"github.com/moffa90/go-voltix/protocol"
)

// Product strings reported by simulated devices.
const (
	ProductBoard = "Voltix Board"
	ProductProbe = "Voltix Probe"
)

// ErrDisconnected is returned after Disconnect or Close.
var ErrDisconnected = errors.New("simulated device disconnected")

// LegacyVersionSize is the zero-padded version field size of pre-1.1.0 firmware.
const LegacyVersionSize = 16

// PinCount is the number of GPIO pins exposed by a simulated Probe.
const PinCount = 32

// Pin is the simulated state of one GPIO pin.
type Pin struct {
	Output bool
	Level  bool
	Input  bool
}

// Device simulates one Voltix device.
//
// Device is safe for concurrent use.
type Device struct {
	mu sync.Mutex

	product       string
	version       string
	legacyPadding bool

	power  bool
	bypass bool
	pins   [PinCount]Pin

	frames  [][]byte
	failErr error
	gone    bool
	closed  bool
}

// Option configures a simulated Device.
type Option func(*Device)

// WithVersion sets the reported firmware version (default "1.1.0").
func WithVersion(v string) Option {
	return func(d *Device) {
		d.version = v
	}
}

// WithLegacyPadding makes the version response NUL-padded to LegacyVersionSize
// bytes, as firmware before 1.1.0 does.
func WithLegacyPadding() Option {
	return func(d *Device) {
		d.legacyPadding = true
	}
}

// New creates a simulated device reporting product.
func New(product string, opts ...Option) *Device {
	d := &Device{
		product: product,
		version: protocol.LibraryVersion,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// NewBoard creates a simulated Voltix Board.
func NewBoard(opts ...Option) *Device {
	return New(ProductBoard, opts...)
}

// NewProbe creates a simulated Voltix Probe.
func NewProbe(opts ...Option) *Device {
	return New(ProductProbe, opts...)
}

// ProductName implements transport.Transport.
func (d *Device) ProductName() string {
	return d.product
}

// VendorCmd implements transport.Transport.
func (d *Device) VendorCmd(ctx context.Context, req protocol.RequestID, payload []byte) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.gone || d.closed {
		return nil, ErrDisconnected
	}
	if d.failErr != nil {
		err := d.failErr
		d.failErr = nil
		return nil, err
	}

	frame := protocol.EncodeFrame(protocol.Command{Request: req, Payload: payload})
	d.frames = append(d.frames, frame)

	return protocol.DecodeFrame(req, d.handle(frame))
}

// Close implements transport.Session.
func (d *Device) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return ErrDisconnected
	}
	d.closed = true
	return nil
}

// handle answers one request frame. Caller holds d.mu.
func (d *Device) handle(frame []byte) []byte {
	req := protocol.RequestID(frame[0])
	payload := frame[protocol.FrameHeaderSize:]

	switch req {
	case protocol.RequestVersion:
		return d.handleVersion()
	case protocol.RequestPower:
		return d.handleSwitch(req, payload, &d.power)
	case protocol.RequestBypass:
		if d.product != ProductBoard {
			return invalid()
		}
		return d.handleSwitch(req, payload, &d.bypass)
	case protocol.RequestGPIOSet:
		if d.product != ProductProbe {
			return invalid()
		}
		return d.handleGPIOSet(payload)
	case protocol.RequestGPIOGet:
		if d.product != ProductProbe {
			return invalid()
		}
		return d.handleGPIOGet(payload)
	default:
		return invalid()
	}
}

func (d *Device) handleVersion() []byte {
	body := []byte(d.version)
	if d.legacyPadding && len(body) < LegacyVersionSize {
		body = append(body, make([]byte, LegacyVersionSize-len(body))...)
	}
	return reply(protocol.RequestVersion, body...)
}

func (d *Device) handleSwitch(req protocol.RequestID, payload []byte, state *bool) []byte {
	if len(payload) != 1 {
		return invalid()
	}
	*state = payload[0] != 0
	return reply(req, payload[0])
}

func (d *Device) handleGPIOSet(payload []byte) []byte {
	if len(payload) != protocol.GPIOSetPayloadSize || int(payload[0]) >= PinCount {
		return invalid()
	}

	pin := &d.pins[payload[0]]
	switch protocol.IOSetState(payload[1]) {
	case protocol.IOSetIn:
		pin.Output = false
	case protocol.IOSetOutHigh:
		pin.Output, pin.Level = true, true
	case protocol.IOSetOutLow:
		pin.Output, pin.Level = true, false
	default:
		return invalid()
	}
	return reply(protocol.RequestGPIOSet)
}

func (d *Device) handleGPIOGet(payload []byte) []byte {
	if len(payload) != protocol.GPIOGetPayloadSize || int(payload[0]) >= PinCount {
		return invalid()
	}

	pin := d.pins[payload[0]]
	level := pin.Input
	if pin.Output {
		level = pin.Level
	}
	if level {
		return reply(protocol.RequestGPIOGet, 0x01)
	}
	return reply(protocol.RequestGPIOGet, 0x00)
}

func reply(req protocol.RequestID, data ...byte) []byte {
	return append([]byte{byte(req)}, data...)
}

func invalid() []byte {
	return []byte{protocol.DAPInvalid}
}
