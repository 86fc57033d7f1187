package probe

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/moffa90/go-voltix/protocol"
	"github.com/moffa90/go-voltix/transport"
)

// Device is a resolved Voltix probe bound to one transport for its lifetime.
// Each operation issues exactly one vendor command and waits for its response.
//
// Device is safe for concurrent use; commands are serialised.
type Device struct {
	transport transport.Transport
	variant   Variant
	id        uuid.UUID
	config    Config

	mu           sync.Mutex
	targetActive bool
	closed       bool
}

// Variant returns the resolved variant.
func (d *Device) Variant() Variant {
	return d.variant
}

// ID identifies this Device in logs.
func (d *Device) ID() uuid.UUID {
	return d.id
}

// Supports reports whether this Device implements op.
func (d *Device) Supports(op Operation) bool {
	return d.variant.Supports(op)
}

// Capabilities returns the operations this Device implements.
func (d *Device) Capabilities() []Operation {
	return d.variant.Capabilities()
}

// Power switches target power. It returns the raw response body.
func (d *Device) Power(ctx context.Context, on bool) ([]byte, error) {
	return d.exchange(ctx, OpPower, protocol.BuildPowerCmd(on))
}

// FirmwareVersion reads the probe firmware version.
// Legacy NUL padding is stripped.
func (d *Device) FirmwareVersion(ctx context.Context) (string, error) {
	data, err := d.exchange(ctx, OpFirmwareVersion, protocol.BuildVersionCmd())
	if err != nil {
		return "", err
	}
	return protocol.ParseVersionResponse(data)
}

// GPIODir sets the direction of pin. Switching to output drives the pin low.
func (d *Device) GPIODir(ctx context.Context, pin uint8, dir protocol.GPIODir) error {
	_, err := d.exchangePin(ctx, OpGPIODir, pin, protocol.BuildGPIODirCmd(pin, dir))
	return err
}

// GPIOSet drives pin high or low.
func (d *Device) GPIOSet(ctx context.Context, pin uint8, high bool) error {
	_, err := d.exchangePin(ctx, OpGPIOSet, pin, protocol.BuildGPIOSetCmd(pin, high))
	return err
}

// GPIOGet reads the level of pin.
func (d *Device) GPIOGet(ctx context.Context, pin uint8) (bool, error) {
	data, err := d.exchangePin(ctx, OpGPIOGet, pin, protocol.BuildGPIOGetCmd(pin))
	if err != nil {
		return false, err
	}
	return protocol.ParseGPIOGetResponse(data)
}

// Bypass switches the electrical bypass. It returns the raw response body.
func (d *Device) Bypass(ctx context.Context, on bool) ([]byte, error) {
	return d.exchange(ctx, OpBypass, protocol.BuildBypassCmd(on))
}

// Close releases the Device. The transport is not closed; it belongs to
// whoever opened it. Close is idempotent but fails while a target session
// is open.
func (d *Device) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.targetActive {
		return ErrTargetActive
	}
	if !d.closed {
		d.closed = true
		d.logDebug("probe released")
	}
	return nil
}

// exchange performs one round trip for op. Transport errors are returned
// unmodified.
func (d *Device) exchange(ctx context.Context, op Operation, cmd protocol.Command) ([]byte, error) {
	return d.roundTrip(ctx, op, cmd, nil)
}

// exchangePin is exchange for operations addressing one GPIO pin. The pin is
// checked only once the variant is known to implement op.
func (d *Device) exchangePin(ctx context.Context, op Operation, pin uint8, cmd protocol.Command) ([]byte, error) {
	return d.roundTrip(ctx, op, cmd, func() error {
		return d.checkPin(pin)
	})
}

func (d *Device) roundTrip(ctx context.Context, op Operation, cmd protocol.Command, check func() error) ([]byte, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.usable(); err != nil {
		return nil, err
	}

	if !d.variant.Supports(op) {
		d.observe(op, ResultNotImplemented, 0)
		return nil, &NotImplementedError{Variant: d.variant, Operation: op}
	}

	if check != nil {
		if err := check(); err != nil {
			return nil, err
		}
	}

	start := time.Now()
	data, err := transport.Do(ctx, d.transport, cmd)
	elapsed := time.Since(start)

	d.observe(op, resultOf(err), elapsed)
	d.logCommand(op, cmd, data, elapsed, err)

	if err != nil {
		return nil, err
	}
	return data, nil
}

// usable checks the Device can take a command. Caller holds d.mu.
func (d *Device) usable() error {
	if d.closed {
		return ErrClosed
	}
	if d.targetActive {
		return ErrTargetActive
	}
	return nil
}

func (d *Device) checkPin(pin uint8) error {
	if d.config.PinLimit > 0 && int(pin) >= d.config.PinLimit {
		return &PinOutOfRangeError{Pin: pin, Limit: d.config.PinLimit}
	}
	return nil
}

func resultOf(err error) string {
	switch {
	case err == nil:
		return ResultOK
	case errors.Is(err, protocol.ErrUnknownCommand):
		return ResultRejected
	default:
		return ResultError
	}
}

func (d *Device) observe(op Operation, result string, elapsed time.Duration) {
	if d.config.Observer != nil {
		d.config.Observer.ObserveCommand(d.variant.String(), string(op), result, elapsed)
	}
}

func (d *Device) logCommand(op Operation, cmd protocol.Command, data []byte, elapsed time.Duration, err error) {
	if d.config.Logger == nil {
		return
	}
	if err != nil {
		d.config.Logger.Error().
			Str("session", d.id.String()).
			Str("variant", d.variant.String()).
			Str("op", string(op)).
			Str("request", cmd.Request.String()).
			Err(err).
			Msg("vendor command failed")
		return
	}
	d.config.Logger.Debug().
		Str("session", d.id.String()).
		Str("variant", d.variant.String()).
		Str("op", string(op)).
		Str("request", cmd.Request.String()).
		Int("payload", len(cmd.Payload)).
		Int("response", len(data)).
		Int64("elapsed_us", elapsed.Microseconds()).
		Msg("vendor command")
}

func (d *Device) logDebug(msg string) {
	if d.config.Logger != nil {
		d.config.Logger.Debug().
			Str("session", d.id.String()).
			Str("variant", d.variant.String()).
			Msg(msg)
	}
}
