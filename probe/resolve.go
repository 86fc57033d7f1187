package probe

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/moffa90/go-voltix/transport"
)

// Resolve inspects the product name of t and returns the matching Device.
// An unrecognised product yields an *UnsupportedDeviceError and no Device.
//
// The caller keeps ownership of t and must not hand it to another Device
// while this one is in use.
//
// Example:
//
//	dev, err := probe.Resolve(session, probe.WithPinLimit(32))
func Resolve(t transport.Transport, opts ...Option) (*Device, error) {
	if t == nil {
		panic("transport cannot be nil")
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	product := t.ProductName()
	variant, ok := variantForProduct(product)
	if !ok {
		if cfg.Logger != nil {
			cfg.Logger.Error().Str("product", product).Msg("unsupported device")
		}
		return nil, &UnsupportedDeviceError{Product: product}
	}

	d := &Device{
		transport: t,
		variant:   variant,
		id:        uuid.New(),
		config:    cfg,
	}
	d.logDebug("probe resolved")
	return d, nil
}

// Connect opens a session, resolves it and passes the Device to fn.
// The Device and the session are released on every return path; close
// errors are joined with the error from fn.
//
// Example:
//
//	err := probe.Connect(ctx, opener, func(dev *probe.Device) error {
//	    _, err := dev.Power(ctx, true)
//	    return err
//	})
func Connect(ctx context.Context, open transport.Opener, fn func(*Device) error, opts ...Option) (err error) {
	sess, err := open(ctx)
	if err != nil {
		return fmt.Errorf("open session: %w", err)
	}
	defer func() {
		if cerr := sess.Close(); cerr != nil {
			err = errors.Join(err, fmt.Errorf("close session: %w", cerr))
		}
	}()

	dev, err := Resolve(sess, opts...)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := dev.Close(); cerr != nil {
			err = errors.Join(err, cerr)
		}
	}()

	return fn(dev)
}
