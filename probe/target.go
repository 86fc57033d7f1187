package probe

import (
	"context"
	"errors"
	"fmt"

	"github.com/moffa90/go-voltix/target"
)

// WithTarget opens a target session of the given kind on this Device's
// transport, runs fn, and closes the session before returning, whether fn
// succeeds or not.
//
// Probe commands and nested target sessions fail with ErrTargetActive while
// fn runs.
func (d *Device) WithTarget(ctx context.Context, kind target.Kind, fn func(target.Session) error) (err error) {
	d.mu.Lock()
	if err := d.usable(); err != nil {
		d.mu.Unlock()
		return err
	}
	d.targetActive = true
	d.mu.Unlock()

	defer func() {
		d.mu.Lock()
		d.targetActive = false
		d.mu.Unlock()
	}()

	drv, err := d.config.Targets.Lookup(kind)
	if err != nil {
		return err
	}

	sess, err := drv(ctx, d.transport)
	if err != nil {
		return fmt.Errorf("open %s session: %w", kind, err)
	}
	d.observeTarget(kind, true)

	defer func() {
		d.observeTarget(kind, false)
		if cerr := sess.Close(); cerr != nil {
			err = errors.Join(err, fmt.Errorf("close %s session: %w", kind, cerr))
		}
	}()

	return fn(sess)
}

// WithMSP430 is WithTarget for target.KindMSP430.
func (d *Device) WithMSP430(ctx context.Context, fn func(target.Session) error) error {
	return d.WithTarget(ctx, target.KindMSP430, fn)
}

// WithNRF52 is WithTarget for target.KindNRF52.
func (d *Device) WithNRF52(ctx context.Context, fn func(target.Session) error) error {
	return d.WithTarget(ctx, target.KindNRF52, fn)
}

func (d *Device) observeTarget(kind target.Kind, open bool) {
	if d.config.Observer != nil {
		d.config.Observer.ObserveTargetSession(d.variant.String(), kind.String(), open)
	}
	if d.config.Logger != nil {
		state := "closed"
		if open {
			state = "opened"
		}
		d.config.Logger.Debug().
			Str("session", d.id.String()).
			Str("target", kind.String()).
			Msg("target session " + state)
	}
}
