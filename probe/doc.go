// Package probe provides the high-level API for Voltix debug probes.
//
// # Overview
//
// A connected device is resolved into a Device whose variant decides which
// operations it supports:
//   - Every variant: target power, firmware version, target sessions
//   - Voltix Probe: GPIO direction, level and read-back
//   - Voltix Board: electrical bypass
//
// Calling an operation the variant does not implement returns a
// NotImplementedError and sends nothing to the device.
//
// # Basic Usage
//
// Connect opens a transport session, resolves the device and releases both
// when the callback returns:
//
//	err := probe.Connect(ctx, usb.Opener(usb.Config{}), func(dev *probe.Device) error {
//	    version, err := dev.FirmwareVersion(ctx)
//	    if err != nil {
//	        return err
//	    }
//	    fmt.Println("firmware", version)
//
//	    _, err = dev.Power(ctx, true)
//	    return err
//	})
//
// A Device can also be resolved from a transport the caller already owns:
//
//	dev, err := probe.Resolve(session)
//	if err != nil {
//	    return err // *probe.UnsupportedDeviceError
//	}
//	defer dev.Close()
//
// # Capabilities
//
// The capability matrix is fixed per variant:
//
//	Operation   Board   Probe
//	gpio_dir    -       yes
//	gpio_set    -       yes
//	gpio_get    -       yes
//	bypass      yes     -
//
// Use Device.Supports or Variant.Supports to check before calling.
//
// # Target Sessions
//
// Chip-specific drivers register with the target package. A session borrows
// the probe's transport for the duration of the callback and is always
// closed before WithTarget returns:
//
//	err := dev.WithNRF52(ctx, func(s target.Session) error {
//	    // ... drive the target
//	    return nil
//	})
//
// Probe commands are refused with ErrTargetActive while a target session is open.
//
// # Configuration Options
//
//	dev, err := probe.Resolve(session,
//	    probe.WithLogger(log),
//	    probe.WithObserver(metrics),
//	    probe.WithPinLimit(32),
//	    probe.WithTargetDriver(target.KindMSP430, myDriver),
//	)
//
// # Error Handling
//
// The package provides structured error types:
//   - UnsupportedDeviceError: product name matches no known variant
//   - NotImplementedError: operation not supported by the variant
//   - PinOutOfRangeError: pin rejected by WithPinLimit
//
// Transport failures are returned unmodified.
package probe
