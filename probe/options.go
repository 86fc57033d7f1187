package probe

import (
	"github.com/loopholelabs/logging/types"

	"github.com/moffa90/go-voltix/target"
)

// Config holds the Device configuration.
type Config struct {
	// Logger is used for structured logging (optional)
	Logger types.Logger

	// Observer receives per-operation records (optional)
	Observer Observer

	// PinLimit rejects GPIO pins >= PinLimit before they reach the wire.
	// Zero passes every pin through to firmware.
	PinLimit int

	// Targets resolves target drivers
	Targets *target.Registry
}

// defaultConfig returns the default configuration.
func defaultConfig() Config {
	return Config{
		Targets: target.DefaultRegistry,
	}
}

// Option is a functional option for configuring a Device.
type Option func(*Config)

// WithLogger sets the logger for device operations.
//
// Example:
//
//	log := logging.New(logging.Zerolog, "voltix", os.Stderr)
//	dev, err := probe.Resolve(session, probe.WithLogger(log))
func WithLogger(logger types.Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}

// WithObserver sets an Observer for operation metrics.
func WithObserver(o Observer) Option {
	return func(c *Config) {
		c.Observer = o
	}
}

// WithPinLimit makes GPIO operations fail fast for pins >= limit.
// A limit of zero or less disables the check.
//
// Example:
//
//	dev, err := probe.Resolve(session, probe.WithPinLimit(32))
func WithPinLimit(limit int) Option {
	return func(c *Config) {
		if limit < 0 {
			limit = 0
		}
		c.PinLimit = limit
	}
}

// WithTargetRegistry sets the registry used to look up target drivers.
func WithTargetRegistry(reg *target.Registry) Option {
	return func(c *Config) {
		if reg != nil {
			c.Targets = reg
		}
	}
}

// WithTargetDriver registers drv for kind on a registry private to this Device.
// The private registry starts empty; drivers in target.DefaultRegistry are not
// visible once this option is used.
func WithTargetDriver(kind target.Kind, drv target.Driver) Option {
	return func(c *Config) {
		if c.Targets == nil || c.Targets == target.DefaultRegistry {
			c.Targets = target.NewRegistry()
		}
		c.Targets.Register(kind, drv)
	}
}
