// Package transport defines the request/response link the probe layer consumes.
//
// A Transport Session is an exclusive connection to exactly one physical
// Voltix device. The usb package provides the hardware implementation; the
// internal simulator provides an in-process one for tests and examples.
package transport

import (
	"context"

	"github.com/moffa90/go-voltix/protocol"
)

// Transport sends vendor commands to one connected device.
//
// VendorCmd is synchronous: it writes one request and blocks until the
// matching response body arrives, the context ends, or the link fails.
// Only one command may be in flight at a time.
type Transport interface {
	// ProductName is the USB product string of the connected device
	ProductName() string

	// VendorCmd sends req with payload and returns the response body
	VendorCmd(ctx context.Context, req protocol.RequestID, payload []byte) ([]byte, error)
}

// Session is a Transport that owns the physical connection.
type Session interface {
	Transport

	// Close releases the connection. No other methods may be called afterwards.
	Close() error
}

// Opener acquires a Session.
type Opener func(ctx context.Context) (Session, error)

// Do sends cmd over t.
func Do(ctx context.Context, t Transport, cmd protocol.Command) ([]byte, error) {
	return t.VendorCmd(ctx, cmd.Request, cmd.Payload)
}
