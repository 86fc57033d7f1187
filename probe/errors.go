package probe

import (
	"errors"
	"fmt"
)

// Sentinel errors for errors.Is checks.
var (
	// ErrUnsupportedDevice is matched by UnsupportedDeviceError
	ErrUnsupportedDevice = errors.New("unsupported device")

	// ErrNotImplemented is matched by NotImplementedError
	ErrNotImplemented = errors.New("not implemented")

	// ErrPinOutOfRange is matched by PinOutOfRangeError
	ErrPinOutOfRange = errors.New("pin out of range")

	// ErrTargetActive indicates a target session currently borrows the transport
	ErrTargetActive = errors.New("target session active")

	// ErrClosed indicates the Device has been released
	ErrClosed = errors.New("probe closed")
)

// UnsupportedDeviceError indicates that the connected device matches no known variant.
type UnsupportedDeviceError struct {
	Product string
}

func (e *UnsupportedDeviceError) Error() string {
	return fmt.Sprintf("unsupported probe %q selected", e.Product)
}

func (e *UnsupportedDeviceError) Is(target error) bool {
	return target == ErrUnsupportedDevice
}

// NotImplementedError indicates that the variant does not implement an operation.
type NotImplementedError struct {
	Variant   Variant
	Operation Operation
}

func (e *NotImplementedError) Error() string {
	return fmt.Sprintf("%s not implemented on %s", e.Operation, e.Variant)
}

func (e *NotImplementedError) Is(target error) bool {
	return target == ErrNotImplemented
}

// PinOutOfRangeError indicates that a pin exceeds the configured pin limit.
type PinOutOfRangeError struct {
	Pin   uint8
	Limit int
}

func (e *PinOutOfRangeError) Error() string {
	return fmt.Sprintf("pin %d is out of range: valid range is 0-%d", e.Pin, e.Limit-1)
}

func (e *PinOutOfRangeError) Is(target error) bool {
	return target == ErrPinOutOfRange
}
