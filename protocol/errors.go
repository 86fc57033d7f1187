package protocol

import (
	"errors"
	"fmt"
)

// ErrUnknownCommand is matched by UnknownCommandError.
var ErrUnknownCommand = errors.New("unknown vendor command")

// UnknownCommandError is returned when firmware answers DAPInvalid,
// meaning the connected device does not implement the request.
type UnknownCommandError struct {
	// Request is the rejected request
	Request RequestID
}

func (e *UnknownCommandError) Error() string {
	return fmt.Sprintf("%s rejected by firmware: unknown command (0x%02X)", e.Request, uint8(e.Request))
}

func (e *UnknownCommandError) Is(target error) bool {
	return target == ErrUnknownCommand
}

// ResponseError represents a response body that cannot be decoded.
type ResponseError struct {
	// Request is the request whose response was malformed
	Request RequestID

	// Reason describes what was wrong with the response
	Reason string
}

func (e *ResponseError) Error() string {
	return fmt.Sprintf("malformed %s response: %s", e.Request, e.Reason)
}

// IsResponseError returns true if the error is a ResponseError.
func IsResponseError(err error) bool {
	var re *ResponseError
	return errors.As(err, &re)
}
