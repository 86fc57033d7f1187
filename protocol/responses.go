package protocol

import (
	"bytes"
	"fmt"
	"unicode/utf8"
)

// DecodeFrame validates a response frame for req and returns its body.
//
// Response frame structure:
//
//	[REQUEST_ID][DATA...]
//
// A frame starting with DAPInvalid yields an UnknownCommandError.
func DecodeFrame(req RequestID, frame []byte) ([]byte, error) {
	if len(frame) < FrameHeaderSize {
		return nil, &ResponseError{Request: req, Reason: "empty frame"}
	}

	if frame[0] == DAPInvalid {
		return nil, &UnknownCommandError{Request: req}
	}

	if frame[0] != byte(req) {
		return nil, &ResponseError{
			Request: req,
			Reason:  fmt.Sprintf("echoed request 0x%02X, expected 0x%02X", frame[0], uint8(req)),
		}
	}

	return frame[FrameHeaderSize:], nil
}

// ParseVersionResponse decodes the firmware version response.
// Trailing NUL bytes are stripped first: firmware before 1.1.0 zero-pads the
// string, newer firmware does not.
func ParseVersionResponse(data []byte) (string, error) {
	trimmed := bytes.TrimRight(data, "\x00")
	if !utf8.Valid(trimmed) {
		return "", &ResponseError{Request: RequestVersion, Reason: "version is not valid UTF-8"}
	}

	return string(trimmed), nil
}

// ParseGPIOGetResponse decodes a GPIO read response.
// Any nonzero first byte reads as high.
//
// Data format (at least 1 byte):
//
//	[LEVEL]
func ParseGPIOGetResponse(data []byte) (bool, error) {
	if len(data) < GPIOGetResponseSize {
		return false, &ResponseError{
			Request: RequestGPIOGet,
			Reason:  fmt.Sprintf("got %d bytes, expected at least %d", len(data), GPIOGetResponseSize),
		}
	}

	return data[0] != 0, nil
}
