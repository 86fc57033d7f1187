// Package protocol implements the Voltix probe vendor command protocol.
//
// This package provides functions to build vendor command payloads and parse
// the response bodies returned by Voltix Board and Voltix Probe firmware.
//
// # Protocol Overview
//
// Vendor commands travel in the CMSIS-DAP vendor range. Every request is a
// single frame made of the request identifier followed by a fixed-layout
// payload; the firmware echoes the identifier in front of its response body:
//
//	Request:  [REQUEST_ID][PAYLOAD...]
//	Response: [REQUEST_ID][DATA...]
//
// There is no length prefix and no checksum. The payload length is implied by
// the request identifier and every multi-field payload is a concatenation of
// single unsigned bytes in declaration order.
//
// Firmware that does not implement a request answers with the single byte
// DAPInvalid (0xFF).
//
// # Command Builders
//
// Use the Build* functions to create a Command for a probe operation:
//
//	cmd := protocol.BuildPowerCmd(true)
//	cmd := protocol.BuildGPIODirCmd(4, protocol.GPIODirOut)
//	// ... etc
//
// Builders never fail: pins are plain bytes and every argument maps onto one
// payload byte.
//
// # Response Parsers
//
// Transports use DecodeFrame to check the echoed identifier and extract the
// response body:
//
//	data, err := protocol.DecodeFrame(protocol.RequestVersion, frame)
//
// Then use the Parse* functions for request-specific data:
//
//	version, err := protocol.ParseVersionResponse(data)
//	level, err := protocol.ParseGPIOGetResponse(data)
//
// # Legacy Firmware
//
// Firmware before 1.1.0 zero-pads the version response. ParseVersionResponse
// strips trailing NUL bytes before decoding, so padded and unpadded responses
// decode to the same string.
package protocol
