package protocol

import (
	"fmt"
	"strings"
)

// LibraryVersion is the host library version, in step with the firmware
// protocol revision it was written against.
const LibraryVersion = "1.1.0"

// RequestID identifies one vendor command.
// The set is fixed and shared with the probe firmware.
type RequestID uint8

// Vendor request identifiers (CMSIS-DAP vendor command range 0x80-0x9F).
const (
	// RequestVersion reads the firmware version string
	RequestVersion RequestID = 0x80

	// RequestPower switches target power
	RequestPower RequestID = 0x81

	// RequestGPIOSet configures a GPIO pin (direction and level)
	RequestGPIOSet RequestID = 0x82

	// RequestGPIOGet reads the level of a GPIO pin
	RequestGPIOGet RequestID = 0x83

	// RequestBypass switches the electrical bypass
	RequestBypass RequestID = 0x84
)

// DAPInvalid is the response byte firmware sends for a request it does not implement.
const DAPInvalid = 0xFF

func (r RequestID) String() string {
	switch r {
	case RequestVersion:
		return "version"
	case RequestPower:
		return "power"
	case RequestGPIOSet:
		return "gpio_set"
	case RequestGPIOGet:
		return "gpio_get"
	case RequestBypass:
		return "bypass"
	default:
		return fmt.Sprintf("request(0x%02X)", uint8(r))
	}
}

// IOSetState is the single code carried by a GPIO set command.
// Direction and output level are collapsed into one value.
type IOSetState uint8

// GPIO set codes.
const (
	// IOSetIn configures the pin as an input
	IOSetIn IOSetState = 0x00

	// IOSetOutHigh configures the pin as an output driven high
	IOSetOutHigh IOSetState = 0x01

	// IOSetOutLow configures the pin as an output driven low
	IOSetOutLow IOSetState = 0x02
)

func (s IOSetState) String() string {
	switch s {
	case IOSetIn:
		return "in"
	case IOSetOutHigh:
		return "out_high"
	case IOSetOutLow:
		return "out_low"
	default:
		return fmt.Sprintf("ioset(0x%02X)", uint8(s))
	}
}

// GPIODir selects a pin direction in the caller-facing API.
type GPIODir uint8

// GPIO directions.
const (
	GPIODirIn GPIODir = iota
	GPIODirOut
)

func (d GPIODir) String() string {
	if d == GPIODirIn {
		return "in"
	}
	return "out"
}

// ParseGPIODir parses "in" or "out", ignoring case.
func ParseGPIODir(s string) (GPIODir, error) {
	switch strings.ToLower(s) {
	case "in":
		return GPIODirIn, nil
	case "out":
		return GPIODirOut, nil
	default:
		return 0, fmt.Errorf("invalid GPIO direction %q: expected in or out", s)
	}
}

// Payload sizes per request.
const (
	// PowerPayloadSize is the payload size of a power command (1 byte)
	PowerPayloadSize = 1

	// BypassPayloadSize is the payload size of a bypass command (1 byte)
	BypassPayloadSize = 1

	// GPIOSetPayloadSize is the payload size of a GPIO set command [pin, state]
	GPIOSetPayloadSize = 2

	// GPIOGetPayloadSize is the payload size of a GPIO get command [pin]
	GPIOGetPayloadSize = 1

	// GPIOGetResponseSize is the minimum response body size of a GPIO get command
	GPIOGetResponseSize = 1

	// FrameHeaderSize is the size of the echoed request identifier
	FrameHeaderSize = 1

	// DefaultPacketSize is the full-speed bulk packet size used for DAP frames
	DefaultPacketSize = 64
)
