package protocol

// boolByte encodes a flag as the single byte 1 or 0.
func boolByte(v bool) byte {
	if v {
		return 1
	}
	return 0
}

// IOSetStateForLevel returns the output code for a GPIO level.
// true drives the pin high, false drives it low.
func IOSetStateForLevel(high bool) IOSetState {
	if high {
		return IOSetOutHigh
	}
	return IOSetOutLow
}

// IOSetStateForDir returns the code for a GPIO direction.
// Setting a pin to output always starts it driven low.
func IOSetStateForDir(dir GPIODir) IOSetState {
	if dir == GPIODirIn {
		return IOSetIn
	}
	return IOSetOutLow
}

// BuildVersionCmd constructs a firmware version request.
//
// Payload structure:
//
//	(empty)
func BuildVersionCmd() Command {
	return Command{Request: RequestVersion}
}

// BuildPowerCmd constructs a target power command.
//
// Payload structure:
//
//	[STATE]  1 = on, 0 = off
func BuildPowerCmd(on bool) Command {
	return Command{
		Request: RequestPower,
		Payload: []byte{boolByte(on)},
	}
}

// BuildBypassCmd constructs an electrical bypass command.
// The encoding is identical to BuildPowerCmd.
//
// Payload structure:
//
//	[STATE]  1 = on, 0 = off
func BuildBypassCmd(on bool) Command {
	return Command{
		Request: RequestBypass,
		Payload: []byte{boolByte(on)},
	}
}

// BuildGPIOSetCmd constructs a GPIO level command.
//
// Payload structure:
//
//	[PIN][IOSET_OUT_HIGH | IOSET_OUT_LOW]
func BuildGPIOSetCmd(pin uint8, high bool) Command {
	return Command{
		Request: RequestGPIOSet,
		Payload: []byte{pin, byte(IOSetStateForLevel(high))},
	}
}

// BuildGPIODirCmd constructs a GPIO direction command.
// It shares RequestGPIOSet with BuildGPIOSetCmd; only the state byte differs.
//
// Payload structure:
//
//	[PIN][IOSET_IN | IOSET_OUT_LOW]
func BuildGPIODirCmd(pin uint8, dir GPIODir) Command {
	return Command{
		Request: RequestGPIOSet,
		Payload: []byte{pin, byte(IOSetStateForDir(dir))},
	}
}

// BuildGPIOGetCmd constructs a GPIO read command.
//
// Payload structure:
//
//	[PIN]
func BuildGPIOGetCmd(pin uint8) Command {
	return Command{
		Request: RequestGPIOGet,
		Payload: []byte{pin},
	}
}

// EncodeFrame builds the wire frame for a command.
//
// Frame structure:
//
//	[REQUEST_ID][PAYLOAD...]
func EncodeFrame(cmd Command) []byte {
	frame := make([]byte, 0, FrameHeaderSize+len(cmd.Payload))
	frame = append(frame, byte(cmd.Request))
	frame = append(frame, cmd.Payload...)
	return frame
}
