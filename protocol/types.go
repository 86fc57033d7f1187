package protocol

// Command is one encoded vendor request.
type Command struct {
	// Request is the vendor request identifier
	Request RequestID

	// Payload is the fixed-layout request payload (may be empty)
	Payload []byte
}
