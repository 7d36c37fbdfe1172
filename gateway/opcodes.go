package gateway

// Opcode is the integer operation code carried in every gateway frame.
type Opcode int

const (
	OpcodeDispatch Opcode = iota
	OpcodeHeartbeat
	OpcodeIdentify
	OpcodeReconnect
	OpcodeInvalidSession
	OpcodeHello
	OpcodeHeartbeatAck
	OpcodeResume
)

func (op Opcode) String() string {
	switch op {
	case OpcodeDispatch:
		return "Dispatch"
	case OpcodeHeartbeat:
		return "Heartbeat"
	case OpcodeIdentify:
		return "Identify"
	case OpcodeReconnect:
		return "Reconnect"
	case OpcodeInvalidSession:
		return "InvalidSession"
	case OpcodeHello:
		return "Hello"
	case OpcodeHeartbeatAck:
		return "HeartbeatAck"
	case OpcodeResume:
		return "Resume"
	default:
		return "Unknown"
	}
}
