package protocol

const (
	// Protocol/transport validation.
	ErrProtoBadRequest = "E_PROTO_BAD_REQUEST"
	ErrBadVersion      = "E_BAD_VERSION"

	// Event layer.
	ErrUnknownEvent = "E_UNKNOWN_EVENT"
	ErrShuttingDown = "E_SHUTTING_DOWN"
	ErrInternal     = "E_INTERNAL"
)

var knownCodes = map[string]struct{}{
	ErrProtoBadRequest: {},
	ErrBadVersion:      {},
	ErrUnknownEvent:    {},
	ErrShuttingDown:    {},
	ErrInternal:        {},
}

func IsKnownCode(code string) bool {
	if code == "" {
		return true
	}
	_, ok := knownCodes[code]
	return ok
}
