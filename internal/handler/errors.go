package handler

// Client-facing error messages. Internal error details are never exposed.
const (
	ErrMsgGenericServerError = "Something went wrong"
	ErrMsgUnknownError       = "Unknown error"
	ErrMsgCycleInProgress    = "A farm cycle is already running"
	ErrMsgGatewayUnavailable = "Game gateway is not connected"
	ErrMsgGatewayError       = "Game gateway rejected the request"
	ErrMsgNotReady           = "not ready"
)

// Success messages
const (
	MsgFarmChecked = "Farm checked"
)

// Log messages
const (
	LogMsgEncodeFailed   = "Failed to encode JSON response"
	LogMsgWriteFailed    = "Failed to write response buffer"
	LogMsgReadinessFail  = "Readiness check failed"
	LogMsgManualCheck    = "Manual farm check requested"
	LogMsgManualCheckErr = "Manual farm check failed"
)
