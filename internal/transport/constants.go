package transport

import "time"

// Connection defaults
const (
	// DefaultReconnectDelay is the initial delay before attempting to reconnect
	DefaultReconnectDelay = 1 * time.Second

	// MaxReconnectDelay caps the exponential backoff
	MaxReconnectDelay = 30 * time.Second

	// ReconnectMultiplier is the multiplier for exponential backoff
	ReconnectMultiplier = 2.0

	// DefaultRequestTimeout bounds a single Invoke round trip
	DefaultRequestTimeout = 10 * time.Second

	// WriteTimeout is the timeout for writing a frame
	WriteTimeout = 10 * time.Second

	// HandshakeTimeout bounds the websocket upgrade
	HandshakeTimeout = 10 * time.Second

	// ReadBufferSize is the WebSocket read buffer size
	ReadBufferSize = 64 * 1024

	// WriteBufferSize is the WebSocket write buffer size
	WriteBufferSize = 4096
)

// Log messages
const (
	LogMsgConnecting       = "Connecting to game gateway"
	LogMsgConnected        = "Connected to game gateway"
	LogMsgReconnecting     = "Reconnecting to game gateway"
	LogMsgRestored         = "Game gateway connection restored"
	LogMsgReadError        = "Error reading from game gateway"
	LogMsgDecodeError      = "Dropping undecodable gateway frame"
	LogMsgUnmatchedReply   = "Dropping reply with no pending request"
	LogMsgUnhandledPush    = "No handler for push"
	LogMsgOnConnectFailed  = "Post-connect hook failed, dropping connection"
	LogMsgSessionStopped   = "Game gateway session stopped"
	LogMsgUnknownFrameType = "Dropping gateway frame of unknown type"
)
