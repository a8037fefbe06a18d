package gameapi

import "time"

// Defaults
const (
	DefaultHeartbeatInterval = 25 * time.Second
	DefaultNotifyBuffer      = 64
	DefaultPlatform          = "qq"
	DefaultOS                = "iOS"
)

// Log messages
const (
	LogMsgLoggedIn          = "Logged in to farm"
	LogMsgLoginFailed       = "Login failed"
	LogMsgHeartbeatFailed   = "Heartbeat failed"
	LogMsgClockSynced       = "Server clock synced"
	LogMsgNotifyDecodeError = "Dropping undecodable push"
	LogMsgNotifyDropped     = "Notification buffer full, dropping push"
	LogMsgForeignLands      = "Ignoring lands push for another farm"
	LogMsgLevelUp           = "Player level changed"
)
