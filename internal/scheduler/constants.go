package scheduler

import "time"

// Defaults applied to zero Options fields
const (
	DefaultInterval        = 10 * time.Second
	DefaultImminentSeconds = 2
	DefaultPushDebounce    = 500 * time.Millisecond
)

// Log messages
const (
	LogMsgLoopStarted     = "Farm loop started"
	LogMsgLoopStopped     = "Farm loop stopped"
	LogMsgCycleSkipped    = "Farm cycle already running, skipping"
	LogMsgCycleStarted    = "Farm cycle started"
	LogMsgCycleFinished   = "Farm cycle finished"
	LogMsgFetchFailed     = "Fetching lands failed, will retry next tick"
	LogMsgCyclePanic      = "Farm cycle panicked"
	LogMsgPushDebounced   = "Lands push debounced"
	LogMsgPushAccepted    = "Lands push accepted, checking farm"
	LogMsgLevelChanged    = "Player level changed"
	LogMsgUnknownNotify   = "Ignoring unknown notification"
	LogMsgProjectionShown = "Farm idle, projecting snapshot"
)
