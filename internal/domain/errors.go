package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Farm data errors
	ErrMsgNoLands          = "no lands returned"
	ErrMsgNoSeedCandidate  = "no seed candidate available"
	ErrMsgInsufficientGold = "insufficient gold"
	ErrMsgCycleInProgress  = "farm cycle already in progress"
	ErrMsgInvalidConfig    = "invalid configuration"

	// Transport errors
	ErrMsgTransportClosed = "transport closed"
	ErrMsgRemote          = "remote call failed"
	ErrMsgMalformedReply  = "malformed reply"
	ErrMsgNotConnected    = "not connected"
)

// Common domain errors
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	ErrNoLands          = errors.New(ErrMsgNoLands)
	ErrNoSeedCandidate  = errors.New(ErrMsgNoSeedCandidate)
	ErrInsufficientGold = errors.New(ErrMsgInsufficientGold)
	ErrCycleInProgress  = errors.New(ErrMsgCycleInProgress)
	ErrInvalidConfig    = errors.New(ErrMsgInvalidConfig)

	ErrTransportClosed = errors.New(ErrMsgTransportClosed)
	ErrRemote          = errors.New(ErrMsgRemote)
	ErrMalformedReply  = errors.New(ErrMsgMalformedReply)
	ErrNotConnected    = errors.New(ErrMsgNotConnected)
)
