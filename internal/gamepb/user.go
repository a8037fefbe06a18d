package gamepb

import "github.com/blz111/qq-farm-bot/internal/domain"

// userpb field numbers
const (
	fieldLoginClientVersion = 1
	fieldLoginPlatform      = 2
	fieldLoginDeviceID      = 3

	fieldLoginReplyBasic = 1
	fieldLoginReplyTime  = 2

	fieldBasicGID   = 1
	fieldBasicName  = 2
	fieldBasicLevel = 3
	fieldBasicExp   = 4
	fieldBasicGold  = 5

	fieldHeartbeatGID     = 1
	fieldHeartbeatVersion = 2
	fieldHeartbeatTime    = 1

	fieldBasicNotifyBasic = 1
)

// LoginRequest identifies the client after the socket is open
type LoginRequest struct {
	ClientVersion string
	Platform      string
	DeviceID      string
}

// LoginReply carries the player and the server clock in milliseconds
type LoginReply struct {
	Player       domain.Player
	ServerTimeMs int64
}

// EncodeLoginRequest serializes a login request
func EncodeLoginRequest(r LoginRequest) []byte {
	var e encoder
	e.putString(fieldLoginClientVersion, r.ClientVersion)
	e.putString(fieldLoginPlatform, r.Platform)
	e.putString(fieldLoginDeviceID, r.DeviceID)
	return e.Bytes()
}

// DecodeLoginReply parses a login reply
func DecodeLoginReply(b []byte) (LoginReply, error) {
	var r LoginReply
	err := walk(b, func(f field) error {
		switch f.Num {
		case fieldLoginReplyBasic:
			p, err := decodePlayer(f.Bytes)
			if err != nil {
				return err
			}
			r.Player = p
		case fieldLoginReplyTime:
			r.ServerTimeMs = f.Int64()
		}
		return nil
	})
	return r, err
}

// EncodeHeartbeatRequest serializes a heartbeat
func EncodeHeartbeatRequest(gid int64, clientVersion string) []byte {
	var e encoder
	e.putInt64(fieldHeartbeatGID, gid)
	e.putString(fieldHeartbeatVersion, clientVersion)
	return e.Bytes()
}

// DecodeHeartbeatReply returns the server clock in milliseconds
func DecodeHeartbeatReply(b []byte) (int64, error) {
	var ms int64
	err := walk(b, func(f field) error {
		if f.Num == fieldHeartbeatTime {
			ms = f.Int64()
		}
		return nil
	})
	return ms, err
}

// DecodeBasicNotify parses a player update push
func DecodeBasicNotify(b []byte) (domain.Player, error) {
	var p domain.Player
	err := walk(b, func(f field) error {
		if f.Num != fieldBasicNotifyBasic {
			return nil
		}
		var err error
		p, err = decodePlayer(f.Bytes)
		return err
	})
	return p, err
}

func decodePlayer(b []byte) (domain.Player, error) {
	var p domain.Player
	err := walk(b, func(f field) error {
		switch f.Num {
		case fieldBasicGID:
			p.GID = f.Int64()
		case fieldBasicName:
			p.Name = string(f.Bytes)
		case fieldBasicLevel:
			p.Level = int(f.Int64())
		case fieldBasicExp:
			p.Exp = f.Int64()
		case fieldBasicGold:
			p.Gold = f.Int64()
		}
		return nil
	})
	return p, err
}

// EncodePlayer serializes a BasicInfo message; used by test servers
func EncodePlayer(p domain.Player) []byte {
	var e encoder
	e.putInt64(fieldBasicGID, p.GID)
	e.putString(fieldBasicName, p.Name)
	e.putInt64(fieldBasicLevel, int64(p.Level))
	e.putInt64(fieldBasicExp, p.Exp)
	e.putInt64(fieldBasicGold, p.Gold)
	return e.Bytes()
}
