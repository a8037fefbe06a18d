// Package gameapi is the typed farm API over a gateway session. It also owns
// login, the heartbeat that tracks the server clock, and the translation of
// server pushes into engine notifications.
package gameapi

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"sync"
	"sync/atomic"
	"time"

	"github.com/blz111/qq-farm-bot/internal/domain"
	"github.com/blz111/qq-farm-bot/internal/gamepb"
	"github.com/blz111/qq-farm-bot/internal/transport"
)

// Gateway is the session surface the client needs
type Gateway interface {
	Invoke(ctx context.Context, service, method string, body []byte) ([]byte, error)
	OnPush(eventType string, h transport.PushHandler)
	OnConnect(h transport.ConnectHook)
	Connected() bool
}

// Options configure a Client
type Options struct {
	ClientVersion     string
	Platform          string
	DeviceID          string
	HeartbeatInterval time.Duration
	NotifyBuffer      int
}

// Client implements the executor's FarmAPI against the game gateway
type Client struct {
	gw   Gateway
	opts Options
	now  func() time.Time

	mu       sync.RWMutex
	player   domain.Player
	loggedIn bool

	clockOffsetMs atomic.Int64

	notifications chan domain.Notification

	quit     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// NewClient wires push handlers and a login hook into gw
func NewClient(gw Gateway, opts Options) *Client {
	if opts.HeartbeatInterval <= 0 {
		opts.HeartbeatInterval = DefaultHeartbeatInterval
	}
	if opts.NotifyBuffer <= 0 {
		opts.NotifyBuffer = DefaultNotifyBuffer
	}
	if opts.Platform == "" {
		opts.Platform = DefaultPlatform
	}
	c := &Client{
		gw:            gw,
		opts:          opts,
		now:           time.Now,
		notifications: make(chan domain.Notification, opts.NotifyBuffer),
		quit:          make(chan struct{}),
	}
	gw.OnPush(domain.NotifyLands, c.handleLandsNotify)
	gw.OnPush(domain.NotifyBasic, c.handleBasicNotify)
	gw.OnConnect(func(ctx context.Context) error {
		_, err := c.Login(ctx)
		return err
	})
	return c
}

// GatewayURL builds the websocket URL carrying the login code
func GatewayURL(base, code, platform, clientVersion string) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("%w: gateway url: %v", domain.ErrInvalidConfig, err)
	}
	q := u.Query()
	q.Set("platform", platform)
	q.Set("os", DefaultOS)
	q.Set("ver", clientVersion)
	q.Set("code", code)
	q.Set("openID", "")
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// Notifications delivers translated server pushes. Pushes are dropped when
// the buffer is full.
func (c *Client) Notifications() <-chan domain.Notification {
	return c.notifications
}

// Player returns the latest known player fields
func (c *Client) Player() domain.Player {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.player
}

// LoggedIn reports whether a login has succeeded on the current connection
func (c *Client) LoggedIn() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loggedIn
}

// CheckHealth fails unless the gateway is connected and logged in
func (c *Client) CheckHealth(ctx context.Context) error {
	if !c.gw.Connected() || !c.LoggedIn() {
		return domain.ErrNotConnected
	}
	return nil
}

// ServerNow returns the server clock in seconds
func (c *Client) ServerNow() int64 {
	return (c.now().UnixMilli() + c.clockOffsetMs.Load()) / 1000
}

func (c *Client) syncClock(serverMs int64) {
	if serverMs <= 0 {
		return
	}
	offset := serverMs - c.now().UnixMilli()
	c.clockOffsetMs.Store(offset)
	slog.Debug(LogMsgClockSynced, "offset_ms", offset)
}

// Login authenticates the connection and records the player and server clock
func (c *Client) Login(ctx context.Context) (domain.Player, error) {
	body, err := c.gw.Invoke(ctx, domain.ServiceUser, domain.MethodLogin, gamepb.EncodeLoginRequest(gamepb.LoginRequest{
		ClientVersion: c.opts.ClientVersion,
		Platform:      c.opts.Platform,
		DeviceID:      c.opts.DeviceID,
	}))
	if err != nil {
		c.mu.Lock()
		c.loggedIn = false
		c.mu.Unlock()
		slog.Warn(LogMsgLoginFailed, "error", err)
		return domain.Player{}, fmt.Errorf("login: %w", err)
	}
	reply, err := gamepb.DecodeLoginReply(body)
	if err != nil {
		return domain.Player{}, fmt.Errorf("login: %w", err)
	}

	c.mu.Lock()
	prev := c.player
	c.player = reply.Player
	c.loggedIn = true
	c.mu.Unlock()
	c.syncClock(reply.ServerTimeMs)

	slog.Info(LogMsgLoggedIn, "gid", reply.Player.GID, "name", reply.Player.Name, "level", reply.Player.Level)
	// A re-login may reveal a level gained while disconnected
	if prev.GID != 0 && reply.Player.Level > 0 && reply.Player.Level != prev.Level {
		slog.Info(LogMsgLevelUp, "from", prev.Level, "to", reply.Player.Level)
		c.emit(domain.NewLevelChanged(reply.Player.Level))
	}
	return reply.Player, nil
}

// StartHeartbeat sends heartbeats on the configured interval until Stop
func (c *Client) StartHeartbeat(ctx context.Context) {
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		ticker := time.NewTicker(c.opts.HeartbeatInterval)
		defer ticker.Stop()
		for {
			select {
			case <-c.quit:
				return
			case <-ctx.Done():
				return
			case <-ticker.C:
				if !c.LoggedIn() {
					continue
				}
				if err := c.Heartbeat(ctx); err != nil {
					slog.Warn(LogMsgHeartbeatFailed, "error", err)
				}
			}
		}
	}()
}

// Stop ends the heartbeat loop
func (c *Client) Stop() {
	c.stopOnce.Do(func() {
		close(c.quit)
		c.wg.Wait()
	})
}

// Heartbeat keeps the session alive and resyncs the server clock
func (c *Client) Heartbeat(ctx context.Context) error {
	body, err := c.gw.Invoke(ctx, domain.ServiceUser, domain.MethodHeartbeat,
		gamepb.EncodeHeartbeatRequest(c.Player().GID, c.opts.ClientVersion))
	if err != nil {
		return fmt.Errorf("heartbeat: %w", err)
	}
	serverMs, err := gamepb.DecodeHeartbeatReply(body)
	if err != nil {
		return fmt.Errorf("heartbeat: %w", err)
	}
	c.syncClock(serverMs)
	return nil
}

func (c *Client) handleLandsNotify(ev gamepb.EventMessage) {
	n, err := gamepb.DecodeLandsNotify(ev.Body)
	if err != nil {
		slog.Warn(LogMsgNotifyDecodeError, "type", ev.Type, "error", err)
		return
	}
	if gid := c.Player().GID; n.HostGID != 0 && gid != 0 && n.HostGID != gid {
		slog.Debug(LogMsgForeignLands, "host_gid", n.HostGID)
		return
	}
	c.emit(domain.NewLandsChanged(n.LandIDs()))
}

func (c *Client) handleBasicNotify(ev gamepb.EventMessage) {
	p, err := gamepb.DecodeBasicNotify(ev.Body)
	if err != nil {
		slog.Warn(LogMsgNotifyDecodeError, "type", ev.Type, "error", err)
		return
	}

	c.mu.Lock()
	prev := c.player.Level
	if p.Level > 0 {
		c.player.Level = p.Level
	}
	if p.Exp > 0 {
		c.player.Exp = p.Exp
	}
	if p.Gold > 0 {
		c.player.Gold = p.Gold
	}
	c.mu.Unlock()

	if p.Level > 0 && p.Level != prev {
		slog.Info(LogMsgLevelUp, "from", prev, "to", p.Level)
		c.emit(domain.NewLevelChanged(p.Level))
	}
}

func (c *Client) emit(n domain.Notification) {
	select {
	case c.notifications <- n:
	default:
		slog.Warn(LogMsgNotifyDropped, "kind", n.Kind)
	}
}
