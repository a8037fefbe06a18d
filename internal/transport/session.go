// Package transport keeps a websocket session to the game gateway and
// multiplexes request/reply calls and server pushes over it.
package transport

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/blz111/qq-farm-bot/internal/domain"
	"github.com/blz111/qq-farm-bot/internal/gamepb"
)

// PushHandler receives a decoded notify event. Handlers run on the read loop
// and must not block.
type PushHandler func(ev gamepb.EventMessage)

// ConnectHook runs after every successful dial, off the read loop. Returning
// an error drops the connection and triggers a reconnect.
type ConnectHook func(ctx context.Context) error

// Config configures a Session
type Config struct {
	URL            string
	Header         http.Header
	RequestTimeout time.Duration
}

type reply struct {
	meta gamepb.Meta
	body []byte
	err  error
}

// Session is a reconnecting gateway client. Invoke is safe for concurrent use.
type Session struct {
	cfg Config

	mu        sync.RWMutex
	conn      *websocket.Conn
	connected bool

	writeMu sync.Mutex

	clientSeq atomic.Int64
	serverSeq atomic.Int64

	pendingMu sync.Mutex
	pending   map[int64]chan reply

	handlersMu sync.RWMutex
	handlers   map[string][]PushHandler
	onConnect  []ConnectHook

	shutdown chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// NewSession creates an unconnected Session
func NewSession(cfg Config) *Session {
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = DefaultRequestTimeout
	}
	return &Session{
		cfg:      cfg,
		pending:  make(map[int64]chan reply),
		handlers: make(map[string][]PushHandler),
		shutdown: make(chan struct{}),
	}
}

// OnPush registers h for notify events of the given message type
func (s *Session) OnPush(eventType string, h PushHandler) {
	s.handlersMu.Lock()
	s.handlers[eventType] = append(s.handlers[eventType], h)
	s.handlersMu.Unlock()
}

// OnConnect registers a hook run after each (re)connect
func (s *Session) OnConnect(h ConnectHook) {
	s.handlersMu.Lock()
	s.onConnect = append(s.onConnect, h)
	s.handlersMu.Unlock()
}

// Start begins the connection loop with auto-reconnect
func (s *Session) Start(ctx context.Context) {
	context.AfterFunc(ctx, s.dropConn)
	s.wg.Add(1)
	go s.connectLoop(ctx)
}

// Stop closes the connection, fails pending calls, and waits for the loop
func (s *Session) Stop() {
	s.stopOnce.Do(func() {
		close(s.shutdown)
		s.dropConn()
		s.wg.Wait()
		s.failPending(domain.ErrTransportClosed)
		slog.Info(LogMsgSessionStopped)
	})
}

// Connected reports whether a connection is currently open
func (s *Session) Connected() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.connected
}

// Invoke sends a request and waits for the reply correlated by client sequence
// number. A non-zero error code in the reply yields a *gamepb.RemoteError.
func (s *Session) Invoke(ctx context.Context, service, method string, body []byte) ([]byte, error) {
	s.mu.RLock()
	conn := s.conn
	s.mu.RUnlock()
	if conn == nil {
		return nil, fmt.Errorf("%w: %s.%s", domain.ErrNotConnected, service, method)
	}

	seq := s.clientSeq.Add(1)
	ch := make(chan reply, 1)
	s.pendingMu.Lock()
	s.pending[seq] = ch
	s.pendingMu.Unlock()
	defer s.forget(seq)

	frame := gamepb.EncodeMessage(gamepb.Message{
		Meta: gamepb.Meta{
			Service:   service,
			Method:    method,
			Type:      gamepb.MessageRequest,
			ClientSeq: seq,
			ServerSeq: s.serverSeq.Load(),
		},
		Body: body,
	})
	if err := s.write(conn, frame); err != nil {
		return nil, fmt.Errorf("%w: write %s.%s: %v", domain.ErrTransportClosed, service, method, err)
	}

	timer := time.NewTimer(s.cfg.RequestTimeout)
	defer timer.Stop()

	select {
	case r := <-ch:
		if r.err != nil {
			return nil, r.err
		}
		if err := gamepb.ResponseError(r.meta); err != nil {
			return nil, err
		}
		return r.body, nil
	case <-timer.C:
		return nil, fmt.Errorf("%s.%s: %w", service, method, context.DeadlineExceeded)
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-s.shutdown:
		return nil, domain.ErrTransportClosed
	}
}

func (s *Session) write(conn *websocket.Conn, frame []byte) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	_ = conn.SetWriteDeadline(time.Now().Add(WriteTimeout))
	return conn.WriteMessage(websocket.BinaryMessage, frame)
}

func (s *Session) forget(seq int64) {
	s.pendingMu.Lock()
	delete(s.pending, seq)
	s.pendingMu.Unlock()
}

func (s *Session) failPending(err error) {
	s.pendingMu.Lock()
	defer s.pendingMu.Unlock()
	for seq, ch := range s.pending {
		select {
		case ch <- reply{err: err}:
		default:
		}
		delete(s.pending, seq)
	}
}

func (s *Session) connectLoop(ctx context.Context) {
	defer s.wg.Done()

	backoff := DefaultReconnectDelay
	failures := 0

	for {
		select {
		case <-s.shutdown:
			return
		case <-ctx.Done():
			return
		default:
		}

		established, err := s.connect(ctx)
		s.dropConn()
		s.failPending(domain.ErrTransportClosed)

		if established {
			if failures > 0 {
				slog.Info(LogMsgRestored, "after_failures", failures)
			}
			backoff = DefaultReconnectDelay
			failures = 0
		} else {
			failures++
		}

		select {
		case <-s.shutdown:
			return
		case <-ctx.Done():
			return
		default:
		}

		if failures <= 3 || failures%100 == 0 {
			slog.Warn(LogMsgReconnecting, "error", err, "backoff", backoff, "consecutive_failures", failures)
		}

		select {
		case <-time.After(backoff):
			backoff = time.Duration(float64(backoff) * ReconnectMultiplier)
			if backoff > MaxReconnectDelay {
				backoff = MaxReconnectDelay
			}
		case <-s.shutdown:
			return
		case <-ctx.Done():
			return
		}
	}
}

// connect dials and runs the read loop until the connection ends.
// established reports whether the dial succeeded.
func (s *Session) connect(ctx context.Context) (established bool, err error) {
	slog.Info(LogMsgConnecting, "url", redactURL(s.cfg.URL))

	dialer := websocket.Dialer{
		ReadBufferSize:   ReadBufferSize,
		WriteBufferSize:  WriteBufferSize,
		HandshakeTimeout: HandshakeTimeout,
	}
	conn, resp, err := dialer.DialContext(ctx, s.cfg.URL, s.cfg.Header)
	if err != nil {
		if resp != nil {
			return false, fmt.Errorf("failed to connect: %w (status: %s)", err, resp.Status)
		}
		return false, fmt.Errorf("failed to connect: %w", err)
	}

	s.mu.Lock()
	s.conn = conn
	s.connected = true
	s.mu.Unlock()
	slog.Info(LogMsgConnected)

	s.runConnectHooks(ctx, conn)

	return true, s.readLoop(conn)
}

func (s *Session) runConnectHooks(ctx context.Context, conn *websocket.Conn) {
	s.handlersMu.RLock()
	hooks := append([]ConnectHook(nil), s.onConnect...)
	s.handlersMu.RUnlock()
	if len(hooks) == 0 {
		return
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		for _, h := range hooks {
			if err := h(ctx); err != nil {
				slog.Warn(LogMsgOnConnectFailed, "error", err)
				_ = conn.Close()
				return
			}
		}
	}()
}

func (s *Session) readLoop(conn *websocket.Conn) error {
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			select {
			case <-s.shutdown:
				return nil
			default:
			}
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				slog.Warn(LogMsgReadError, "error", err)
			}
			return err
		}

		msg, err := gamepb.DecodeMessage(data)
		if err != nil {
			slog.Warn(LogMsgDecodeError, "error", err)
			continue
		}
		if seq := msg.Meta.ServerSeq; seq > s.serverSeq.Load() {
			s.serverSeq.Store(seq)
		}
		s.dispatch(msg)
	}
}

func (s *Session) dispatch(msg gamepb.Message) {
	switch msg.Meta.Type {
	case gamepb.MessageResponse:
		s.pendingMu.Lock()
		ch, ok := s.pending[msg.Meta.ClientSeq]
		s.pendingMu.Unlock()
		if !ok {
			slog.Debug(LogMsgUnmatchedReply, "seq", msg.Meta.ClientSeq, "method", msg.Meta.Method)
			return
		}
		select {
		case ch <- reply{meta: msg.Meta, body: msg.Body}:
		default:
		}

	case gamepb.MessageNotify:
		ev, err := gamepb.DecodeEvent(msg.Body)
		if err != nil {
			slog.Warn(LogMsgDecodeError, "error", err)
			return
		}
		s.handlersMu.RLock()
		hs := s.handlers[ev.Type]
		s.handlersMu.RUnlock()
		if len(hs) == 0 {
			slog.Debug(LogMsgUnhandledPush, "type", ev.Type)
			return
		}
		for _, h := range hs {
			h(ev)
		}

	default:
		slog.Debug(LogMsgUnknownFrameType, "type", msg.Meta.Type)
	}
}

func (s *Session) dropConn() {
	s.mu.Lock()
	c := s.conn
	s.conn = nil
	s.connected = false
	s.mu.Unlock()
	if c != nil {
		_ = c.Close()
	}
}
