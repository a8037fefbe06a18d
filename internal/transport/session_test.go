package transport

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blz111/qq-farm-bot/internal/domain"
	"github.com/blz111/qq-farm-bot/internal/gamepb"
)

type gatewayHandler func(m gamepb.Message) (gamepb.Message, bool)

type fakeGateway struct {
	srv      *httptest.Server
	handle   gatewayHandler
	connects atomic.Int32

	mu    sync.Mutex
	conns []*websocket.Conn
}

func newFakeGateway(t *testing.T, handle gatewayHandler) *fakeGateway {
	t.Helper()
	g := &fakeGateway{handle: handle}
	upgrader := websocket.Upgrader{}
	g.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		g.connects.Add(1)
		g.mu.Lock()
		g.conns = append(g.conns, c)
		g.mu.Unlock()

		for {
			_, data, err := c.ReadMessage()
			if err != nil {
				return
			}
			msg, err := gamepb.DecodeMessage(data)
			if err != nil {
				continue
			}
			if resp, ok := g.handle(msg); ok {
				g.write(c, resp)
			}
		}
	}))
	t.Cleanup(g.close)
	return g
}

func (g *fakeGateway) url() string {
	return "ws" + strings.TrimPrefix(g.srv.URL, "http") + "/prod/ws?code=secret"
}

func (g *fakeGateway) write(c *websocket.Conn, m gamepb.Message) {
	g.mu.Lock()
	defer g.mu.Unlock()
	_ = c.WriteMessage(websocket.BinaryMessage, gamepb.EncodeMessage(m))
}

func (g *fakeGateway) push(eventType string, body []byte) {
	g.mu.Lock()
	c := g.conns[len(g.conns)-1]
	g.mu.Unlock()
	g.write(c, gamepb.Message{
		Meta: gamepb.Meta{Type: gamepb.MessageNotify},
		Body: gamepb.EncodeEvent(gamepb.EventMessage{Type: eventType, Body: body}),
	})
}

func (g *fakeGateway) dropAll() {
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, c := range g.conns {
		_ = c.Close()
	}
	g.conns = nil
}

func (g *fakeGateway) close() {
	g.dropAll()
	g.srv.Close()
}

func echoHandler(m gamepb.Message) (gamepb.Message, bool) {
	meta := m.Meta
	meta.Type = gamepb.MessageResponse
	if m.Meta.Method == "Fail" {
		meta.ErrorCode = 1001
		meta.ErrorMessage = "not allowed"
	}
	return gamepb.Message{Meta: meta, Body: m.Body}, true
}

func silentHandler(gamepb.Message) (gamepb.Message, bool) {
	return gamepb.Message{}, false
}

func startSession(t *testing.T, g *fakeGateway, cfg Config) *Session {
	t.Helper()
	cfg.URL = g.url()
	s := NewSession(cfg)
	s.Start(context.Background())
	t.Cleanup(s.Stop)
	require.Eventually(t, s.Connected, 2*time.Second, 5*time.Millisecond)
	return s
}

func TestInvoke_RoundTrip(t *testing.T) {
	g := newFakeGateway(t, echoHandler)
	s := startSession(t, g, Config{})

	body, err := s.Invoke(context.Background(), domain.ServicePlant, domain.MethodAllLands, []byte("hello"))
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), body)

	body, err = s.Invoke(context.Background(), domain.ServicePlant, domain.MethodAllLands, []byte("again"))
	require.NoError(t, err)
	assert.Equal(t, []byte("again"), body)
}

func TestInvoke_ConcurrentCallsCorrelate(t *testing.T) {
	g := newFakeGateway(t, echoHandler)
	s := startSession(t, g, Config{})

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			payload := []byte{byte(i)}
			body, err := s.Invoke(context.Background(), domain.ServiceItem, domain.MethodBag, payload)
			assert.NoError(t, err)
			assert.Equal(t, payload, body)
		}(i)
	}
	wg.Wait()
}

func TestInvoke_RemoteError(t *testing.T) {
	g := newFakeGateway(t, echoHandler)
	s := startSession(t, g, Config{})

	_, err := s.Invoke(context.Background(), domain.ServicePlant, "Fail", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrRemote)

	code, ok := gamepb.RemoteCode(err)
	assert.True(t, ok)
	assert.Equal(t, int64(1001), code)
}

func TestInvoke_NotConnected(t *testing.T) {
	s := NewSession(Config{URL: "ws://127.0.0.1:1/ws"})

	_, err := s.Invoke(context.Background(), domain.ServicePlant, domain.MethodAllLands, nil)
	assert.ErrorIs(t, err, domain.ErrNotConnected)
}

func TestInvoke_Timeout(t *testing.T) {
	g := newFakeGateway(t, silentHandler)
	s := startSession(t, g, Config{RequestTimeout: 50 * time.Millisecond})

	_, err := s.Invoke(context.Background(), domain.ServicePlant, domain.MethodAllLands, nil)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestStop_FailsPendingCalls(t *testing.T) {
	g := newFakeGateway(t, silentHandler)
	s := startSession(t, g, Config{RequestTimeout: time.Minute})

	done := make(chan error, 1)
	go func() {
		_, err := s.Invoke(context.Background(), domain.ServicePlant, domain.MethodAllLands, nil)
		done <- err
	}()

	require.Eventually(t, func() bool {
		s.pendingMu.Lock()
		defer s.pendingMu.Unlock()
		return len(s.pending) == 1
	}, time.Second, 5*time.Millisecond)

	s.Stop()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, domain.ErrTransportClosed)
	case <-time.After(time.Second):
		t.Fatal("pending Invoke did not return")
	}
	assert.False(t, s.Connected())
}

func TestOnPush_Dispatches(t *testing.T) {
	g := newFakeGateway(t, echoHandler)
	s := startSession(t, g, Config{})

	got := make(chan []byte, 1)
	s.OnPush(domain.NotifyLands, func(ev gamepb.EventMessage) {
		got <- ev.Body
	})

	g.push(domain.NotifyLands, []byte{7})

	select {
	case body := <-got:
		assert.Equal(t, []byte{7}, body)
	case <-time.After(time.Second):
		t.Fatal("push not delivered")
	}
}

func TestReconnect_RunsConnectHookAgain(t *testing.T) {
	g := newFakeGateway(t, echoHandler)

	var hooks atomic.Int32
	s := NewSession(Config{URL: g.url()})
	s.OnConnect(func(ctx context.Context) error {
		_, err := s.Invoke(ctx, domain.ServiceUser, domain.MethodLogin, nil)
		if err == nil {
			hooks.Add(1)
		}
		return err
	})
	s.Start(context.Background())
	t.Cleanup(s.Stop)

	require.Eventually(t, func() bool { return hooks.Load() == 1 }, 2*time.Second, 5*time.Millisecond)

	g.dropAll()

	require.Eventually(t, func() bool { return hooks.Load() == 2 }, 5*time.Second, 10*time.Millisecond)
	assert.Equal(t, int32(2), g.connects.Load())
}

func TestRedactURL(t *testing.T) {
	got := redactURL("wss://gate.example/prod/ws?code=abc&platform=qq")
	assert.NotContains(t, got, "abc")
	assert.Contains(t, got, "gate.example/prod/ws")
}
