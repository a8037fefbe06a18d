package gameapi

import (
	"context"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blz111/qq-farm-bot/internal/domain"
	"github.com/blz111/qq-farm-bot/internal/gamepb"
	"github.com/blz111/qq-farm-bot/internal/transport"
)

type recordedCall struct {
	service string
	method  string
	body    []byte
}

type fakeGateway struct {
	mu      sync.Mutex
	calls   []recordedCall
	replies map[string][]byte
	errs    map[string]error
	pushes  map[string][]transport.PushHandler
	hooks   []transport.ConnectHook
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{
		replies: make(map[string][]byte),
		errs:    make(map[string]error),
		pushes:  make(map[string][]transport.PushHandler),
	}
}

func (g *fakeGateway) Invoke(ctx context.Context, service, method string, body []byte) ([]byte, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls = append(g.calls, recordedCall{service: service, method: method, body: body})
	if err := g.errs[method]; err != nil {
		return nil, err
	}
	return g.replies[method], nil
}

func (g *fakeGateway) OnPush(eventType string, h transport.PushHandler) {
	g.pushes[eventType] = append(g.pushes[eventType], h)
}

func (g *fakeGateway) OnConnect(h transport.ConnectHook) {
	g.hooks = append(g.hooks, h)
}

func (g *fakeGateway) Connected() bool {
	return true
}

func (g *fakeGateway) push(eventType string, body []byte) {
	for _, h := range g.pushes[eventType] {
		h(gamepb.EventMessage{Type: eventType, Body: body})
	}
}

func (g *fakeGateway) reply(method string, body []byte) {
	g.mu.Lock()
	g.replies[method] = body
	g.mu.Unlock()
}

func (g *fakeGateway) lastCall() recordedCall {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.calls[len(g.calls)-1]
}

func loggedInClient(t *testing.T, gw *fakeGateway, player domain.Player) *Client {
	t.Helper()
	gw.reply(domain.MethodLogin, gamepb.EncodeLoginReply(gamepb.LoginReply{Player: player}))
	c := NewClient(gw, Options{ClientVersion: "1.6.0.14_20251224"})
	_, err := c.Login(context.Background())
	require.NoError(t, err)
	return c
}

func TestLogin_RecordsPlayerAndClock(t *testing.T) {
	gw := newFakeGateway()
	fixed := time.Unix(1_700_000_000, 0)
	gw.reply(domain.MethodLogin, gamepb.EncodeLoginReply(gamepb.LoginReply{
		Player:       domain.Player{GID: 77, Name: "farmer", Level: 5, Gold: 300},
		ServerTimeMs: fixed.Add(90 * time.Second).UnixMilli(),
	}))

	c := NewClient(gw, Options{})
	c.now = func() time.Time { return fixed }

	require.Len(t, gw.hooks, 1)
	require.NoError(t, gw.hooks[0](context.Background()))

	assert.True(t, c.LoggedIn())
	assert.NoError(t, c.CheckHealth(context.Background()))
	assert.Equal(t, 77, int(c.Player().GID))
	assert.Equal(t, 5, c.Player().Level)
	assert.Equal(t, fixed.Unix()+90, c.ServerNow())

	call := gw.lastCall()
	assert.Equal(t, domain.ServiceUser, call.service)
	assert.Equal(t, domain.MethodLogin, call.method)
}

func TestLogin_ReconnectEmitsLevelChange(t *testing.T) {
	gw := newFakeGateway()
	c := loggedInClient(t, gw, domain.Player{GID: 77, Level: 5})
	assert.Empty(t, c.Notifications(), "first login sets the baseline")

	gw.reply(domain.MethodLogin, gamepb.EncodeLoginReply(gamepb.LoginReply{Player: domain.Player{GID: 77, Level: 5}}))
	require.NoError(t, gw.hooks[0](context.Background()))
	assert.Empty(t, c.Notifications(), "unchanged level")

	gw.reply(domain.MethodLogin, gamepb.EncodeLoginReply(gamepb.LoginReply{Player: domain.Player{GID: 77, Level: 7}}))
	require.NoError(t, gw.hooks[0](context.Background()))

	require.Len(t, c.Notifications(), 1)
	n := <-c.Notifications()
	assert.Equal(t, domain.NotificationLevelChanged, n.Kind)
	assert.Equal(t, 7, n.Level)
	assert.Equal(t, 7, c.Player().Level)
}

func TestLogin_Failure(t *testing.T) {
	gw := newFakeGateway()
	gw.errs[domain.MethodLogin] = domain.ErrNotConnected

	c := NewClient(gw, Options{})
	_, err := c.Login(context.Background())

	assert.ErrorIs(t, err, domain.ErrNotConnected)
	assert.False(t, c.LoggedIn())
	assert.ErrorIs(t, c.CheckHealth(context.Background()), domain.ErrNotConnected)
}

func TestHeartbeat_ResyncsClock(t *testing.T) {
	gw := newFakeGateway()
	c := loggedInClient(t, gw, domain.Player{GID: 1})
	fixed := time.Unix(1_700_000_000, 0)
	c.now = func() time.Time { return fixed }

	gw.reply(domain.MethodHeartbeat, gamepb.EncodeHeartbeatReply(fixed.Add(-3*time.Second).UnixMilli()))
	require.NoError(t, c.Heartbeat(context.Background()))

	assert.Equal(t, fixed.Unix()-3, c.ServerNow())
}

func TestStartHeartbeat_StopsCleanly(t *testing.T) {
	gw := newFakeGateway()
	gw.reply(domain.MethodHeartbeat, gamepb.EncodeHeartbeatReply(time.Now().UnixMilli()))
	gw.reply(domain.MethodLogin, gamepb.EncodeLoginReply(gamepb.LoginReply{Player: domain.Player{GID: 1}}))
	c := NewClient(gw, Options{HeartbeatInterval: 5 * time.Millisecond})
	_, err := c.Login(context.Background())
	require.NoError(t, err)

	c.StartHeartbeat(context.Background())
	assert.Eventually(t, func() bool {
		return gw.lastCall().method == domain.MethodHeartbeat
	}, time.Second, 5*time.Millisecond)

	c.Stop()
	c.Stop()
}

func TestAllLands(t *testing.T) {
	gw := newFakeGateway()
	c := loggedInClient(t, gw, domain.Player{GID: 1})
	want := domain.LandsResult{Lands: []domain.Land{{ID: 1, Unlocked: true}, {ID: 2}}}
	gw.reply(domain.MethodAllLands, gamepb.EncodeAllLandsReply(want))

	got, err := c.AllLands(context.Background())
	require.NoError(t, err)
	assert.Equal(t, want, *got)
}

func TestAllLands_Malformed(t *testing.T) {
	gw := newFakeGateway()
	c := loggedInClient(t, gw, domain.Player{GID: 1})
	gw.reply(domain.MethodAllLands, []byte{0x0a, 0x05, 0x08})

	_, err := c.AllLands(context.Background())
	assert.ErrorIs(t, err, domain.ErrMalformedReply)
}

func TestBatchOperationsTargetOwnFarm(t *testing.T) {
	gw := newFakeGateway()
	c := loggedInClient(t, gw, domain.Player{GID: 99})
	ctx := context.Background()

	ops := []struct {
		name   string
		method string
		call   func() error
	}{
		{"harvest", domain.MethodHarvest, func() error { return c.Harvest(ctx, []int64{1, 2}) }},
		{"water", domain.MethodWaterLand, func() error { return c.Water(ctx, []int64{1, 2}) }},
		{"weed", domain.MethodWeedOut, func() error { return c.Weed(ctx, []int64{1, 2}) }},
		{"bug", domain.MethodInsecticide, func() error { return c.Insecticide(ctx, []int64{1, 2}) }},
		{"remove", domain.MethodRemovePlant, func() error { return c.Remove(ctx, []int64{1, 2}) }},
	}
	for _, op := range ops {
		t.Run(op.name, func(t *testing.T) {
			require.NoError(t, op.call())
			call := gw.lastCall()
			assert.Equal(t, domain.ServicePlant, call.service)
			assert.Equal(t, op.method, call.method)
			assert.Equal(t, gamepb.EncodeLandsRequest([]int64{1, 2}, 99), call.body)
		})
	}
}

func TestPlantAndFertilizeAddressOneLand(t *testing.T) {
	gw := newFakeGateway()
	c := loggedInClient(t, gw, domain.Player{GID: 1})
	ctx := context.Background()

	require.NoError(t, c.Plant(ctx, 20002, 4))
	assert.Equal(t, gamepb.EncodePlantRequest(20002, []int64{4}), gw.lastCall().body)

	require.NoError(t, c.Fertilize(ctx, domain.ItemNormalFertilizer, 4))
	assert.Equal(t, gamepb.EncodeFertilizeRequest(domain.ItemNormalFertilizer, []int64{4}), gw.lastCall().body)
}

func TestRemoteErrorPropagates(t *testing.T) {
	gw := newFakeGateway()
	c := loggedInClient(t, gw, domain.Player{GID: 1})
	gw.errs[domain.MethodBuyGoods] = &gamepb.RemoteError{Code: 1000020, Message: "gold not enough"}

	err := c.Buy(context.Background(), 1, 10, 5)
	assert.ErrorIs(t, err, domain.ErrRemote)
}

func TestBagAndShop(t *testing.T) {
	gw := newFakeGateway()
	c := loggedInClient(t, gw, domain.Player{GID: 1})
	items := []domain.ItemStack{{ID: domain.ItemGold, Count: 1000}}
	goods := []domain.ShopGoods{{GoodsID: 3, ItemID: 20002, Price: 2, Unlocked: true}}
	gw.reply(domain.MethodBag, gamepb.EncodeBagReply(items))
	gw.reply(domain.MethodShopInfo, gamepb.EncodeShopInfoReply(goods))

	gotItems, err := c.Bag(context.Background())
	require.NoError(t, err)
	assert.Equal(t, items, gotItems)

	gotGoods, err := c.ShopGoods(context.Background(), domain.ShopSeeds)
	require.NoError(t, err)
	assert.Equal(t, goods, gotGoods)
	assert.Equal(t, gamepb.EncodeShopInfoRequest(domain.ShopSeeds), gw.lastCall().body)
}

func TestLandsNotify(t *testing.T) {
	gw := newFakeGateway()
	c := loggedInClient(t, gw, domain.Player{GID: 10})

	gw.push(domain.NotifyLands, gamepb.EncodeLandsNotify(gamepb.LandsNotify{
		Lands:   []domain.Land{{ID: 3}, {ID: 4}},
		HostGID: 10,
	}))
	gw.push(domain.NotifyLands, gamepb.EncodeLandsNotify(gamepb.LandsNotify{
		Lands:   []domain.Land{{ID: 1}},
		HostGID: 55,
	}))

	require.Len(t, c.Notifications(), 1)
	n := <-c.Notifications()
	assert.Equal(t, domain.NotificationLandsChanged, n.Kind)
	assert.Equal(t, []int64{3, 4}, n.LandIDs)
}

func TestBasicNotify_LevelChange(t *testing.T) {
	gw := newFakeGateway()
	c := loggedInClient(t, gw, domain.Player{GID: 10, Level: 5})

	gw.push(domain.NotifyBasic, gamepb.EncodeBasicNotify(domain.Player{Gold: 900}))
	gw.push(domain.NotifyBasic, gamepb.EncodeBasicNotify(domain.Player{Level: 6}))
	gw.push(domain.NotifyBasic, gamepb.EncodeBasicNotify(domain.Player{Level: 6}))

	require.Len(t, c.Notifications(), 1)
	n := <-c.Notifications()
	assert.Equal(t, domain.NewLevelChanged(6), n)
	assert.Equal(t, int64(900), c.Player().Gold)
	assert.Equal(t, 6, c.Player().Level)
}

func TestNotificationsDropWhenFull(t *testing.T) {
	gw := newFakeGateway()
	gw.reply(domain.MethodLogin, gamepb.EncodeLoginReply(gamepb.LoginReply{Player: domain.Player{GID: 1}}))
	c := NewClient(gw, Options{NotifyBuffer: 1})

	body := gamepb.EncodeLandsNotify(gamepb.LandsNotify{Lands: []domain.Land{{ID: 1}}})
	gw.push(domain.NotifyLands, body)
	gw.push(domain.NotifyLands, body)

	assert.Len(t, c.Notifications(), 1)
}

func TestGatewayURL(t *testing.T) {
	raw, err := GatewayURL("wss://gate.example/prod/ws", "abc", "qq", "1.6.0")
	require.NoError(t, err)

	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "abc", u.Query().Get("code"))
	assert.Equal(t, "qq", u.Query().Get("platform"))
	assert.Equal(t, "1.6.0", u.Query().Get("ver"))

	_, err = GatewayURL("://bad", "abc", "qq", "1.6.0")
	assert.ErrorIs(t, err, domain.ErrInvalidConfig)
}
