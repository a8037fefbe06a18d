package gamepb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/encoding/protowire"

	"github.com/blz111/qq-farm-bot/internal/domain"
)

func TestDecodeAllLandsReply(t *testing.T) {
	want := domain.LandsResult{
		Lands: []domain.Land{
			{ID: 1, Unlocked: true, Plant: &domain.Plant{
				ID:   1020002,
				Name: "白萝卜",
				Phases: []domain.Phase{
					{Tag: domain.PhaseSeed, BeginTime: 1000},
					{Tag: domain.PhaseMature, BeginTime: 4600, DryTime: 2000},
				},
				DryNum:     1,
				WeedOwners: []int64{42, 43},
			}},
			{ID: 2, Unlocked: true},
			{ID: 3},
		},
		OperationLimits: []domain.OperationLimit{{ID: 10005, DayTimes: 3, DayTimesLimit: 20}},
	}

	got, err := DecodeAllLandsReply(EncodeAllLandsReply(want))
	require.NoError(t, err)
	assert.Equal(t, want, *got)
}

func TestDecode_NegativeTimestamp(t *testing.T) {
	var phase []byte
	phase = protowire.AppendTag(phase, fieldPhaseTag, protowire.VarintType)
	phase = protowire.AppendVarint(phase, uint64(domain.PhaseSeed))
	phase = protowire.AppendTag(phase, fieldPhaseBegin, protowire.VarintType)
	begin := int64(-5)
	phase = protowire.AppendVarint(phase, uint64(begin))

	ph, err := decodePhase(phase)
	require.NoError(t, err)
	assert.Equal(t, int64(-5), ph.BeginTime)
}

func TestDecode_UnpackedRepeatedAndUnknownFields(t *testing.T) {
	var plant []byte
	plant = protowire.AppendTag(plant, fieldPlantID, protowire.VarintType)
	plant = protowire.AppendVarint(plant, 7)
	plant = protowire.AppendTag(plant, fieldPlantInsectOwners, protowire.VarintType)
	plant = protowire.AppendVarint(plant, 11)
	plant = protowire.AppendTag(plant, fieldPlantInsectOwners, protowire.VarintType)
	plant = protowire.AppendVarint(plant, 12)
	plant = protowire.AppendTag(plant, 99, protowire.Fixed32Type)
	plant = protowire.AppendFixed32(plant, 0xdeadbeef)
	plant = protowire.AppendTag(plant, 98, protowire.BytesType)
	plant = protowire.AppendString(plant, "ignored")

	p, err := decodePlant(plant)
	require.NoError(t, err)
	assert.Equal(t, int64(7), p.ID)
	assert.Equal(t, []int64{11, 12}, p.InsectOwners)
}

func TestDecode_Truncated(t *testing.T) {
	full := EncodeAllLandsReply(domain.LandsResult{Lands: []domain.Land{{ID: 1, Unlocked: true}}})

	_, err := DecodeAllLandsReply(full[:len(full)-1])
	assert.ErrorIs(t, err, domain.ErrMalformedReply)
}

func TestGateMessage(t *testing.T) {
	event := EncodeEvent(EventMessage{Type: domain.NotifyLands, Body: []byte{1, 2}})
	frame := EncodeMessage(Message{
		Meta: Meta{Type: MessageNotify, ServerSeq: 9},
		Body: event,
	})

	msg, err := DecodeMessage(frame)
	require.NoError(t, err)
	assert.Equal(t, MessageNotify, msg.Meta.Type)
	assert.Equal(t, int64(9), msg.Meta.ServerSeq)

	ev, err := DecodeEvent(msg.Body)
	require.NoError(t, err)
	assert.Equal(t, domain.NotifyLands, ev.Type)
	assert.Equal(t, []byte{1, 2}, ev.Body)
}

func TestResponseError(t *testing.T) {
	assert.NoError(t, ResponseError(Meta{Service: domain.ServicePlant}))

	err := ResponseError(Meta{
		Service:      domain.ServicePlant,
		Method:       domain.MethodPlant,
		ErrorCode:    1000019,
		ErrorMessage: "land occupied",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrRemote)
	assert.Contains(t, err.Error(), "land occupied")

	code, ok := RemoteCode(err)
	assert.True(t, ok)
	assert.Equal(t, int64(1000019), code)

	_, ok = RemoteCode(domain.ErrTransportClosed)
	assert.False(t, ok)
}

func TestShopAndBag(t *testing.T) {
	goods := []domain.ShopGoods{
		{GoodsID: 1, ItemID: 20002, Price: 10, Unlocked: true},
		{GoodsID: 2, ItemID: 20003, Price: 25},
	}
	gotGoods, err := DecodeShopInfoReply(EncodeShopInfoReply(goods))
	require.NoError(t, err)
	assert.Equal(t, goods, gotGoods)

	items := []domain.ItemStack{{ID: domain.ItemGold, Count: 500}, {ID: 20002, Count: 3}}
	gotItems, err := DecodeBagReply(EncodeBagReply(items))
	require.NoError(t, err)
	assert.Equal(t, items, gotItems)
}

func TestPlantRequestLayout(t *testing.T) {
	body := EncodePlantRequest(20002, []int64{4})

	var seed int64
	var lands []int64
	err := walk(body, func(f field) error {
		require.Equal(t, protowire.Number(fieldPlantItems), f.Num)
		return walk(f.Bytes, func(f field) error {
			var err error
			switch f.Num {
			case fieldPlantItemSeed:
				seed = f.Int64()
			case fieldPlantItemLands:
				lands, err = int64s(lands, f)
			}
			return err
		})
	})
	require.NoError(t, err)
	assert.Equal(t, int64(20002), seed)
	assert.Equal(t, []int64{4}, lands)
}
