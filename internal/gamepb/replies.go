package gamepb

import (
	"google.golang.org/protobuf/encoding/protowire"

	"github.com/blz111/qq-farm-bot/internal/domain"
)

// Server-side encoders. The engine never sends these; they keep the codecs
// symmetric for fake servers and fixtures.

// EncodeAllLandsReply serializes lands and operation limits
func EncodeAllLandsReply(res domain.LandsResult) []byte {
	var e encoder
	for _, land := range res.Lands {
		e.putMessage(fieldLandsReplyLands, encodeLand(land))
	}
	for _, l := range res.OperationLimits {
		var le encoder
		le.putInt64(fieldLimitID, l.ID)
		le.putInt64(fieldLimitTimes, l.DayTimes)
		le.putInt64(fieldLimitMax, l.DayTimesLimit)
		e.putMessage(fieldLandsReplyLimits, le.Bytes())
	}
	return e.Bytes()
}

// EncodeLandsNotify serializes a lands push
func EncodeLandsNotify(n LandsNotify) []byte {
	var e encoder
	for _, land := range n.Lands {
		e.putMessage(fieldLandsNotifyLands, encodeLand(land))
	}
	e.putInt64(fieldLandsNotifyHost, n.HostGID)
	return e.Bytes()
}

// EncodeBagReply serializes bag contents
func EncodeBagReply(items []domain.ItemStack) []byte {
	return encodeItems(items, fieldBagItems)
}

// EncodeShopInfoReply serializes a shop listing
func EncodeShopInfoReply(goods []domain.ShopGoods) []byte {
	var e encoder
	for _, g := range goods {
		var ge encoder
		ge.putInt64(fieldGoodsID, g.GoodsID)
		ge.putInt64(fieldGoodsItemID, g.ItemID)
		ge.putInt64(fieldGoodsPrice, g.Price)
		ge.putBool(fieldGoodsUnlocked, g.Unlocked)
		e.putMessage(fieldShopGoods, ge.Bytes())
	}
	return e.Bytes()
}

// EncodeLoginReply serializes a login reply
func EncodeLoginReply(r LoginReply) []byte {
	var e encoder
	e.putMessage(fieldLoginReplyBasic, EncodePlayer(r.Player))
	e.putInt64(fieldLoginReplyTime, r.ServerTimeMs)
	return e.Bytes()
}

// EncodeHeartbeatReply serializes a heartbeat reply
func EncodeHeartbeatReply(serverTimeMs int64) []byte {
	var e encoder
	e.putInt64(fieldHeartbeatTime, serverTimeMs)
	return e.Bytes()
}

// EncodeBasicNotify serializes a player update push
func EncodeBasicNotify(p domain.Player) []byte {
	var e encoder
	e.putMessage(fieldBasicNotifyBasic, EncodePlayer(p))
	return e.Bytes()
}

func encodeLand(land domain.Land) []byte {
	var e encoder
	e.putInt64(fieldLandID, land.ID)
	e.putBool(fieldLandUnlocked, land.Unlocked)
	if land.Plant != nil {
		e.putMessage(fieldLandPlant, encodePlant(land.Plant))
	}
	return e.Bytes()
}

func encodePlant(p *domain.Plant) []byte {
	var e encoder
	e.putInt64(fieldPlantID, p.ID)
	e.putString(fieldPlantName, p.Name)
	for _, ph := range p.Phases {
		var pe encoder
		pe.putInt64(fieldPhaseTag, int64(ph.Tag))
		pe.putInt64(fieldPhaseBegin, ph.BeginTime)
		pe.putInt64(fieldPhaseDry, ph.DryTime)
		pe.putInt64(fieldPhaseWeeds, ph.WeedsTime)
		pe.putInt64(fieldPhaseInsect, ph.InsectTime)
		e.putMessage(fieldPlantPhases, pe.Bytes())
	}
	e.putInt64(fieldPlantDryNum, p.DryNum)
	e.putPacked(fieldPlantWeedOwners, p.WeedOwners)
	e.putPacked(fieldPlantInsectOwners, p.InsectOwners)
	return e.Bytes()
}

func encodeItems(items []domain.ItemStack, num protowire.Number) []byte {
	var e encoder
	for _, it := range items {
		var ie encoder
		ie.putInt64(fieldItemID, it.ID)
		ie.putInt64(fieldItemCount, it.Count)
		e.putMessage(num, ie.Bytes())
	}
	return e.Bytes()
}
