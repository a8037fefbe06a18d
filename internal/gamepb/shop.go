package gamepb

import (
	"google.golang.org/protobuf/encoding/protowire"

	"github.com/blz111/qq-farm-bot/internal/domain"
)

// itempb and shoppb field numbers
const (
	fieldBagItems  = 1
	fieldItemID    = 1
	fieldItemCount = 2

	fieldShopID        = 1
	fieldShopGoods     = 1
	fieldGoodsID       = 1
	fieldGoodsItemID   = 2
	fieldGoodsPrice    = 3
	fieldGoodsUnlocked = 4

	fieldBuyGoodsID = 1
	fieldBuyNum     = 2
	fieldBuyPrice   = 3
	fieldBuyItems   = 1
)

// EncodeBagRequest builds a bag listing request
func EncodeBagRequest() []byte {
	return []byte{}
}

// DecodeBagReply parses the bag contents
func DecodeBagReply(b []byte) ([]domain.ItemStack, error) {
	return decodeItems(b, fieldBagItems)
}

// EncodeShopInfoRequest builds a shop listing request
func EncodeShopInfoRequest(shopID int64) []byte {
	var e encoder
	e.putInt64(fieldShopID, shopID)
	return e.Bytes()
}

// DecodeShopInfoReply parses a shop listing
func DecodeShopInfoReply(b []byte) ([]domain.ShopGoods, error) {
	var goods []domain.ShopGoods
	err := walk(b, func(f field) error {
		if f.Num != fieldShopGoods {
			return nil
		}
		var g domain.ShopGoods
		err := walk(f.Bytes, func(f field) error {
			switch f.Num {
			case fieldGoodsID:
				g.GoodsID = f.Int64()
			case fieldGoodsItemID:
				g.ItemID = f.Int64()
			case fieldGoodsPrice:
				g.Price = f.Int64()
			case fieldGoodsUnlocked:
				g.Unlocked = f.Bool()
			}
			return nil
		})
		goods = append(goods, g)
		return err
	})
	if err != nil {
		return nil, err
	}
	return goods, nil
}

// EncodeBuyGoodsRequest builds a purchase of count units at the listed price
func EncodeBuyGoodsRequest(goodsID, count, price int64) []byte {
	var e encoder
	e.putInt64(fieldBuyGoodsID, goodsID)
	e.putInt64(fieldBuyNum, count)
	e.putInt64(fieldBuyPrice, price)
	return e.Bytes()
}

// DecodeBuyGoodsReply parses the items granted by a purchase
func DecodeBuyGoodsReply(b []byte) ([]domain.ItemStack, error) {
	return decodeItems(b, fieldBuyItems)
}

func decodeItems(b []byte, num protowire.Number) ([]domain.ItemStack, error) {
	var items []domain.ItemStack
	err := walk(b, func(f field) error {
		if f.Num != num {
			return nil
		}
		var it domain.ItemStack
		err := walk(f.Bytes, func(f field) error {
			switch f.Num {
			case fieldItemID:
				it.ID = f.Int64()
			case fieldItemCount:
				it.Count = f.Int64()
			}
			return nil
		})
		items = append(items, it)
		return err
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}
