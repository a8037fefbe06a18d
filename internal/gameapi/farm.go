package gameapi

import (
	"context"
	"fmt"

	"github.com/blz111/qq-farm-bot/internal/domain"
	"github.com/blz111/qq-farm-bot/internal/gamepb"
)

func (c *Client) call(ctx context.Context, service, method string, body []byte) ([]byte, error) {
	reply, err := c.gw.Invoke(ctx, service, method, body)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", method, err)
	}
	return reply, nil
}

func (c *Client) landsCall(ctx context.Context, method string, landIDs []int64) error {
	_, err := c.call(ctx, domain.ServicePlant, method, gamepb.EncodeLandsRequest(landIDs, c.Player().GID))
	return err
}

// AllLands fetches every land of the player's farm
func (c *Client) AllLands(ctx context.Context) (*domain.LandsResult, error) {
	body, err := c.call(ctx, domain.ServicePlant, domain.MethodAllLands, gamepb.EncodeAllLandsRequest())
	if err != nil {
		return nil, err
	}
	res, err := gamepb.DecodeAllLandsReply(body)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", domain.MethodAllLands, err)
	}
	return res, nil
}

// Harvest collects mature plants on the given lands
func (c *Client) Harvest(ctx context.Context, landIDs []int64) error {
	return c.landsCall(ctx, domain.MethodHarvest, landIDs)
}

// Water relieves drought on the given lands
func (c *Client) Water(ctx context.Context, landIDs []int64) error {
	return c.landsCall(ctx, domain.MethodWaterLand, landIDs)
}

// Weed clears weeds on the given lands
func (c *Client) Weed(ctx context.Context, landIDs []int64) error {
	return c.landsCall(ctx, domain.MethodWeedOut, landIDs)
}

// Insecticide clears insects on the given lands
func (c *Client) Insecticide(ctx context.Context, landIDs []int64) error {
	return c.landsCall(ctx, domain.MethodInsecticide, landIDs)
}

// Remove clears dead or harvested plants from the given lands
func (c *Client) Remove(ctx context.Context, landIDs []int64) error {
	return c.landsCall(ctx, domain.MethodRemovePlant, landIDs)
}

// Plant sows one seed on one land
func (c *Client) Plant(ctx context.Context, seedID, landID int64) error {
	_, err := c.call(ctx, domain.ServicePlant, domain.MethodPlant, gamepb.EncodePlantRequest(seedID, []int64{landID}))
	return err
}

// Fertilize applies one fertilizer item to one land
func (c *Client) Fertilize(ctx context.Context, fertilizerID, landID int64) error {
	_, err := c.call(ctx, domain.ServicePlant, domain.MethodFertilize, gamepb.EncodeFertilizeRequest(fertilizerID, []int64{landID}))
	return err
}

// Bag lists the player's items
func (c *Client) Bag(ctx context.Context) ([]domain.ItemStack, error) {
	body, err := c.call(ctx, domain.ServiceItem, domain.MethodBag, gamepb.EncodeBagRequest())
	if err != nil {
		return nil, err
	}
	items, err := gamepb.DecodeBagReply(body)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", domain.MethodBag, err)
	}
	return items, nil
}

// ShopGoods lists a shop's goods
func (c *Client) ShopGoods(ctx context.Context, shopID int64) ([]domain.ShopGoods, error) {
	body, err := c.call(ctx, domain.ServiceShop, domain.MethodShopInfo, gamepb.EncodeShopInfoRequest(shopID))
	if err != nil {
		return nil, err
	}
	goods, err := gamepb.DecodeShopInfoReply(body)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", domain.MethodShopInfo, err)
	}
	return goods, nil
}

// Buy purchases count units of goodsID at price each
func (c *Client) Buy(ctx context.Context, goodsID, count, price int64) error {
	body, err := c.call(ctx, domain.ServiceShop, domain.MethodBuyGoods, gamepb.EncodeBuyGoodsRequest(goodsID, count, price))
	if err != nil {
		return err
	}
	if _, err := gamepb.DecodeBuyGoodsReply(body); err != nil {
		return fmt.Errorf("%s: %w", domain.MethodBuyGoods, err)
	}
	return nil
}
