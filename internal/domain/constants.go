package domain

// Remote service names of the farm game gateway
const (
	ServicePlant = "gamepb.plantpb.PlantService"
	ServiceItem  = "gamepb.itempb.ItemService"
	ServiceShop  = "gamepb.shoppb.ShopService"
	ServiceUser  = "gamepb.userpb.UserService"
)

// Remote method names
const (
	MethodAllLands    = "AllLands"
	MethodHarvest     = "Harvest"
	MethodWaterLand   = "WaterLand"
	MethodWeedOut     = "WeedOut"
	MethodInsecticide = "Insecticide"
	MethodRemovePlant = "RemovePlant"
	MethodPlant       = "Plant"
	MethodFertilize   = "Fertilize"
	MethodBag         = "Bag"
	MethodShopInfo    = "ShopInfo"
	MethodBuyGoods    = "BuyGoods"
	MethodLogin       = "Login"
	MethodHeartbeat   = "Heartbeat"
)

// Push notification names
const (
	NotifyLands = "gamepb.plantpb.LandsNotify"
	NotifyBasic = "gamepb.userpb.BasicNotify"
)

// Well-known item ids
const (
	ItemGold             int64 = 1
	ItemNormalFertilizer int64 = 1011
	ShopSeeds            int64 = 2
)

// PlantNameFallbackFmt formats the generic plant label used when a plant id
// cannot be resolved
const PlantNameFallbackFmt = "Plant %d"
