package config

import "time"

// Defaults
const (
	DefaultWSURL             = "wss://gate-obt.nqf.qq.com/prod/ws"
	DefaultPlatform          = "qq"
	DefaultClientVersion     = "1.6.0.14_20251224"
	DefaultCheckInterval     = 10 * time.Second
	DefaultHeartbeatInterval = 25 * time.Second
	DefaultFertilizerItemID  = 1011
	DefaultGoldItemID        = 1
	DefaultSeedShopID        = 2
	DefaultGameConfigDir     = "configs/gameconfig"
	DefaultAdminPort         = 8089
	DefaultServiceName       = "qq-farm-bot"
)

// MinRecommendedInterval is the shortest polling interval that does not trigger a warning
const MinRecommendedInterval = 3 * time.Second

// Game configuration file names inside GameConfigDir
const (
	FilePlants   = "plants.json"
	FileSeedShop = "seed_shop.json"
	FileLevels   = "levels.json"
)
