package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	// Game session
	WSURL     string `validate:"required,url"`
	LoginCode string `validate:"required"`
	Platform  string `validate:"oneof=qq wx"`
	ClientVer string `validate:"required"`

	// Farm behaviour
	CheckInterval     time.Duration `validate:"min=1s"`
	HeartbeatInterval time.Duration `validate:"min=1s"`
	UseFertilizer     bool
	FertilizerItemID  int64 `validate:"gt=0"`
	GoldItemID        int64 `validate:"gt=0"`
	SeedShopID        int64 `validate:"gt=0"`

	// Static data and tuning
	GameConfigDir string `validate:"required"`
	TuningFile    string

	// Admin HTTP server, 0 disables it. An empty key leaves the API open.
	AdminPort   int `validate:"min=0,max=65535"`
	AdminAPIKey string

	// Logging
	LogLevel    string `validate:"oneof=debug info warn warning error"`
	LogFormat   string `validate:"oneof=text json"`
	Environment string
	ServiceName string
	Version     string
	StatusBar   bool
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		WSURL:             getEnv("FARM_WS_URL", DefaultWSURL),
		LoginCode:         getEnv("FARM_LOGIN_CODE", ""),
		Platform:          strings.ToLower(getEnv("FARM_PLATFORM", DefaultPlatform)),
		ClientVer:         getEnv("FARM_CLIENT_VERSION", DefaultClientVersion),
		CheckInterval:     getEnvAsDuration("FARM_CHECK_INTERVAL", DefaultCheckInterval),
		HeartbeatInterval: getEnvAsDuration("FARM_HEARTBEAT_INTERVAL", DefaultHeartbeatInterval),
		UseFertilizer:     getEnvAsBool("FARM_USE_FERTILIZER", true),
		FertilizerItemID:  getEnvAsInt64("FARM_FERTILIZER_ITEM_ID", DefaultFertilizerItemID),
		GoldItemID:        getEnvAsInt64("FARM_GOLD_ITEM_ID", DefaultGoldItemID),
		SeedShopID:        getEnvAsInt64("FARM_SEED_SHOP_ID", DefaultSeedShopID),
		GameConfigDir:     getEnv("GAME_CONFIG_DIR", DefaultGameConfigDir),
		TuningFile:        getEnv("TUNING_FILE", ""),
		AdminPort:         getEnvAsInt("ADMIN_PORT", DefaultAdminPort),
		AdminAPIKey:       getEnv("ADMIN_API_KEY", ""),
		LogLevel:          strings.ToLower(getEnv("LOG_LEVEL", "info")),
		LogFormat:         strings.ToLower(getEnv("LOG_FORMAT", "text")),
		Environment:       getEnv("ENVIRONMENT", "dev"),
		ServiceName:       getEnv("SERVICE_NAME", DefaultServiceName),
		Version:           getEnv("VERSION", "dev"),
		StatusBar:         getEnvAsBool("STATUS_BAR", true),
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// AdminEnabled reports whether the admin HTTP server should start
func (c *Config) AdminEnabled() bool {
	return c.AdminPort > 0
}

// AdminAddr returns the listen address of the admin server
func (c *Config) AdminAddr() string {
	return fmt.Sprintf(":%d", c.AdminPort)
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	value, err := strconv.ParseInt(getEnv(key, ""), 10, 64)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	value, err := strconv.ParseBool(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	value, err := time.ParseDuration(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return value
}
