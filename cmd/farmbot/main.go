package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/blz111/qq-farm-bot/internal/config"
	"github.com/blz111/qq-farm-bot/internal/executor"
	"github.com/blz111/qq-farm-bot/internal/gameapi"
	"github.com/blz111/qq-farm-bot/internal/gameconfig"
	"github.com/blz111/qq-farm-bot/internal/landstate"
	"github.com/blz111/qq-farm-bot/internal/metrics"
	"github.com/blz111/qq-farm-bot/internal/scheduler"
	"github.com/blz111/qq-farm-bot/internal/server"
	"github.com/blz111/qq-farm-bot/internal/statusbar"
	"github.com/blz111/qq-farm-bot/internal/transport"
	"github.com/blz111/qq-farm-bot/internal/tuning"
	"github.com/blz111/qq-farm-bot/internal/yield"
)

const (
	loginTimeout      = 30 * time.Second
	loginPollInterval = 200 * time.Millisecond
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	initLogger(cfg)
	for _, w := range config.Warnings(cfg) {
		slog.Warn("Configuration warning", "warning", w)
	}

	if err := run(cfg); err != nil {
		slog.Error("Farm bot exited with error", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tun, err := tuning.Load(cfg.TuningFile)
	if err != nil {
		return err
	}

	catalog, err := gameconfig.NewLoader().Load(ctx, cfg.GameConfigDir)
	if err != nil {
		return fmt.Errorf("failed to load game config: %w", err)
	}
	slog.Info("Game config loaded", "dir", cfg.GameConfigDir, "max_level", catalog.MaxLevel())

	optimizer := yield.NewOptimizer(catalog, tun.Yield)
	bestSeeds := yield.NewBestSeedCache(optimizer)
	analyzer := landstate.NewAnalyzer(catalog)

	wsURL, err := gameapi.GatewayURL(cfg.WSURL, cfg.LoginCode, cfg.Platform, cfg.ClientVer)
	if err != nil {
		return err
	}
	session := transport.NewSession(transport.Config{URL: wsURL})
	client := gameapi.NewClient(session, gameapi.Options{
		ClientVersion:     cfg.ClientVer,
		Platform:          cfg.Platform,
		DeviceID:          uuid.NewString(),
		HeartbeatInterval: cfg.HeartbeatInterval,
		NotifyBuffer:      tun.Scheduler.NotifyBufferSize,
	})

	exec := executor.New(client, optimizer, executor.Options{
		UseFertilizer:    cfg.UseFertilizer,
		FertilizerItemID: cfg.FertilizerItemID,
		GoldItemID:       cfg.GoldItemID,
		SeedShopID:       cfg.SeedShopID,
		PerPlotSpacing:   tun.Executor.PerPlotSpacing(),
	})

	session.Start(ctx)
	defer session.Stop()

	if err := waitForLogin(ctx, client, loginTimeout); err != nil {
		return err
	}
	client.StartHeartbeat(ctx)
	defer client.Stop()

	sched := scheduler.New(scheduler.Deps{
		Runner:    exec,
		Analyzer:  analyzer,
		Seeds:     bestSeeds,
		Status:    statusbar.New(os.Stdout, cfg.StatusBar),
		Limits:    metrics.NewLimitObserver(),
		ServerNow: client.ServerNow,
	}, scheduler.Options{
		Interval:        cfg.CheckInterval,
		ImminentSeconds: tun.Scheduler.ImminentSeconds,
		PushDebounce:    tun.Scheduler.PushDebounce(),
		InitialLevel:    client.Player().Level,
	}, client.Notifications())

	var admin *server.Server
	if cfg.AdminEnabled() {
		admin = server.NewServer(server.Options{
			Addr:    cfg.AdminAddr(),
			APIKey:  cfg.AdminAPIKey,
			Version: cfg.Version,
		}, sched, client)
		go func() {
			if err := admin.Start(); err != nil {
				stop()
			}
		}()
	}

	sched.Start(ctx)
	slog.Info("Farm bot running", "interval", cfg.CheckInterval, "level", client.Player().Level)

	<-ctx.Done()
	slog.Info("Shutting down")

	// Admin first so no manual check races the scheduler stop
	if admin != nil {
		if err := admin.Stop(context.Background()); err != nil {
			slog.Warn("Admin server shutdown error", "error", err)
		}
	}
	sched.Stop()
	return nil
}

// waitForLogin blocks until the connect hook has logged in
func waitForLogin(ctx context.Context, client *gameapi.Client, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(loginPollInterval)
	defer ticker.Stop()
	for !client.LoggedIn() {
		select {
		case <-ctx.Done():
			if errors.Is(ctx.Err(), context.DeadlineExceeded) {
				return fmt.Errorf("login did not complete within %s", timeout)
			}
			return ctx.Err()
		case <-ticker.C:
		}
	}
	return nil
}
