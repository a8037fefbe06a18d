package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/blz111/qq-farm-bot/internal/domain"
	"github.com/blz111/qq-farm-bot/internal/executor"
	"github.com/blz111/qq-farm-bot/internal/landstate"
	"github.com/blz111/qq-farm-bot/internal/logger"
	"github.com/blz111/qq-farm-bot/internal/metrics"
	"github.com/blz111/qq-farm-bot/internal/statusbar"
)

// ErrCyclePanic is returned by CheckNow when a cycle panicked
var ErrCyclePanic = errors.New("farm cycle panicked")

// FarmRunner reads the farm and acts on an analysis
type FarmRunner interface {
	FetchLands(ctx context.Context) (*domain.LandsResult, error)
	Run(ctx context.Context, a *landstate.Analysis, level int) executor.Report
}

// LandAnalyzer classifies lands at a server time
type LandAnalyzer interface {
	Analyze(ctx context.Context, lands []domain.Land, now int64) *landstate.Analysis
}

// SeedAdvisor returns the memoized best-seed picks
type SeedAdvisor interface {
	Get(ctx context.Context, level, lands int) *domain.BestSeeds
}

// StatusPublisher receives partial status updates
type StatusPublisher interface {
	Update(s statusbar.Status)
}

// OperationLimitObserver receives the daily limits reported with each lands fetch
type OperationLimitObserver interface {
	ObserveOperationLimits(limits []domain.OperationLimit)
}

// Deps are the collaborators of a Scheduler. Limits may be nil.
type Deps struct {
	Runner    FarmRunner
	Analyzer  LandAnalyzer
	Seeds     SeedAdvisor
	Status    StatusPublisher
	Limits    OperationLimitObserver
	ServerNow func() int64
}

// Options tune the loop
type Options struct {
	Interval        time.Duration
	ImminentSeconds int64
	PushDebounce    time.Duration
	InitialLevel    int
}

// Scheduler owns the farm loop. At most one cycle runs at a time; triggers
// arriving while a cycle is in flight are skipped rather than queued.
type Scheduler struct {
	deps          Deps
	opts          Options
	notifications <-chan domain.Notification
	now           func() time.Time

	checking atomic.Bool
	running  atomic.Bool

	mu           sync.Mutex
	snapshot     *domain.FarmSnapshot
	level        int
	forced       bool
	lastAccepted map[domain.NotificationKind]time.Time
	lastReport   executor.Report

	lifeMu sync.Mutex
	quit   chan struct{}
	wg     sync.WaitGroup
}

// New creates a Scheduler consuming notifications, which may be nil
func New(deps Deps, opts Options, notifications <-chan domain.Notification) *Scheduler {
	if opts.Interval <= 0 {
		opts.Interval = DefaultInterval
	}
	if opts.ImminentSeconds <= 0 {
		opts.ImminentSeconds = DefaultImminentSeconds
	}
	if opts.PushDebounce <= 0 {
		opts.PushDebounce = DefaultPushDebounce
	}
	if deps.ServerNow == nil {
		deps.ServerNow = func() int64 { return time.Now().Unix() }
	}
	return &Scheduler{
		deps:          deps,
		opts:          opts,
		notifications: notifications,
		now:           time.Now,
		level:         opts.InitialLevel,
		lastAccepted:  make(map[domain.NotificationKind]time.Time),
	}
}

// Start launches the tick loop and the push listener. The first tick fires
// immediately. Cancelling ctx stops both as Stop would.
func (s *Scheduler) Start(ctx context.Context) {
	s.lifeMu.Lock()
	defer s.lifeMu.Unlock()

	if !s.running.CompareAndSwap(false, true) {
		return
	}
	quit := make(chan struct{})
	s.quit = quit
	s.wg.Add(2)
	go s.loop(ctx, quit)
	go s.listen(ctx, quit)
	logger.FromContext(ctx).Info(LogMsgLoopStarted, "interval", s.opts.Interval)
}

// Stop ends the loop and waits for it. A cycle in flight runs to completion.
func (s *Scheduler) Stop() {
	s.lifeMu.Lock()
	stopped := s.halt(s.quit)
	s.lifeMu.Unlock()

	s.wg.Wait()
	if stopped {
		logger.Info(LogMsgLoopStopped)
	}
}

// halt closes quit if it belongs to the active run. lifeMu must be held.
func (s *Scheduler) halt(quit chan struct{}) bool {
	if quit == nil || s.quit != quit || !s.running.CompareAndSwap(true, false) {
		return false
	}
	close(quit)
	return true
}

// stopOnCancel marks the run stopped after its context was cancelled
func (s *Scheduler) stopOnCancel(quit chan struct{}) {
	s.lifeMu.Lock()
	defer s.lifeMu.Unlock()
	if s.halt(quit) {
		logger.Info(LogMsgLoopStopped)
	}
}

// Running reports whether the loop is active
func (s *Scheduler) Running() bool {
	return s.running.Load()
}

// Checking reports whether a cycle is in flight
func (s *Scheduler) Checking() bool {
	return s.checking.Load()
}

func (s *Scheduler) loop(ctx context.Context, quit chan struct{}) {
	defer s.wg.Done()

	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-quit:
			return
		case <-ctx.Done():
			s.stopOnCancel(quit)
			return
		case <-timer.C:
			s.tick(ctx)
			timer.Reset(s.opts.Interval)
		}
	}
}

// listen consumes pushes apart from the tick loop, so a push arriving during a
// cycle meets the in-flight guard instead of waiting behind it
func (s *Scheduler) listen(ctx context.Context, quit chan struct{}) {
	defer s.wg.Done()

	notifications := s.notifications
	if notifications == nil {
		return
	}
	for {
		select {
		case <-quit:
			return
		case <-ctx.Done():
			s.stopOnCancel(quit)
			return
		case n, ok := <-notifications:
			if !ok {
				return
			}
			s.handleNotification(ctx, n)
		}
	}
}

// tick runs a full cycle when warranted, otherwise republishes the projection
func (s *Scheduler) tick(ctx context.Context) {
	if s.ShouldCheckFarmNow() {
		_ = s.CheckNow(ctx)
		return
	}
	s.publishProjection(ctx)
}

// ShouldCheckFarmNow decides whether the next tick needs a remote refresh
func (s *Scheduler) ShouldCheckFarmNow() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.snapshot == nil || s.forced {
		return true
	}
	if s.snapshot.Counts.Actionable() {
		return true
	}
	if remaining, ok := s.snapshot.ExtrapolatedMinRemaining(s.now()); ok && remaining <= s.opts.ImminentSeconds {
		return true
	}
	return false
}

// CheckNow runs one full cycle unless one is already in flight, in which case
// it returns domain.ErrCycleInProgress. The cycle is detached from ctx
// cancellation so stopping never aborts remote calls midway.
func (s *Scheduler) CheckNow(ctx context.Context) (err error) {
	if !s.checking.CompareAndSwap(false, true) {
		logger.FromContext(ctx).Debug(LogMsgCycleSkipped)
		metrics.RecordCycle(metrics.ModeSkipped)
		return domain.ErrCycleInProgress
	}
	defer s.checking.Store(false)

	ctx = logger.NewCycleContext(context.WithoutCancel(ctx))
	log := logger.FromContext(ctx)

	defer func() {
		if r := recover(); r != nil {
			log.Error(LogMsgCyclePanic, "panic", r)
			metrics.RecordCycle(metrics.ModeFailed)
			s.setForced()
			err = fmt.Errorf("%w: %v", ErrCyclePanic, r)
		}
	}()

	return s.runCycle(ctx)
}

func (s *Scheduler) runCycle(ctx context.Context) error {
	log := logger.FromContext(ctx)
	start := s.now()

	s.mu.Lock()
	s.forced = false
	level := s.level
	s.mu.Unlock()

	log.Debug(LogMsgCycleStarted, "level", level)

	res, err := s.deps.Runner.FetchLands(ctx)
	if err != nil {
		log.Warn(LogMsgFetchFailed, "error", err)
		metrics.RecordCycle(metrics.ModeFailed)
		s.setForced()
		return err
	}

	analysis := s.deps.Analyzer.Analyze(ctx, res.Lands, s.deps.ServerNow())
	snap := analysis.Snapshot(s.now())

	s.mu.Lock()
	s.snapshot = snap
	s.mu.Unlock()

	best := s.deps.Seeds.Get(ctx, level, snap.UnlockedCount)
	line := best.Line
	s.publish(statusbar.Status{FarmLines: landstate.Lines(snap, 0), BestSeedLine: &line})
	metrics.SetPlotCounts(snap.Counts)

	if s.deps.Limits != nil && len(res.OperationLimits) > 0 {
		s.deps.Limits.ObserveOperationLimits(res.OperationLimits)
	}

	report := s.deps.Runner.Run(ctx, analysis, level)

	s.mu.Lock()
	s.lastReport = report
	s.mu.Unlock()

	elapsed := s.now().Sub(start)
	metrics.RecordCycle(metrics.ModeFull)
	metrics.ObserveCycleDuration(elapsed)
	log.Info(LogMsgCycleFinished,
		"duration", elapsed,
		"unlocked", snap.UnlockedCount,
		"harvestable", snap.Counts.Harvestable,
		"planted", report.Planted)
	return nil
}

// Notify handles one notification synchronously, for callers that do not use
// the inbound channel
func (s *Scheduler) Notify(ctx context.Context, n domain.Notification) {
	s.handleNotification(ctx, n)
}

func (s *Scheduler) handleNotification(ctx context.Context, n domain.Notification) {
	log := logger.FromContext(ctx)

	switch n.Kind {
	case domain.NotificationLandsChanged:
		accepted := s.acceptPush(n.Kind)
		metrics.RecordPush(n.Kind, accepted)
		if !accepted {
			log.Debug(LogMsgPushDebounced, "lands", n.LandIDs)
			return
		}
		log.Debug(LogMsgPushAccepted, "lands", n.LandIDs)
		_ = s.CheckNow(ctx)

	case domain.NotificationLevelChanged:
		metrics.RecordPush(n.Kind, true)
		s.mu.Lock()
		s.level = n.Level
		lands := 0
		if s.snapshot != nil {
			lands = s.snapshot.UnlockedCount
		}
		s.mu.Unlock()

		log.Info(LogMsgLevelChanged, "level", n.Level)
		if lands == 0 {
			return
		}
		line := s.deps.Seeds.Get(ctx, n.Level, lands).Line
		s.publish(statusbar.Status{BestSeedLine: &line})

	default:
		log.Warn(LogMsgUnknownNotify, "kind", n.Kind)
	}
}

// acceptPush sets the forced flag and reports whether the push falls outside
// the debounce window of the last accepted push of the same kind
func (s *Scheduler) acceptPush(kind domain.NotificationKind) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.forced = true
	now := s.now()
	last, seen := s.lastAccepted[kind]
	if seen && now.Sub(last) < s.opts.PushDebounce {
		return false
	}
	s.lastAccepted[kind] = now
	return true
}

func (s *Scheduler) publishProjection(ctx context.Context) {
	snap := s.Snapshot()
	if snap == nil {
		return
	}
	metrics.RecordCycle(metrics.ModeProjected)
	logger.FromContext(ctx).Debug(LogMsgProjectionShown)
	s.publish(statusbar.Status{FarmLines: landstate.Lines(snap, s.now().Sub(snap.TakenAt))})
}

func (s *Scheduler) publish(st statusbar.Status) {
	if s.deps.Status != nil {
		s.deps.Status.Update(st)
	}
}

func (s *Scheduler) setForced() {
	s.mu.Lock()
	s.forced = true
	s.mu.Unlock()
}

// Snapshot returns the latest farm snapshot, nil before the first cycle
func (s *Scheduler) Snapshot() *domain.FarmSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot
}

// Level returns the player level the scheduler plans with
func (s *Scheduler) Level() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.level
}

// SetLevel updates the player level without touching the status line
func (s *Scheduler) SetLevel(level int) {
	s.mu.Lock()
	s.level = level
	s.mu.Unlock()
}

// LastReport returns the executor report of the most recent full cycle
func (s *Scheduler) LastReport() executor.Report {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastReport
}
