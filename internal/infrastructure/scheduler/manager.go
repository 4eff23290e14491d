// Package scheduler provides unified scheduler management using gocron v2.
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"

	"locates/internal/application/locate/dto"
	"locates/internal/application/locate/usecases"
	"locates/internal/shared/biztime"
	"locates/internal/shared/logger"
)

// TimerSweeper expires timers whose completion date has passed.
type TimerSweeper interface {
	Execute(ctx context.Context, cmd usecases.SweepExpiredTimersCommand) (*dto.SweepResultDTO, error)
}

// DashboardSyncer pulls a fresh snapshot from the dispatch board.
type DashboardSyncer interface {
	Execute(ctx context.Context, cmd usecases.SyncDashboardCommand) (*dto.SyncResultDTO, error)
}

// SchedulerManager owns the background jobs of the locate service.
type SchedulerManager struct {
	scheduler gocron.Scheduler
	logger    logger.Interface

	started   bool
	startedMu sync.RWMutex
}

// NewSchedulerManager initializes gocron with the business timezone for
// cron expressions.
func NewSchedulerManager(log logger.Interface) (*SchedulerManager, error) {
	scheduler, err := gocron.NewScheduler(
		gocron.WithLocation(biztime.Location()),
	)
	if err != nil {
		return nil, err
	}

	return &SchedulerManager{
		scheduler: scheduler,
		logger:    log,
	}, nil
}

// ========================================
// Timer Sweep (configurable interval, start immediately)
// ========================================

// RegisterTimerSweepJob marks due timers as expired. A non-positive interval
// disables the job.
func (m *SchedulerManager) RegisterTimerSweepJob(sweeper TimerSweeper, interval time.Duration) error {
	if interval <= 0 {
		m.logger.Infow("timer sweep job disabled")
		return nil
	}

	_, err := m.scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), interval)
			defer cancel()
			m.sweepTimers(ctx, sweeper)
		}),
		gocron.WithStartAt(gocron.WithStartImmediately()),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithTags("locates", "timers"),
		gocron.WithName("locates-timer-sweep"),
	)
	if err != nil {
		return err
	}

	m.logger.Infow("registered timer sweep job", "interval", interval.String())
	return nil
}

func (m *SchedulerManager) sweepTimers(ctx context.Context, sweeper TimerSweeper) {
	startTime := biztime.NowUTC()

	result, err := sweeper.Execute(ctx, usecases.SweepExpiredTimersCommand{})
	if err != nil {
		m.logger.Errorw("failed to sweep expired timers",
			"error", err,
			"duration", time.Since(startTime),
		)
		return
	}
	if result.Skipped {
		m.logger.Debugw("timer sweep skipped, another instance holds the lock")
		return
	}
	if result.Updated > 0 {
		m.logger.Infow("expired timers swept",
			"updated", result.Updated,
			"snapshots", result.Snapshots,
			"duration", time.Since(startTime),
		)
	}
}

// ========================================
// Dashboard Sync (configurable interval)
// ========================================

// RegisterDashboardSyncJob scrapes the dispatch board on a fixed interval.
// A non-positive interval disables the job.
func (m *SchedulerManager) RegisterDashboardSyncJob(syncer DashboardSyncer, interval, timeout time.Duration) error {
	if interval <= 0 {
		m.logger.Infow("dashboard sync job disabled")
		return nil
	}

	_, err := m.scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), timeout)
			defer cancel()
			m.syncDashboard(ctx, syncer)
		}),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithTags("locates", "sync"),
		gocron.WithName("locates-dashboard-sync"),
	)
	if err != nil {
		return err
	}

	m.logger.Infow("registered dashboard sync job", "interval", interval.String())
	return nil
}

func (m *SchedulerManager) syncDashboard(ctx context.Context, syncer DashboardSyncer) {
	startTime := biztime.NowUTC()

	result, err := syncer.Execute(ctx, usecases.SyncDashboardCommand{})
	if err != nil {
		m.logger.Errorw("scheduled dashboard sync failed",
			"error", err,
			"duration", time.Since(startTime),
		)
		return
	}

	m.logger.Infow("scheduled dashboard sync completed",
		"snapshot_id", result.Snapshot.ID,
		"scraped", result.Scraped,
		"excavator", result.Excavator,
		"duration", time.Since(startTime),
	)
}

// Start starts the scheduler. Calling it twice is a no-op.
func (m *SchedulerManager) Start() {
	m.startedMu.Lock()
	defer m.startedMu.Unlock()

	if m.started {
		return
	}

	m.scheduler.Start()
	m.started = true
	m.logger.Infow("scheduler manager started", "job_count", len(m.scheduler.Jobs()))
}

// Stop waits for running jobs to complete before returning.
func (m *SchedulerManager) Stop() error {
	m.startedMu.Lock()
	defer m.startedMu.Unlock()

	if !m.started {
		return nil
	}

	m.logger.Infow("stopping scheduler manager")

	err := m.scheduler.Shutdown()
	m.started = false

	if err != nil {
		m.logger.Errorw("scheduler manager shutdown with error", "error", err)
		return err
	}

	m.logger.Infow("scheduler manager stopped")
	return nil
}

// IsStarted returns whether the scheduler is running.
func (m *SchedulerManager) IsStarted() bool {
	m.startedMu.RLock()
	defer m.startedMu.RUnlock()
	return m.started
}

// Jobs returns all registered jobs for inspection.
func (m *SchedulerManager) Jobs() []gocron.Job {
	return m.scheduler.Jobs()
}
