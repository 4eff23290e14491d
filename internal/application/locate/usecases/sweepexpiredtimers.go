package usecases

import (
	"context"
	"time"

	"locates/internal/application/locate/dto"
	"locates/internal/domain/locate"
	"locates/internal/domain/shared/events"
	"locates/internal/shared/biztime"
	"locates/internal/shared/errors"
	"locates/internal/shared/logger"
)

type SweepExpiredTimersCommand struct {
	// Now overrides the sweep time; zero means the current time.
	Now time.Time
}

type SweepExpiredTimersUseCase struct {
	repo      locate.SnapshotRepository
	publisher events.EventPublisher
	locker    JobLocker
	lockTTL   time.Duration
	logger    logger.Interface
	now       func() time.Time
}

func NewSweepExpiredTimersUseCase(
	repo locate.SnapshotRepository,
	publisher events.EventPublisher,
	locker JobLocker,
	lockTTL time.Duration,
	logger logger.Interface,
) *SweepExpiredTimersUseCase {
	return &SweepExpiredTimersUseCase{
		repo:      repo,
		publisher: publisher,
		locker:    locker,
		lockTTL:   lockTTL,
		logger:    logger,
		now:       biztime.NowUTC,
	}
}

// Execute expires every running timer whose deadline has passed. Candidate
// snapshots are reloaded right before mutation and the conditions checked
// again, so concurrent or repeated sweeps change nothing twice.
func (uc *SweepExpiredTimersUseCase) Execute(ctx context.Context, cmd SweepExpiredTimersCommand) (*dto.SweepResultDTO, error) {
	now := cmd.Now
	if now.IsZero() {
		now = uc.now()
	}

	if uc.locker != nil {
		unlock, acquired, err := uc.locker.TryLock(ctx, SweepLockKey, uc.lockTTL)
		if err != nil {
			uc.logger.Warnw("sweep lock unavailable, continuing without it", "error", err)
		} else if !acquired {
			uc.logger.Infow("timer sweep already running elsewhere, skipping")
			return &dto.SweepResultDTO{Skipped: true}, nil
		} else {
			defer unlock()
		}
	}

	snapshots, err := listSnapshots(ctx, uc.repo)
	if err != nil {
		return nil, err
	}

	result := &dto.SweepResultDTO{}
	for _, candidate := range snapshots {
		if !hasDueTimer(candidate, now) {
			continue
		}

		fresh, err := uc.repo.GetByID(ctx, candidate.ID())
		if err != nil {
			uc.logger.Errorw("failed to reload snapshot for sweep", "snapshot_id", candidate.ID(), "error", err)
			return nil, errors.NewUpstreamError("failed to reload dashboard snapshot", err)
		}

		expired := fresh.ExpireDueTimers(now)
		if len(expired) == 0 {
			continue
		}
		if err := uc.repo.Update(ctx, fresh); err != nil {
			uc.logger.Errorw("failed to save swept snapshot", "snapshot_id", fresh.ID(), "error", err)
			return nil, errors.NewUpstreamError("failed to save expired timers", err)
		}

		result.Updated += len(expired)
		result.Snapshots++

		evts := make([]events.DomainEvent, 0, len(expired))
		for _, wo := range expired {
			evts = append(evts, locate.NewWorkOrderEvent(
				locate.EventTimerExpired, fresh.ID(), wo.ID(), wo.WorkOrderNumber(), "", now))
		}
		publish(uc.publisher, uc.logger, evts...)
	}

	if result.Updated > 0 {
		uc.logger.Infow("expired timers moved to complete", "updated", result.Updated, "snapshots", result.Snapshots)
	} else {
		uc.logger.Debugw("timer sweep found nothing to expire")
	}
	return result, nil
}

func hasDueTimer(s *locate.Snapshot, now time.Time) bool {
	for _, wo := range s.WorkOrders() {
		if wo.LocatesCalled() && wo.TimerStarted() && !wo.TimerExpired() && wo.CompletionDate() != nil && !wo.CompletionDate().After(now) {
			return true
		}
	}
	return false
}
