package usecases

import (
	"context"
	"time"

	"locates/internal/application/locate/dto"
	"locates/internal/domain/locate"
	vo "locates/internal/domain/locate/valueobjects"
	"locates/internal/domain/shared/events"
	"locates/internal/shared/biztime"
	"locates/internal/shared/errors"
	"locates/internal/shared/logger"
)

type SyncDashboardCommand struct {
	Status    string
	StartDate string
	EndDate   string
}

type SyncDashboardUseCase struct {
	repo          locate.SnapshotRepository
	scraper       locate.Scraper
	publisher     events.EventPublisher
	locker        JobLocker
	lockTTL       time.Duration
	priorityMatch vo.PriorityMatch
	logger        logger.Interface
	now           func() time.Time
}

// NewSyncDashboardUseCase builds the ingestion use case. locker may be nil,
// in which case concurrent syncs are not prevented.
func NewSyncDashboardUseCase(
	repo locate.SnapshotRepository,
	scraper locate.Scraper,
	publisher events.EventPublisher,
	locker JobLocker,
	lockTTL time.Duration,
	priorityMatch vo.PriorityMatch,
	logger logger.Interface,
) *SyncDashboardUseCase {
	if !priorityMatch.IsValid() {
		priorityMatch = vo.PriorityMatchExact
	}
	return &SyncDashboardUseCase{
		repo:          repo,
		scraper:       scraper,
		publisher:     publisher,
		locker:        locker,
		lockTTL:       lockTTL,
		priorityMatch: priorityMatch,
		logger:        logger,
		now:           biztime.NowUTC,
	}
}

func (uc *SyncDashboardUseCase) Execute(ctx context.Context, cmd SyncDashboardCommand) (*dto.SyncResultDTO, error) {
	uc.logger.Infow("executing sync dashboard use case",
		"status", cmd.Status,
		"start_date", cmd.StartDate,
		"end_date", cmd.EndDate,
	)

	if err := uc.validateCommand(cmd); err != nil {
		return nil, err
	}

	if uc.locker != nil {
		unlock, acquired, err := uc.locker.TryLock(ctx, SyncLockKey, uc.lockTTL)
		if err != nil {
			uc.logger.Warnw("sync lock unavailable, continuing without it", "error", err)
		} else if !acquired {
			return nil, errors.NewConflictError("a dashboard sync is already running")
		} else {
			defer unlock()
		}
	}

	batch, err := uc.scraper.Scrape(ctx, locate.ScrapeRequest{
		Status:    cmd.Status,
		StartDate: cmd.StartDate,
		EndDate:   cmd.EndDate,
	})
	if err != nil {
		uc.logger.Errorw("scrape failed", "error", err)
		return nil, errors.NewUpstreamError("failed to scrape dispatch board", err)
	}

	now := uc.now()
	excavator := locate.FilterExcavator(batch.WorkOrders, uc.priorityMatch)
	snapshot := locate.NewSnapshotFromScrape(batch, uc.priorityMatch, now)

	if err := uc.repo.Create(ctx, snapshot); err != nil {
		uc.logger.Errorw("failed to save dashboard snapshot", "error", err)
		return nil, errors.NewUpstreamError("failed to save dashboard snapshot", err)
	}

	result := &dto.SyncResultDTO{
		Snapshot:          dto.ToSnapshotDTO(snapshot),
		Scraped:           len(batch.WorkOrders),
		Excavator:         len(excavator),
		DuplicatesRemoved: len(excavator) - snapshot.TotalWorkOrders(),
	}

	publish(uc.publisher, uc.logger,
		locate.NewSnapshotIngestedEvent(snapshot.ID(), snapshot.TotalWorkOrders(), result.Scraped, now))

	uc.logger.Infow("dashboard synced",
		"snapshot_id", snapshot.ID(),
		"scraped", result.Scraped,
		"excavator", result.Excavator,
		"work_orders", snapshot.TotalWorkOrders(),
	)

	return result, nil
}

func (uc *SyncDashboardUseCase) validateCommand(cmd SyncDashboardCommand) error {
	var start, end time.Time
	var err error
	if cmd.StartDate != "" {
		if start, err = biztime.ParseDateInBizTimezone(cmd.StartDate); err != nil {
			return errors.NewValidationError("start date must be YYYY-MM-DD", cmd.StartDate)
		}
	}
	if cmd.EndDate != "" {
		if end, err = biztime.ParseDateInBizTimezone(cmd.EndDate); err != nil {
			return errors.NewValidationError("end date must be YYYY-MM-DD", cmd.EndDate)
		}
	}
	if !start.IsZero() && !end.IsZero() && end.Before(start) {
		return errors.NewValidationError("end date must not be before start date")
	}
	return nil
}
