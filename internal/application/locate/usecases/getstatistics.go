package usecases

import (
	"context"
	"time"

	"locates/internal/application/locate/dto"
	"locates/internal/domain/locate"
	vo "locates/internal/domain/locate/valueobjects"
	"locates/internal/shared/biztime"
	"locates/internal/shared/logger"
)

type GetStatisticsUseCase struct {
	repo   locate.SnapshotRepository
	logger logger.Interface
	now    func() time.Time
}

func NewGetStatisticsUseCase(repo locate.SnapshotRepository, logger logger.Interface) *GetStatisticsUseCase {
	return &GetStatisticsUseCase{repo: repo, logger: logger, now: biztime.NowUTC}
}

// Execute counts live orders by derived status. Total covers the three
// workflow statuses only; LastUpdated is the latest snapshot change, or now
// when there are no snapshots.
func (uc *GetStatisticsUseCase) Execute(ctx context.Context) (*dto.StatisticsDTO, error) {
	snapshots, err := listSnapshots(ctx, uc.repo)
	if err != nil {
		uc.logger.Errorw("failed to compute statistics", "error", err)
		return nil, err
	}

	now := uc.now()
	stats := &dto.StatisticsDTO{}
	for _, s := range snapshots {
		if s.UpdatedAt().After(stats.LastUpdated) {
			stats.LastUpdated = s.UpdatedAt()
		}
		for _, wo := range s.WorkOrders() {
			wo.Refresh(now)
			switch wo.WorkflowStatus() {
			case vo.WorkflowCallNeeded:
				stats.CallNeeded++
			case vo.WorkflowInProgress:
				stats.InProgress++
			case vo.WorkflowComplete:
				stats.Complete++
			default:
				stats.Unknown++
			}
			if wo.ManuallyTagged() {
				stats.ManualTagged++
			} else {
				stats.AutoDetected++
			}
		}
	}
	stats.Total = stats.CallNeeded + stats.InProgress + stats.Complete
	if stats.LastUpdated.IsZero() {
		stats.LastUpdated = now
	}
	return stats, nil
}
