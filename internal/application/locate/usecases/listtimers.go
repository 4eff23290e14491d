package usecases

import (
	"context"
	"sort"
	"strings"
	"time"

	"locates/internal/application/locate/dto"
	"locates/internal/domain/locate"
	vo "locates/internal/domain/locate/valueobjects"
	"locates/internal/shared/biztime"
	"locates/internal/shared/errors"
	"locates/internal/shared/logger"
)

const (
	TimerKindInProgress = "in-progress"
	TimerKindCompleted  = "completed"
)

type ListTimersQuery struct {
	Kind string
}

type ListTimersUseCase struct {
	repo   locate.SnapshotRepository
	logger logger.Interface
	now    func() time.Time
}

func NewListTimersUseCase(repo locate.SnapshotRepository, logger logger.Interface) *ListTimersUseCase {
	return &ListTimersUseCase{repo: repo, logger: logger, now: biztime.NowUTC}
}

// Execute lists running timers soonest deadline first, or finished timers
// most recent first.
func (uc *ListTimersUseCase) Execute(ctx context.Context, query ListTimersQuery) (*dto.TimersDTO, error) {
	kind := strings.ToLower(strings.TrimSpace(query.Kind))
	if kind == "" {
		kind = TimerKindInProgress
	}
	if kind != TimerKindInProgress && kind != TimerKindCompleted {
		return nil, errors.NewValidationError("kind must be in-progress or completed", query.Kind)
	}

	snapshots, err := listSnapshots(ctx, uc.repo)
	if err != nil {
		uc.logger.Errorw("failed to list timers", "kind", kind, "error", err)
		return nil, err
	}

	now := uc.now()
	result := &dto.TimersDTO{Kind: kind}
	if kind == TimerKindInProgress {
		result.InProgress = inProgressTimers(snapshots, now)
		result.Total = len(result.InProgress)
	} else {
		result.Completed = completedTimers(snapshots, now)
		result.Total = len(result.Completed)
	}
	return result, nil
}

func inProgressTimers(snapshots []*locate.Snapshot, now time.Time) []dto.InProgressTimerDTO {
	items := make([]dto.InProgressTimerDTO, 0)
	for _, s := range snapshots {
		for _, wo := range s.WorkOrders() {
			base := dto.ToWorkOrderDTO(s.ID(), wo, now)
			if wo.WorkflowStatus() != vo.WorkflowInProgress || wo.CompletionDate() == nil {
				continue
			}
			remaining := wo.TimeRemaining(now)
			items = append(items, dto.InProgressTimerDTO{
				WorkOrderDTO: base,
				Countdown: dto.TimerCountdownDTO{
					Hours:      remaining.Hours,
					Minutes:    remaining.Minutes,
					TotalHours: locate.HoursRemaining(*wo.CompletionDate(), now),
				},
			})
		}
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CompletionDate.Before(*items[j].CompletionDate)
	})
	return items
}

func completedTimers(snapshots []*locate.Snapshot, now time.Time) []dto.CompletedTimerDTO {
	items := make([]dto.CompletedTimerDTO, 0)
	for _, s := range snapshots {
		for _, wo := range s.WorkOrders() {
			base := dto.ToWorkOrderDTO(s.ID(), wo, now)
			if !wo.TimerExpired() || wo.CompletionDate() == nil {
				continue
			}
			completedAt := *wo.CompletionDate()
			since := 0
			if now.After(completedAt) {
				since = int(now.Sub(completedAt) / time.Hour)
			}
			items = append(items, dto.CompletedTimerDTO{
				WorkOrderDTO:         base,
				CompletedAt:          completedAt,
				HoursSinceCompletion: since,
			})
		}
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CompletedAt.After(items[j].CompletedAt)
	})
	return items
}
