package usecases

import (
	"context"
	"strings"
	"time"

	"locates/internal/application/locate/dto"
	"locates/internal/domain/locate"
	"locates/internal/shared/biztime"
	"locates/internal/shared/errors"
	"locates/internal/shared/logger"
)

type FindByNumberQuery struct {
	WorkOrderNumber string
}

type FindByNumberUseCase struct {
	repo   locate.SnapshotRepository
	logger logger.Interface
	now    func() time.Time
}

func NewFindByNumberUseCase(repo locate.SnapshotRepository, logger logger.Interface) *FindByNumberUseCase {
	return &FindByNumberUseCase{repo: repo, logger: logger, now: biztime.NowUTC}
}

// Execute looks in live orders first, newest snapshot first, and falls back
// to the recycle bins.
func (uc *FindByNumberUseCase) Execute(ctx context.Context, query FindByNumberQuery) (*dto.WorkOrderLookupDTO, error) {
	number := strings.TrimSpace(query.WorkOrderNumber)
	if number == "" {
		return nil, errors.NewValidationError("work order number is required")
	}

	snapshots, err := listSnapshots(ctx, uc.repo)
	if err != nil {
		uc.logger.Errorw("failed to look up work order", "work_order_number", number, "error", err)
		return nil, err
	}

	if s, wo := findLiveByNumber(snapshots, number); wo != nil {
		item := dto.ToWorkOrderDTO(s.ID(), wo, uc.now())
		return &dto.WorkOrderLookupDTO{WorkOrder: &item}, nil
	}

	for _, s := range snapshots {
		if d, ok := s.FindDeletedByNumber(number); ok {
			item := dto.ToDeletedWorkOrderDTO(s.ID(), d)
			return &dto.WorkOrderLookupDTO{Deleted: true, DeletedWorkOrder: &item}, nil
		}
	}

	return nil, errors.NewNotFoundError("work order not found", number)
}
