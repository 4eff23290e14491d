package usecases

import (
	"context"
	"time"

	"locates/internal/application/locate/dto"
	"locates/internal/domain/locate"
	vo "locates/internal/domain/locate/valueobjects"
	"locates/internal/shared/biztime"
	"locates/internal/shared/errors"
	"locates/internal/shared/logger"
)

type ListWorkOrdersQuery struct {
	// Status filters by derived workflow status; empty lists everything.
	Status string
}

type ListWorkOrdersUseCase struct {
	repo   locate.SnapshotRepository
	logger logger.Interface
	now    func() time.Time
}

func NewListWorkOrdersUseCase(repo locate.SnapshotRepository, logger logger.Interface) *ListWorkOrdersUseCase {
	return &ListWorkOrdersUseCase{repo: repo, logger: logger, now: biztime.NowUTC}
}

func (uc *ListWorkOrdersUseCase) Execute(ctx context.Context, query ListWorkOrdersQuery) ([]dto.WorkOrderStatusDTO, error) {
	var filter vo.WorkflowStatus
	if query.Status != "" {
		status, err := vo.NewWorkflowStatus(query.Status)
		if err != nil {
			return nil, errors.NewValidationError("invalid status filter", query.Status)
		}
		filter = status
	}

	snapshots, err := listSnapshots(ctx, uc.repo)
	if err != nil {
		uc.logger.Errorw("failed to list work orders", "error", err)
		return nil, err
	}

	now := uc.now()
	result := make([]dto.WorkOrderStatusDTO, 0)
	for _, s := range snapshots {
		for _, wo := range s.WorkOrders() {
			item := dto.WorkOrderStatusDTO{WorkOrderDTO: dto.ToWorkOrderDTO(s.ID(), wo, now)}
			if filter != "" && wo.WorkflowStatus() != filter {
				continue
			}
			if wo.WorkflowStatus() == vo.WorkflowInProgress && wo.CompletionDate() != nil {
				hours := locate.HoursRemaining(*wo.CompletionDate(), now)
				item.HoursRemaining = &hours
			}
			result = append(result, item)
		}
	}
	return result, nil
}
