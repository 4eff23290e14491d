package usecases

import (
	"context"
	stderrors "errors"
	"time"

	"locates/internal/application/locate/dto"
	"locates/internal/domain/locate"
	"locates/internal/domain/shared/events"
	"locates/internal/shared/biztime"
	"locates/internal/shared/errors"
	"locates/internal/shared/logger"
)

type CompleteWorkOrderCommand struct {
	WorkOrderID string
	Actor       Actor
}

type CompleteWorkOrderUseCase struct {
	repo      locate.SnapshotRepository
	publisher events.EventPublisher
	logger    logger.Interface
	now       func() time.Time
}

func NewCompleteWorkOrderUseCase(
	repo locate.SnapshotRepository,
	publisher events.EventPublisher,
	logger logger.Interface,
) *CompleteWorkOrderUseCase {
	return &CompleteWorkOrderUseCase{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
		now:       biztime.NowUTC,
	}
}

func (uc *CompleteWorkOrderUseCase) Execute(ctx context.Context, cmd CompleteWorkOrderCommand) (*dto.WorkOrderDTO, error) {
	uc.logger.Infow("executing complete work order use case", "work_order_id", cmd.WorkOrderID)

	if cmd.WorkOrderID == "" {
		return nil, errors.NewValidationError("work order ID is required")
	}

	snapshot, wo, err := loadWorkOrder(ctx, uc.repo, cmd.WorkOrderID)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	actor := cmd.Actor.DisplayName()
	if err := wo.CompleteManually(actor, cmd.Actor.Email, now); err != nil {
		if stderrors.Is(err, locate.ErrAlreadyComplete) {
			return nil, errors.NewBadRequestError("work order is already complete")
		}
		return nil, errors.NewInternalError("failed to complete work order", err.Error())
	}
	snapshot.Touch(now)

	if err := uc.repo.Update(ctx, snapshot); err != nil {
		uc.logger.Errorw("failed to save completed work order", "work_order_id", cmd.WorkOrderID, "error", err)
		return nil, errors.NewUpstreamError("failed to save completed work order", err)
	}

	publish(uc.publisher, uc.logger, locate.NewWorkOrderEvent(
		locate.EventCompleted, snapshot.ID(), wo.ID(), wo.WorkOrderNumber(), actor, now))

	uc.logger.Infow("work order completed manually", "work_order_id", wo.ID(), "actor", actor)

	result := dto.ToWorkOrderDTO(snapshot.ID(), wo, now)
	return &result, nil
}
