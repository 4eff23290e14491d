package usecases

import (
	"context"
	"strings"
	"time"

	"locates/internal/application/locate/dto"
	"locates/internal/domain/locate"
	"locates/internal/domain/shared/events"
	"locates/internal/shared/biztime"
	"locates/internal/shared/errors"
	"locates/internal/shared/logger"
)

type DeleteWorkOrderCommand struct {
	WorkOrderID string
	Actor       Actor
}

type DeleteWorkOrderUseCase struct {
	repo      locate.SnapshotRepository
	publisher events.EventPublisher
	logger    logger.Interface
	now       func() time.Time
}

func NewDeleteWorkOrderUseCase(
	repo locate.SnapshotRepository,
	publisher events.EventPublisher,
	logger logger.Interface,
) *DeleteWorkOrderUseCase {
	return &DeleteWorkOrderUseCase{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
		now:       biztime.NowUTC,
	}
}

// Execute moves a work order to its snapshot's recycle bin.
func (uc *DeleteWorkOrderUseCase) Execute(ctx context.Context, cmd DeleteWorkOrderCommand) (*dto.DeletedWorkOrderDTO, error) {
	uc.logger.Infow("executing delete work order use case", "work_order_id", cmd.WorkOrderID)

	if cmd.WorkOrderID == "" {
		return nil, errors.NewValidationError("work order ID is required")
	}

	snapshot, _, err := loadWorkOrder(ctx, uc.repo, cmd.WorkOrderID)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	deleted, err := snapshot.SoftDelete(cmd.WorkOrderID, locate.DeleteRecord{
		DeletedBy:      cmd.Actor.DisplayName(),
		DeletedByEmail: cmd.Actor.Email,
		DeletedFrom:    locate.DeletedFromDashboard,
	}, now)
	if err != nil {
		return nil, errors.NewNotFoundError("work order not found", cmd.WorkOrderID)
	}

	if err := uc.repo.Update(ctx, snapshot); err != nil {
		uc.logger.Errorw("failed to save deleted work order", "work_order_id", cmd.WorkOrderID, "error", err)
		return nil, errors.NewUpstreamError("failed to delete work order", err)
	}

	publish(uc.publisher, uc.logger, locate.NewWorkOrderEvent(
		locate.EventDeleted, snapshot.ID(), cmd.WorkOrderID, deleted.WorkOrderNumber(), cmd.Actor.DisplayName(), now))

	uc.logger.Infow("work order moved to history",
		"work_order_id", cmd.WorkOrderID,
		"deleted_id", deleted.ID(),
		"snapshot_id", snapshot.ID(),
	)

	result := dto.ToDeletedWorkOrderDTO(snapshot.ID(), deleted)
	return &result, nil
}

type BulkDeleteWorkOrdersCommand struct {
	WorkOrderIDs []string
	Actor        Actor
}

type BulkDeleteWorkOrdersUseCase struct {
	repo      locate.SnapshotRepository
	publisher events.EventPublisher
	logger    logger.Interface
	now       func() time.Time
}

func NewBulkDeleteWorkOrdersUseCase(
	repo locate.SnapshotRepository,
	publisher events.EventPublisher,
	logger logger.Interface,
) *BulkDeleteWorkOrdersUseCase {
	return &BulkDeleteWorkOrdersUseCase{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
		now:       biztime.NowUTC,
	}
}

func (uc *BulkDeleteWorkOrdersUseCase) Execute(ctx context.Context, cmd BulkDeleteWorkOrdersCommand) (*dto.BulkResultDTO, error) {
	uc.logger.Infow("executing bulk delete use case", "count", len(cmd.WorkOrderIDs))

	if len(cmd.WorkOrderIDs) == 0 {
		return nil, errors.NewValidationError("workOrderIds must be a non-empty array")
	}

	snapshots, err := listSnapshots(ctx, uc.repo)
	if err != nil {
		return nil, err
	}
	index := indexByWorkOrderID(snapshots)

	now := uc.now()
	rec := locate.DeleteRecord{
		DeletedBy:      cmd.Actor.DisplayName(),
		DeletedByEmail: cmd.Actor.Email,
		DeletedFrom:    locate.DeletedFromBulkDelete,
	}

	run := newBulkRun(len(cmd.WorkOrderIDs))
	for _, rawID := range cmd.WorkOrderIDs {
		id := strings.TrimSpace(rawID)
		snapshot, ok := index[id]
		if !ok {
			run.fail(rawID, locate.ErrWorkOrderNotFound.Error())
			continue
		}
		deleted, err := snapshot.SoftDelete(id, rec, now)
		if err != nil {
			run.fail(id, err.Error())
			continue
		}
		run.succeed(id, snapshot, locate.NewWorkOrderEvent(
			locate.EventDeleted, snapshot.ID(), id, deleted.WorkOrderNumber(), rec.DeletedBy, now))
	}

	run.save(ctx, uc.repo, uc.logger)
	publish(uc.publisher, uc.logger, run.savedEvents()...)

	result := run.result()
	uc.logger.Infow("bulk delete finished", "total", result.Total, "successful", result.Successful, "failed", result.Failed)
	return result, nil
}
