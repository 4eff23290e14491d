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

type RestoreWorkOrderCommand struct {
	SnapshotID     uint
	DeletedOrderID string
	Actor          Actor
}

type RestoreWorkOrderUseCase struct {
	repo      locate.SnapshotRepository
	publisher events.EventPublisher
	logger    logger.Interface
	now       func() time.Time
}

func NewRestoreWorkOrderUseCase(
	repo locate.SnapshotRepository,
	publisher events.EventPublisher,
	logger logger.Interface,
) *RestoreWorkOrderUseCase {
	return &RestoreWorkOrderUseCase{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
		now:       biztime.NowUTC,
	}
}

func (uc *RestoreWorkOrderUseCase) Execute(ctx context.Context, cmd RestoreWorkOrderCommand) (*dto.WorkOrderDTO, error) {
	uc.logger.Infow("executing restore work order use case",
		"snapshot_id", cmd.SnapshotID,
		"deleted_order_id", cmd.DeletedOrderID,
	)

	if cmd.SnapshotID == 0 || cmd.DeletedOrderID == "" {
		return nil, errors.NewValidationError("snapshot ID and deleted order ID are required")
	}

	snapshot, err := loadSnapshot(ctx, uc.repo, cmd.SnapshotID)
	if err != nil {
		return nil, err
	}

	// The original id may have been reused in another snapshot since deletion.
	others, err := listSnapshots(ctx, uc.repo)
	if err != nil {
		return nil, err
	}
	idInUse := liveIDs(others)

	now := uc.now()
	restored, err := snapshot.Restore(cmd.DeletedOrderID, cmd.Actor.DisplayName(), cmd.Actor.Email, idInUse, now)
	if err != nil {
		switch {
		case stderrors.Is(err, locate.ErrDeletedOrderNotFound):
			return nil, errors.NewNotFoundError("deleted work order not found", cmd.DeletedOrderID)
		case stderrors.Is(err, locate.ErrAlreadyRestored):
			return nil, errors.NewConflictError("work order has already been restored", cmd.DeletedOrderID)
		default:
			return nil, errors.NewInternalError("failed to restore work order", err.Error())
		}
	}

	if err := uc.repo.Update(ctx, snapshot); err != nil {
		uc.logger.Errorw("failed to save restored work order", "snapshot_id", cmd.SnapshotID, "error", err)
		return nil, errors.NewUpstreamError("failed to restore work order", err)
	}

	publish(uc.publisher, uc.logger, locate.NewWorkOrderEvent(
		locate.EventRestored, snapshot.ID(), restored.ID(), restored.WorkOrderNumber(), cmd.Actor.DisplayName(), now))

	uc.logger.Infow("work order restored",
		"snapshot_id", snapshot.ID(),
		"deleted_order_id", cmd.DeletedOrderID,
		"work_order_id", restored.ID(),
	)

	result := dto.ToWorkOrderDTO(snapshot.ID(), restored, now)
	return &result, nil
}
