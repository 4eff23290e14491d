package usecases

import (
	"context"
	stderrors "errors"
	"strings"
	"time"

	"locates/internal/application/locate/dto"
	"locates/internal/domain/locate"
	"locates/internal/domain/shared/events"
	"locates/internal/shared/biztime"
	"locates/internal/shared/errors"
	"locates/internal/shared/logger"
)

type PermanentlyDeleteCommand struct {
	SnapshotID     uint
	DeletedOrderID string
}

type PermanentlyDeleteUseCase struct {
	repo      locate.SnapshotRepository
	publisher events.EventPublisher
	logger    logger.Interface
	now       func() time.Time
}

func NewPermanentlyDeleteUseCase(
	repo locate.SnapshotRepository,
	publisher events.EventPublisher,
	logger logger.Interface,
) *PermanentlyDeleteUseCase {
	return &PermanentlyDeleteUseCase{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
		now:       biztime.NowUTC,
	}
}

func (uc *PermanentlyDeleteUseCase) Execute(ctx context.Context, cmd PermanentlyDeleteCommand) error {
	uc.logger.Infow("executing permanently delete use case",
		"snapshot_id", cmd.SnapshotID,
		"deleted_order_id", cmd.DeletedOrderID,
	)

	if cmd.SnapshotID == 0 || cmd.DeletedOrderID == "" {
		return errors.NewValidationError("snapshot ID and deleted order ID are required")
	}

	snapshot, err := loadSnapshot(ctx, uc.repo, cmd.SnapshotID)
	if err != nil {
		return err
	}

	var number string
	for _, d := range snapshot.History() {
		if d.ID() == cmd.DeletedOrderID {
			number = d.WorkOrderNumber()
			break
		}
	}

	now := uc.now()
	if err := snapshot.PermanentlyDelete(cmd.DeletedOrderID, now); err != nil {
		if stderrors.Is(err, locate.ErrDeletedOrderNotFound) {
			return errors.NewNotFoundError("deleted work order not found", cmd.DeletedOrderID)
		}
		return errors.NewInternalError("failed to permanently delete work order", err.Error())
	}

	if err := uc.repo.Update(ctx, snapshot); err != nil {
		uc.logger.Errorw("failed to save permanent delete", "snapshot_id", cmd.SnapshotID, "error", err)
		return errors.NewUpstreamError("failed to permanently delete work order", err)
	}

	publish(uc.publisher, uc.logger, locate.NewWorkOrderEvent(
		locate.EventPurged, snapshot.ID(), cmd.DeletedOrderID, number, "", now))

	uc.logger.Infow("work order permanently deleted",
		"snapshot_id", snapshot.ID(),
		"deleted_order_id", cmd.DeletedOrderID,
	)
	return nil
}

// BulkPermanentlyDeleteCommand names entries by deleted id or by the id the
// work order had before deletion.
type BulkPermanentlyDeleteCommand struct {
	IDs []string
}

type BulkPermanentlyDeleteUseCase struct {
	repo      locate.SnapshotRepository
	publisher events.EventPublisher
	logger    logger.Interface
	now       func() time.Time
}

func NewBulkPermanentlyDeleteUseCase(
	repo locate.SnapshotRepository,
	publisher events.EventPublisher,
	logger logger.Interface,
) *BulkPermanentlyDeleteUseCase {
	return &BulkPermanentlyDeleteUseCase{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
		now:       biztime.NowUTC,
	}
}

func (uc *BulkPermanentlyDeleteUseCase) Execute(ctx context.Context, cmd BulkPermanentlyDeleteCommand) (*dto.BulkResultDTO, error) {
	uc.logger.Infow("executing bulk permanently delete use case", "count", len(cmd.IDs))

	if len(cmd.IDs) == 0 {
		return nil, errors.NewValidationError("ids must be a non-empty array")
	}

	snapshots, err := listSnapshots(ctx, uc.repo)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	run := newBulkRun(len(cmd.IDs))
	for _, rawID := range cmd.IDs {
		ref := strings.TrimSpace(rawID)
		var hit *locate.Snapshot
		for _, s := range snapshots {
			if ref != "" && s.HasDeleted(ref) {
				hit = s
				break
			}
		}
		if hit == nil {
			run.fail(rawID, locate.ErrDeletedOrderNotFound.Error())
			continue
		}
		hit.PermanentlyDeleteMatching([]string{ref}, now)
		run.succeed(ref, hit, locate.NewWorkOrderEvent(
			locate.EventPurged, hit.ID(), ref, "", "", now))
	}

	run.save(ctx, uc.repo, uc.logger)
	publish(uc.publisher, uc.logger, run.savedEvents()...)

	result := run.result()
	uc.logger.Infow("bulk permanent delete finished", "total", result.Total, "successful", result.Successful, "failed", result.Failed)
	return result, nil
}
