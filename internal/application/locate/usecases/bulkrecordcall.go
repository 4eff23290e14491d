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

type BulkRecordCallCommand struct {
	WorkOrderIDs  []string
	CallType      string
	CalledBy      string
	CalledByEmail string
}

type BulkRecordCallUseCase struct {
	repo      locate.SnapshotRepository
	publisher events.EventPublisher
	logger    logger.Interface
	now       func() time.Time
}

func NewBulkRecordCallUseCase(
	repo locate.SnapshotRepository,
	publisher events.EventPublisher,
	logger logger.Interface,
) *BulkRecordCallUseCase {
	return &BulkRecordCallUseCase{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
		now:       biztime.NowUTC,
	}
}

// Execute records the same call on every listed order. Only excavator or
// manually tagged orders are eligible; others fail individually.
func (uc *BulkRecordCallUseCase) Execute(ctx context.Context, cmd BulkRecordCallCommand) (*dto.BulkResultDTO, error) {
	uc.logger.Infow("executing bulk record call use case", "count", len(cmd.WorkOrderIDs), "call_type", cmd.CallType)

	if len(cmd.WorkOrderIDs) == 0 {
		return nil, errors.NewValidationError("workOrderIds must be a non-empty array")
	}
	callType, err := validateCall(cmd.CallType, cmd.CalledBy)
	if err != nil {
		return nil, err
	}

	snapshots, err := listSnapshots(ctx, uc.repo)
	if err != nil {
		return nil, err
	}
	index := indexByWorkOrderID(snapshots)

	now := uc.now()
	run := newBulkRun(len(cmd.WorkOrderIDs))
	for _, rawID := range cmd.WorkOrderIDs {
		id := strings.TrimSpace(rawID)
		snapshot, ok := index[id]
		if !ok {
			run.fail(rawID, locate.ErrWorkOrderNotFound.Error())
			continue
		}
		wo, _ := snapshot.FindWorkOrder(id)
		if !wo.IsExcavator() && !wo.ManuallyTagged() {
			run.fail(id, locate.ErrNotEligibleForCall.Error())
			continue
		}

		rec := locate.CallRecord{
			CallType:      callType,
			CalledBy:      cmd.CalledBy,
			CalledByEmail: cmd.CalledByEmail,
			Bulk:          true,
		}
		if err := wo.RecordCall(rec, now); err != nil {
			run.fail(id, err.Error())
			continue
		}
		snapshot.Touch(now)
		run.succeed(id, snapshot, locate.NewWorkOrderEvent(
			locate.EventCallRecorded, snapshot.ID(), wo.ID(), wo.WorkOrderNumber(), wo.CalledBy(), now))
	}

	run.save(ctx, uc.repo, uc.logger)
	publish(uc.publisher, uc.logger, run.savedEvents()...)

	result := run.result()
	uc.logger.Infow("bulk call status update finished",
		"total", result.Total,
		"successful", result.Successful,
		"failed", result.Failed,
	)
	return result, nil
}
