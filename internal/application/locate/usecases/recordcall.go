package usecases

import (
	"context"
	stderrors "errors"
	"strings"
	"time"

	"locates/internal/application/locate/dto"
	"locates/internal/domain/locate"
	vo "locates/internal/domain/locate/valueobjects"
	"locates/internal/domain/shared/events"
	"locates/internal/shared/biztime"
	"locates/internal/shared/errors"
	"locates/internal/shared/logger"
)

type RecordCallCommand struct {
	WorkOrderID   string
	CallType      string
	CalledBy      string
	CalledByEmail string
	CalledAt      *time.Time
}

type RecordCallUseCase struct {
	repo      locate.SnapshotRepository
	publisher events.EventPublisher
	logger    logger.Interface
	now       func() time.Time
}

func NewRecordCallUseCase(
	repo locate.SnapshotRepository,
	publisher events.EventPublisher,
	logger logger.Interface,
) *RecordCallUseCase {
	return &RecordCallUseCase{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
		now:       biztime.NowUTC,
	}
}

func (uc *RecordCallUseCase) Execute(ctx context.Context, cmd RecordCallCommand) (*dto.WorkOrderDTO, error) {
	uc.logger.Infow("executing record call use case", "work_order_id", cmd.WorkOrderID, "call_type", cmd.CallType)

	callType, err := uc.validateCommand(cmd)
	if err != nil {
		uc.logger.Warnw("invalid record call command", "work_order_id", cmd.WorkOrderID, "error", err)
		return nil, err
	}

	snapshot, wo, err := loadWorkOrder(ctx, uc.repo, cmd.WorkOrderID)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	rec := locate.CallRecord{
		CallType:      callType,
		CalledBy:      cmd.CalledBy,
		CalledByEmail: cmd.CalledByEmail,
	}
	if cmd.CalledAt != nil {
		rec.CalledAt = *cmd.CalledAt
	}
	if err := wo.RecordCall(rec, now); err != nil {
		return nil, callError(err)
	}
	snapshot.Touch(now)

	if err := uc.repo.Update(ctx, snapshot); err != nil {
		uc.logger.Errorw("failed to save call status", "work_order_id", cmd.WorkOrderID, "error", err)
		return nil, errors.NewUpstreamError("failed to save call status", err)
	}

	publish(uc.publisher, uc.logger, locate.NewWorkOrderEvent(
		locate.EventCallRecorded, snapshot.ID(), wo.ID(), wo.WorkOrderNumber(), wo.CalledBy(), now))

	uc.logger.Infow("call status recorded",
		"work_order_id", wo.ID(),
		"status", wo.WorkflowStatus(),
		"completion_date", wo.CompletionDate(),
	)

	result := dto.ToWorkOrderDTO(snapshot.ID(), wo, now)
	return &result, nil
}

func (uc *RecordCallUseCase) validateCommand(cmd RecordCallCommand) (vo.CallType, error) {
	if cmd.WorkOrderID == "" {
		return "", errors.NewValidationError("work order ID is required")
	}
	return validateCall(cmd.CallType, cmd.CalledBy)
}

func validateCall(rawCallType, calledBy string) (vo.CallType, error) {
	callType, err := vo.NewCallType(rawCallType)
	if err != nil {
		return "", errors.NewValidationError("call type must be STANDARD or EMERGENCY", rawCallType)
	}
	if strings.TrimSpace(calledBy) == "" {
		return "", errors.NewValidationError("calledBy is required when marking locates as called")
	}
	return callType, nil
}

func callError(err error) error {
	switch {
	case stderrors.Is(err, locate.ErrInvalidCallType):
		return errors.NewValidationError("call type must be STANDARD or EMERGENCY")
	case stderrors.Is(err, locate.ErrCalledByRequired):
		return errors.NewValidationError("calledBy is required when marking locates as called")
	default:
		return errors.NewInternalError("failed to record call", err.Error())
	}
}
