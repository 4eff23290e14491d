package usecases

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"locates/internal/domain/locate"
	vo "locates/internal/domain/locate/valueobjects"
	apperrors "locates/internal/shared/errors"
	"locates/internal/shared/logger"
)

func TestRecordCallUseCase_Execute_Emergency(t *testing.T) {
	repo := newMockSnapshotRepository()
	wo := newExcavatorOrder("WO-1")
	s := seedSnapshot(t, repo, wo)
	dispatcher := &mockEventDispatcher{}

	uc := NewRecordCallUseCase(repo, dispatcher, logger.NewNopLogger())
	uc.now = fixedNow(testNow)

	result, err := uc.Execute(context.Background(), RecordCallCommand{
		WorkOrderID:   wo.ID(),
		CallType:      "emergency",
		CalledBy:      "Dana",
		CalledByEmail: "dana@example.com",
	})

	require.NoError(t, err)
	assert.Equal(t, s.ID(), result.SnapshotID)
	assert.True(t, result.LocatesCalled)
	require.NotNil(t, result.CallType)
	assert.Equal(t, "EMERGENCY", *result.CallType)
	require.NotNil(t, result.CompletionDate)
	assert.Equal(t, testNow.Add(4*time.Hour), *result.CompletionDate)
	assert.Equal(t, vo.WorkflowInProgress.String(), result.WorkflowStatus)
	assert.Equal(t, "4h 0m", result.TimeRemaining)
	assert.Equal(t, "Dana", result.CalledBy)
	assert.Equal(t, 1, repo.updateCount())
	assert.Equal(t, []string{locate.EventCallRecorded}, dispatcher.eventTypes())
}

func TestRecordCallUseCase_Execute_StandardUsesExplicitCallTime(t *testing.T) {
	repo := newMockSnapshotRepository()
	wo := newExcavatorOrder("WO-1")
	seedSnapshot(t, repo, wo)

	uc := NewRecordCallUseCase(repo, nil, logger.NewNopLogger())
	uc.now = fixedNow(testNow)

	// Friday 10:00 New York.
	calledAt := time.Date(2024, 5, 10, 14, 0, 0, 0, time.UTC)
	result, err := uc.Execute(context.Background(), RecordCallCommand{
		WorkOrderID: wo.ID(),
		CallType:    "STANDARD",
		CalledBy:    "Dana",
		CalledAt:    &calledAt,
	})

	require.NoError(t, err)
	require.NotNil(t, result.CompletionDate)
	assert.Equal(t, time.Date(2024, 5, 14, 14, 0, 0, 0, time.UTC), *result.CompletionDate)
}

func TestRecordCallUseCase_Execute_ValidationErrors(t *testing.T) {
	tests := []struct {
		name string
		cmd  RecordCallCommand
	}{
		{name: "missing id", cmd: RecordCallCommand{CallType: "STANDARD", CalledBy: "Dana"}},
		{name: "bad call type", cmd: RecordCallCommand{WorkOrderID: "wo_x", CallType: "URGENT", CalledBy: "Dana"}},
		{name: "missing caller", cmd: RecordCallCommand{WorkOrderID: "wo_x", CallType: "STANDARD", CalledBy: "  "}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := NewRecordCallUseCase(newMockSnapshotRepository(), nil, logger.NewNopLogger())

			_, err := uc.Execute(context.Background(), tt.cmd)

			require.Error(t, err)
			assert.True(t, apperrors.IsValidationError(err))
		})
	}
}

func TestRecordCallUseCase_Execute_NotFound(t *testing.T) {
	uc := NewRecordCallUseCase(newMockSnapshotRepository(), nil, logger.NewNopLogger())

	_, err := uc.Execute(context.Background(), RecordCallCommand{
		WorkOrderID: "wo_missing",
		CallType:    "STANDARD",
		CalledBy:    "Dana",
	})

	require.Error(t, err)
	assert.True(t, apperrors.IsNotFoundError(err))
}

func TestRecordCallUseCase_Execute_SaveFailure(t *testing.T) {
	repo := newMockSnapshotRepository()
	wo := newExcavatorOrder("WO-1")
	seedSnapshot(t, repo, wo)
	repo.UpdateFunc = func(ctx context.Context, s *locate.Snapshot) error {
		return errors.New("connection reset")
	}
	dispatcher := &mockEventDispatcher{}

	uc := NewRecordCallUseCase(repo, dispatcher, logger.NewNopLogger())
	_, err := uc.Execute(context.Background(), RecordCallCommand{
		WorkOrderID: wo.ID(),
		CallType:    "STANDARD",
		CalledBy:    "Dana",
	})

	require.Error(t, err)
	assert.True(t, apperrors.IsUpstreamError(err))
	assert.Contains(t, apperrors.GetAppError(err).Details, "connection reset")
	assert.Empty(t, dispatcher.published)
}

func TestBulkRecordCallUseCase_Execute_PerItemResults(t *testing.T) {
	repo := newMockSnapshotRepository()
	excavator := newExcavatorOrder("WO-1")
	standard := newStandardOrder(t, "WO-2")
	seedSnapshot(t, repo, excavator, standard)
	other := newExcavatorOrder("WO-3")
	seedSnapshot(t, repo, other)
	dispatcher := &mockEventDispatcher{}

	uc := NewBulkRecordCallUseCase(repo, dispatcher, logger.NewNopLogger())
	uc.now = fixedNow(testNow)

	result, err := uc.Execute(context.Background(), BulkRecordCallCommand{
		WorkOrderIDs: []string{excavator.ID(), standard.ID(), "wo_missing", other.ID()},
		CallType:     "STANDARD",
		CalledBy:     "Dana",
	})

	require.NoError(t, err)
	assert.Equal(t, 4, result.Total)
	assert.Equal(t, 2, result.Successful)
	assert.Equal(t, 2, result.Failed)
	assert.True(t, result.Results[0].Success)
	assert.Equal(t, locate.ErrNotEligibleForCall.Error(), result.Results[1].Error)
	assert.Equal(t, locate.ErrWorkOrderNotFound.Error(), result.Results[2].Error)
	assert.True(t, result.Results[3].Success)

	assert.Equal(t, vo.WorkflowInProgress, excavator.WorkflowStatus())
	bulk, ok := excavator.Metadata(locate.MetaBulkUpdate)
	require.True(t, ok)
	assert.Equal(t, true, bulk)
	assert.False(t, standard.LocatesCalled())
	assert.Equal(t, 2, repo.updateCount())
	assert.Len(t, dispatcher.published, 2)
}

func TestBulkRecordCallUseCase_Execute_SaveFailureFailsOnlyThatSnapshot(t *testing.T) {
	repo := newMockSnapshotRepository()
	first := newExcavatorOrder("WO-1")
	broken := seedSnapshot(t, repo, first)
	second := newExcavatorOrder("WO-2")
	seedSnapshot(t, repo, second)

	repo.UpdateFunc = func(ctx context.Context, s *locate.Snapshot) error {
		if s.ID() == broken.ID() {
			return errors.New("write conflict")
		}
		return nil
	}
	dispatcher := &mockEventDispatcher{}

	uc := NewBulkRecordCallUseCase(repo, dispatcher, logger.NewNopLogger())
	result, err := uc.Execute(context.Background(), BulkRecordCallCommand{
		WorkOrderIDs: []string{first.ID(), second.ID()},
		CallType:     "EMERGENCY",
		CalledBy:     "Dana",
	})

	require.NoError(t, err)
	assert.Equal(t, 1, result.Successful)
	assert.Equal(t, 1, result.Failed)
	assert.False(t, result.Results[0].Success)
	assert.Contains(t, result.Results[0].Error, "write conflict")
	assert.True(t, result.Results[1].Success)
	assert.Len(t, dispatcher.published, 1)
}

func TestBulkRecordCallUseCase_Execute_EmptyList(t *testing.T) {
	uc := NewBulkRecordCallUseCase(newMockSnapshotRepository(), nil, logger.NewNopLogger())

	_, err := uc.Execute(context.Background(), BulkRecordCallCommand{CallType: "STANDARD", CalledBy: "Dana"})

	require.Error(t, err)
	assert.True(t, apperrors.IsValidationError(err))
}
