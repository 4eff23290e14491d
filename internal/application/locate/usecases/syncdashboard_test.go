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

func newSyncUseCase(repo *mockSnapshotRepository, scraper *mockScraper, dispatcher *mockEventDispatcher, locker JobLocker) *SyncDashboardUseCase {
	uc := NewSyncDashboardUseCase(repo, scraper, dispatcher, locker, time.Minute, vo.PriorityMatchExact, logger.NewNopLogger())
	uc.now = fixedNow(testNow)
	return uc
}

func TestSyncDashboardUseCase_Execute_FiltersAndDeduplicates(t *testing.T) {
	repo := newMockSnapshotRepository()
	dispatcher := &mockEventDispatcher{}
	scraper := &mockScraper{
		ScrapeFunc: func(ctx context.Context, req locate.ScrapeRequest) (*locate.ScrapeBatch, error) {
			return &locate.ScrapeBatch{
				FilterStartDate: "2024-05-01",
				FilterEndDate:   "2024-05-13",
				DispatchDate:    "2024-05-13",
				WorkOrders: []locate.Details{
					excavatorDetails("A"),
					excavatorDetails("B"),
					excavatorDetails("A"),
					{WorkOrderNumber: "C", PriorityName: "NORMAL"},
				},
			}, nil
		},
	}

	uc := newSyncUseCase(repo, scraper, dispatcher, nil)
	result, err := uc.Execute(context.Background(), SyncDashboardCommand{
		Status:    "Completed",
		StartDate: "2024-05-01",
		EndDate:   "2024-05-13",
	})

	require.NoError(t, err)
	assert.Equal(t, 4, result.Scraped)
	assert.Equal(t, 3, result.Excavator)
	assert.Equal(t, 1, result.DuplicatesRemoved)
	assert.Equal(t, 2, result.Snapshot.TotalWorkOrders)
	assert.Equal(t, locate.DefaultSource, result.Snapshot.Source)
	assert.Equal(t, "2024-05-13", result.Snapshot.DispatchDate)

	saved, err := repo.GetByID(context.Background(), result.Snapshot.ID)
	require.NoError(t, err)
	numbers := []string{}
	for _, wo := range saved.WorkOrders() {
		numbers = append(numbers, wo.WorkOrderNumber())
		assert.Equal(t, vo.WorkflowCallNeeded, wo.WorkflowStatus())
		assert.Equal(t, vo.OrderTypeExcavator, wo.Type())
	}
	assert.Equal(t, []string{"A", "B"}, numbers)

	require.Len(t, scraper.requests, 1)
	assert.Equal(t, "Completed", scraper.requests[0].Status)
	assert.Equal(t, []string{locate.EventSnapshotIngested}, dispatcher.eventTypes())
}

func TestSyncDashboardUseCase_Execute_ValidationErrors(t *testing.T) {
	tests := []struct {
		name string
		cmd  SyncDashboardCommand
	}{
		{name: "bad start date", cmd: SyncDashboardCommand{StartDate: "05/01/2024"}},
		{name: "bad end date", cmd: SyncDashboardCommand{EndDate: "yesterday"}},
		{name: "end before start", cmd: SyncDashboardCommand{StartDate: "2024-05-10", EndDate: "2024-05-01"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scraper := &mockScraper{}
			uc := newSyncUseCase(newMockSnapshotRepository(), scraper, nil, nil)

			_, err := uc.Execute(context.Background(), tt.cmd)

			require.Error(t, err)
			assert.True(t, apperrors.IsValidationError(err))
			assert.Empty(t, scraper.requests)
		})
	}
}

func TestSyncDashboardUseCase_Execute_ScrapeFailure(t *testing.T) {
	scraper := &mockScraper{
		ScrapeFunc: func(ctx context.Context, req locate.ScrapeRequest) (*locate.ScrapeBatch, error) {
			return nil, errors.New("board unreachable")
		},
	}
	repo := newMockSnapshotRepository()
	uc := newSyncUseCase(repo, scraper, nil, nil)

	_, err := uc.Execute(context.Background(), SyncDashboardCommand{})

	require.Error(t, err)
	assert.True(t, apperrors.IsUpstreamError(err))
	assert.Contains(t, apperrors.GetAppError(err).Details, "board unreachable")
	list, _ := repo.List(context.Background())
	assert.Empty(t, list)
}

func TestSyncDashboardUseCase_Execute_SaveFailure(t *testing.T) {
	repo := newMockSnapshotRepository()
	repo.CreateFunc = func(ctx context.Context, s *locate.Snapshot) error {
		return errors.New("disk full")
	}
	dispatcher := &mockEventDispatcher{}
	uc := newSyncUseCase(repo, &mockScraper{}, dispatcher, nil)

	_, err := uc.Execute(context.Background(), SyncDashboardCommand{})

	require.Error(t, err)
	assert.True(t, apperrors.IsUpstreamError(err))
	assert.Empty(t, dispatcher.published)
}

func TestSyncDashboardUseCase_Execute_LockHeldElsewhere(t *testing.T) {
	locker := &mockLocker{
		TryLockFunc: func(ctx context.Context, key string, ttl time.Duration) (func(), bool, error) {
			return nil, false, nil
		},
	}
	scraper := &mockScraper{}
	uc := newSyncUseCase(newMockSnapshotRepository(), scraper, nil, locker)

	_, err := uc.Execute(context.Background(), SyncDashboardCommand{})

	require.Error(t, err)
	assert.True(t, apperrors.IsConflictError(err))
	assert.Equal(t, []string{SyncLockKey}, locker.keys)
	assert.Empty(t, scraper.requests)
}

func TestSyncDashboardUseCase_Execute_LockErrorDoesNotBlock(t *testing.T) {
	locker := &mockLocker{
		TryLockFunc: func(ctx context.Context, key string, ttl time.Duration) (func(), bool, error) {
			return nil, false, errors.New("redis down")
		},
	}
	scraper := &mockScraper{}
	uc := newSyncUseCase(newMockSnapshotRepository(), scraper, nil, locker)

	result, err := uc.Execute(context.Background(), SyncDashboardCommand{})

	require.NoError(t, err)
	assert.Equal(t, 0, result.Snapshot.TotalWorkOrders)
	assert.Len(t, scraper.requests, 1)
}

func TestSyncDashboardUseCase_Execute_ReleasesLock(t *testing.T) {
	locker := &mockLocker{}
	uc := newSyncUseCase(newMockSnapshotRepository(), &mockScraper{}, nil, locker)

	_, err := uc.Execute(context.Background(), SyncDashboardCommand{})

	require.NoError(t, err)
	assert.Equal(t, 1, locker.unlocked)
}
