package usecases

import (
	"context"

	"locates/internal/application/locate/dto"
)

type SyncDashboardExecutor interface {
	Execute(ctx context.Context, cmd SyncDashboardCommand) (*dto.SyncResultDTO, error)
}

type RecordCallExecutor interface {
	Execute(ctx context.Context, cmd RecordCallCommand) (*dto.WorkOrderDTO, error)
}

type BulkRecordCallExecutor interface {
	Execute(ctx context.Context, cmd BulkRecordCallCommand) (*dto.BulkResultDTO, error)
}

type TagWorkOrderExecutor interface {
	Execute(ctx context.Context, cmd TagWorkOrderCommand) (*dto.WorkOrderDTO, error)
}

type BulkTagWorkOrdersExecutor interface {
	Execute(ctx context.Context, cmd BulkTagWorkOrdersCommand) (*dto.BulkResultDTO, error)
}

type SweepExpiredTimersExecutor interface {
	Execute(ctx context.Context, cmd SweepExpiredTimersCommand) (*dto.SweepResultDTO, error)
}

type CompleteWorkOrderExecutor interface {
	Execute(ctx context.Context, cmd CompleteWorkOrderCommand) (*dto.WorkOrderDTO, error)
}

type DeleteWorkOrderExecutor interface {
	Execute(ctx context.Context, cmd DeleteWorkOrderCommand) (*dto.DeletedWorkOrderDTO, error)
}

type BulkDeleteWorkOrdersExecutor interface {
	Execute(ctx context.Context, cmd BulkDeleteWorkOrdersCommand) (*dto.BulkResultDTO, error)
}

type RestoreWorkOrderExecutor interface {
	Execute(ctx context.Context, cmd RestoreWorkOrderCommand) (*dto.WorkOrderDTO, error)
}

type PermanentlyDeleteExecutor interface {
	Execute(ctx context.Context, cmd PermanentlyDeleteCommand) error
}

type BulkPermanentlyDeleteExecutor interface {
	Execute(ctx context.Context, cmd BulkPermanentlyDeleteCommand) (*dto.BulkResultDTO, error)
}

type ClearHistoryExecutor interface {
	Execute(ctx context.Context, cmd ClearHistoryCommand) (*dto.ClearHistoryResultDTO, error)
}

type ListHistoryExecutor interface {
	Execute(ctx context.Context, query ListHistoryQuery) (*ListHistoryResult, error)
}

type GetSnapshotExecutor interface {
	Execute(ctx context.Context, query GetSnapshotQuery) (*dto.SnapshotDetailDTO, error)
}

type ListSnapshotsExecutor interface {
	Execute(ctx context.Context) ([]dto.SnapshotDTO, error)
}

type GetStatisticsExecutor interface {
	Execute(ctx context.Context) (*dto.StatisticsDTO, error)
}

type ListWorkOrdersExecutor interface {
	Execute(ctx context.Context, query ListWorkOrdersQuery) ([]dto.WorkOrderStatusDTO, error)
}

type FindByNumberExecutor interface {
	Execute(ctx context.Context, query FindByNumberQuery) (*dto.WorkOrderLookupDTO, error)
}

type ListTimersExecutor interface {
	Execute(ctx context.Context, query ListTimersQuery) (*dto.TimersDTO, error)
}
