package usecases

import (
	"context"
	"time"

	"locates/internal/application/locate/dto"
	"locates/internal/domain/locate"
	"locates/internal/shared/biztime"
	"locates/internal/shared/errors"
	"locates/internal/shared/logger"
)

type GetSnapshotQuery struct {
	SnapshotID uint
}

type GetSnapshotUseCase struct {
	repo   locate.SnapshotRepository
	logger logger.Interface
	now    func() time.Time
}

func NewGetSnapshotUseCase(repo locate.SnapshotRepository, logger logger.Interface) *GetSnapshotUseCase {
	return &GetSnapshotUseCase{repo: repo, logger: logger, now: biztime.NowUTC}
}

// Execute returns one snapshot with its live orders and its recycle bin.
func (uc *GetSnapshotUseCase) Execute(ctx context.Context, query GetSnapshotQuery) (*dto.SnapshotDetailDTO, error) {
	if query.SnapshotID == 0 {
		return nil, errors.NewValidationError("snapshot ID is required")
	}

	snapshot, err := loadSnapshot(ctx, uc.repo, query.SnapshotID)
	if err != nil {
		uc.logger.Warnw("failed to get dashboard snapshot", "snapshot_id", query.SnapshotID, "error", err)
		return nil, err
	}

	return dto.ToSnapshotDetailDTO(snapshot, uc.now()), nil
}
