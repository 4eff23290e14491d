package usecases

import (
	"context"

	"locates/internal/application/locate/dto"
	"locates/internal/domain/locate"
	"locates/internal/shared/logger"
)

type ListSnapshotsUseCase struct {
	repo   locate.SnapshotRepository
	logger logger.Interface
}

func NewListSnapshotsUseCase(repo locate.SnapshotRepository, logger logger.Interface) *ListSnapshotsUseCase {
	return &ListSnapshotsUseCase{repo: repo, logger: logger}
}

func (uc *ListSnapshotsUseCase) Execute(ctx context.Context) ([]dto.SnapshotDTO, error) {
	snapshots, err := listSnapshots(ctx, uc.repo)
	if err != nil {
		uc.logger.Errorw("failed to list dashboard snapshots", "error", err)
		return nil, err
	}

	result := make([]dto.SnapshotDTO, 0, len(snapshots))
	for _, s := range snapshots {
		result = append(result, dto.ToSnapshotDTO(s))
	}
	return result, nil
}
