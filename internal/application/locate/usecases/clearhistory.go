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

type ClearHistoryCommand struct{}

type ClearHistoryUseCase struct {
	repo     locate.SnapshotRepository
	txRunner TransactionRunner
	logger   logger.Interface
	now      func() time.Time
}

// NewClearHistoryUseCase builds the use case. With a non-nil txRunner all
// snapshot updates commit or roll back together.
func NewClearHistoryUseCase(
	repo locate.SnapshotRepository,
	txRunner TransactionRunner,
	logger logger.Interface,
) *ClearHistoryUseCase {
	return &ClearHistoryUseCase{
		repo:     repo,
		txRunner: txRunner,
		logger:   logger,
		now:      biztime.NowUTC,
	}
}

func (uc *ClearHistoryUseCase) Execute(ctx context.Context, _ ClearHistoryCommand) (*dto.ClearHistoryResultDTO, error) {
	uc.logger.Infow("executing clear history use case")

	var cleared int
	run := func(ctx context.Context) error {
		cleared = 0
		snapshots, err := uc.repo.List(ctx)
		if err != nil {
			return err
		}
		now := uc.now()
		for _, s := range snapshots {
			if len(s.DeletedWorkOrders()) == 0 {
				continue
			}
			n := s.ClearHistory(now)
			if err := uc.repo.Update(ctx, s); err != nil {
				return err
			}
			cleared += n
		}
		return nil
	}

	var err error
	if uc.txRunner != nil {
		err = uc.txRunner.RunInTransaction(ctx, run)
	} else {
		err = run(ctx)
	}
	if err != nil {
		uc.logger.Errorw("failed to clear history", "error", err)
		return nil, errors.NewUpstreamError("failed to clear history", err)
	}

	uc.logger.Infow("history cleared", "cleared", cleared)
	return &dto.ClearHistoryResultDTO{Cleared: cleared}, nil
}
