package http

import (
	"fmt"

	"locates/internal/application/locate/usecases"
	vo "locates/internal/domain/locate/valueobjects"
	locatehandlers "locates/internal/interfaces/http/handlers/locate"
	"locates/internal/shared/db"
)

// locateUseCases holds all use case instances used by the application.
type locateUseCases struct {
	// Ingestion and timers
	syncDashboard      *usecases.SyncDashboardUseCase
	sweepExpiredTimers *usecases.SweepExpiredTimersUseCase

	// Live work orders
	recordCall        *usecases.RecordCallUseCase
	bulkRecordCall    *usecases.BulkRecordCallUseCase
	tagWorkOrder      *usecases.TagWorkOrderUseCase
	bulkTagWorkOrders *usecases.BulkTagWorkOrdersUseCase
	completeWorkOrder *usecases.CompleteWorkOrderUseCase
	deleteWorkOrder   *usecases.DeleteWorkOrderUseCase
	bulkDelete        *usecases.BulkDeleteWorkOrdersUseCase

	// Recycle bin
	restoreWorkOrder      *usecases.RestoreWorkOrderUseCase
	permanentlyDelete     *usecases.PermanentlyDeleteUseCase
	bulkPermanentlyDelete *usecases.BulkPermanentlyDeleteUseCase
	clearHistory          *usecases.ClearHistoryUseCase
	listHistory           *usecases.ListHistoryUseCase

	// Dashboard queries
	getSnapshot    *usecases.GetSnapshotUseCase
	listSnapshots  *usecases.ListSnapshotsUseCase
	getStatistics  *usecases.GetStatisticsUseCase
	listWorkOrders *usecases.ListWorkOrdersUseCase
	findByNumber   *usecases.FindByNumberUseCase
	listTimers     *usecases.ListTimersUseCase
}

func (c *Container) initUseCases() error {
	repo := c.repo
	pub := c.dispatcher
	log := c.log
	lockTTL := c.cfg.Locates.LockTTL()

	match, err := vo.NewPriorityMatch(c.cfg.Locates.PriorityMatch)
	if err != nil {
		return fmt.Errorf("locates.priority_match: %w", err)
	}

	c.ucs = &locateUseCases{
		syncDashboard:      usecases.NewSyncDashboardUseCase(repo, c.scraper, pub, c.locker, lockTTL, match, log.Named("sync_dashboard")),
		sweepExpiredTimers: usecases.NewSweepExpiredTimersUseCase(repo, pub, c.locker, lockTTL, log.Named("sweep_timers")),

		recordCall:        usecases.NewRecordCallUseCase(repo, pub, log),
		bulkRecordCall:    usecases.NewBulkRecordCallUseCase(repo, pub, log),
		tagWorkOrder:      usecases.NewTagWorkOrderUseCase(repo, pub, log),
		bulkTagWorkOrders: usecases.NewBulkTagWorkOrdersUseCase(repo, pub, log),
		completeWorkOrder: usecases.NewCompleteWorkOrderUseCase(repo, pub, log),
		deleteWorkOrder:   usecases.NewDeleteWorkOrderUseCase(repo, pub, log),
		bulkDelete:        usecases.NewBulkDeleteWorkOrdersUseCase(repo, pub, log),

		restoreWorkOrder:      usecases.NewRestoreWorkOrderUseCase(repo, pub, log),
		permanentlyDelete:     usecases.NewPermanentlyDeleteUseCase(repo, pub, log),
		bulkPermanentlyDelete: usecases.NewBulkPermanentlyDeleteUseCase(repo, pub, log),
		clearHistory:          usecases.NewClearHistoryUseCase(repo, db.NewTransactionManager(c.db), log),
		listHistory:           usecases.NewListHistoryUseCase(repo, log),

		getSnapshot:    usecases.NewGetSnapshotUseCase(repo, log),
		listSnapshots:  usecases.NewListSnapshotsUseCase(repo, log),
		getStatistics:  usecases.NewGetStatisticsUseCase(repo, log),
		listWorkOrders: usecases.NewListWorkOrdersUseCase(repo, log),
		findByNumber:   usecases.NewFindByNumberUseCase(repo, log),
		listTimers:     usecases.NewListTimersUseCase(repo, log),
	}

	return nil
}

func (u *locateUseCases) handlerDeps() locatehandlers.HandlerDeps {
	return locatehandlers.HandlerDeps{
		SyncDashboard:         u.syncDashboard,
		RecordCall:            u.recordCall,
		BulkRecordCall:        u.bulkRecordCall,
		TagWorkOrder:          u.tagWorkOrder,
		BulkTagWorkOrders:     u.bulkTagWorkOrders,
		SweepExpiredTimers:    u.sweepExpiredTimers,
		CompleteWorkOrder:     u.completeWorkOrder,
		DeleteWorkOrder:       u.deleteWorkOrder,
		BulkDeleteWorkOrders:  u.bulkDelete,
		RestoreWorkOrder:      u.restoreWorkOrder,
		PermanentlyDelete:     u.permanentlyDelete,
		BulkPermanentlyDelete: u.bulkPermanentlyDelete,
		ClearHistory:          u.clearHistory,
		ListHistory:           u.listHistory,
		GetSnapshot:           u.getSnapshot,
		ListSnapshots:         u.listSnapshots,
		GetStatistics:         u.getStatistics,
		ListWorkOrders:        u.listWorkOrders,
		FindByNumber:          u.findByNumber,
		ListTimers:            u.listTimers,
	}
}
