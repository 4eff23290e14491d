package repository

import (
	"context"
	stderrors "errors"
	"fmt"

	"gorm.io/gorm"

	"locates/internal/domain/locate"
	"locates/internal/infrastructure/persistence/mappers"
	"locates/internal/infrastructure/persistence/models"
	"locates/internal/shared/db"
	"locates/internal/shared/logger"
)

type DashboardSnapshotRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.DashboardSnapshotMapper
	logger logger.Interface
}

func NewDashboardSnapshotRepository(db *gorm.DB, logger logger.Interface) locate.SnapshotRepository {
	return &DashboardSnapshotRepositoryImpl{
		db:     db,
		mapper: mappers.NewDashboardSnapshotMapper(),
		logger: logger,
	}
}

func (r *DashboardSnapshotRepositoryImpl) Create(ctx context.Context, snapshot *locate.Snapshot) error {
	model, err := r.mapper.ToModel(snapshot)
	if err != nil {
		return fmt.Errorf("failed to map snapshot entity to model: %w", err)
	}

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create dashboard snapshot", "error", err)
		return fmt.Errorf("failed to create dashboard snapshot: %w", err)
	}

	if err := snapshot.SetID(model.ID); err != nil {
		return fmt.Errorf("failed to set snapshot ID: %w", err)
	}
	return nil
}

// Update rewrites every mutable column of the snapshot row.
func (r *DashboardSnapshotRepositoryImpl) Update(ctx context.Context, snapshot *locate.Snapshot) error {
	model, err := r.mapper.ToModel(snapshot)
	if err != nil {
		return fmt.Errorf("failed to map snapshot entity to model: %w", err)
	}

	tx := db.GetTxFromContext(ctx, r.db)
	result := tx.Model(&models.DashboardSnapshotModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]interface{}{
			"work_orders":         model.WorkOrders,
			"deleted_work_orders": model.DeletedWorkOrders,
			"total_work_orders":   model.TotalWorkOrders,
			"updated_at":          model.UpdatedAt,
		})
	if result.Error != nil {
		r.logger.Errorw("failed to update dashboard snapshot", "snapshot_id", model.ID, "error", result.Error)
		return fmt.Errorf("failed to update dashboard snapshot: %w", result.Error)
	}

	// MySQL reports zero rows when nothing changed, so confirm the row exists.
	if result.RowsAffected == 0 {
		var count int64
		if err := tx.Model(&models.DashboardSnapshotModel{}).Where("id = ?", model.ID).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check dashboard snapshot: %w", err)
		}
		if count == 0 {
			return locate.ErrSnapshotNotFound
		}
	}
	return nil
}

func (r *DashboardSnapshotRepositoryImpl) GetByID(ctx context.Context, id uint) (*locate.Snapshot, error) {
	var model models.DashboardSnapshotModel

	if err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, locate.ErrSnapshotNotFound
		}
		return nil, fmt.Errorf("failed to get dashboard snapshot by ID: %w", err)
	}

	entity, err := r.mapper.ToEntity(&model)
	if err != nil {
		return nil, fmt.Errorf("failed to map snapshot model to entity: %w", err)
	}
	return entity, nil
}

// List returns every snapshot, newest first.
func (r *DashboardSnapshotRepositoryImpl) List(ctx context.Context) ([]*locate.Snapshot, error) {
	var modelList []*models.DashboardSnapshotModel

	if err := db.GetTxFromContext(ctx, r.db).
		Order("created_at DESC").
		Order("id DESC").
		Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to list dashboard snapshots: %w", err)
	}

	entities, err := r.mapper.ToEntities(modelList)
	if err != nil {
		return nil, fmt.Errorf("failed to map snapshot models to entities: %w", err)
	}
	return entities, nil
}

// FindByWorkOrderID scans every snapshot for a live work order. The JSON
// columns are not indexed, so the scan happens in memory.
func (r *DashboardSnapshotRepositoryImpl) FindByWorkOrderID(ctx context.Context, workOrderID string) (*locate.Snapshot, error) {
	snapshots, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, s := range snapshots {
		if _, ok := s.FindWorkOrder(workOrderID); ok {
			return s, nil
		}
	}
	return nil, locate.ErrWorkOrderNotFound
}
