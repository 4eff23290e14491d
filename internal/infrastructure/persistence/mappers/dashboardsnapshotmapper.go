package mappers

import (
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/datatypes"

	"locates/internal/domain/locate"
	vo "locates/internal/domain/locate/valueobjects"
	"locates/internal/infrastructure/persistence/models"
)

// workOrderRecord is the stored JSON shape of a work order. Keys are
// camelCase to stay readable by other consumers of the table.
type workOrderRecord struct {
	ID string `json:"id"`
	locate.Details

	Type string `json:"type"`

	LocatesCalled bool       `json:"locatesCalled"`
	CallType      *string    `json:"callType,omitempty"`
	CalledAt      *time.Time `json:"calledAt,omitempty"`
	CalledBy      string     `json:"calledBy,omitempty"`
	CalledByEmail string     `json:"calledByEmail,omitempty"`

	CompletionDate *time.Time `json:"completionDate,omitempty"`
	TimerStarted   bool       `json:"timerStarted"`
	TimerExpired   bool       `json:"timerExpired"`
	TimeRemaining  string     `json:"timeRemaining,omitempty"`

	ManuallyTagged bool       `json:"manuallyTagged"`
	TaggedBy       string     `json:"taggedBy,omitempty"`
	TaggedByEmail  string     `json:"taggedByEmail,omitempty"`
	TaggedAt       *time.Time `json:"taggedAt,omitempty"`

	ManuallyCompleted bool   `json:"manuallyCompleted,omitempty"`
	WorkflowStatus    string `json:"workflowStatus"`

	Metadata map[string]interface{} `json:"metadata,omitempty"`
}

// deletedWorkOrderRecord flattens the work order copy next to the bin
// fields. Its id is the bin entry id; the order's own id is originalWorkOrderId.
type deletedWorkOrderRecord struct {
	workOrderRecord
	ID                   string     `json:"id"`
	OriginalWorkOrderID  string     `json:"originalWorkOrderId"`
	DeletedAt            time.Time  `json:"deletedAt"`
	DeletedBy            string     `json:"deletedBy"`
	DeletedByEmail       string     `json:"deletedByEmail,omitempty"`
	DeletedFrom          string     `json:"deletedFrom"`
	IsPermanentlyDeleted bool       `json:"isPermanentlyDeleted,omitempty"`
	Restored             bool       `json:"restored,omitempty"`
	RestoredAt           *time.Time `json:"restoredAt,omitempty"`
	RestoredBy           string     `json:"restoredBy,omitempty"`
}

type DashboardSnapshotMapper interface {
	ToEntity(model *models.DashboardSnapshotModel) (*locate.Snapshot, error)
	ToModel(entity *locate.Snapshot) (*models.DashboardSnapshotModel, error)
	ToEntities(models []*models.DashboardSnapshotModel) ([]*locate.Snapshot, error)
}

type DashboardSnapshotMapperImpl struct{}

func NewDashboardSnapshotMapper() DashboardSnapshotMapper {
	return &DashboardSnapshotMapperImpl{}
}

func (m *DashboardSnapshotMapperImpl) ToEntity(model *models.DashboardSnapshotModel) (*locate.Snapshot, error) {
	if model == nil {
		return nil, nil
	}

	var woRecords []workOrderRecord
	if len(model.WorkOrders) > 0 {
		if err := json.Unmarshal(model.WorkOrders, &woRecords); err != nil {
			return nil, fmt.Errorf("failed to unmarshal work orders of snapshot %d: %w", model.ID, err)
		}
	}

	var deletedRecords []deletedWorkOrderRecord
	if len(model.DeletedWorkOrders) > 0 {
		if err := json.Unmarshal(model.DeletedWorkOrders, &deletedRecords); err != nil {
			return nil, fmt.Errorf("failed to unmarshal deleted work orders of snapshot %d: %w", model.ID, err)
		}
	}

	workOrders := make([]*locate.WorkOrder, 0, len(woRecords))
	for _, r := range woRecords {
		wo, err := locate.ReconstructWorkOrder(r.toState())
		if err != nil {
			return nil, fmt.Errorf("failed to reconstruct work order in snapshot %d: %w", model.ID, err)
		}
		workOrders = append(workOrders, wo)
	}

	deleted := make([]*locate.DeletedWorkOrder, 0, len(deletedRecords))
	for _, r := range deletedRecords {
		state := r.workOrderRecord.toState()
		state.ID = r.OriginalWorkOrderID
		d, err := locate.ReconstructDeletedWorkOrder(locate.DeletedWorkOrderState{
			ID:                   r.ID,
			WorkOrder:            state,
			OriginalWorkOrderID:  r.OriginalWorkOrderID,
			DeletedAt:            r.DeletedAt,
			DeletedBy:            r.DeletedBy,
			DeletedByEmail:       r.DeletedByEmail,
			DeletedFrom:          r.DeletedFrom,
			IsPermanentlyDeleted: r.IsPermanentlyDeleted,
			Restored:             r.Restored,
			RestoredAt:           r.RestoredAt,
			RestoredBy:           r.RestoredBy,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to reconstruct deleted work order in snapshot %d: %w", model.ID, err)
		}
		deleted = append(deleted, d)
	}

	entity, err := locate.ReconstructSnapshot(
		model.ID,
		locate.SnapshotParams{
			FilterStartDate: model.FilterStartDate,
			FilterEndDate:   model.FilterEndDate,
			DispatchDate:    model.DispatchDate,
			Source:          model.Source,
		},
		workOrders,
		deleted,
		model.ScrapedAt,
		model.CreatedAt,
		model.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct snapshot entity: %w", err)
	}
	return entity, nil
}

func (m *DashboardSnapshotMapperImpl) ToModel(entity *locate.Snapshot) (*models.DashboardSnapshotModel, error) {
	if entity == nil {
		return nil, nil
	}

	woRecords := make([]workOrderRecord, 0, len(entity.WorkOrders()))
	for _, wo := range entity.WorkOrders() {
		woRecords = append(woRecords, fromState(wo.State()))
	}
	workOrdersJSON, err := json.Marshal(woRecords)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal work orders: %w", err)
	}

	deletedRecords := make([]deletedWorkOrderRecord, 0, len(entity.DeletedWorkOrders()))
	for _, d := range entity.DeletedWorkOrders() {
		s := d.State()
		deletedRecords = append(deletedRecords, deletedWorkOrderRecord{
			workOrderRecord:      fromState(s.WorkOrder),
			ID:                   s.ID,
			OriginalWorkOrderID:  s.OriginalWorkOrderID,
			DeletedAt:            s.DeletedAt,
			DeletedBy:            s.DeletedBy,
			DeletedByEmail:       s.DeletedByEmail,
			DeletedFrom:          s.DeletedFrom,
			IsPermanentlyDeleted: s.IsPermanentlyDeleted,
			Restored:             s.Restored,
			RestoredAt:           s.RestoredAt,
			RestoredBy:           s.RestoredBy,
		})
	}
	deletedJSON, err := json.Marshal(deletedRecords)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal deleted work orders: %w", err)
	}

	return &models.DashboardSnapshotModel{
		ID:                entity.ID(),
		FilterStartDate:   entity.FilterStartDate(),
		FilterEndDate:     entity.FilterEndDate(),
		DispatchDate:      entity.DispatchDate(),
		Source:            entity.Source(),
		WorkOrders:        datatypes.JSON(workOrdersJSON),
		DeletedWorkOrders: datatypes.JSON(deletedJSON),
		TotalWorkOrders:   entity.TotalWorkOrders(),
		ScrapedAt:         entity.ScrapedAt(),
		CreatedAt:         entity.CreatedAt(),
		UpdatedAt:         entity.UpdatedAt(),
	}, nil
}

func (m *DashboardSnapshotMapperImpl) ToEntities(modelList []*models.DashboardSnapshotModel) ([]*locate.Snapshot, error) {
	entities := make([]*locate.Snapshot, 0, len(modelList))
	for _, model := range modelList {
		entity, err := m.ToEntity(model)
		if err != nil {
			return nil, err
		}
		entities = append(entities, entity)
	}
	return entities, nil
}

func fromState(s locate.WorkOrderState) workOrderRecord {
	var callType *string
	if s.CallType != nil {
		v := s.CallType.String()
		callType = &v
	}
	return workOrderRecord{
		ID:                s.ID,
		Details:           s.Details,
		Type:              s.Type.String(),
		LocatesCalled:     s.LocatesCalled,
		CallType:          callType,
		CalledAt:          s.CalledAt,
		CalledBy:          s.CalledBy,
		CalledByEmail:     s.CalledByEmail,
		CompletionDate:    s.CompletionDate,
		TimerStarted:      s.TimerStarted,
		TimerExpired:      s.TimerExpired,
		TimeRemaining:     s.TimeRemaining,
		ManuallyTagged:    s.ManuallyTagged,
		TaggedBy:          s.TaggedBy,
		TaggedByEmail:     s.TaggedByEmail,
		TaggedAt:          s.TaggedAt,
		ManuallyCompleted: s.ManuallyCompleted,
		WorkflowStatus:    s.WorkflowStatus.String(),
		Metadata:          s.Metadata,
	}
}

func (r workOrderRecord) toState() locate.WorkOrderState {
	state := locate.WorkOrderState{
		ID:                r.ID,
		Details:           r.Details,
		Type:              vo.ParseOrderType(r.Type),
		LocatesCalled:     r.LocatesCalled,
		CalledAt:          r.CalledAt,
		CalledBy:          r.CalledBy,
		CalledByEmail:     r.CalledByEmail,
		CompletionDate:    r.CompletionDate,
		TimerStarted:      r.TimerStarted,
		TimerExpired:      r.TimerExpired,
		TimeRemaining:     r.TimeRemaining,
		ManuallyTagged:    r.ManuallyTagged,
		TaggedBy:          r.TaggedBy,
		TaggedByEmail:     r.TaggedByEmail,
		TaggedAt:          r.TaggedAt,
		ManuallyCompleted: r.ManuallyCompleted,
		WorkflowStatus:    vo.WorkflowStatus(r.WorkflowStatus),
		Metadata:          r.Metadata,
	}
	if r.CallType != nil {
		if ct, err := vo.NewCallType(*r.CallType); err == nil {
			state.CallType = &ct
		}
	}
	return state
}
