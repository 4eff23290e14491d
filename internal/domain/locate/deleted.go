package locate

import (
	"fmt"
	"time"

	"locates/internal/shared/id"
)

const (
	DeletedFromDashboard  = "dashboard"
	DeletedFromBulkDelete = "bulk-delete"
)

// DeletedWorkOrderState is the persisted shape of a recycle-bin entry.
type DeletedWorkOrderState struct {
	ID                   string
	WorkOrder            WorkOrderState
	OriginalWorkOrderID  string
	DeletedAt            time.Time
	DeletedBy            string
	DeletedByEmail       string
	DeletedFrom          string
	IsPermanentlyDeleted bool
	Restored             bool
	RestoredAt           *time.Time
	RestoredBy           string
}

// DeletedWorkOrder is a soft-deleted work order held in its snapshot's
// recycle bin.
type DeletedWorkOrder struct {
	state DeletedWorkOrderState
}

func newDeletedWorkOrder(wo *WorkOrder, rec DeleteRecord, now time.Time) *DeletedWorkOrder {
	from := rec.DeletedFrom
	if from == "" {
		from = DeletedFromDashboard
	}
	return &DeletedWorkOrder{state: DeletedWorkOrderState{
		ID:                  id.NewDeletedWorkOrderID(),
		WorkOrder:           wo.State(),
		OriginalWorkOrderID: wo.ID(),
		DeletedAt:           now.UTC(),
		DeletedBy:           rec.DeletedBy,
		DeletedByEmail:      rec.DeletedByEmail,
		DeletedFrom:         from,
	}}
}

func ReconstructDeletedWorkOrder(state DeletedWorkOrderState) (*DeletedWorkOrder, error) {
	if state.ID == "" {
		return nil, fmt.Errorf("deleted work order ID is required")
	}
	if state.WorkOrder.Metadata == nil {
		state.WorkOrder.Metadata = make(map[string]interface{})
	}
	return &DeletedWorkOrder{state: state}, nil
}

func (d *DeletedWorkOrder) ID() string                  { return d.state.ID }
func (d *DeletedWorkOrder) OriginalWorkOrderID() string { return d.state.OriginalWorkOrderID }
func (d *DeletedWorkOrder) WorkOrderNumber() string     { return d.state.WorkOrder.WorkOrderNumber }
func (d *DeletedWorkOrder) CustomerName() string        { return d.state.WorkOrder.CustomerName }
func (d *DeletedWorkOrder) CustomerAddress() string     { return d.state.WorkOrder.CustomerAddress }
func (d *DeletedWorkOrder) DeletedAt() time.Time        { return d.state.DeletedAt }
func (d *DeletedWorkOrder) DeletedBy() string           { return d.state.DeletedBy }
func (d *DeletedWorkOrder) IsPermanentlyDeleted() bool  { return d.state.IsPermanentlyDeleted }
func (d *DeletedWorkOrder) Restored() bool              { return d.state.Restored }

// Visible reports whether the entry belongs in history views.
func (d *DeletedWorkOrder) Visible() bool {
	return !d.state.IsPermanentlyDeleted && !d.state.Restored
}

func (d *DeletedWorkOrder) State() DeletedWorkOrderState {
	s := d.state
	s.WorkOrder = (&WorkOrder{state: d.state.WorkOrder}).State()
	s.RestoredAt = copyPtr(s.RestoredAt)
	return s
}

// matches reports whether ref names this entry by its own id or by the id of
// the work order it was deleted from.
func (d *DeletedWorkOrder) matches(ref string) bool {
	return ref != "" && (d.state.ID == ref || d.state.OriginalWorkOrderID == ref)
}

// DeleteRecord identifies who removed a work order and from where.
type DeleteRecord struct {
	DeletedBy      string
	DeletedByEmail string
	DeletedFrom    string
}
