package locate

import (
	"fmt"
	"time"

	"locates/internal/shared/biztime"
	"locates/internal/shared/id"
)

const DefaultSource = "external-dashboard"

// Snapshot is one ingestion batch from the dispatch board. It owns its live
// work orders and its recycle bin, and is the unit of persistence.
type Snapshot struct {
	id                uint
	filterStartDate   string
	filterEndDate     string
	dispatchDate      string
	source            string
	workOrders        []*WorkOrder
	deletedWorkOrders []*DeletedWorkOrder
	totalWorkOrders   int
	scrapedAt         time.Time
	createdAt         time.Time
	updatedAt         time.Time
}

type SnapshotParams struct {
	FilterStartDate string
	FilterEndDate   string
	DispatchDate    string
	Source          string
}

func NewSnapshot(params SnapshotParams, workOrders []*WorkOrder, now time.Time) *Snapshot {
	source := params.Source
	if source == "" {
		source = DefaultSource
	}
	s := &Snapshot{
		filterStartDate: params.FilterStartDate,
		filterEndDate:   params.FilterEndDate,
		dispatchDate:    params.DispatchDate,
		source:          source,
		workOrders:      append(make([]*WorkOrder, 0, len(workOrders)), workOrders...),
		scrapedAt:       now.UTC(),
		createdAt:       now.UTC(),
		updatedAt:       now.UTC(),
	}
	s.recount()
	return s
}

func ReconstructSnapshot(
	id uint,
	params SnapshotParams,
	workOrders []*WorkOrder,
	deletedWorkOrders []*DeletedWorkOrder,
	scrapedAt, createdAt, updatedAt time.Time,
) (*Snapshot, error) {
	if id == 0 {
		return nil, fmt.Errorf("snapshot ID cannot be zero")
	}
	source := params.Source
	if source == "" {
		source = DefaultSource
	}
	s := &Snapshot{
		id:                id,
		filterStartDate:   params.FilterStartDate,
		filterEndDate:     params.FilterEndDate,
		dispatchDate:      params.DispatchDate,
		source:            source,
		workOrders:        workOrders,
		deletedWorkOrders: deletedWorkOrders,
		scrapedAt:         scrapedAt,
		createdAt:         createdAt,
		updatedAt:         updatedAt,
	}
	s.recount()
	return s, nil
}

func (s *Snapshot) ID() uint                { return s.id }
func (s *Snapshot) FilterStartDate() string { return s.filterStartDate }
func (s *Snapshot) FilterEndDate() string   { return s.filterEndDate }
func (s *Snapshot) DispatchDate() string    { return s.dispatchDate }
func (s *Snapshot) Source() string          { return s.source }
func (s *Snapshot) TotalWorkOrders() int    { return s.totalWorkOrders }
func (s *Snapshot) ScrapedAt() time.Time    { return s.scrapedAt }
func (s *Snapshot) CreatedAt() time.Time    { return s.createdAt }
func (s *Snapshot) UpdatedAt() time.Time    { return s.updatedAt }

// SetID is called by the repository once storage has assigned an id.
func (s *Snapshot) SetID(id uint) error {
	if s.id != 0 {
		return fmt.Errorf("snapshot ID already set")
	}
	s.id = id
	return nil
}

func (s *Snapshot) WorkOrders() []*WorkOrder {
	return s.workOrders
}

// DeletedWorkOrders returns every stored bin entry, including hidden ones.
func (s *Snapshot) DeletedWorkOrders() []*DeletedWorkOrder {
	return s.deletedWorkOrders
}

// History returns the bin entries that are still restorable.
func (s *Snapshot) History() []*DeletedWorkOrder {
	visible := make([]*DeletedWorkOrder, 0, len(s.deletedWorkOrders))
	for _, d := range s.deletedWorkOrders {
		if d.Visible() {
			visible = append(visible, d)
		}
	}
	return visible
}

func (s *Snapshot) FindWorkOrder(workOrderID string) (*WorkOrder, bool) {
	for _, wo := range s.workOrders {
		if wo.ID() == workOrderID {
			return wo, true
		}
	}
	return nil, false
}

// FindByNumber returns the first live order with the given business key.
func (s *Snapshot) FindByNumber(number string) (*WorkOrder, bool) {
	if number == "" {
		return nil, false
	}
	for _, wo := range s.workOrders {
		if wo.WorkOrderNumber() == number {
			return wo, true
		}
	}
	return nil, false
}

// FindDeletedByNumber returns the first visible bin entry with the given number.
func (s *Snapshot) FindDeletedByNumber(number string) (*DeletedWorkOrder, bool) {
	if number == "" {
		return nil, false
	}
	for _, d := range s.deletedWorkOrders {
		if d.Visible() && d.WorkOrderNumber() == number {
			return d, true
		}
	}
	return nil, false
}

func (s *Snapshot) findDeleted(deletedID string) (int, *DeletedWorkOrder) {
	for i, d := range s.deletedWorkOrders {
		if d.ID() == deletedID {
			return i, d
		}
	}
	return -1, nil
}

// HasDeleted reports whether ref names a restorable bin entry, by entry id
// or original work order id.
func (s *Snapshot) HasDeleted(ref string) bool {
	for _, d := range s.deletedWorkOrders {
		if d.Visible() && d.matches(ref) {
			return true
		}
	}
	return false
}

// SoftDelete moves a live work order into the recycle bin.
func (s *Snapshot) SoftDelete(workOrderID string, rec DeleteRecord, now time.Time) (*DeletedWorkOrder, error) {
	idx := -1
	for i, wo := range s.workOrders {
		if wo.ID() == workOrderID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, ErrWorkOrderNotFound
	}

	deleted := newDeletedWorkOrder(s.workOrders[idx], rec, now)
	s.workOrders = append(s.workOrders[:idx], s.workOrders[idx+1:]...)
	s.deletedWorkOrders = append(s.deletedWorkOrders, deleted)
	s.touch(now)
	return deleted, nil
}

// Restore moves a bin entry back to the live list. The original id is reused
// unless idInUse reports it taken, in which case a fresh id is assigned.
// idInUse may be nil; ids live in this snapshot are always checked.
func (s *Snapshot) Restore(deletedID, actor, actorEmail string, idInUse func(string) bool, now time.Time) (*WorkOrder, error) {
	idx, entry := s.findDeleted(deletedID)
	if entry == nil || entry.IsPermanentlyDeleted() {
		return nil, ErrDeletedOrderNotFound
	}
	if entry.Restored() {
		return nil, ErrAlreadyRestored
	}

	restoredID := entry.OriginalWorkOrderID()
	if restoredID != "" {
		if _, live := s.FindWorkOrder(restoredID); live || (idInUse != nil && idInUse(restoredID)) {
			restoredID = ""
		}
	}
	if restoredID == "" {
		restoredID = id.NewWorkOrderID()
	}

	restored := (&WorkOrder{state: entry.state.WorkOrder}).clone(restoredID)
	restored.state.Metadata[MetaRestoredAt] = biztime.FormatMetadataTime(now)
	restored.state.Metadata[MetaRestoredBy] = actor
	if actorEmail != "" {
		restored.state.Metadata[MetaRestoredMail] = actorEmail
	}
	restored.refresh(now)

	at := now.UTC()
	entry.state.Restored = true
	entry.state.RestoredAt = &at
	entry.state.RestoredBy = actor

	s.deletedWorkOrders = append(s.deletedWorkOrders[:idx], s.deletedWorkOrders[idx+1:]...)
	s.workOrders = append(s.workOrders, restored)
	s.touch(now)
	return restored, nil
}

// PermanentlyDelete removes a bin entry so it can no longer be restored or
// listed.
func (s *Snapshot) PermanentlyDelete(deletedID string, now time.Time) error {
	idx, entry := s.findDeleted(deletedID)
	if entry == nil || !entry.Visible() {
		return ErrDeletedOrderNotFound
	}
	s.deletedWorkOrders = append(s.deletedWorkOrders[:idx], s.deletedWorkOrders[idx+1:]...)
	s.touch(now)
	return nil
}

// PermanentlyDeleteMatching removes every visible entry named by refs and
// returns the refs that matched.
func (s *Snapshot) PermanentlyDeleteMatching(refs []string, now time.Time) []string {
	var matched []string
	for _, ref := range refs {
		kept := s.deletedWorkOrders[:0]
		hit := false
		for _, d := range s.deletedWorkOrders {
			if d.Visible() && d.matches(ref) {
				hit = true
				continue
			}
			kept = append(kept, d)
		}
		s.deletedWorkOrders = kept
		if hit {
			matched = append(matched, ref)
		}
	}
	if len(matched) > 0 {
		s.touch(now)
	}
	return matched
}

// ClearHistory empties the recycle bin and returns how many restorable
// entries were removed.
func (s *Snapshot) ClearHistory(now time.Time) int {
	cleared := len(s.History())
	if len(s.deletedWorkOrders) == 0 {
		return 0
	}
	s.deletedWorkOrders = nil
	s.touch(now)
	return cleared
}

// ExpireDueTimers closes every timer whose deadline has passed and returns
// the orders that changed.
func (s *Snapshot) ExpireDueTimers(now time.Time) []*WorkOrder {
	var expired []*WorkOrder
	for _, wo := range s.workOrders {
		if wo.ExpireTimer(now) {
			expired = append(expired, wo)
		}
	}
	if len(expired) > 0 {
		s.touch(now)
	}
	return expired
}

// Refresh re-derives status and countdown on every live order.
func (s *Snapshot) Refresh(now time.Time) {
	for _, wo := range s.workOrders {
		wo.Refresh(now)
	}
}

// Touch records a mutation made through a work order obtained from the snapshot.
func (s *Snapshot) Touch(now time.Time) {
	s.touch(now)
}

func (s *Snapshot) touch(now time.Time) {
	s.updatedAt = now.UTC()
	s.recount()
}

func (s *Snapshot) recount() {
	s.totalWorkOrders = len(s.workOrders)
}
