package locate

import (
	"fmt"
	"strings"
	"time"

	vo "locates/internal/domain/locate/valueobjects"
	"locates/internal/shared/biztime"
	"locates/internal/shared/id"
)

const (
	// ExcavatorColor highlights orders tagged as needing locates.
	ExcavatorColor    = "#FF6B35"
	LocatesNeededTag  = "Locates Needed"
	MetaLastCallAt    = "lastCallStatusUpdate"
	MetaUpdatedBy     = "updatedBy"
	MetaBulkUpdate    = "bulkUpdate"
	MetaExpiredAt     = "expiredAt"
	MetaAutoComplete  = "autoMovedToComplete"
	MetaManualDone    = "manuallyCompleted"
	MetaCompletedBy   = "completedBy"
	MetaCompletedMail = "completedByEmail"
	MetaCompletedAt   = "completedAt"
	MetaRestoredAt    = "restoredAt"
	MetaRestoredBy    = "restoredBy"
	MetaRestoredMail  = "restoredByEmail"
)

// WorkOrderState is the full persisted shape of a work order. It is what
// repositories read and write; behaviour lives on WorkOrder.
type WorkOrderState struct {
	ID string
	Details

	Type vo.OrderType

	LocatesCalled bool
	CallType      *vo.CallType
	CalledAt      *time.Time
	CalledBy      string
	CalledByEmail string

	CompletionDate *time.Time
	TimerStarted   bool
	TimerExpired   bool
	TimeRemaining  string

	ManuallyTagged bool
	TaggedBy       string
	TaggedByEmail  string
	TaggedAt       *time.Time

	ManuallyCompleted bool
	WorkflowStatus    vo.WorkflowStatus

	Metadata map[string]interface{}
}

type WorkOrder struct {
	state WorkOrderState
}

// NewWorkOrder creates a freshly ingested excavator order.
func NewWorkOrder(details Details, now time.Time) *WorkOrder {
	wo := &WorkOrder{state: WorkOrderState{
		ID:       id.NewWorkOrderID(),
		Details:  details,
		Type:     vo.OrderTypeExcavator,
		Metadata: make(map[string]interface{}),
	}}
	wo.refresh(now)
	return wo
}

// ReconstructWorkOrder rebuilds a work order from storage. The stored status
// is kept as-is; call Refresh to re-derive it.
func ReconstructWorkOrder(state WorkOrderState) (*WorkOrder, error) {
	if state.ID == "" {
		return nil, fmt.Errorf("work order ID is required")
	}
	if !state.Type.IsValid() {
		state.Type = vo.OrderTypeStandard
	}
	if !state.WorkflowStatus.IsValid() {
		state.WorkflowStatus = vo.WorkflowUnknown
	}
	if state.Metadata == nil {
		state.Metadata = make(map[string]interface{})
	}
	return &WorkOrder{state: state}, nil
}

func (w *WorkOrder) ID() string                        { return w.state.ID }
func (w *WorkOrder) WorkOrderNumber() string           { return w.state.WorkOrderNumber }
func (w *WorkOrder) Details() Details                  { return w.state.Details }
func (w *WorkOrder) Type() vo.OrderType                { return w.state.Type }
func (w *WorkOrder) LocatesCalled() bool               { return w.state.LocatesCalled }
func (w *WorkOrder) CallType() *vo.CallType            { return w.state.CallType }
func (w *WorkOrder) CalledAt() *time.Time              { return w.state.CalledAt }
func (w *WorkOrder) CalledBy() string                  { return w.state.CalledBy }
func (w *WorkOrder) CompletionDate() *time.Time        { return w.state.CompletionDate }
func (w *WorkOrder) TimerStarted() bool                { return w.state.TimerStarted }
func (w *WorkOrder) TimerExpired() bool                { return w.state.TimerExpired }
func (w *WorkOrder) TimeRemainingText() string         { return w.state.TimeRemaining }
func (w *WorkOrder) ManuallyTagged() bool              { return w.state.ManuallyTagged }
func (w *WorkOrder) ManuallyCompleted() bool           { return w.state.ManuallyCompleted }
func (w *WorkOrder) WorkflowStatus() vo.WorkflowStatus { return w.state.WorkflowStatus }

// IsExcavator reports whether the order is an excavator job, either by its
// priority or by classification at ingestion or tagging time.
func (w *WorkOrder) IsExcavator() bool {
	return w.state.Type == vo.OrderTypeExcavator || vo.PriorityMatchExact.Matches(w.state.PriorityName)
}

// State returns a deep copy of the work order's fields.
func (w *WorkOrder) State() WorkOrderState {
	s := w.state
	s.CallType = copyPtr(s.CallType)
	s.CalledAt = copyPtr(s.CalledAt)
	s.CompletionDate = copyPtr(s.CompletionDate)
	s.TaggedAt = copyPtr(s.TaggedAt)
	s.Metadata = make(map[string]interface{}, len(w.state.Metadata))
	for k, v := range w.state.Metadata {
		s.Metadata[k] = v
	}
	return s
}

func (w *WorkOrder) Metadata(key string) (interface{}, bool) {
	v, ok := w.state.Metadata[key]
	return v, ok
}

func (w *WorkOrder) statusFlags() StatusFlags {
	return StatusFlags{
		ManuallyCompleted: w.state.ManuallyCompleted,
		ManuallyTagged:    w.state.ManuallyTagged,
		Excavator:         w.IsExcavator(),
		LocatesCalled:     w.state.LocatesCalled,
		TimerStarted:      w.state.TimerStarted,
		TimerExpired:      w.state.TimerExpired,
	}
}

// TimeRemaining computes the display countdown at now.
func (w *WorkOrder) TimeRemaining(now time.Time) TimeRemaining {
	return ComputeTimeRemaining(w.state.CallType, w.state.CompletionDate, w.state.TimerExpired, now)
}

// Refresh re-derives the workflow status and the countdown text.
func (w *WorkOrder) Refresh(now time.Time) {
	w.refresh(now)
}

func (w *WorkOrder) refresh(now time.Time) {
	w.state.WorkflowStatus = DeriveStatus(w.statusFlags())
	if w.state.CompletionDate == nil {
		w.state.TimeRemaining = ""
		return
	}
	w.state.TimeRemaining = w.TimeRemaining(now).Text
}

// CallRecord describes a locate call placed for a work order.
type CallRecord struct {
	CallType      vo.CallType
	CalledBy      string
	CalledByEmail string
	// CalledAt defaults to now when zero.
	CalledAt time.Time
	Bulk     bool
}

// RecordCall marks locates as called and starts the completion timer. A new
// call clears any earlier manual completion.
func (w *WorkOrder) RecordCall(rec CallRecord, now time.Time) error {
	if !rec.CallType.IsValid() {
		return ErrInvalidCallType
	}
	calledBy := strings.TrimSpace(rec.CalledBy)
	if calledBy == "" {
		return ErrCalledByRequired
	}

	calledAt := rec.CalledAt
	if calledAt.IsZero() {
		calledAt = now
	}
	calledAt = calledAt.UTC()
	deadline := CompletionDeadline(rec.CallType, calledAt, biztime.Location())
	callType := rec.CallType

	w.state.LocatesCalled = true
	w.state.CallType = &callType
	w.state.CalledAt = &calledAt
	w.state.CalledBy = calledBy
	w.state.CalledByEmail = strings.TrimSpace(rec.CalledByEmail)
	w.state.CompletionDate = &deadline
	w.state.TimerStarted = true
	w.state.TimerExpired = false
	w.clearManualCompletion()

	w.state.Metadata[MetaLastCallAt] = biztime.FormatMetadataTime(now)
	w.state.Metadata[MetaUpdatedBy] = calledBy
	if rec.Bulk {
		w.state.Metadata[MetaBulkUpdate] = true
	}

	w.refresh(now)
	return nil
}

// TagRecord describes a manual "locates needed" tag.
type TagRecord struct {
	TaggedBy      string
	TaggedByEmail string
	Tags          []string
}

// TagAsLocatesNeeded flags the order as an excavator job needing a call.
// Tags must already be sanitized. Tagging reopens a manually completed order.
func (w *WorkOrder) TagAsLocatesNeeded(rec TagRecord, now time.Time) error {
	taggedBy := strings.TrimSpace(rec.TaggedBy)
	if taggedBy == "" {
		return ErrTaggerRequired
	}

	at := now.UTC()
	w.state.ManuallyTagged = true
	w.state.TaggedBy = taggedBy
	w.state.TaggedByEmail = strings.TrimSpace(rec.TaggedByEmail)
	w.state.TaggedAt = &at
	w.clearManualCompletion()
	w.state.PriorityName = vo.ExcavatorPriority
	w.state.PriorityColor = ExcavatorColor
	w.state.Type = vo.OrderTypeExcavator
	w.state.Tags = MergeTags(w.state.Tags, rec.Tags)

	w.refresh(now)
	return nil
}

// MergeTags appends extra to a comma-joined tag list, always including
// "Locates Needed" and never repeating a tag.
func MergeTags(existing string, extra []string) string {
	seen := make(map[string]bool)
	var merged []string
	add := func(tag string) {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			return
		}
		key := strings.ToLower(tag)
		if seen[key] {
			return
		}
		seen[key] = true
		merged = append(merged, tag)
	}

	for _, tag := range strings.Split(existing, ",") {
		add(tag)
	}
	add(LocatesNeededTag)
	for _, tag := range extra {
		add(tag)
	}
	return strings.Join(merged, ", ")
}

// ExpireTimer closes the timer once the deadline has passed. It reports
// whether anything changed, so repeated sweeps are no-ops.
func (w *WorkOrder) ExpireTimer(now time.Time) bool {
	if !w.state.LocatesCalled || !w.state.TimerStarted || w.state.TimerExpired || w.state.CompletionDate == nil {
		return false
	}
	if w.state.CompletionDate.After(now) {
		return false
	}

	w.state.TimerExpired = true
	w.state.Metadata[MetaExpiredAt] = biztime.FormatMetadataTime(now)
	w.state.Metadata[MetaAutoComplete] = true
	w.refresh(now)
	return true
}

// CompleteManually pins the order to COMPLETE outside the timer flow.
func (w *WorkOrder) CompleteManually(actor, actorEmail string, now time.Time) error {
	if DeriveStatus(w.statusFlags()) == vo.WorkflowComplete {
		return ErrAlreadyComplete
	}

	at := now.UTC()
	w.state.ManuallyCompleted = true
	w.state.TimerStarted = false
	w.state.TimerExpired = false
	w.state.CompletionDate = &at
	w.state.Metadata[MetaManualDone] = true
	w.state.Metadata[MetaCompletedBy] = actor
	w.state.Metadata[MetaCompletedMail] = actorEmail
	w.state.Metadata[MetaCompletedAt] = biztime.FormatMetadataTime(now)

	w.refresh(now)
	return nil
}

func (w *WorkOrder) clearManualCompletion() {
	w.state.ManuallyCompleted = false
	delete(w.state.Metadata, MetaManualDone)
}

// clone returns an independent copy, optionally under a different id.
func (w *WorkOrder) clone(newID string) *WorkOrder {
	c := &WorkOrder{state: w.State()}
	if newID != "" {
		c.state.ID = newID
	}
	return c
}

func copyPtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
