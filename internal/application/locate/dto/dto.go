package dto

import (
	"time"

	"locates/internal/domain/locate"
)

type WorkOrderDTO struct {
	ID                  string                 `json:"id"`
	SnapshotID          uint                   `json:"snapshot_id"`
	WorkOrderNumber     string                 `json:"work_order_number"`
	PriorityColor       string                 `json:"priority_color"`
	PriorityName        string                 `json:"priority_name"`
	CustomerPO          string                 `json:"customer_po"`
	CustomerName        string                 `json:"customer_name"`
	CustomerAddress     string                 `json:"customer_address"`
	Tags                string                 `json:"tags"`
	TechName            string                 `json:"tech_name"`
	PromisedAppointment string                 `json:"promised_appointment"`
	CreatedDate         string                 `json:"created_date"`
	RequestedDate       string                 `json:"requested_date"`
	CompletedDate       string                 `json:"completed_date"`
	Task                string                 `json:"task"`
	TaskDuration        string                 `json:"task_duration"`
	PurchaseStatus      string                 `json:"purchase_status"`
	PurchaseStatusName  string                 `json:"purchase_status_name"`
	Serial              int                    `json:"serial"`
	Assigned            string                 `json:"assigned"`
	Dispatched          string                 `json:"dispatched"`
	Scheduled           bool                   `json:"scheduled"`
	ScheduledDate       string                 `json:"scheduled_date"`
	Type                string                 `json:"type"`
	LocatesCalled       bool                   `json:"locates_called"`
	CallType            *string                `json:"call_type"`
	CalledAt            *time.Time             `json:"called_at"`
	CalledBy            string                 `json:"called_by"`
	CalledByEmail       string                 `json:"called_by_email"`
	CompletionDate      *time.Time             `json:"completion_date"`
	TimerStarted        bool                   `json:"timer_started"`
	TimerExpired        bool                   `json:"timer_expired"`
	TimeRemaining       string                 `json:"time_remaining"`
	ManuallyTagged      bool                   `json:"manually_tagged"`
	TaggedBy            string                 `json:"tagged_by"`
	TaggedByEmail       string                 `json:"tagged_by_email"`
	TaggedAt            *time.Time             `json:"tagged_at"`
	ManuallyCompleted   bool                   `json:"manually_completed"`
	WorkflowStatus      string                 `json:"workflow_status"`
	Metadata            map[string]interface{} `json:"metadata"`
}

// ToWorkOrderDTO converts a work order, re-deriving its status and countdown at now.
func ToWorkOrderDTO(snapshotID uint, wo *locate.WorkOrder, now time.Time) WorkOrderDTO {
	wo.Refresh(now)
	return fromState(snapshotID, wo.State())
}

func fromState(snapshotID uint, s locate.WorkOrderState) WorkOrderDTO {
	var callType *string
	if s.CallType != nil {
		v := s.CallType.String()
		callType = &v
	}
	return WorkOrderDTO{
		ID:                  s.ID,
		SnapshotID:          snapshotID,
		WorkOrderNumber:     s.WorkOrderNumber,
		PriorityColor:       s.PriorityColor,
		PriorityName:        s.PriorityName,
		CustomerPO:          s.CustomerPO,
		CustomerName:        s.CustomerName,
		CustomerAddress:     s.CustomerAddress,
		Tags:                s.Tags,
		TechName:            s.TechName,
		PromisedAppointment: s.PromisedAppointment,
		CreatedDate:         s.CreatedDate,
		RequestedDate:       s.RequestedDate,
		CompletedDate:       s.CompletedDate,
		Task:                s.Task,
		TaskDuration:        s.TaskDuration,
		PurchaseStatus:      s.PurchaseStatus,
		PurchaseStatusName:  s.PurchaseStatusName,
		Serial:              s.Serial,
		Assigned:            s.Assigned,
		Dispatched:          s.Dispatched,
		Scheduled:           s.Scheduled,
		ScheduledDate:       s.ScheduledDate,
		Type:                s.Type.String(),
		LocatesCalled:       s.LocatesCalled,
		CallType:            callType,
		CalledAt:            s.CalledAt,
		CalledBy:            s.CalledBy,
		CalledByEmail:       s.CalledByEmail,
		CompletionDate:      s.CompletionDate,
		TimerStarted:        s.TimerStarted,
		TimerExpired:        s.TimerExpired,
		TimeRemaining:       s.TimeRemaining,
		ManuallyTagged:      s.ManuallyTagged,
		TaggedBy:            s.TaggedBy,
		TaggedByEmail:       s.TaggedByEmail,
		TaggedAt:            s.TaggedAt,
		ManuallyCompleted:   s.ManuallyCompleted,
		WorkflowStatus:      s.WorkflowStatus.String(),
		Metadata:            s.Metadata,
	}
}

type DeletedWorkOrderDTO struct {
	ID                  string       `json:"id"`
	SnapshotID          uint         `json:"snapshot_id"`
	OriginalWorkOrderID string       `json:"original_work_order_id"`
	DeletedAt           time.Time    `json:"deleted_at"`
	DeletedBy           string       `json:"deleted_by"`
	DeletedByEmail      string       `json:"deleted_by_email"`
	DeletedFrom         string       `json:"deleted_from"`
	WorkOrder           WorkOrderDTO `json:"work_order"`
}

func ToDeletedWorkOrderDTO(snapshotID uint, d *locate.DeletedWorkOrder) DeletedWorkOrderDTO {
	s := d.State()
	return DeletedWorkOrderDTO{
		ID:                  s.ID,
		SnapshotID:          snapshotID,
		OriginalWorkOrderID: s.OriginalWorkOrderID,
		DeletedAt:           s.DeletedAt,
		DeletedBy:           s.DeletedBy,
		DeletedByEmail:      s.DeletedByEmail,
		DeletedFrom:         s.DeletedFrom,
		WorkOrder:           fromState(snapshotID, s.WorkOrder),
	}
}

type SnapshotDTO struct {
	ID              uint      `json:"id"`
	FilterStartDate string    `json:"filter_start_date"`
	FilterEndDate   string    `json:"filter_end_date"`
	DispatchDate    string    `json:"dispatch_date"`
	Source          string    `json:"source"`
	TotalWorkOrders int       `json:"total_work_orders"`
	DeletedCount    int       `json:"deleted_count"`
	ScrapedAt       time.Time `json:"scraped_at"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func ToSnapshotDTO(s *locate.Snapshot) SnapshotDTO {
	return SnapshotDTO{
		ID:              s.ID(),
		FilterStartDate: s.FilterStartDate(),
		FilterEndDate:   s.FilterEndDate(),
		DispatchDate:    s.DispatchDate(),
		Source:          s.Source(),
		TotalWorkOrders: s.TotalWorkOrders(),
		DeletedCount:    len(s.History()),
		ScrapedAt:       s.ScrapedAt(),
		CreatedAt:       s.CreatedAt(),
		UpdatedAt:       s.UpdatedAt(),
	}
}

type SnapshotDetailDTO struct {
	SnapshotDTO
	WorkOrders        []WorkOrderDTO        `json:"work_orders"`
	DeletedWorkOrders []DeletedWorkOrderDTO `json:"deleted_work_orders"`
}

func ToSnapshotDetailDTO(s *locate.Snapshot, now time.Time) *SnapshotDetailDTO {
	detail := &SnapshotDetailDTO{
		SnapshotDTO:       ToSnapshotDTO(s),
		WorkOrders:        make([]WorkOrderDTO, 0, len(s.WorkOrders())),
		DeletedWorkOrders: make([]DeletedWorkOrderDTO, 0),
	}
	for _, wo := range s.WorkOrders() {
		detail.WorkOrders = append(detail.WorkOrders, ToWorkOrderDTO(s.ID(), wo, now))
	}
	for _, d := range s.History() {
		detail.DeletedWorkOrders = append(detail.DeletedWorkOrders, ToDeletedWorkOrderDTO(s.ID(), d))
	}
	return detail
}

// WorkOrderStatusDTO is a work order in the status list. HoursRemaining is
// set for in-progress orders only.
type WorkOrderStatusDTO struct {
	WorkOrderDTO
	HoursRemaining *int `json:"hours_remaining"`
}

type StatisticsDTO struct {
	CallNeeded   int       `json:"call_needed"`
	InProgress   int       `json:"in_progress"`
	Complete     int       `json:"complete"`
	Unknown      int       `json:"unknown"`
	Total        int       `json:"total"`
	ManualTagged int       `json:"manual_tagged"`
	AutoDetected int       `json:"auto_detected"`
	LastUpdated  time.Time `json:"last_updated"`
}

type TimerCountdownDTO struct {
	Hours      int `json:"hours"`
	Minutes    int `json:"minutes"`
	TotalHours int `json:"total_hours"`
}

type InProgressTimerDTO struct {
	WorkOrderDTO
	Countdown TimerCountdownDTO `json:"countdown"`
}

type CompletedTimerDTO struct {
	WorkOrderDTO
	CompletedAt          time.Time `json:"completed_at"`
	HoursSinceCompletion int       `json:"hours_since_completion"`
}

type TimersDTO struct {
	Kind       string               `json:"kind"`
	Total      int                  `json:"total"`
	InProgress []InProgressTimerDTO `json:"in_progress,omitempty"`
	Completed  []CompletedTimerDTO  `json:"completed,omitempty"`
}

// WorkOrderLookupDTO is the result of a lookup by work order number. Deleted
// is true when the order was found only in a recycle bin.
type WorkOrderLookupDTO struct {
	Deleted          bool                 `json:"deleted"`
	WorkOrder        *WorkOrderDTO        `json:"work_order,omitempty"`
	DeletedWorkOrder *DeletedWorkOrderDTO `json:"deleted_work_order,omitempty"`
}

type SyncResultDTO struct {
	Snapshot          SnapshotDTO `json:"snapshot"`
	Scraped           int         `json:"scraped"`
	Excavator         int         `json:"excavator"`
	DuplicatesRemoved int         `json:"duplicates_removed"`
}

type SweepResultDTO struct {
	Updated   int  `json:"updated"`
	Snapshots int  `json:"snapshots"`
	Skipped   bool `json:"skipped"`
}

type ClearHistoryResultDTO struct {
	Cleared int `json:"cleared"`
}

type BulkItemResult struct {
	ID      string `json:"id"`
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// BulkResultDTO reports per-item outcomes; item failures never fail the batch.
type BulkResultDTO struct {
	Total      int              `json:"total"`
	Successful int              `json:"successful"`
	Failed     int              `json:"failed"`
	Results    []BulkItemResult `json:"results"`
}

func NewBulkResult(capacity int) *BulkResultDTO {
	return &BulkResultDTO{Results: make([]BulkItemResult, 0, capacity)}
}

func (b *BulkResultDTO) Succeed(id string) {
	b.Results = append(b.Results, BulkItemResult{ID: id, Success: true})
	b.Total++
	b.Successful++
}

func (b *BulkResultDTO) Fail(id string, reason string) {
	b.Results = append(b.Results, BulkItemResult{ID: id, Error: reason})
	b.Total++
	b.Failed++
}
