package locate

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"locates/internal/application/locate/usecases"
	"locates/internal/shared/constants"
)

type SyncRequest struct {
	Status    string `json:"status"`
	StartDate string `json:"start_date" binding:"omitempty,datetime=2006-01-02"`
	EndDate   string `json:"end_date" binding:"omitempty,datetime=2006-01-02"`
}

func (r *SyncRequest) ToCommand() usecases.SyncDashboardCommand {
	return usecases.SyncDashboardCommand{
		Status:    r.Status,
		StartDate: r.StartDate,
		EndDate:   r.EndDate,
	}
}

type RecordCallRequest struct {
	CallType      string     `json:"call_type" binding:"required"`
	CalledBy      string     `json:"called_by" binding:"max=200"`
	CalledByEmail string     `json:"called_by_email" binding:"omitempty,email"`
	CalledAt      *time.Time `json:"called_at"`
}

// ToCommand falls back to the request actor when the body names no caller.
func (r *RecordCallRequest) ToCommand(workOrderID string, actor usecases.Actor) usecases.RecordCallCommand {
	calledBy, email := r.CalledBy, r.CalledByEmail
	if strings.TrimSpace(calledBy) == "" {
		calledBy = actor.Name
	}
	if email == "" {
		email = actor.Email
	}
	return usecases.RecordCallCommand{
		WorkOrderID:   workOrderID,
		CallType:      r.CallType,
		CalledBy:      calledBy,
		CalledByEmail: email,
		CalledAt:      r.CalledAt,
	}
}

type BulkRecordCallRequest struct {
	WorkOrderIDs  []string `json:"work_order_ids" binding:"required,min=1,dive,required"`
	CallType      string   `json:"call_type" binding:"required"`
	CalledBy      string   `json:"called_by" binding:"max=200"`
	CalledByEmail string   `json:"called_by_email" binding:"omitempty,email"`
}

func (r *BulkRecordCallRequest) ToCommand(actor usecases.Actor) usecases.BulkRecordCallCommand {
	single := RecordCallRequest{CallType: r.CallType, CalledBy: r.CalledBy, CalledByEmail: r.CalledByEmail}
	cmd := single.ToCommand("", actor)
	return usecases.BulkRecordCallCommand{
		WorkOrderIDs:  r.WorkOrderIDs,
		CallType:      cmd.CallType,
		CalledBy:      cmd.CalledBy,
		CalledByEmail: cmd.CalledByEmail,
	}
}

type TagRequest struct {
	WorkOrderNumber string   `json:"work_order_number" binding:"required"`
	TaggedBy        string   `json:"tagged_by" binding:"max=200"`
	TaggedByEmail   string   `json:"tagged_by_email" binding:"omitempty,email"`
	Tags            []string `json:"tags" binding:"max=20"`
}

func (r *TagRequest) ToCommand(actor usecases.Actor) usecases.TagWorkOrderCommand {
	return usecases.TagWorkOrderCommand{
		WorkOrderNumber: r.WorkOrderNumber,
		Tagger:          mergeActor(r.TaggedBy, r.TaggedByEmail, actor),
		Tags:            r.Tags,
	}
}

type BulkTagRequest struct {
	WorkOrderNumbers []string `json:"work_order_numbers" binding:"required,min=1"`
	TaggedBy         string   `json:"tagged_by" binding:"max=200"`
	TaggedByEmail    string   `json:"tagged_by_email" binding:"omitempty,email"`
	Tags             []string `json:"tags" binding:"max=20"`
}

func (r *BulkTagRequest) ToCommand(actor usecases.Actor) usecases.BulkTagWorkOrdersCommand {
	return usecases.BulkTagWorkOrdersCommand{
		WorkOrderNumbers: r.WorkOrderNumbers,
		Tagger:           mergeActor(r.TaggedBy, r.TaggedByEmail, actor),
		Tags:             r.Tags,
	}
}

type BulkWorkOrderIDsRequest struct {
	WorkOrderIDs []string `json:"work_order_ids" binding:"required,min=1,dive,required"`
}

type BulkHistoryIDsRequest struct {
	IDs []string `json:"ids" binding:"required,min=1,dive,required"`
}

// HistorySearchRequest carries the query string of GET /locates/history.
type HistorySearchRequest struct {
	Search string `json:"search" validate:"max=200"`
}

// actorFromContext reads the identity set by the actor middleware.
func actorFromContext(c *gin.Context) usecases.Actor {
	return usecases.Actor{
		Name:  c.GetString(constants.ContextKeyActorName),
		Email: c.GetString(constants.ContextKeyActorEmail),
	}
}

func mergeActor(name, email string, fallback usecases.Actor) usecases.Actor {
	if strings.TrimSpace(name) == "" {
		name = fallback.Name
	}
	if email == "" {
		email = fallback.Email
	}
	return usecases.Actor{Name: name, Email: email}
}
