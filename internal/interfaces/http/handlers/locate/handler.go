package locate

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"locates/internal/application/locate/usecases"
	"locates/internal/shared/id"
	"locates/internal/shared/logger"
	"locates/internal/shared/utils"
)

// HandlerDeps lists the use cases behind the locate endpoints.
type HandlerDeps struct {
	SyncDashboard         usecases.SyncDashboardExecutor
	RecordCall            usecases.RecordCallExecutor
	BulkRecordCall        usecases.BulkRecordCallExecutor
	TagWorkOrder          usecases.TagWorkOrderExecutor
	BulkTagWorkOrders     usecases.BulkTagWorkOrdersExecutor
	SweepExpiredTimers    usecases.SweepExpiredTimersExecutor
	CompleteWorkOrder     usecases.CompleteWorkOrderExecutor
	DeleteWorkOrder       usecases.DeleteWorkOrderExecutor
	BulkDeleteWorkOrders  usecases.BulkDeleteWorkOrdersExecutor
	RestoreWorkOrder      usecases.RestoreWorkOrderExecutor
	PermanentlyDelete     usecases.PermanentlyDeleteExecutor
	BulkPermanentlyDelete usecases.BulkPermanentlyDeleteExecutor
	ClearHistory          usecases.ClearHistoryExecutor
	ListHistory           usecases.ListHistoryExecutor
	GetSnapshot           usecases.GetSnapshotExecutor
	ListSnapshots         usecases.ListSnapshotsExecutor
	GetStatistics         usecases.GetStatisticsExecutor
	ListWorkOrders        usecases.ListWorkOrdersExecutor
	FindByNumber          usecases.FindByNumberExecutor
	ListTimers            usecases.ListTimersExecutor
}

type Handler struct {
	deps   HandlerDeps
	logger logger.Interface
}

func NewHandler(deps HandlerDeps, logger logger.Interface) *Handler {
	return &Handler{
		deps:   deps,
		logger: logger,
	}
}

// bindJSON reports binding failures as 400 validation errors.
func (h *Handler) bindJSON(c *gin.Context, req interface{}, op string) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		h.logger.Warnw("invalid request body", "operation", op, "error", err)
		utils.ErrorResponseWithError(c, utils.TranslateValidationError(err))
		return false
	}
	return true
}

func parseWorkOrderID(c *gin.Context) (string, error) {
	return utils.ParseSIDParam(c, "id", id.PrefixWorkOrder, "work order")
}

// Sync handles POST /locates/sync
func (h *Handler) Sync(c *gin.Context) {
	var req SyncRequest
	// The body is optional; an empty POST syncs with the configured defaults.
	if c.Request.ContentLength != 0 {
		if !h.bindJSON(c, &req, "sync") {
			return
		}
	}

	result, err := h.deps.SyncDashboard.Execute(c.Request.Context(), req.ToCommand())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Dashboard synced successfully")
}

// ListSnapshots handles GET /locates/dashboards
func (h *Handler) ListSnapshots(c *gin.Context) {
	result, err := h.deps.ListSnapshots.Execute(c.Request.Context())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// GetSnapshot handles GET /locates/dashboards/:id/history
func (h *Handler) GetSnapshot(c *gin.Context) {
	snapshotID, err := utils.ParseUintParam(c, "id", "snapshot")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.deps.GetSnapshot.Execute(c.Request.Context(), usecases.GetSnapshotQuery{SnapshotID: snapshotID})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// ListWorkOrders handles GET /locates/work-orders
func (h *Handler) ListWorkOrders(c *gin.Context) {
	result, err := h.deps.ListWorkOrders.Execute(c.Request.Context(), usecases.ListWorkOrdersQuery{
		Status: c.Query("status"),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// GetStatistics handles GET /locates/work-orders/statistics
func (h *Handler) GetStatistics(c *gin.Context) {
	result, err := h.deps.GetStatistics.Execute(c.Request.Context())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// ListTimers handles GET /locates/work-orders/timers
func (h *Handler) ListTimers(c *gin.Context) {
	result, err := h.deps.ListTimers.Execute(c.Request.Context(), usecases.ListTimersQuery{
		Kind: c.Query("kind"),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// FindByNumber handles GET /locates/work-orders/number/:workOrderNumber
func (h *Handler) FindByNumber(c *gin.Context) {
	number := strings.TrimSpace(c.Param("workOrderNumber"))
	if err := utils.ValidateID(number); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.deps.FindByNumber.Execute(c.Request.Context(), usecases.FindByNumberQuery{
		WorkOrderNumber: number,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// RecordCall handles PATCH /locates/work-orders/:id/call-status
func (h *Handler) RecordCall(c *gin.Context) {
	workOrderID, err := parseWorkOrderID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req RecordCallRequest
	if !h.bindJSON(c, &req, "record_call") {
		return
	}

	result, err := h.deps.RecordCall.Execute(c.Request.Context(), req.ToCommand(workOrderID, actorFromContext(c)))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Call status updated successfully", result)
}

// BulkRecordCall handles PATCH /locates/work-orders/call-status/bulk
func (h *Handler) BulkRecordCall(c *gin.Context) {
	var req BulkRecordCallRequest
	if !h.bindJSON(c, &req, "bulk_record_call") {
		return
	}

	result, err := h.deps.BulkRecordCall.Execute(c.Request.Context(), req.ToCommand(actorFromContext(c)))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Bulk call status update processed", result)
}

// CompleteWorkOrder handles PATCH /locates/work-orders/:id/complete
func (h *Handler) CompleteWorkOrder(c *gin.Context) {
	workOrderID, err := parseWorkOrderID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.deps.CompleteWorkOrder.Execute(c.Request.Context(), usecases.CompleteWorkOrderCommand{
		WorkOrderID: workOrderID,
		Actor:       actorFromContext(c),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Work order marked as complete", result)
}

// TagWorkOrder handles POST /locates/work-orders/tag
func (h *Handler) TagWorkOrder(c *gin.Context) {
	var req TagRequest
	if !h.bindJSON(c, &req, "tag_work_order") {
		return
	}

	result, err := h.deps.TagWorkOrder.Execute(c.Request.Context(), req.ToCommand(actorFromContext(c)))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Work order tagged as locates needed", result)
}

// BulkTagWorkOrders handles POST /locates/work-orders/tag/bulk
func (h *Handler) BulkTagWorkOrders(c *gin.Context) {
	var req BulkTagRequest
	if !h.bindJSON(c, &req, "bulk_tag_work_orders") {
		return
	}

	result, err := h.deps.BulkTagWorkOrders.Execute(c.Request.Context(), req.ToCommand(actorFromContext(c)))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Bulk tagging processed", result)
}

// DeleteWorkOrder handles DELETE /locates/work-orders/:id
func (h *Handler) DeleteWorkOrder(c *gin.Context) {
	workOrderID, err := parseWorkOrderID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.deps.DeleteWorkOrder.Execute(c.Request.Context(), usecases.DeleteWorkOrderCommand{
		WorkOrderID: workOrderID,
		Actor:       actorFromContext(c),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Work order moved to history", result)
}

// BulkDeleteWorkOrders handles DELETE /locates/work-orders/bulk
func (h *Handler) BulkDeleteWorkOrders(c *gin.Context) {
	var req BulkWorkOrderIDsRequest
	if !h.bindJSON(c, &req, "bulk_delete_work_orders") {
		return
	}

	result, err := h.deps.BulkDeleteWorkOrders.Execute(c.Request.Context(), usecases.BulkDeleteWorkOrdersCommand{
		WorkOrderIDs: req.WorkOrderIDs,
		Actor:        actorFromContext(c),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Bulk delete processed", result)
}

// SweepTimers handles POST /locates/timers/sweep
func (h *Handler) SweepTimers(c *gin.Context) {
	result, err := h.deps.SweepExpiredTimers.Execute(c.Request.Context(), usecases.SweepExpiredTimersCommand{})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Expired timers swept", result)
}
