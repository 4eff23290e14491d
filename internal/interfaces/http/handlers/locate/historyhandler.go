package locate

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"locates/internal/application/locate/usecases"
	"locates/internal/shared/id"
	"locates/internal/shared/utils"
)

func parseHistoryParams(c *gin.Context) (uint, string, error) {
	snapshotID, err := utils.ParseUintParam(c, "snapshotId", "snapshot")
	if err != nil {
		return 0, "", err
	}
	deletedID, err := utils.ParseSIDParam(c, "deletedOrderId", id.PrefixDeletedWorkOrder, "deleted work order")
	if err != nil {
		return 0, "", err
	}
	return snapshotID, deletedID, nil
}

// ListHistory handles GET /locates/history
func (h *Handler) ListHistory(c *gin.Context) {
	pagination := utils.ParsePagination(c)

	req := HistorySearchRequest{Search: strings.TrimSpace(c.Query("search"))}
	if err := utils.ValidateStruct(req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.deps.ListHistory.Execute(c.Request.Context(), usecases.ListHistoryQuery{
		Page:   pagination.Page,
		Limit:  pagination.Limit,
		Search: req.Search,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Items, result.Total, result.Page, result.Limit)
}

// RestoreWorkOrder handles POST /locates/history/:snapshotId/:deletedOrderId/restore
func (h *Handler) RestoreWorkOrder(c *gin.Context) {
	snapshotID, deletedID, err := parseHistoryParams(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.deps.RestoreWorkOrder.Execute(c.Request.Context(), usecases.RestoreWorkOrderCommand{
		SnapshotID:     snapshotID,
		DeletedOrderID: deletedID,
		Actor:          actorFromContext(c),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Work order restored successfully", result)
}

// PermanentlyDelete handles DELETE /locates/history/:snapshotId/:deletedOrderId
func (h *Handler) PermanentlyDelete(c *gin.Context) {
	snapshotID, deletedID, err := parseHistoryParams(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.deps.PermanentlyDelete.Execute(c.Request.Context(), usecases.PermanentlyDeleteCommand{
		SnapshotID:     snapshotID,
		DeletedOrderID: deletedID,
	}); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Work order permanently deleted", nil)
}

// BulkPermanentlyDelete handles DELETE /locates/history/bulk
func (h *Handler) BulkPermanentlyDelete(c *gin.Context) {
	var req BulkHistoryIDsRequest
	if !h.bindJSON(c, &req, "bulk_permanently_delete") {
		return
	}

	result, err := h.deps.BulkPermanentlyDelete.Execute(c.Request.Context(), usecases.BulkPermanentlyDeleteCommand{
		IDs: req.IDs,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Bulk permanent delete processed", result)
}

// ClearHistory handles DELETE /locates/history
func (h *Handler) ClearHistory(c *gin.Context) {
	result, err := h.deps.ClearHistory.Execute(c.Request.Context(), usecases.ClearHistoryCommand{})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "History cleared", result)
}
