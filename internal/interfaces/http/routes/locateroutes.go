package routes

import (
	"github.com/gin-gonic/gin"

	locatehandlers "locates/internal/interfaces/http/handlers/locate"
	"locates/internal/interfaces/http/middleware"
)

type LocateRouteConfig struct {
	Handler         *locatehandlers.Handler
	ActorMiddleware *middleware.ActorMiddleware
	// SyncRateLimit is optional; nil leaves POST /sync unthrottled.
	SyncRateLimit gin.HandlerFunc
}

func SetupLocateRoutes(engine *gin.Engine, config *LocateRouteConfig) {
	h := config.Handler

	locates := engine.Group("/locates")
	locates.Use(config.ActorMiddleware.Identify())
	{
		syncChain := []gin.HandlerFunc{h.Sync}
		if config.SyncRateLimit != nil {
			syncChain = append([]gin.HandlerFunc{config.SyncRateLimit}, syncChain...)
		}
		locates.POST("/sync", syncChain...)

		locates.GET("/dashboards", h.ListSnapshots)
		locates.GET("/dashboards/:id/history", h.GetSnapshot)

		locates.POST("/timers/sweep", h.SweepTimers)
	}

	workOrders := locates.Group("/work-orders")
	{
		// IMPORTANT: Register specific paths BEFORE parameterized paths to avoid route conflicts
		workOrders.GET("", h.ListWorkOrders)
		workOrders.GET("/statistics", h.GetStatistics)
		workOrders.GET("/timers", h.ListTimers)
		workOrders.GET("/number/:workOrderNumber", h.FindByNumber)

		workOrders.PATCH("/call-status/bulk", h.BulkRecordCall)
		workOrders.POST("/tag", h.TagWorkOrder)
		workOrders.POST("/tag/bulk", h.BulkTagWorkOrders)
		workOrders.DELETE("/bulk", h.BulkDeleteWorkOrders)

		// Generic parameterized routes (must come LAST)
		workOrders.PATCH("/:id/call-status", h.RecordCall)
		workOrders.PATCH("/:id/complete", h.CompleteWorkOrder)
		workOrders.DELETE("/:id", h.DeleteWorkOrder)
	}

	history := locates.Group("/history")
	{
		history.GET("", h.ListHistory)
		history.DELETE("", h.ClearHistory)
		history.DELETE("/bulk", h.BulkPermanentlyDelete)

		history.POST("/:snapshotId/:deletedOrderId/restore", h.RestoreWorkOrder)
		history.DELETE("/:snapshotId/:deletedOrderId", h.PermanentlyDelete)
	}
}
