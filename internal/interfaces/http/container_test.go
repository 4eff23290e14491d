package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"locates/internal/application/locate/dto"
	"locates/internal/infrastructure/config"
	"locates/internal/infrastructure/migration"
	"locates/internal/interfaces/http/handlers/testutil"
	"locates/internal/shared/constants"
	sharedConfig "locates/internal/shared/config"
	"locates/internal/shared/logger"
)

const boardFixture = `{
  "dispatchDate": "2024-05-13",
  "workOrders": [
    {"workOrderNumber": "WO-1", "priorityName": "EXCAVATOR", "customerName": "Acme"},
    {"workOrderNumber": "WO-2", "priorityName": "NORMAL", "customerName": "Beta"},
    {"workOrderNumber": "WO-1", "priorityName": "EXCAVATOR", "customerName": "Acme"}
  ]
}`

func setupContainer(t *testing.T) *Container {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(migration.AutoMigrateModels()...))

	boardPath := filepath.Join(t.TempDir(), "board.json")
	require.NoError(t, os.WriteFile(boardPath, []byte(boardFixture), 0o600))

	cfg := &config.Config{
		Server: sharedConfig.ServerConfig{AllowedOrigins: []string{"*"}, SyncRateLimit: 10},
		Scraper: sharedConfig.ScraperConfig{
			Mode:          "file",
			FilePath:      boardPath,
			DefaultStatus: "Completed",
			WindowDays:    7,
		},
		Locates: sharedConfig.LocatesConfig{PriorityMatch: "exact"},
	}

	c, err := NewContainer(db, cfg, logger.NewNopLogger())
	require.NoError(t, err)
	t.Cleanup(c.Shutdown)

	c.SetupRoutes()
	return c
}

func doRequest(t *testing.T, c *Container, method, path string, body interface{}) (*httptest.ResponseRecorder, testutil.APIResponse) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set(constants.HeaderActorName, "Dana")
	req.Header.Set(constants.HeaderActorEmail, "dana@example.com")

	w := httptest.NewRecorder()
	c.Engine().ServeHTTP(w, req)

	var resp testutil.APIResponse
	if w.Body.Len() > 0 {
		_ = testutil.ParseResponse(w, &resp)
	}
	return w, resp
}

func TestContainer_NewContainer_RejectsUnknownPriorityMatch(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	cfg := &config.Config{
		Scraper: sharedConfig.ScraperConfig{Mode: "file"},
		Locates: sharedConfig.LocatesConfig{PriorityMatch: "fuzzy"},
	}

	_, err = NewContainer(db, cfg, logger.NewNopLogger())
	assert.Error(t, err)
}

func TestContainer_NewContainer_RejectsUnknownScraperMode(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	cfg := &config.Config{Scraper: sharedConfig.ScraperConfig{Mode: "ftp"}}

	_, err = NewContainer(db, cfg, logger.NewNopLogger())
	assert.Error(t, err)
}

func TestContainer_Health(t *testing.T) {
	c := setupContainer(t)

	w, _ := doRequest(t, c, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get(constants.HeaderXRequestID))
}

func TestContainer_WorkOrderLifecycle(t *testing.T) {
	c := setupContainer(t)

	// Ingest
	w, resp := doRequest(t, c, http.MethodPost, "/locates/sync", nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var sync dto.SyncResultDTO
	require.NoError(t, json.Unmarshal(resp.Data, &sync))
	assert.Equal(t, 3, sync.Scraped)
	assert.Equal(t, 2, sync.Excavator)
	assert.Equal(t, 1, sync.DuplicatesRemoved)
	assert.Equal(t, 1, sync.Snapshot.TotalWorkOrders)

	// Excavator work starts out needing a call
	w, resp = doRequest(t, c, http.MethodGet, "/locates/work-orders?status=CALL_NEEDED", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var orders []dto.WorkOrderStatusDTO
	require.NoError(t, json.Unmarshal(resp.Data, &orders))
	require.Len(t, orders, 1)
	assert.Equal(t, "WO-1", orders[0].WorkOrderNumber)
	workOrderID := orders[0].ID

	// Record an emergency call; the caller defaults to the request actor
	w, resp = doRequest(t, c, http.MethodPatch,
		fmt.Sprintf("/locates/work-orders/%s/call-status", workOrderID),
		map[string]string{"call_type": "EMERGENCY"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var called dto.WorkOrderDTO
	require.NoError(t, json.Unmarshal(resp.Data, &called))
	assert.Equal(t, "IN_PROGRESS", called.WorkflowStatus)
	assert.Equal(t, "Dana", called.CalledBy)
	assert.True(t, called.TimerStarted)

	w, resp = doRequest(t, c, http.MethodGet, "/locates/work-orders/statistics", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var stats dto.StatisticsDTO
	require.NoError(t, json.Unmarshal(resp.Data, &stats))
	assert.Equal(t, 1, stats.InProgress)
	assert.Equal(t, 0, stats.CallNeeded)

	// Soft delete into the recycle bin
	w, resp = doRequest(t, c, http.MethodDelete, "/locates/work-orders/"+workOrderID, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var deleted dto.DeletedWorkOrderDTO
	require.NoError(t, json.Unmarshal(resp.Data, &deleted))
	assert.Equal(t, "Dana", deleted.DeletedBy)

	w, resp = doRequest(t, c, http.MethodGet, "/locates/history?search=acme", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var page struct {
		Items []dto.DeletedWorkOrderDTO `json:"items"`
		Total int64                     `json:"total"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &page))
	assert.Equal(t, int64(1), page.Total)

	// Restore keeps the call details
	w, resp = doRequest(t, c, http.MethodPost,
		fmt.Sprintf("/locates/history/%d/%s/restore", deleted.SnapshotID, deleted.ID), nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var restored dto.WorkOrderDTO
	require.NoError(t, json.Unmarshal(resp.Data, &restored))
	assert.Equal(t, "WO-1", restored.WorkOrderNumber)
	assert.NotNil(t, restored.CalledAt)

	w, resp = doRequest(t, c, http.MethodGet, "/locates/work-orders/number/WO-1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var lookup dto.WorkOrderLookupDTO
	require.NoError(t, json.Unmarshal(resp.Data, &lookup))
	assert.False(t, lookup.Deleted)
	require.NotNil(t, lookup.WorkOrder)

	// Sweeping right away expires nothing
	w, resp = doRequest(t, c, http.MethodPost, "/locates/timers/sweep", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var sweep dto.SweepResultDTO
	require.NoError(t, json.Unmarshal(resp.Data, &sweep))
	assert.Equal(t, 0, sweep.Updated)
}

func TestContainer_RouteErrors(t *testing.T) {
	c := setupContainer(t)

	w, _ := doRequest(t, c, http.MethodPatch, "/locates/work-orders/dwo_x/call-status",
		map[string]string{"call_type": "STANDARD"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = doRequest(t, c, http.MethodPatch, "/locates/work-orders/wo_missing/call-status",
		map[string]string{"call_type": "STANDARD"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = doRequest(t, c, http.MethodGet, "/locates/work-orders?status=BOGUS", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = doRequest(t, c, http.MethodDelete, "/locates/history/bulk", map[string]interface{}{"ids": []string{}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
