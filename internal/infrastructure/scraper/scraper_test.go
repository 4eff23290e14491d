package scraper

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"locates/internal/domain/locate"
	"locates/internal/shared/config"
	"locates/internal/shared/logger"
)

// Monday 10:00 in New York.
var testNow = time.Date(2024, 5, 13, 14, 0, 0, 0, time.UTC)

func writeFile(t *testing.T, name, content string) string {
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestFileScraper_JSON(t *testing.T) {
	path := writeFile(t, "board.json", `{
  "dispatchDate": "2024-05-13",
  "workOrders": [
    {"workOrderNumber": "WO-1", "priorityName": "EXCAVATOR", "customerName": "Acme", "serial": 7, "scheduled": true},
    {"workOrderNumber": "WO-2", "priorityName": "NORMAL"}
  ]
}`)
	s := NewFileScraper(config.ScraperConfig{FilePath: path, WindowDays: 7}, logger.NewNopLogger())
	s.now = func() time.Time { return testNow }

	batch, err := s.Scrape(context.Background(), locate.ScrapeRequest{})
	require.NoError(t, err)

	assert.Equal(t, "2024-05-06", batch.FilterStartDate)
	assert.Equal(t, "2024-05-13", batch.FilterEndDate)
	assert.Equal(t, "2024-05-13", batch.DispatchDate)
	assert.Equal(t, "file", batch.Source)
	require.Len(t, batch.WorkOrders, 2)
	assert.Equal(t, "WO-1", batch.WorkOrders[0].WorkOrderNumber)
	assert.Equal(t, "Acme", batch.WorkOrders[0].CustomerName)
	assert.Equal(t, 7, batch.WorkOrders[0].Serial)
	assert.True(t, batch.WorkOrders[0].Scheduled)
}

func TestFileScraper_YAMLAndExplicitWindow(t *testing.T) {
	path := writeFile(t, "board.yaml", `
source: board-export
workOrders:
  - workOrderNumber: WO-9
    priorityName: EXCAVATOR
`)
	s := NewFileScraper(config.ScraperConfig{FilePath: path}, logger.NewNopLogger())
	s.now = func() time.Time { return testNow }

	batch, err := s.Scrape(context.Background(), locate.ScrapeRequest{StartDate: "2024-05-01", EndDate: "2024-05-02"})
	require.NoError(t, err)

	assert.Equal(t, "2024-05-01", batch.FilterStartDate)
	assert.Equal(t, "2024-05-02", batch.FilterEndDate)
	assert.Equal(t, "2024-05-13", batch.DispatchDate)
	assert.Equal(t, "board-export", batch.Source)
	require.Len(t, batch.WorkOrders, 1)
	assert.Equal(t, "WO-9", batch.WorkOrders[0].WorkOrderNumber)
}

func TestFileScraper_Errors(t *testing.T) {
	s := NewFileScraper(config.ScraperConfig{}, logger.NewNopLogger())
	_, err := s.Scrape(context.Background(), locate.ScrapeRequest{})
	assert.Error(t, err)

	s = NewFileScraper(config.ScraperConfig{FilePath: filepath.Join(t.TempDir(), "missing.json")}, logger.NewNopLogger())
	_, err = s.Scrape(context.Background(), locate.ScrapeRequest{})
	assert.Error(t, err)

	bad := writeFile(t, "bad.yaml", "workOrders: [unclosed")
	s = NewFileScraper(config.ScraperConfig{FilePath: bad}, logger.NewNopLogger())
	_, err = s.Scrape(context.Background(), locate.ScrapeRequest{})
	assert.Error(t, err)
}

func TestHTTPScraper_WithClientCredentials(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/oauth/token", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"tok-123","token_type":"Bearer","expires_in":3600}`))
	})
	mux.HandleFunc("/api/work-orders", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok-123" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		assert.Equal(t, "Completed", r.URL.Query().Get("status"))
		assert.Equal(t, "2024-04-13", r.URL.Query().Get("startDate"))
		assert.Equal(t, "2024-05-13", r.URL.Query().Get("endDate"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"dispatchDate":"2024-05-13","workOrders":[{"workOrderNumber":"WO-1","priorityName":"EXCAVATOR"}]}`))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	cfg := config.ScraperConfig{
		Mode:          ModeHTTP,
		BaseURL:       server.URL + "/api/",
		DefaultStatus: "Completed",
		OAuth: config.OAuthClientConfig{
			ClientID:     "locates",
			ClientSecret: "secret",
			TokenURL:     server.URL + "/oauth/token",
		},
	}
	s, err := NewHTTPScraper(cfg, logger.NewNopLogger())
	require.NoError(t, err)
	s.now = func() time.Time { return testNow }

	batch, err := s.Scrape(context.Background(), locate.ScrapeRequest{})
	require.NoError(t, err)

	assert.Equal(t, locate.DefaultSource, batch.Source)
	require.Len(t, batch.WorkOrders, 1)
	assert.Equal(t, "WO-1", batch.WorkOrders[0].WorkOrderNumber)
}

func TestHTTPScraper_UpstreamFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "board offline", http.StatusBadGateway)
	}))
	defer server.Close()

	s, err := NewHTTPScraper(config.ScraperConfig{BaseURL: server.URL}, logger.NewNopLogger())
	require.NoError(t, err)

	_, err = s.Scrape(context.Background(), locate.ScrapeRequest{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
	assert.Contains(t, err.Error(), "board offline")
}

func TestNew_SelectsMode(t *testing.T) {
	s, err := New(config.ScraperConfig{Mode: "file"}, logger.NewNopLogger())
	require.NoError(t, err)
	assert.IsType(t, &FileScraper{}, s)

	_, err = New(config.ScraperConfig{Mode: "http"}, logger.NewNopLogger())
	assert.Error(t, err, "http mode needs a base URL")

	_, err = New(config.ScraperConfig{Mode: "ftp"}, logger.NewNopLogger())
	assert.Error(t, err)
}
