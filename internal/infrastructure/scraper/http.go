package scraper

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2/clientcredentials"

	"locates/internal/domain/locate"
	"locates/internal/shared/biztime"
	"locates/internal/shared/config"
	"locates/internal/shared/logger"
)

const maxErrorBody = 512

// HTTPScraper asks the dispatch board bridge for a fresh export. When
// client credentials are configured every request carries an OAuth2 token.
type HTTPScraper struct {
	cfg      config.ScraperConfig
	endpoint string
	client   *http.Client
	logger   logger.Interface
	now      func() time.Time
}

func NewHTTPScraper(cfg config.ScraperConfig, log logger.Interface) (*HTTPScraper, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("scraper base URL is not configured")
	}
	if _, err := url.Parse(cfg.BaseURL); err != nil {
		return nil, fmt.Errorf("invalid scraper base URL: %w", err)
	}

	client := &http.Client{Timeout: cfg.Timeout()}
	if cfg.OAuth.ClientID != "" {
		cc := &clientcredentials.Config{
			ClientID:     cfg.OAuth.ClientID,
			ClientSecret: cfg.OAuth.ClientSecret,
			TokenURL:     cfg.OAuth.TokenURL,
			Scopes:       cfg.OAuth.Scopes,
		}
		client = cc.Client(context.Background())
		client.Timeout = cfg.Timeout()
	}

	return &HTTPScraper{
		cfg:      cfg,
		endpoint: strings.TrimRight(cfg.BaseURL, "/") + "/work-orders",
		client:   client,
		logger:   log,
		now:      biztime.NowUTC,
	}, nil
}

func (s *HTTPScraper) Scrape(ctx context.Context, req locate.ScrapeRequest) (*locate.ScrapeBatch, error) {
	now := s.now()
	resolved := resolveRequest(s.cfg, req, now)

	q := url.Values{}
	q.Set("status", resolved.Status)
	q.Set("startDate", resolved.StartDate)
	q.Set("endDate", resolved.EndDate)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, s.endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build scrape request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := s.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("dispatch board request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, fmt.Errorf("dispatch board returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var payload boardPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode dispatch board response: %w", err)
	}

	batch := toBatch(&payload, resolved, now)
	if batch.Source == "" {
		batch.Source = locate.DefaultSource
	}

	s.logger.Infow("dispatch board scraped",
		"work_orders", len(batch.WorkOrders),
		"status", resolved.Status,
		"start_date", resolved.StartDate,
		"end_date", resolved.EndDate,
		"duration", time.Since(start),
	)
	return batch, nil
}
