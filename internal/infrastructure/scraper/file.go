package scraper

import (
	"context"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"locates/internal/domain/locate"
	"locates/internal/shared/biztime"
	"locates/internal/shared/config"
	"locates/internal/shared/logger"
)

// FileScraper reads a board export from disk. YAML is a superset of JSON,
// so one decoder covers both formats.
type FileScraper struct {
	cfg    config.ScraperConfig
	logger logger.Interface
	now    func() time.Time
}

func NewFileScraper(cfg config.ScraperConfig, log logger.Interface) *FileScraper {
	return &FileScraper{
		cfg:    cfg,
		logger: log,
		now:    biztime.NowUTC,
	}
}

func (s *FileScraper) Scrape(ctx context.Context, req locate.ScrapeRequest) (*locate.ScrapeBatch, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.cfg.FilePath == "" {
		return nil, fmt.Errorf("scraper file path is not configured")
	}

	data, err := os.ReadFile(s.cfg.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read board export: %w", err)
	}

	var payload boardPayload
	if err := yaml.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("failed to parse board export: %w", err)
	}

	now := s.now()
	resolved := resolveRequest(s.cfg, req, now)
	batch := toBatch(&payload, resolved, now)
	if batch.Source == "" {
		batch.Source = "file"
	}

	s.logger.Infow("board export loaded",
		"path", s.cfg.FilePath,
		"work_orders", len(batch.WorkOrders),
		"start_date", resolved.StartDate,
		"end_date", resolved.EndDate,
	)
	return batch, nil
}
