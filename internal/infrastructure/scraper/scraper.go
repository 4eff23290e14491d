// Package scraper implements locate.Scraper against the dispatch board.
package scraper

import (
	"fmt"
	"strings"
	"time"

	"locates/internal/domain/locate"
	"locates/internal/shared/biztime"
	"locates/internal/shared/config"
	"locates/internal/shared/logger"
)

const (
	ModeFile = "file"
	ModeHTTP = "http"

	dateLayout = "2006-01-02"
)

// boardPayload is the document exported by the dispatch board bridge. The
// file and HTTP sources share it.
type boardPayload struct {
	FilterStartDate string           `json:"filterStartDate" yaml:"filterStartDate"`
	FilterEndDate   string           `json:"filterEndDate" yaml:"filterEndDate"`
	DispatchDate    string           `json:"dispatchDate" yaml:"dispatchDate"`
	Source          string           `json:"source" yaml:"source"`
	WorkOrders      []locate.Details `json:"workOrders" yaml:"workOrders"`
}

// New builds the scraper selected by cfg.Mode.
func New(cfg config.ScraperConfig, log logger.Interface) (locate.Scraper, error) {
	switch strings.ToLower(cfg.Mode) {
	case "", ModeFile:
		return NewFileScraper(cfg, log), nil
	case ModeHTTP:
		return NewHTTPScraper(cfg, log)
	default:
		return nil, fmt.Errorf("unsupported scraper mode: %s", cfg.Mode)
	}
}

// resolvedRequest fills empty request fields from the configured defaults.
type resolvedRequest struct {
	Status    string
	StartDate string
	EndDate   string
}

func resolveRequest(cfg config.ScraperConfig, req locate.ScrapeRequest, now time.Time) resolvedRequest {
	local := now.In(biztime.Location())
	out := resolvedRequest{
		Status:    req.Status,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	}
	if out.Status == "" {
		out.Status = cfg.DefaultStatus
	}
	if out.EndDate == "" {
		out.EndDate = local.Format(dateLayout)
	}
	if out.StartDate == "" {
		window := cfg.WindowDays
		if window <= 0 {
			window = 30
		}
		out.StartDate = local.AddDate(0, 0, -window).Format(dateLayout)
	}
	return out
}

func toBatch(p *boardPayload, req resolvedRequest, now time.Time) *locate.ScrapeBatch {
	batch := &locate.ScrapeBatch{
		FilterStartDate: req.StartDate,
		FilterEndDate:   req.EndDate,
		DispatchDate:    p.DispatchDate,
		Source:          p.Source,
		WorkOrders:      p.WorkOrders,
	}
	if batch.DispatchDate == "" {
		batch.DispatchDate = now.In(biztime.Location()).Format(dateLayout)
	}
	if batch.WorkOrders == nil {
		batch.WorkOrders = []locate.Details{}
	}
	return batch
}
