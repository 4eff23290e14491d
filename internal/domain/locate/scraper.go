package locate

import "context"

// ScrapeRequest narrows what the dispatch board returns. Empty fields use
// the scraper's configured defaults.
type ScrapeRequest struct {
	Status    string
	StartDate string
	EndDate   string
}

// ScrapeBatch is the raw result of one scrape, before filtering.
type ScrapeBatch struct {
	FilterStartDate string
	FilterEndDate   string
	DispatchDate    string
	Source          string
	WorkOrders      []Details
}

// Scraper fetches candidate work orders from the external dispatch board.
type Scraper interface {
	Scrape(ctx context.Context, req ScrapeRequest) (*ScrapeBatch, error)
}
