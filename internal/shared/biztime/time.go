// Package biztime holds the business timezone. Timestamps are stored and
// transported in UTC; the business zone is only used where wall-clock
// calendar rules apply, such as skipping weekends when computing deadlines.
package biztime

import (
	"fmt"
	"sync"
	"time"
)

const DefaultTimezone = "America/New_York"

var (
	bizLocation *time.Location
	locationMu  sync.RWMutex
)

// Init sets the business timezone. An empty tz selects DefaultTimezone.
func Init(tz string) error {
	if tz == "" {
		tz = DefaultTimezone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return fmt.Errorf("load business timezone %q: %w", tz, err)
	}

	locationMu.Lock()
	bizLocation = loc
	locationMu.Unlock()
	return nil
}

func MustInit(tz string) {
	if err := Init(tz); err != nil {
		panic(err)
	}
}

// Location returns the business timezone, initializing the default on first use.
func Location() *time.Location {
	locationMu.RLock()
	loc := bizLocation
	locationMu.RUnlock()
	if loc != nil {
		return loc
	}

	if err := Init(""); err != nil {
		// tzdata missing; fall back rather than crash a request path.
		return time.UTC
	}
	return Location()
}

func NowUTC() time.Time {
	return time.Now().UTC()
}

func ToBizTimezone(t time.Time) time.Time {
	return t.In(Location())
}

// FormatDate renders t as YYYY-MM-DD in the business timezone.
func FormatDate(t time.Time) string {
	return t.In(Location()).Format(time.DateOnly)
}

// ParseDateInBizTimezone parses YYYY-MM-DD as business-zone midnight, returned in UTC.
func ParseDateInBizTimezone(dateStr string) (time.Time, error) {
	t, err := time.ParseInLocation(time.DateOnly, dateStr, Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date format %q: %w", dateStr, err)
	}
	return t.UTC(), nil
}

// FormatMetadataTime is the timestamp format used in work-order metadata.
func FormatMetadataTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func ParseMetadataTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid metadata timestamp format %q: %w", s, err)
	}
	return t, nil
}
