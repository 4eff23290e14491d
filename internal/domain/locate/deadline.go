package locate

import (
	"fmt"
	"math"
	"time"

	vo "locates/internal/domain/locate/valueobjects"
)

// CompletionDeadline returns when the locate window closes. Emergency calls
// get a fixed four hours; standard calls get two business days counted in
// loc, keeping the wall-clock time of the call.
func CompletionDeadline(callType vo.CallType, calledAt time.Time, loc *time.Location) time.Time {
	if callType.IsEmergency() {
		return calledAt.Add(vo.EmergencyWindow).UTC()
	}
	if loc == nil {
		loc = time.UTC
	}
	return AddBusinessDays(calledAt.In(loc), vo.StandardBusinessDays).UTC()
}

// AddBusinessDays steps forward one calendar day at a time, counting only
// Monday to Friday. Holidays are not considered.
func AddBusinessDays(t time.Time, days int) time.Time {
	added := 0
	for added < days {
		t = t.AddDate(0, 0, 1)
		if wd := t.Weekday(); wd != time.Saturday && wd != time.Sunday {
			added++
		}
	}
	return t
}

// TimeRemaining is the display form of the time left before a deadline.
type TimeRemaining struct {
	Expired bool   `json:"expired"`
	Text    string `json:"text,omitempty"`
	Hours   int    `json:"hours,omitempty"`
	Minutes int    `json:"minutes,omitempty"`
}

const expiredText = "Expired"

// ComputeTimeRemaining formats the time left until deadline. Emergency orders
// show hours and minutes. Other orders show whole calendar days rounded up,
// which does not account for the weekends skipped by the deadline itself.
func ComputeTimeRemaining(callType *vo.CallType, deadline *time.Time, timerExpired bool, now time.Time) TimeRemaining {
	if deadline == nil || timerExpired || !deadline.After(now) {
		return TimeRemaining{Expired: true, Text: expiredText}
	}

	delta := deadline.Sub(now)
	hours := int(delta / time.Hour)
	minutes := int((delta % time.Hour) / time.Minute)

	if callType != nil && callType.IsEmergency() {
		return TimeRemaining{
			Text:    fmt.Sprintf("%dh %dm", hours, minutes),
			Hours:   hours,
			Minutes: minutes,
		}
	}

	days := int(math.Ceil(delta.Hours() / 24))
	unit := "days"
	if days == 1 {
		unit = "day"
	}
	return TimeRemaining{
		Text:    fmt.Sprintf("%d %s", days, unit),
		Hours:   hours,
		Minutes: minutes,
	}
}

// HoursRemaining rounds the time left up to whole hours, never below zero.
func HoursRemaining(deadline time.Time, now time.Time) int {
	delta := deadline.Sub(now)
	if delta <= 0 {
		return 0
	}
	return int(math.Ceil(delta.Hours()))
}
