package valueobjects

import (
	"fmt"
	"strings"
	"time"
)

// CallType selects the response window granted after a locate call.
type CallType string

const (
	CallTypeStandard  CallType = "STANDARD"
	CallTypeEmergency CallType = "EMERGENCY"
)

const (
	EmergencyWindow      = 4 * time.Hour
	StandardBusinessDays = 2
)

func (c CallType) String() string {
	return string(c)
}

func (c CallType) IsValid() bool {
	return c == CallTypeStandard || c == CallTypeEmergency
}

func (c CallType) IsEmergency() bool {
	return c == CallTypeEmergency
}

// NewCallType accepts any casing and stores the upper-case form.
func NewCallType(raw string) (CallType, error) {
	ct := CallType(strings.ToUpper(strings.TrimSpace(raw)))
	if !ct.IsValid() {
		return "", fmt.Errorf("invalid call type: %s", raw)
	}
	return ct, nil
}
