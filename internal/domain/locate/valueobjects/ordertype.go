package valueobjects

import "strings"

// OrderType classifies a work order. EXCAVATOR orders are the ones that need
// locate calls.
type OrderType string

const (
	OrderTypeStandard  OrderType = "STANDARD"
	OrderTypeEmergency OrderType = "EMERGENCY"
	OrderTypeExcavator OrderType = "EXCAVATOR"
)

func (t OrderType) String() string {
	return string(t)
}

func (t OrderType) IsValid() bool {
	switch t {
	case OrderTypeStandard, OrderTypeEmergency, OrderTypeExcavator:
		return true
	}
	return false
}

// ParseOrderType falls back to STANDARD for unknown or empty input.
func ParseOrderType(raw string) OrderType {
	t := OrderType(strings.ToUpper(strings.TrimSpace(raw)))
	if !t.IsValid() {
		return OrderTypeStandard
	}
	return t
}
