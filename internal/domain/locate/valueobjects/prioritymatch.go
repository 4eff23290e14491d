package valueobjects

import (
	"fmt"
	"strings"
)

const ExcavatorPriority = "EXCAVATOR"

// PriorityMatch controls how a priority name is compared with EXCAVATOR.
type PriorityMatch string

const (
	// PriorityMatchExact compares case-insensitively after trimming.
	PriorityMatchExact PriorityMatch = "exact"
	// PriorityMatchContains accepts any name containing EXCAVATOR.
	PriorityMatchContains PriorityMatch = "contains"
)

func (m PriorityMatch) IsValid() bool {
	return m == PriorityMatchExact || m == PriorityMatchContains
}

func NewPriorityMatch(raw string) (PriorityMatch, error) {
	if strings.TrimSpace(raw) == "" {
		return PriorityMatchExact, nil
	}
	m := PriorityMatch(strings.ToLower(strings.TrimSpace(raw)))
	if !m.IsValid() {
		return "", fmt.Errorf("invalid priority match mode: %s", raw)
	}
	return m, nil
}

// Matches reports whether priorityName denotes an excavator job.
func (m PriorityMatch) Matches(priorityName string) bool {
	name := strings.TrimSpace(priorityName)
	if m == PriorityMatchContains {
		return strings.Contains(strings.ToUpper(name), ExcavatorPriority)
	}
	return strings.EqualFold(name, ExcavatorPriority)
}
