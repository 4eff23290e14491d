package valueobjects

import (
	"fmt"
	"strings"
)

// WorkflowStatus is the derived position of a work order in the locate workflow.
type WorkflowStatus string

const (
	WorkflowCallNeeded WorkflowStatus = "CALL_NEEDED"
	WorkflowInProgress WorkflowStatus = "IN_PROGRESS"
	WorkflowComplete   WorkflowStatus = "COMPLETE"
	WorkflowUnknown    WorkflowStatus = "UNKNOWN"
)

var validWorkflowStatuses = map[WorkflowStatus]bool{
	WorkflowCallNeeded: true,
	WorkflowInProgress: true,
	WorkflowComplete:   true,
	WorkflowUnknown:    true,
}

func (s WorkflowStatus) String() string {
	return string(s)
}

func (s WorkflowStatus) IsValid() bool {
	return validWorkflowStatuses[s]
}

// NewWorkflowStatus parses user input. Case and separators are normalized so
// "call-needed", "Call Needed" and "CALL_NEEDED" are equivalent.
func NewWorkflowStatus(raw string) (WorkflowStatus, error) {
	normalized := strings.ToUpper(strings.TrimSpace(raw))
	normalized = strings.NewReplacer("-", "_", " ", "_").Replace(normalized)

	status := WorkflowStatus(normalized)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid workflow status: %s", raw)
	}
	return status, nil
}
