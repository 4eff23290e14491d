package locate

import (
	vo "locates/internal/domain/locate/valueobjects"
)

// StatusFlags are the inputs of the workflow status derivation.
type StatusFlags struct {
	ManuallyCompleted bool
	ManuallyTagged    bool
	Excavator         bool
	LocatesCalled     bool
	TimerStarted      bool
	TimerExpired      bool
}

// DeriveStatus maps the flags onto a workflow status. Rules are evaluated in
// order; the first match wins.
func DeriveStatus(f StatusFlags) vo.WorkflowStatus {
	switch {
	case f.ManuallyCompleted:
		return vo.WorkflowComplete
	case f.ManuallyTagged && !f.LocatesCalled:
		return vo.WorkflowCallNeeded
	case f.Excavator && !f.LocatesCalled:
		return vo.WorkflowCallNeeded
	case f.LocatesCalled && f.TimerStarted && !f.TimerExpired:
		return vo.WorkflowInProgress
	case f.LocatesCalled && f.TimerExpired:
		return vo.WorkflowComplete
	default:
		return vo.WorkflowUnknown
	}
}
