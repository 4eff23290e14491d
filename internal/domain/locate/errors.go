package locate

import "errors"

var (
	ErrSnapshotNotFound     = errors.New("dashboard snapshot not found")
	ErrWorkOrderNotFound    = errors.New("work order not found")
	ErrDeletedOrderNotFound = errors.New("deleted work order not found")
	ErrAlreadyRestored      = errors.New("work order has already been restored")
	ErrAlreadyComplete      = errors.New("work order is already complete")
	ErrInvalidCallType      = errors.New("call type must be STANDARD or EMERGENCY")
	ErrCalledByRequired     = errors.New("name of the person who called is required")
	ErrTaggerRequired       = errors.New("name of the person tagging is required")
	ErrNotEligibleForCall   = errors.New("work order is not an excavator job and was not manually tagged")
)
