package plan

import "errors"

// Sentinel errors for the plan service layer.
var (
	ErrNotFound         = errors.New("plan not found")
	ErrAlreadyConfirmed = errors.New("plan is already confirmed")
)
