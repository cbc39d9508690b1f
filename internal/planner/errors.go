package planner

import "errors"

// Sentinel errors for the planning engine. ErrInvalidRequest is the only
// error class that escapes GeneratePlan; everything else (missing
// history, empty candidate pools, undefined CPA) resolves to defaults or
// valid degenerate plans.
var (
	ErrInvalidRequest = errors.New("invalid plan request")
)
