package schedule

import "errors"

// Both errors indicate a caller defect: scores and progress are validated
// before they reach the scheduler.
var (
	ErrInvalidScore = errors.New("schedule: invalid score")
	ErrInvalidState = errors.New("schedule: invalid interval progress")
)
