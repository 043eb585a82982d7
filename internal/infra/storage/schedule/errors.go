package schedule

import "errors"

var (
	ErrBusinessHoursNotFound = errors.New("schedule_storage: business hours not found for weekday")
	ErrBuildQuery            = errors.New("schedule_storage: failed to build query")
	ErrExecQuery             = errors.New("schedule_storage: failed to execute query")
	ErrScanRow               = errors.New("schedule_storage: failed to scan row")
)
