package bay

import "errors"

var (
	ErrBayNotFound = errors.New("bay_storage: service bay not found")
	ErrBuildQuery  = errors.New("bay_storage: failed to build query")
	ErrExecQuery   = errors.New("bay_storage: failed to execute query")
	ErrScanRow     = errors.New("bay_storage: failed to scan row")
)
