package servicetype

import "errors"

var (
	ErrServiceTypeNotFound = errors.New("servicetype_storage: service type not found")
	ErrServiceTypeExists   = errors.New("servicetype_storage: service type with this name already exists")
	ErrBuildQuery          = errors.New("servicetype_storage: failed to build query")
	ErrExecQuery           = errors.New("servicetype_storage: failed to execute query")
	ErrScanRow             = errors.New("servicetype_storage: failed to scan row")
)
