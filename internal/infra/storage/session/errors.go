package session

import "errors"

var (
	ErrSessionNotFound = errors.New("session_storage: time session not found")
	ErrSessionExists   = errors.New("session_storage: active session already exists for appointment and employee")
	ErrBuildQuery      = errors.New("session_storage: failed to build query")
	ErrExecQuery       = errors.New("session_storage: failed to execute query")
	ErrScanRow         = errors.New("session_storage: failed to scan row")
)
