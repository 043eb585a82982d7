package timelogging

import "errors"

var (
	ErrRequestFailed    = errors.New("timelogging: request to time-logging service failed")
	ErrUnexpectedStatus = errors.New("timelogging: unexpected status from time-logging service")
	ErrDecodeResponse   = errors.New("timelogging: failed to decode time-logging response")
)
