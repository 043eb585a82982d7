package timelogging

import (
	"github.com/techtorque/appointment-service/pkg/logger"
)

// Logger интерфейс логгера для клиента учёта времени
type Logger interface {
	Debug(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

var _ Logger = (*logger.Logger)(nil)
