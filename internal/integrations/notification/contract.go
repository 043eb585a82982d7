package notification

import (
	"github.com/techtorque/appointment-service/pkg/logger"
)

// Logger интерфейс логгера для диспетчера уведомлений
type Logger interface {
	Debug(format string, v ...interface{})
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

var _ Logger = (*logger.Logger)(nil)
