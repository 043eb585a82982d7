package domain

import "time"

// Scheduling constants
const (
	// SlotIntervalMinutes фиксированный шаг генерации слотов
	SlotIntervalMinutes = 30

	// DefaultOccupancyMinutes фиксированное окно занятости существующей записи
	// при проверке конфликтов (независимо от реальной длительности её услуги)
	DefaultOccupancyMinutes = 60

	// BayConflictWindow окно выборки существующих записей вокруг запрошенного
	// времени при подборе бокса; единая константа для резолвера и калькулятора
	BayConflictWindow = 2 * time.Hour
)

// Confirmation number constants
const (
	// ConfirmationPrefix префикс номера подтверждения ("APT-<год>-<номер>")
	ConfirmationPrefix = "APT"

	// ConfirmationSeqStart начальное значение последовательности внутри года
	ConfirmationSeqStart = 1000

	// ConfirmationSeqDigits ширина числового суффикса (с ведущими нулями)
	ConfirmationSeqDigits = 6
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
	// DateTimeFormat абсолютный формат "дата + локальное время", без таймзоны
	DateTimeFormat = "2006-01-02T15:04:05"
)

// NonOccupyingStatuses статусы, записи в которых не занимают бокс
// Используется при проверке конфликтов и подсчёте доступности
var NonOccupyingStatuses = []AppointmentStatus{
	StatusCancelled,
	StatusNoShow,
}
