package timetracking

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = errors.New("appointment not found")

	// ErrNotAssigned возвращается, когда сотрудник не назначен на запись
	ErrNotAssigned = errors.New("employee is not assigned to this appointment")

	// ErrInvalidState возвращается, когда статус записи не допускает
	// учёт рабочего времени
	ErrInvalidState = errors.New("appointment status does not allow time tracking")

	// ErrNoActiveSession возвращается при попытке clock-out без активной сессии
	ErrNoActiveSession = errors.New("no active work session for this appointment and employee")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("timetracking: internal error")
)
