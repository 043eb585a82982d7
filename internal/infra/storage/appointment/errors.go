package appointment

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = errors.New("appointment.repository: appointment not found")

	// ErrStatusConflict возвращается, когда CAS-обновление статуса не прошло:
	// статус записи уже изменился с момента чтения
	ErrStatusConflict = errors.New("appointment.repository: status changed concurrently")

	// ErrDuplicateConfirmation возвращается при нарушении уникальности номера подтверждения
	ErrDuplicateConfirmation = errors.New("appointment.repository: duplicate confirmation number")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("appointment.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("appointment.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("appointment.repository: failed to scan row")
)
