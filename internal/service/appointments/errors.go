package appointments

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = errors.New("appointment not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав на операцию
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidTransition возвращается при недопустимом переходе статуса
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrStatusConflict возвращается, когда статус записи изменился
	// конкурентным запросом
	ErrStatusConflict = errors.New("appointment status was changed concurrently")

	// ErrCannotUpdate возвращается, когда запись уже нельзя изменить
	ErrCannotUpdate = errors.New("appointment can no longer be updated")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrNoEmployees возвращается при попытке назначить пустой список сотрудников
	ErrNoEmployees = errors.New("at least one employee must be assigned")

	// ErrVehicleAlreadyAccepted возвращается при повторном приёме автомобиля
	ErrVehicleAlreadyAccepted = errors.New("vehicle arrival has already been accepted")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("appointments: internal error")
)
