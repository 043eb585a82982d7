package servicetypes

import "errors"

var (
	// ErrServiceTypeNotFound возвращается, когда тип обслуживания не найден
	ErrServiceTypeNotFound = errors.New("service type not found")

	// ErrServiceTypeExists возвращается при создании дубликата по имени
	ErrServiceTypeExists = errors.New("service type with this name already exists")

	// ErrAccessDenied возвращается, когда операция доступна только администратору
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("servicetypes: internal error")
)
