package book_appointment

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrServiceTypeNotFound возвращается, когда тип обслуживания
	// отсутствует в каталоге
	ErrServiceTypeNotFound = errors.New("service type not found")

	// ErrServiceTypeInactive возвращается, когда тип обслуживания
	// выведен из каталога
	ErrServiceTypeInactive = errors.New("service type is no longer offered")

	// ErrInternal возвращается при внутренних ошибках
	ErrInternal = errors.New("book_appointment: internal error")
)
