package check_availability

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrServiceTypeNotFound возвращается, когда тип обслуживания
	// отсутствует в каталоге
	ErrServiceTypeNotFound = errors.New("service type not found")

	// ErrInternal возвращается при внутренних ошибках
	ErrInternal = errors.New("check_availability: internal error")
)
