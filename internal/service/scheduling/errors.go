package scheduling

import "errors"

var (
	// ErrPastDateTime возвращается при попытке записи на прошедшее время
	ErrPastDateTime = errors.New("requested date and time is in the past")

	// ErrHoliday возвращается при попытке записи на праздничный день
	ErrHoliday = errors.New("workshop is closed on the requested date (holiday)")

	// ErrClosedDay возвращается при попытке записи на нерабочий день
	ErrClosedDay = errors.New("workshop is closed on the requested day")

	// ErrOutsideBusinessHours возвращается, когда окно работы
	// не помещается в рабочие часы дня
	ErrOutsideBusinessHours = errors.New("requested time is outside business hours")

	// ErrDuringBreak возвращается, когда окно работы пересекает перерыв
	ErrDuringBreak = errors.New("requested time falls within the break period")

	// ErrNoBayAvailable возвращается, когда ни один бокс не свободен
	// в запрошенное время
	ErrNoBayAvailable = errors.New("no service bay is available at the requested time")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("scheduling: internal error")
)
