// Package clock предоставляет источник текущего времени,
// подменяемый в тестах фиксированным значением.
package clock

import "time"

// Clock реальный источник времени
type Clock struct{}

// New создает новый источник времени
func New() *Clock {
	return &Clock{}
}

// Now возвращает текущее время
func (c *Clock) Now() time.Time {
	return time.Now()
}
