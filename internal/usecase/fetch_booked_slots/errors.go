package fetch_booked_slots

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных (ошибка вызывающего кода, не сети)
	ErrInvalidInput = errors.New("fetch_booked_slots: invalid input data")
)
