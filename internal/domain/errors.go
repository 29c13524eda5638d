package domain

import "errors"

var (
	// ErrUnknownFieldType возвращается для типа поля вне перечисления {basket, futsal}
	ErrUnknownFieldType = errors.New("unknown field type")

	// ErrInvalidSlot возвращается, когда метка слота не входит в каталог или имеет неверный формат
	ErrInvalidSlot = errors.New("invalid time slot")

	// ErrInvalidDate возвращается для даты не в формате YYYY-MM-DD
	ErrInvalidDate = errors.New("invalid date, expected YYYY-MM-DD")

	// ErrInvalidStatus возвращается для неизвестного статуса бронирования
	ErrInvalidStatus = errors.New("invalid booking status")
)
