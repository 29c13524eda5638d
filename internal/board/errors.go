package board

import "errors"

var (
	// ErrNoDate возвращается, если дата еще не выбрана
	ErrNoDate = errors.New("choose a date first")

	// ErrWeekend возвращается при выборе субботы или воскресенья
	ErrWeekend = errors.New("reservations are not available on Saturday and Sunday")

	// ErrDateInPast возвращается при выборе прошедшей даты
	ErrDateInPast = errors.New("date is in the past")

	// ErrSlotNotTogglable возвращается для прошедших и занятых слотов
	ErrSlotNotTogglable = errors.New("slot cannot be selected")

	// ErrBusy возвращается, пока предыдущая отправка не завершилась
	ErrBusy = errors.New("submission already in progress")
)
