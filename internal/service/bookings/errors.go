package bookings

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("access denied")

	// ErrSlotTaken возвращается, когда слот уже занят активным бронированием
	ErrSlotTaken = errors.New("slot taken")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInvalidField возвращается для неизвестной площадки
	ErrInvalidField = errors.New("unknown field type")

	// ErrInvalidDate возвращается при некорректной дате
	ErrInvalidDate = errors.New("invalid date, expected YYYY-MM-DD")

	// ErrInvalidSlot возвращается для слота вне каталога
	ErrInvalidSlot = errors.New("unknown time slot")

	// ErrWeekend возвращается для субботы и воскресенья
	ErrWeekend = errors.New("reservations are not available on Saturday and Sunday")

	// ErrSlotInPast возвращается, если слот уже начался
	ErrSlotInPast = errors.New("time slot is in the past")

	// ErrInvalidStatus возвращается при попытке установить недопустимый статус
	ErrInvalidStatus = errors.New("invalid booking status, expected approved or rejected")

	// ErrStatusNotPending возвращается, если бронирование уже рассмотрено
	ErrStatusNotPending = errors.New("booking is not pending")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
