package submit_booking

import (
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
)

var (
	// ErrValidation общая ошибка валидации: сетевые запросы не выполнялись
	ErrValidation = errors.New("submit_booking: validation failed")

	// ErrNotAuthenticated возвращается без действующей сессии
	ErrNotAuthenticated = fmt.Errorf("%w: you must be logged in first", ErrValidation)

	// ErrEmptySelection возвращается, когда не выбран ни один слот
	ErrEmptySelection = fmt.Errorf("%w: select at least one time slot", ErrValidation)

	// ErrMissingDate возвращается, когда дата не выбрана
	ErrMissingDate = fmt.Errorf("%w: choose a date first", ErrValidation)

	// ErrWeekend возвращается для субботы и воскресенья
	ErrWeekend = fmt.Errorf("%w: reservations are not available on Saturday and Sunday", ErrValidation)

	// ErrInvalidField возвращается для неизвестной площадки
	ErrInvalidField = fmt.Errorf("%w: unknown field type", ErrValidation)

	// ErrInvalidSlot возвращается для слота вне каталога
	ErrInvalidSlot = fmt.Errorf("%w: unknown time slot", ErrValidation)

	// ErrSubmissionFailed возвращается, если хотя бы один запрос на создание не прошел
	ErrSubmissionFailed = errors.New("submit_booking: submission failed")
)

// defaultFailureMessage сообщение, если сервер не вернул своего
const defaultFailureMessage = "failed to make a reservation"

// SubmitError ошибка пакетной отправки. Message - сообщение первой по времени ошибки.
// Booked перечисляет слоты, которые сервер успел создать (частичный успех)
type SubmitError struct {
	Message        string
	Booked         []BookedSlot
	Failed         []domain.Slot
	RolledBack     []domain.Slot
	RollbackFailed []domain.Slot
	Err            error
}

func (e *SubmitError) Error() string {
	return e.Message
}

func (e *SubmitError) Unwrap() []error {
	return []error{ErrSubmissionFailed, e.Err}
}

// IsPartial returns true if some slots were persisted before the failure and were not rolled back
func (e *SubmitError) IsPartial() bool {
	return len(e.Booked) > len(e.RolledBack)
}

// Details развернутое описание для логов и CLI
func (e *SubmitError) Details() string {
	var b strings.Builder
	b.WriteString(e.Message)
	if len(e.Failed) > 0 {
		fmt.Fprintf(&b, "; failed: %s", joinSlots(e.Failed))
	}
	if len(e.Booked) > 0 {
		booked := make([]domain.Slot, 0, len(e.Booked))
		for _, s := range e.Booked {
			booked = append(booked, s.Slot)
		}
		fmt.Fprintf(&b, "; booked: %s", joinSlots(booked))
	}
	if len(e.RolledBack) > 0 {
		fmt.Fprintf(&b, "; rolled back: %s", joinSlots(e.RolledBack))
	}
	if len(e.RollbackFailed) > 0 {
		fmt.Fprintf(&b, "; rollback failed: %s", joinSlots(e.RollbackFailed))
	}
	return b.String()
}

func joinSlots(slots []domain.Slot) string {
	parts := make([]string, len(slots))
	for i, s := range slots {
		parts[i] = s.String()
	}
	return strings.Join(parts, ", ")
}
